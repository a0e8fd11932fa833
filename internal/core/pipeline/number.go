package pipeline

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// floatPrefixRegex casa o maior prefixo decimal válido, como parseFloat faz em planilhas exportadas.
var floatPrefixRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseLocaleNumber converte um valor no formato brasileiro ("1.234,56") em número.
// Valores já numéricos são devolvidos sem alteração. Qualquer coisa que não possa
// ser interpretada vira 0, inclusive tipos desconhecidos.
func ParseLocaleNumber(value any) float64 {
	if f, ok := asNumber(value); ok {
		return f
	}
	s, ok := value.(string)
	if !ok {
		return 0
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	m := floatPrefixRegex.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// fora do intervalo de float64
		return 0
	}
	return f
}

// asNumber reconhece os tipos numéricos que as fontes de linhas produzem.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// FormatLocaleNumber escreve o número no formato brasileiro com a menor
// representação decimal exata, de modo que ParseLocaleNumber recupere o mesmo valor.
func FormatLocaleNumber(val float64) string {
	return localize(decimal.NewFromFloat(val).String())
}

// FormatLocaleFixed escreve o número no formato brasileiro com casas decimais fixas.
func FormatLocaleFixed(val float64, places int32) string {
	return localize(decimal.NewFromFloat(val).StringFixed(places))
}

// localize troca "1234567.89" por "1.234.567,89".
func localize(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
