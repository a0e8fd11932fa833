package pipeline

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BoundLayout é o formato brasileiro aceito nos filtros e exibido na interface.
const BoundLayout = "02/01/2006"

// excelEpochOffset é o número de dias entre o serial 0 da planilha e 1970-01-01.
const excelEpochOffset = 25569

// ErrInvalidBound indica um limite de filtro fora do formato dd/mm/aaaa.
var ErrInvalidBound = errors.New("data inválida, use o formato dd/mm/aaaa")

var brDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// genericLayouts são tentados, em ordem, para strings sem "/".
var genericLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"Mon Jan 02 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// ResolveDate converte a representação de data de uma célula (string dd/mm/aaaa,
// serial de planilha ou outra string reconhecível) em uma data de calendário em UTC.
// O segundo retorno é false quando a data não pôde ser resolvida.
func ResolveDate(value any) (time.Time, bool) {
	if value == nil {
		return time.Time{}, false
	}
	if serial, ok := asNumber(value); ok {
		return excelSerialToDate(serial)
	}
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.Contains(s, "/") {
		return parseDayFirst(s)
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}
	return time.Time{}, false
}

// excelSerialToDate converte o serial (dias desde 1899-12-30) para a data UTC, sem horas.
func excelSerialToDate(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, false
	}
	ms := (serial - excelEpochOffset) * 86400 * 1000
	if math.Abs(ms) > 8.64e15 {
		return time.Time{}, false
	}
	return dateOnly(time.UnixMilli(int64(math.Floor(ms))).UTC()), true
}

// parseDayFirst aceita apenas dd/mm/aaaa. A data é montada direto dos componentes,
// então 31/02/2023 avança para 03/03/2023.
func parseDayFirst(s string) (time.Time, bool) {
	m := brDateRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, errD := strconv.Atoi(m[1])
	month, errM := strconv.Atoi(m[2])
	year, errY := strconv.Atoi(m[3])
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1900 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// dateOnly descarta o horário mantendo o dia de calendário do valor lido.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseBound valida um limite de filtro digitado pelo usuário (dd/mm/aaaa).
func ParseBound(s string) (time.Time, error) {
	t, ok := parseDayFirst(strings.TrimSpace(s))
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBound, s)
	}
	return t, nil
}

// FormatBound escreve a data no formato dd/mm/aaaa.
func FormatBound(t time.Time) string {
	return t.Format(BoundLayout)
}
