package dashboard

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownColumn indica uma coluna inexistente no dataset.
var ErrUnknownColumn = errors.New("coluna não encontrada")

// UnknownColumnError carrega a coluna pedida e a sugestão mais próxima, se houver.
type UnknownColumnError struct {
	Column     string
	Suggestion string
}

func (e *UnknownColumnError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("%v: %q", ErrUnknownColumn, e.Column)
	}
	return fmt.Sprintf("%v: %q (você quis dizer %q?)", ErrUnknownColumn, e.Column, e.Suggestion)
}

func (e *UnknownColumnError) Unwrap() error { return ErrUnknownColumn }

var nonAlphanumericRegex = regexp.MustCompile(`[^A-Z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeText remove acentos e pontuação e passa para maiúsculas.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// resolveColumn procura a coluna pelo nome exato e depois ignorando acentos,
// caixa e pontuação. Sem correspondência, sugere a coluna mais parecida.
func resolveColumn(name string, columns []string) (string, error) {
	for _, col := range columns {
		if col == name {
			return col, nil
		}
	}

	key := normalizeText(name)
	if key != "" {
		for _, col := range columns {
			if normalizeText(col) == key {
				return col, nil
			}
		}
	}

	if len(columns) == 0 || key == "" {
		return "", &UnknownColumnError{Column: name}
	}

	normalized := make([]string, len(columns))
	byNormalized := make(map[string]string, len(columns))
	for i, col := range columns {
		normalized[i] = normalizeText(col)
		byNormalized[normalized[i]] = col
	}
	// closestmatch guarda os candidatos em minúsculas mas não converte a busca.
	cm := closestmatch.New(normalized, []int{2, 3})
	return "", &UnknownColumnError{Column: name, Suggestion: byNormalized[cm.Closest(strings.ToLower(key))]}
}
