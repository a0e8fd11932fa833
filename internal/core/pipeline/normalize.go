// Package pipeline normaliza linhas cruas de planilha em registros datados e
// filtra o dataset resultante por intervalo de datas. Todas as funções são puras.
package pipeline

import (
	"github.com/mlubs/IM-Intel/internal/domain"
)

// Normalizer aplica as regras de normalização a linhas cuja coluna de data é DateColumn.
type Normalizer struct {
	DateColumn string
}

// NewNormalizer cria um normalizador. Um nome vazio usa a coluna "Data".
func NewNormalizer(dateColumn string) Normalizer {
	if dateColumn == "" {
		dateColumn = domain.DefaultDateColumn
	}
	return Normalizer{DateColumn: dateColumn}
}

func (n Normalizer) dateColumn() string {
	if n.DateColumn == "" {
		return domain.DefaultDateColumn
	}
	return n.DateColumn
}

// Normalize converte uma linha em registro. Retorna false quando a data não é válida;
// nenhuma outra coluna é motivo de descarte.
func (n Normalizer) Normalize(row domain.RawRow) (domain.Record, bool) {
	key := n.dateColumn()
	date, ok := ResolveDate(row[key])
	if !ok {
		return domain.Record{}, false
	}

	values := make(map[string]float64, len(row))
	for col, cell := range row {
		if col == key {
			continue
		}
		values[col] = ParseLocaleNumber(cell)
	}
	return domain.NewRecord(key, date, values), true
}
