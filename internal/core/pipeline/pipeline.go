package pipeline

import (
	"sort"

	"github.com/mlubs/IM-Intel/internal/domain"
)

// Ingest normaliza todas as linhas, descarta as inválidas e ordena os registros por
// data de forma estável. Sem linhas válidas o dataset retornado é vazio.
func (n Normalizer) Ingest(rows []domain.RawRow) domain.Dataset {
	dataset := make(domain.Dataset, 0, len(rows))
	for _, row := range rows {
		if rec, ok := n.Normalize(row); ok {
			dataset = append(dataset, rec)
		}
	}
	sort.SliceStable(dataset, func(i, j int) bool {
		return dataset[i].Date.Before(dataset[j].Date)
	})
	return dataset
}
