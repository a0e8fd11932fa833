package pipeline

import (
	"time"

	"github.com/mlubs/IM-Intel/internal/domain"
)

// FilterByRange devolve os registros com start <= data <= fim do dia de end.
// Sem intervalo, ou com algum limite ausente, devolve o dataset inteiro.
func FilterByRange(dataset domain.Dataset, r *domain.DateRange) domain.Dataset {
	if !r.Complete() {
		out := make(domain.Dataset, len(dataset))
		copy(out, dataset)
		return out
	}

	start := r.Start
	end := endOfDay(r.End)

	out := make(domain.Dataset, 0, len(dataset))
	for _, rec := range dataset {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// endOfDay leva a data ao último instante do mesmo dia de calendário.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
