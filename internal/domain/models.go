// package domain/models.go
package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// DefaultDateColumn é o nome convencional da coluna de data na planilha.
const DefaultDateColumn = "Data"

// ISODateLayout é o formato usado para datas nas respostas JSON.
const ISODateLayout = "2006-01-02"

// RawRow representa uma linha crua da planilha: nome da coluna -> valor da célula.
// Os valores podem ser string, números, bool ou ausentes.
type RawRow map[string]any

// Record é a forma normalizada de uma RawRow.
type Record struct {
	Date   time.Time
	Values map[string]float64

	// dateKey é o nome da coluna de data usado na serialização.
	dateKey string
}

// NewRecord cria um registro cuja data será serializada sob dateKey.
func NewRecord(dateKey string, date time.Time, values map[string]float64) Record {
	if values == nil {
		values = map[string]float64{}
	}
	return Record{Date: date, Values: values, dateKey: dateKey}
}

// DateKey retorna o nome da coluna de data do registro.
func (r Record) DateKey() string {
	if r.dateKey == "" {
		return DefaultDateColumn
	}
	return r.dateKey
}

// Columns retorna as colunas numéricas do registro em ordem alfabética.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r.Values))
	for k := range r.Values {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// MarshalJSON serializa o registro como objeto plano, com a data em ISO.
func (r Record) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		obj[k] = v
	}
	obj[r.DateKey()] = r.Date.Format(ISODateLayout)
	return json.Marshal(obj)
}

// Dataset é a sequência de registros ordenada por data (não decrescente).
type Dataset []Record

// Bounds retorna a menor e a maior data do dataset.
func (d Dataset) Bounds() (min, max time.Time, ok bool) {
	if len(d) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return d[0].Date, d[len(d)-1].Date, true
}

// Latest retorna o registro mais recente.
func (d Dataset) Latest() (Record, bool) {
	if len(d) == 0 {
		return Record{}, false
	}
	return d[len(d)-1], true
}

// DateRange é um par opcional de limites. Um limite com valor zero está ausente.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Complete indica se os dois limites estão definidos.
func (r *DateRange) Complete() bool {
	return r != nil && !r.Start.IsZero() && !r.End.IsZero()
}

// SeriesPoint é um ponto de uma série temporal de uma coluna.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// KPI é um indicador de valor único extraído do registro mais recente.
type KPI struct {
	Column    string  `json:"column"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// Summary descreve o estado carregado para a interface.
type Summary struct {
	Records     int       `json:"records"`
	Columns     []string  `json:"columns"`
	MinDate     string    `json:"min_date"`
	MaxDate     string    `json:"max_date"`
	RangeStart  string    `json:"range_start,omitempty"`
	RangeEnd    string    `json:"range_end,omitempty"`
	ViewRecords int       `json:"view_records"`
	LatestDate  string    `json:"latest_date,omitempty"`
	KPIs        []KPI     `json:"kpis"`
	Source      string    `json:"source"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// LoadResult resume uma ingestão bem-sucedida.
type LoadResult struct {
	Source  string `json:"source"`
	Rows    int    `json:"rows"`
	Records int    `json:"records"`
	Dropped int    `json:"dropped"`
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}
