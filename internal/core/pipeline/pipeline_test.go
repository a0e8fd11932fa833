package pipeline

import (
	"testing"
	"time"

	"github.com/mlubs/IM-Intel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer("")

	rec, ok := n.Normalize(domain.RawRow{"Data": "01/01/2023", "Soja": "150,25", "Milho": 80.5})
	require.True(t, ok)
	assert.Equal(t, day(2023, time.January, 1), rec.Date)
	assert.Equal(t, map[string]float64{"Soja": 150.25, "Milho": 80.5}, rec.Values)
	assert.Equal(t, "Data", rec.DateKey())
}

func TestNormalize_MalformedNumberKeepsRecord(t *testing.T) {
	rec, ok := NewNormalizer("Data").Normalize(domain.RawRow{"Data": "01/01/2023", "X": "--"})
	require.True(t, ok)
	assert.Equal(t, 0.0, rec.Values["X"])
}

func TestNormalize_OnlyDateIsValid(t *testing.T) {
	rec, ok := NewNormalizer("Data").Normalize(domain.RawRow{"Data": "01/01/2023"})
	require.True(t, ok)
	assert.Empty(t, rec.Values)
}

func TestNormalize_InvalidDate(t *testing.T) {
	n := NewNormalizer("Data")
	for _, row := range []domain.RawRow{
		{"Data": "bad-date", "X": "1,00"},
		{"X": "1,00"},
		{"Data": nil},
		{},
	} {
		_, ok := n.Normalize(row)
		assert.False(t, ok, "row %v", row)
	}
}

func TestNormalize_CustomDateColumn(t *testing.T) {
	n := NewNormalizer("Semana")
	rec, ok := n.Normalize(domain.RawRow{"Semana": 44927, "Data": "7"})
	require.True(t, ok)
	assert.Equal(t, day(2023, time.January, 1), rec.Date)
	assert.Equal(t, 7.0, rec.Values["Data"])
	assert.Equal(t, "Semana", rec.DateKey())
}

func TestIngest_EndToEnd(t *testing.T) {
	rows := []domain.RawRow{
		{"Data": "01/01/2023", "X": "1.234,56"},
		{"Data": "bad-date", "X": "1,00"},
		{"Data": "08/01/2023", "X": "2.000,00"},
	}

	ds := NewNormalizer("Data").Ingest(rows)
	require.Len(t, ds, 2)
	assert.Equal(t, day(2023, time.January, 1), ds[0].Date)
	assert.Equal(t, day(2023, time.January, 8), ds[1].Date)
	assert.InDelta(t, 1234.56, ds[0].Values["X"], 1e-9)
	assert.InDelta(t, 2000.00, ds[1].Values["X"], 1e-9)

	view := FilterByRange(ds, &domain.DateRange{
		Start: day(2023, time.January, 5),
		End:   day(2023, time.January, 10),
	})
	require.Len(t, view, 1)
	assert.Equal(t, ds[1], view[0])
}

func TestIngest_SortedAndStable(t *testing.T) {
	rows := []domain.RawRow{
		{"Data": "15/01/2023", "ord": 1},
		{"Data": "01/01/2023", "ord": 2},
		{"Data": 44927, "ord": 3}, // 01/01/2023
		{"Data": "2023-01-08", "ord": 4},
		{"Data": "01/01/2023", "ord": 5},
	}

	ds := NewNormalizer("Data").Ingest(rows)
	require.Len(t, ds, 5)

	var order []float64
	for i, rec := range ds {
		assert.False(t, rec.Date.IsZero())
		if i > 0 {
			assert.False(t, rec.Date.Before(ds[i-1].Date), "dataset must be non-decreasing")
		}
		order = append(order, rec.Values["ord"])
	}
	assert.Equal(t, []float64{2, 3, 5, 4, 1}, order)
}

func TestIngest_Empty(t *testing.T) {
	n := NewNormalizer("Data")
	assert.Empty(t, n.Ingest(nil))
	assert.Empty(t, n.Ingest([]domain.RawRow{{"Data": "x"}, {"Data": "99/99/2023"}}))
}

func TestIngest_IdempotentAfterReserialization(t *testing.T) {
	n := NewNormalizer("Data")
	first := n.Ingest([]domain.RawRow{
		{"Data": "08/01/2023", "X": "2.000,00", "Y": "0,75"},
		{"Data": "01/01/2023", "X": "1.234,56", "Y": "--"},
		{"Data": "15/01/2023", "X": 987654.321, "Y": "-3,5"},
	})
	require.Len(t, first, 3)

	rows := make([]domain.RawRow, 0, len(first))
	for _, rec := range first {
		row := domain.RawRow{"Data": FormatBound(rec.Date)}
		for col, v := range rec.Values {
			row[col] = FormatLocaleNumber(v)
		}
		rows = append(rows, row)
	}

	assert.Equal(t, first, n.Ingest(rows))
}

func TestFilterByRange_PassThrough(t *testing.T) {
	ds := NewNormalizer("Data").Ingest([]domain.RawRow{
		{"Data": "01/01/2023", "X": 1},
		{"Data": "08/01/2023", "X": 2},
	})

	assert.Equal(t, ds, FilterByRange(ds, nil))
	assert.Equal(t, ds, FilterByRange(ds, &domain.DateRange{Start: day(2023, time.January, 5)}))
	assert.Equal(t, ds, FilterByRange(ds, &domain.DateRange{End: day(2023, time.January, 5)}))
	assert.Equal(t, ds, FilterByRange(ds, &domain.DateRange{}))
}

func TestFilterByRange_InclusiveBounds(t *testing.T) {
	ds := NewNormalizer("Data").Ingest([]domain.RawRow{
		{"Data": "01/01/2023", "X": 1},
		{"Data": "08/01/2023", "X": 2},
		{"Data": "15/01/2023", "X": 3},
		{"Data": "22/01/2023", "X": 4},
	})

	view := FilterByRange(ds, &domain.DateRange{
		Start: day(2023, time.January, 8),
		End:   day(2023, time.January, 15),
	})
	require.Len(t, view, 2)
	assert.Equal(t, 2.0, view[0].Values["X"])
	assert.Equal(t, 3.0, view[1].Values["X"])

	single := FilterByRange(ds, &domain.DateRange{
		Start: day(2023, time.January, 22),
		End:   day(2023, time.January, 22),
	})
	require.Len(t, single, 1)
	assert.Equal(t, 4.0, single[0].Values["X"])
}

func TestFilterByRange_StartAfterEnd(t *testing.T) {
	ds := NewNormalizer("Data").Ingest([]domain.RawRow{
		{"Data": "01/01/2023", "X": 1},
		{"Data": "08/01/2023", "X": 2},
	})

	view := FilterByRange(ds, &domain.DateRange{
		Start: day(2023, time.January, 8),
		End:   day(2023, time.January, 1),
	})
	assert.Empty(t, view)
}

func TestFilterByRange_DoesNotAlias(t *testing.T) {
	ds := NewNormalizer("Data").Ingest([]domain.RawRow{{"Data": "01/01/2023", "X": 1}})
	view := FilterByRange(ds, nil)
	view[0] = domain.Record{}
	assert.Equal(t, day(2023, time.January, 1), ds[0].Date)
}
