package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDate_BrazilianString(t *testing.T) {
	got, ok := ResolveDate("01/01/2023")
	require.True(t, ok)
	assert.Equal(t, day(2023, time.January, 1), got)

	got, ok = ResolveDate("8/1/2023")
	require.True(t, ok)
	assert.Equal(t, day(2023, time.January, 8), got)

	got, ok = ResolveDate(" 15/06/2024 ")
	require.True(t, ok)
	assert.Equal(t, day(2024, time.June, 15), got)
}

func TestResolveDate_RejectsOutOfShape(t *testing.T) {
	for _, s := range []string{
		"32/01/2023",
		"00/01/2023",
		"01/13/2023",
		"01/00/2023",
		"01/01/1899",
		"01/01/23",
		"2023/01/01",
		"01/01/2023/",
		"a/b/c",
		"01/01/2023 10:00",
	} {
		_, ok := ResolveDate(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestResolveDate_DayOverflowRollsForward(t *testing.T) {
	got, ok := ResolveDate("31/02/2023")
	require.True(t, ok)
	assert.Equal(t, day(2023, time.March, 3), got)
}

func TestResolveDate_ExcelSerial(t *testing.T) {
	got, ok := ResolveDate(44927)
	require.True(t, ok)
	assert.Equal(t, day(2023, time.January, 1), got)

	got, ok = ResolveDate(float64(25569))
	require.True(t, ok)
	assert.Equal(t, day(1970, time.January, 1), got)

	// horário fracionário é descartado
	got, ok = ResolveDate(44927.75)
	require.True(t, ok)
	assert.Equal(t, day(2023, time.January, 1), got)

	got, ok = ResolveDate(44934.0)
	require.True(t, ok)
	assert.Equal(t, day(2023, time.January, 8), got)
}

func TestResolveDate_GenericFallback(t *testing.T) {
	cases := map[string]time.Time{
		"2023-01-05":           day(2023, time.January, 5),
		"2023-01-05T10:30:00Z": day(2023, time.January, 5),
		"2023-01-05 23:59:59":  day(2023, time.January, 5),
		"January 5, 2023":      day(2023, time.January, 5),
		"2023-02":              day(2023, time.February, 1),
	}
	for in, want := range cases {
		got, ok := ResolveDate(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

// Só layouts fixos são aceitos: mês e dia sem zero e seriais em texto ficam de fora.
func TestResolveDate_GenericFallbackRejects(t *testing.T) {
	for _, s := range []string{"2023-1-5", "2023-01-5", "44927", "44927,5", "5 de janeiro de 2023", "2023-13-01"} {
		_, ok := ResolveDate(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestResolveDate_Unresolvable(t *testing.T) {
	for _, v := range []any{nil, "", "   ", "bad-date", true, []string{"x"}} {
		_, ok := ResolveDate(v)
		assert.False(t, ok, "value %v", v)
	}
}

func TestResolveDate_TimeFieldsZeroed(t *testing.T) {
	for _, v := range []any{"01/01/2023", 44927.5, "2023-01-05T10:30:00Z"} {
		got, ok := ResolveDate(v)
		require.True(t, ok)
		assert.Equal(t, 0, got.Hour())
		assert.Equal(t, 0, got.Minute())
		assert.Equal(t, 0, got.Second())
		assert.Equal(t, 0, got.Nanosecond())
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestParseBound(t *testing.T) {
	got, err := ParseBound("05/01/2023")
	require.NoError(t, err)
	assert.Equal(t, day(2023, time.January, 5), got)

	for _, s := range []string{"", "2023-01-05", "5-1-2023", "32/01/2023", "05/01/23"} {
		_, err := ParseBound(s)
		assert.ErrorIs(t, err, ErrInvalidBound, s)
	}
}

func TestFormatBound(t *testing.T) {
	assert.Equal(t, "08/01/2023", FormatBound(day(2023, time.January, 8)))
}
