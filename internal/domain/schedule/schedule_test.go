package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_LegacyString(t *testing.T) {
	for _, hours := range []string{"09:00-18:00", "08:30-20:15", "00:00-23:59"} {
		got, err := Resolve(LegacyHours(hours))
		require.NoError(t, err)
		require.Len(t, got, 7)

		start, end := hours[:5], hours[6:]
		for _, d := range []Weekday{Pazartesi, Sali, Carsamba, Persembe, Cuma, Cumartesi} {
			assert.Equal(t, DayHours{Start: start, End: end}, got[d], "day %s", d)
		}
		assert.Equal(t, DayHours{Start: "00:00", End: "00:00", IsClosed: true}, got[Pazar])
	}
}

func TestResolve_NilUsesDefault(t *testing.T) {
	got, err := Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule(), got)

	assert.Equal(t, DayHours{Start: "09:00", End: "18:00"}, got[Cuma])
	assert.Equal(t, DayHours{Start: "10:00", End: "16:00"}, got[Cumartesi])
	assert.True(t, got[Pazar].IsClosed)
}

func TestResolve_MapFillsMissingDays(t *testing.T) {
	raw := WeeklyHours(WeeklySchedule{
		Pazartesi: {Start: "11:00", End: "15:00"},
		Pazar:     {Start: "12:00", End: "14:00"},
	})

	got, err := Resolve(raw)
	require.NoError(t, err)
	require.Len(t, got, 7)

	assert.Equal(t, DayHours{Start: "11:00", End: "15:00"}, got[Pazartesi])
	assert.Equal(t, DayHours{Start: "12:00", End: "14:00"}, got[Pazar])
	assert.Equal(t, DefaultSchedule()[Sali], got[Sali])
	assert.Equal(t, DefaultSchedule()[Cumartesi], got[Cumartesi])
}

func TestResolve_MalformedLegacy(t *testing.T) {
	for _, hours := range []string{"", "9-18", "09:00", "09:00-18:00-20:00", "25:00-26:00", "ab:cd-18:00"} {
		got, err := Resolve(LegacyHours(hours))
		require.ErrorIs(t, err, ErrMalformedHours, "input %q", hours)
		require.Len(t, got, 7)
		for _, d := range Weekdays {
			assert.True(t, got[d].IsClosed, "input %q day %s", hours, d)
		}
	}
}

func TestResolve_MalformedDayInMap(t *testing.T) {
	for name, day := range map[string]DayHours{
		"bad start": {Start: "9am", End: "18:00"},
		"bad end":   {Start: "09:00", End: "24:30"},
		"empty":     {},
	} {
		got, err := Resolve(WeeklyHours(WeeklySchedule{
			Pazartesi: {Start: "09:00", End: "18:00"},
			Cuma:      day,
		}))
		require.ErrorIs(t, err, ErrMalformedHours, name)
		require.Len(t, got, 7)
		for _, d := range Weekdays {
			assert.True(t, got[d].IsClosed, "%s day %s", name, d)
		}
	}

	// closed days are not checked
	got, err := Resolve(WeeklyHours(WeeklySchedule{Pazar: {IsClosed: true}}))
	require.NoError(t, err)
	assert.True(t, got[Pazar].IsClosed)
}

func TestWeekdayKey(t *testing.T) {
	cases := map[string]Weekday{
		"2026-10-12": Pazartesi,
		"2026-10-13": Sali,
		"2026-10-14": Carsamba,
		"2026-10-15": Persembe,
		"2026-10-16": Cuma,
		"2026-10-17": Cumartesi,
		"2026-10-18": Pazar,
	}
	for date, want := range cases {
		d, err := time.Parse(DateFormat, date)
		require.NoError(t, err)
		assert.Equal(t, want, WeekdayKey(d), date)
		assert.True(t, want.IsValid())
	}

	assert.Equal(t, "Çarşamba", string(Carsamba))
	assert.False(t, Weekday("Monday").IsValid())
}

func TestRaw_JSON(t *testing.T) {
	var legacy Raw
	require.NoError(t, json.Unmarshal([]byte(`"10:00-19:00"`), &legacy))
	require.NotNil(t, legacy.Legacy)
	assert.Equal(t, "10:00-19:00", *legacy.Legacy)

	var weekly Raw
	require.NoError(t, json.Unmarshal([]byte(`{"Salı":{"start":"08:00","end":"12:00","isClosed":false}}`), &weekly))
	assert.Equal(t, DayHours{Start: "08:00", End: "12:00"}, weekly.Weekly[Sali])

	var empty Raw
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsEmpty())

	var bad Raw
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestRaw_ScanValue(t *testing.T) {
	v, err := LegacyHours("09:00-17:00").Value()
	require.NoError(t, err)

	var back Raw
	require.NoError(t, back.Scan(v))
	require.NotNil(t, back.Legacy)
	assert.Equal(t, "09:00-17:00", *back.Legacy)

	v, err = Raw{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRawFromValue(t *testing.T) {
	r, err := RawFromValue(map[string]any{
		"Pazar": map[string]any{"start": "00:00", "end": "00:00", "isClosed": true},
	})
	require.NoError(t, err)
	assert.True(t, r.Weekly[Pazar].IsClosed)

	r, err = RawFromValue("09:00-18:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00-18:00", r.ToValue())

	r, err = RawFromValue(nil)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())
}

func TestClock(t *testing.T) {
	m, err := ParseClock("17:15")
	require.NoError(t, err)
	assert.Equal(t, 17*60+15, m)
	assert.Equal(t, "07:05", FormatClock(7*60+5))

	for _, bad := range []string{"7:05", "24:00", "12:60", "1200", ""} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidClock, bad)
	}
}
