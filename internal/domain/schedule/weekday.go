package schedule

import "time"

// Weekday is the schedule key for a day of the week. Stored schedules use the
// Turkish day names, so the values below are a storage contract and must match
// byte for byte.
type Weekday string

const (
	Pazartesi Weekday = "Pazartesi"
	Sali      Weekday = "Salı"
	Carsamba  Weekday = "Çarşamba"
	Persembe  Weekday = "Perşembe"
	Cuma      Weekday = "Cuma"
	Cumartesi Weekday = "Cumartesi"
	Pazar     Weekday = "Pazar"
)

// Weekdays lists every key from Monday to Sunday.
var Weekdays = []Weekday{
	Pazartesi,
	Sali,
	Carsamba,
	Persembe,
	Cuma,
	Cumartesi,
	Pazar,
}

// WeekdayKey returns the schedule key for the calendar day of date.
func WeekdayKey(date time.Time) Weekday {
	switch date.Weekday() {
	case time.Monday:
		return Pazartesi
	case time.Tuesday:
		return Sali
	case time.Wednesday:
		return Carsamba
	case time.Thursday:
		return Persembe
	case time.Friday:
		return Cuma
	case time.Saturday:
		return Cumartesi
	default:
		return Pazar
	}
}

// IsValid reports whether w is one of the seven known keys.
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}
