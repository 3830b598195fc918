package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedHours = errors.New("malformed working hours")

// DayHours is the opening window of one weekday. Closed days conventionally
// carry "00:00" for both ends; callers must check IsClosed.
type DayHours struct {
	Start    string `json:"start" firestore:"start"`
	End      string `json:"end" firestore:"end"`
	IsClosed bool   `json:"isClosed" firestore:"isClosed"`
}

// WeeklySchedule maps each weekday key to its hours. A resolved schedule
// always holds all seven keys.
type WeeklySchedule map[Weekday]DayHours

func closedDay() DayHours {
	return DayHours{Start: "00:00", End: "00:00", IsClosed: true}
}

// DefaultSchedule is used when a provider never configured working hours.
func DefaultSchedule() WeeklySchedule {
	weekday := DayHours{Start: "09:00", End: "18:00"}
	return WeeklySchedule{
		Pazartesi: weekday,
		Sali:      weekday,
		Carsamba:  weekday,
		Persembe:  weekday,
		Cuma:      weekday,
		Cumartesi: {Start: "10:00", End: "16:00"},
		Pazar:     closedDay(),
	}
}

// Day returns the hours for w. The second value is false only for keys that
// are not part of the schedule.
func (s WeeklySchedule) Day(w Weekday) (DayHours, bool) {
	d, ok := s[w]
	return d, ok
}

// Resolve turns stored working hours into a full seven-day schedule.
//
// A legacy "HH:MM-HH:MM" string opens Monday to Saturday with the same hours
// and closes Sunday. A per-day map is kept as stored, with missing days taken
// from DefaultSchedule. A legacy string that cannot be parsed, or an open day
// whose bounds are not HH:MM, yields a schedule where every day is closed,
// together with ErrMalformedHours.
func Resolve(raw *Raw) (WeeklySchedule, error) {
	if raw.IsEmpty() {
		return DefaultSchedule(), nil
	}

	if raw.Legacy != nil {
		start, end, err := splitLegacy(*raw.Legacy)
		if err != nil {
			return allClosed(), err
		}

		out := make(WeeklySchedule, len(Weekdays))
		for _, d := range Weekdays {
			out[d] = DayHours{Start: start, End: end}
		}
		out[Pazar] = closedDay()
		return out, nil
	}

	defaults := DefaultSchedule()
	out := make(WeeklySchedule, len(Weekdays))
	for _, d := range Weekdays {
		if hours, ok := raw.Weekly[d]; ok {
			if err := checkDay(hours); err != nil {
				return allClosed(), fmt.Errorf("%s: %w", d, err)
			}
			out[d] = hours
			continue
		}
		out[d] = defaults[d]
	}
	return out, nil
}

func splitLegacy(s string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedHours, s)
	}

	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])
	if _, err := ParseClock(start); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedHours, err)
	}
	if _, err := ParseClock(end); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedHours, err)
	}

	return start, end, nil
}

func checkDay(h DayHours) error {
	if h.IsClosed {
		return nil
	}
	if _, err := ParseClock(h.Start); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHours, err)
	}
	if _, err := ParseClock(h.End); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHours, err)
	}
	return nil
}

func allClosed() WeeklySchedule {
	out := make(WeeklySchedule, len(Weekdays))
	for _, d := range Weekdays {
		out[d] = closedDay()
	}
	return out
}
