package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const DefaultStepMinutes = 30

type AvailabilityInput struct {
	ProviderID  string
	EmployeeID  string
	ServiceName string
	Date        time.Time
}

// GenerateSlots lists candidate start times for a service of the given
// duration, stepping every DefaultStepMinutes.
func GenerateSlots(day schedule.DayHours, durationMinutes int) []string {
	return GenerateSlotsStep(day, durationMinutes, DefaultStepMinutes)
}

// GenerateSlotsStep lists "HH:MM" start times from day.Start, every
// stepMinutes, keeping only starts whose service fits entirely before
// day.End. Closed days and invalid input produce an empty list.
func GenerateSlotsStep(day schedule.DayHours, durationMinutes, stepMinutes int) []string {
	slots := []string{}
	if day.IsClosed || durationMinutes <= 0 || stepMinutes <= 0 {
		return slots
	}

	start, err := schedule.ParseClock(day.Start)
	if err != nil {
		return slots
	}
	end, err := schedule.ParseClock(day.End)
	if err != nil {
		return slots
	}

	for cur := start; cur+durationMinutes <= end; cur += stepMinutes {
		slots = append(slots, schedule.FormatClock(cur))
	}
	return slots
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// IsAvailable reports whether a booking of targetEmployeeID starting at
// candidateStart (minutes since midnight) avoids every active appointment of
// the same employee in existing. An active appointment with an unreadable
// time is treated as a conflict.
func IsAvailable(
	candidateStart int,
	durationMinutes int,
	existing []models.Appointment,
	targetEmployeeID string,
) bool {
	candidateEnd := candidateStart + durationMinutes

	for _, ap := range existing {
		if ap.EmployeeID != targetEmployeeID {
			continue
		}
		if !Status(ap.Status).Blocks() {
			continue
		}

		apStart, err := schedule.ParseClock(ap.Time)
		if err != nil {
			return false
		}
		if Overlaps(candidateStart, candidateEnd, apStart, apStart+ap.DurationMinutes) {
			return false
		}
	}

	return true
}

// FilterAvailable keeps the candidates that pass IsAvailable, preserving
// order.
func FilterAvailable(
	candidates []string,
	durationMinutes int,
	existing []models.Appointment,
	targetEmployeeID string,
) []string {
	out := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		start, err := schedule.ParseClock(slot)
		if err != nil {
			continue
		}
		if IsAvailable(start, durationMinutes, existing, targetEmployeeID) {
			out = append(out, slot)
		}
	}
	return out
}
