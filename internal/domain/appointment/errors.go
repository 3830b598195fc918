package appointment

import (
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	CodeSlotUnavailable     = "slot_unavailable"
	CodeRoleNotAllowed      = "role_not_allowed"
	CodeInvalidState        = "invalid_state"
	CodeNotAssigned         = "not_assigned"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeCustomerNotFound    = "customer_not_found"
	CodeEmployeeNotFound    = "employee_not_found"
	CodeInvalidDateOrTime   = "invalid_date_or_time"
	CodeAvailabilityUnknown = "availability_unknown"
)

var (
	// ErrNotFound is returned by storage backends for missing records.
	ErrNotFound = errors.New("record not found")

	// ErrSlotTaken is returned by Ledger.Reserve when an active appointment
	// already overlaps the requested time.
	ErrSlotTaken = httperr.ErrBusiness(CodeSlotUnavailable)

	// ErrStaleState is returned by Ledger.UpdateStatus when the stored status
	// no longer matches the expected previous status.
	ErrStaleState = httperr.ErrBusiness(CodeInvalidState)

	ErrRoleNotAllowed      = httperr.ErrBusiness(CodeRoleNotAllowed)
	ErrAvailabilityUnknown = httperr.ErrBusiness(CodeAvailabilityUnknown)
)
