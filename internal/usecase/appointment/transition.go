package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

var auditActions = map[domain.Status]string{
	domain.StatusConfirmed: audit.ActionAppointmentConfirmed,
	domain.StatusRejected:  audit.ActionAppointmentRejected,
	domain.StatusCompleted: audit.ActionAppointmentCompleted,
	domain.StatusCancelled: audit.ActionAppointmentCancelled,
}

// transitioner holds what every status change needs. The exported use cases
// below wrap it with their target status and notification.
type transitioner struct {
	ledger   domain.Ledger
	audit    AuditSink
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

type TransitionDeps struct {
	Ledger   domain.Ledger
	Audit    AuditSink
	Notifier Notifier
	Metrics  *metrics.Metrics
	Log      *zap.Logger
	Now      func() time.Time
}

func newTransitioner(d TransitionDeps) transitioner {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return transitioner{
		ledger:   d.Ledger,
		audit:    d.Audit,
		notifier: d.Notifier,
		metrics:  d.Metrics,
		log:      d.Log,
		now:      now,
	}
}

// move loads the appointment, checks the actor and the lifecycle, and
// writes the new status only if nobody changed it in between.
func (t *transitioner) move(
	ctx context.Context,
	actorID string,
	appointmentID string,
	to domain.Status,
) (*models.Appointment, error) {

	ap, err := t.ledger.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if !domain.CanAct(ap, actorID, to) {
		return nil, httperr.ErrBusiness(domain.CodeNotAssigned)
	}

	from, err := domain.Transition(ap, to, t.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := t.ledger.UpdateStatus(ctx, ap, from); err != nil {
		if errors.Is(err, domain.ErrStaleState) {
			return nil, err
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	t.metrics.Transition(string(to))

	t.audit.Dispatch(audit.Event{
		ProviderID: ap.ProviderID,
		ActorID:    actorID,
		Action:     auditActions[to],
		Entity:     "appointment",
		EntityID:   ap.ID,
		Metadata: map[string]string{
			"from": string(from),
			"to":   string(to),
		},
	})

	return ap, nil
}

// notify queues msg after the write committed. Failure to queue is logged
// and never undoes the transition.
func (t *transitioner) notify(ap *models.Appointment, msg notification.Message) {
	if !t.notifier.Dispatch(msg) {
		t.log.Warn("notification not queued",
			zap.String("appointment_id", ap.ID),
			zap.String("type", msg.Type),
		)
	}
}
