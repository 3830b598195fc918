package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	colUsers         = "users"
	colBarbers       = "barbers"
	colAppointments  = "appointments"
	colNotifications = "notifications"
	colAuditLogs     = "auditLogs"
	colBookingGuards = "bookingGuards"
)

// AppointmentFirestoreRepository stores the booking data in Cloud Firestore.
// Barbers and their employees share the "barbers" collection; an employee
// document carries the id of its barbershop.
type AppointmentFirestoreRepository struct {
	client *firestore.Client
}

func NewAppointmentFirestoreRepository(client *firestore.Client) *AppointmentFirestoreRepository {
	return &AppointmentFirestoreRepository{client: client}
}

// firestoreProvider mirrors a barber document. Working hours are kept loose
// because older documents store a plain "HH:MM-HH:MM" string.
type firestoreProvider struct {
	BarbershopID string           `firestore:"barbershopId"`
	Name         string           `firestore:"name"`
	Role         string           `firestore:"role"`
	Timezone     string           `firestore:"timezone"`
	WorkingHours any              `firestore:"workingHours"`
	Services     []models.Service `firestore:"services"`
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentFirestoreRepository) GetUser(
	ctx context.Context,
	id string,
) (*models.User, error) {

	snap, err := r.client.Collection(colUsers).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

func (r *AppointmentFirestoreRepository) GetProvider(
	ctx context.Context,
	id string,
) (*models.Provider, error) {

	snap, err := r.client.Collection(colBarbers).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var doc firestoreProvider
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode barber %s: %w", id, err)
	}

	provider := &models.Provider{
		ID:           snap.Ref.ID,
		BarbershopID: doc.BarbershopID,
		Name:         doc.Name,
		Role:         doc.Role,
		Timezone:     doc.Timezone,
		Services:     doc.Services,
		CreatedAt:    snap.CreateTime,
		UpdatedAt:    snap.UpdateTime,
	}
	if provider.BarbershopID == "" {
		provider.BarbershopID = provider.ID
	}

	// An unreadable value is handed to the resolver as a malformed legacy
	// string so the day resolves closed instead of failing the request.
	raw, err := schedule.RawFromValue(doc.WorkingHours)
	if err != nil {
		provider.WorkingHours = *schedule.LegacyHours(fmt.Sprint(doc.WorkingHours))
	} else if raw != nil {
		provider.WorkingHours = *raw
	}

	return provider, nil
}

func (r *AppointmentFirestoreRepository) UpdateWorkingHours(
	ctx context.Context,
	providerID string,
	raw schedule.Raw,
) error {

	_, err := r.client.Collection(colBarbers).Doc(providerID).Update(ctx, []firestore.Update{
		{Path: "workingHours", Value: raw.ToValue()},
	})
	if isNotFound(err) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func decodeAppointments(snaps []*firestore.DocumentSnapshot) ([]models.Appointment, error) {
	out := make([]models.Appointment, 0, len(snaps))
	for _, snap := range snaps {
		var ap models.Appointment
		if err := snap.DataTo(&ap); err != nil {
			return nil, fmt.Errorf("decode appointment %s: %w", snap.Ref.ID, err)
		}
		ap.ID = snap.Ref.ID
		out = append(out, ap)
	}
	return out, nil
}

func (r *AppointmentFirestoreRepository) ListActiveForDay(
	ctx context.Context,
	providerID string,
	date string,
) ([]models.Appointment, error) {

	snaps, err := r.client.Collection(colAppointments).
		Where("barberId", "==", providerID).
		Where("date", "==", date).
		Where("status", "in", domain.ActiveStatuses).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	apps, err := decodeAppointments(snaps)
	if err != nil {
		return nil, err
	}
	sortByDateTime(apps)
	return apps, nil
}

// Reserve runs the overlap check and the insert in one transaction. Every
// booking of the same employee and day also rewrites a shared guard
// document, so two concurrent bookings always conflict and Firestore retries
// the later one, which then sees the first and fails with ErrSlotTaken.
func (r *AppointmentFirestoreRepository) Reserve(
	ctx context.Context,
	ap *models.Appointment,
) error {

	start, err := schedule.ParseClock(ap.Time)
	if err != nil {
		return err
	}

	guard := r.client.Collection(colBookingGuards).Doc(ap.EmployeeID + "_" + ap.Date)
	ref := r.client.Collection(colAppointments).Doc(ap.ID)
	query := r.client.Collection(colAppointments).
		Where("employeeId", "==", ap.EmployeeID).
		Where("date", "==", ap.Date).
		Where("status", "in", domain.ActiveStatuses)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(guard); err != nil && !isNotFound(err) {
			return err
		}

		snaps, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		existing, err := decodeAppointments(snaps)
		if err != nil {
			return err
		}

		if !domain.IsAvailable(start, ap.DurationMinutes, existing, ap.EmployeeID) {
			return domain.ErrSlotTaken
		}

		if err := tx.Set(guard, map[string]any{
			"employeeId":    ap.EmployeeID,
			"date":          ap.Date,
			"appointmentId": ap.ID,
			"updatedAt":     time.Now().UTC(),
		}); err != nil {
			return err
		}
		return tx.Create(ref, ap)
	})
}

func (r *AppointmentFirestoreRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	snap, err := r.client.Collection(colAppointments).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var ap models.Appointment
	if err := snap.DataTo(&ap); err != nil {
		return nil, fmt.Errorf("decode appointment %s: %w", id, err)
	}
	ap.ID = snap.Ref.ID
	return &ap, nil
}

func (r *AppointmentFirestoreRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	ref := r.client.Collection(colAppointments).Doc(ap.ID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrStaleState
			}
			return err
		}

		current, err := snap.DataAt("status")
		if err != nil || current != string(from) {
			return domain.ErrStaleState
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: ap.Status},
			{Path: "confirmedAt", Value: ap.ConfirmedAt},
			{Path: "completedAt", Value: ap.CompletedAt},
			{Path: "cancelledAt", Value: ap.CancelledAt},
			{Path: "updatedAt", Value: ap.UpdatedAt},
		})
	})
}

func (r *AppointmentFirestoreRepository) ListForEmployee(
	ctx context.Context,
	employeeID string,
	fromDate string,
	toDate string,
) ([]models.Appointment, error) {

	snaps, err := r.client.Collection(colAppointments).
		Where("employeeId", "==", employeeID).
		Where("date", ">=", fromDate).
		Where("date", "<=", toDate).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	apps, err := decodeAppointments(snaps)
	if err != nil {
		return nil, err
	}
	sortByDateTime(apps)
	return apps, nil
}

// --------------------------------------------------
// Notifications / Audit
// --------------------------------------------------

func (r *AppointmentFirestoreRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	_, err := r.client.Collection(colNotifications).Doc(n.ID).Set(ctx, n)
	return err
}

func (r *AppointmentFirestoreRepository) CreateAuditLog(
	ctx context.Context,
	log *models.AuditLog,
) error {
	_, _, err := r.client.Collection(colAuditLogs).Add(ctx, log)
	return err
}

func (r *AppointmentFirestoreRepository) ListAuditLogs(
	ctx context.Context,
	f audit.Filter,
) ([]models.AuditLog, error) {

	q := r.client.Collection(colAuditLogs).Where("providerId", "==", f.ProviderID)
	if f.Action != "" {
		q = q.Where("action", "==", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity", "==", f.Entity)
	}

	snaps, err := q.
		OrderBy("createdAt", firestore.Desc).
		Offset(f.Offset).
		Limit(f.Limit).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	logs := make([]models.AuditLog, 0, len(snaps))
	for _, snap := range snaps {
		var log models.AuditLog
		if err := snap.DataTo(&log); err != nil {
			return nil, fmt.Errorf("decode audit log %s: %w", snap.Ref.ID, err)
		}
		logs = append(logs, log)
	}
	return logs, nil
}

var (
	_ domain.Ledger  = (*AppointmentFirestoreRepository)(nil)
	_ domain.Catalog = (*AppointmentFirestoreRepository)(nil)
	_ audit.Reader   = (*AppointmentFirestoreRepository)(nil)
)
