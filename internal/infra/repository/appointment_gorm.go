package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const pgUniqueViolation = "23505"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetProvider(
	ctx context.Context,
	id string,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ?", id).
		First(&provider).Error; err != nil {
		return nil, notFound(err)
	}
	return &provider, nil
}

func (r *AppointmentGormRepository) UpdateWorkingHours(
	ctx context.Context,
	providerID string,
	raw schedule.Raw,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Provider{}).
		Where("id = ?", providerID).
		Update("working_hours", raw)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForDay(
	ctx context.Context,
	providerID string,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND date = ? AND status IN ?",
			providerID, date, domain.ActiveStatuses,
		).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Reserve serializes bookings per employee and day with a transaction-scoped
// advisory lock, re-checks overlap against the committed rows and inserts.
// The partial unique index on active slots catches anything that bypasses the
// lock.
func (r *AppointmentGormRepository) Reserve(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			ap.EmployeeID+"|"+ap.Date,
		).Error; err != nil {
			return err
		}

		var existing []models.Appointment
		if err := tx.
			Where(
				"employee_id = ? AND date = ? AND status IN ?",
				ap.EmployeeID, ap.Date, domain.ActiveStatuses,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		start, err := schedule.ParseClock(ap.Time)
		if err != nil {
			return err
		}
		if !domain.IsAvailable(start, ap.DurationMinutes, existing, ap.EmployeeID) {
			return domain.ErrSlotTaken
		}

		return tx.Create(ap).Error
	})

	if isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"confirmed_at": ap.ConfirmedAt,
			"completed_at": ap.CompletedAt,
			"cancelled_at": ap.CancelledAt,
			"updated_at":   ap.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleState
	}
	return nil
}

func (r *AppointmentGormRepository) ListForEmployee(
	ctx context.Context,
	employeeID string,
	fromDate string,
	toDate string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"employee_id = ? AND date >= ? AND date <= ?",
			employeeID, fromDate, toDate,
		).
		Order("date ASC, time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Notifications / Audit
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *AppointmentGormRepository) CreateAuditLog(
	ctx context.Context,
	log *models.AuditLog,
) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *AppointmentGormRepository) ListAuditLogs(
	ctx context.Context,
	f audit.Filter,
) ([]models.AuditLog, error) {

	q := r.db.WithContext(ctx).
		Where("provider_id = ?", f.ProviderID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Compile-time check
var (
	_ domain.Ledger  = (*AppointmentGormRepository)(nil)
	_ domain.Catalog = (*AppointmentGormRepository)(nil)
	_ audit.Reader   = (*AppointmentGormRepository)(nil)
)
