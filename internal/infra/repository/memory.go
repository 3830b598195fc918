package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// MemoryRepository keeps everything in process memory. It backs the
// "memory" storage backend and the use case tests.
type MemoryRepository struct {
	mu sync.Mutex

	users         map[string]models.User
	providers     map[string]models.Provider
	appointments  map[string]models.Appointment
	notifications []models.Notification
	auditLogs     []models.AuditLog
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        map[string]models.User{},
		providers:    map[string]models.Provider{},
		appointments: map[string]models.Appointment{},
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *MemoryRepository) SeedUser(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *MemoryRepository) SeedProvider(p models.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Services = append([]models.Service(nil), p.Services...)
	r.providers[p.ID] = p
}

func (r *MemoryRepository) SeedAppointment(ap models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[ap.ID] = ap
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *MemoryRepository) GetUser(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetProvider(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Services = append([]models.Service(nil), p.Services...)
	return &p, nil
}

func (r *MemoryRepository) UpdateWorkingHours(_ context.Context, providerID string, raw schedule.Raw) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[providerID]
	if !ok {
		return domain.ErrNotFound
	}
	p.WorkingHours = raw
	r.providers[providerID] = p
	return nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *MemoryRepository) ListActiveForDay(_ context.Context, providerID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.ProviderID == providerID && ap.Date == date && domain.Status(ap.Status).Blocks() {
			out = append(out, ap)
		}
	}
	sortByDateTime(out)
	return out, nil
}

func (r *MemoryRepository) Reserve(_ context.Context, ap *models.Appointment) error {
	start, err := schedule.ParseClock(ap.Time)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var sameDay []models.Appointment
	for _, other := range r.appointments {
		if other.EmployeeID == ap.EmployeeID && other.Date == ap.Date {
			sameDay = append(sameDay, other)
		}
	}
	if !domain.IsAvailable(start, ap.DurationMinutes, sameDay, ap.EmployeeID) {
		return domain.ErrSlotTaken
	}

	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[ap.ID]
	if !ok || stored.Status != string(from) {
		return domain.ErrStaleState
	}

	stored.Status = ap.Status
	stored.ConfirmedAt = ap.ConfirmedAt
	stored.CompletedAt = ap.CompletedAt
	stored.CancelledAt = ap.CancelledAt
	stored.UpdatedAt = ap.UpdatedAt
	r.appointments[ap.ID] = stored
	return nil
}

func (r *MemoryRepository) ListForEmployee(_ context.Context, employeeID, fromDate, toDate string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.EmployeeID == employeeID && ap.Date >= fromDate && ap.Date <= toDate {
			out = append(out, ap)
		}
	}
	sortByDateTime(out)
	return out, nil
}

// --------------------------------------------------
// Notifications / Audit
// --------------------------------------------------

func (r *MemoryRepository) CreateNotification(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, *n)
	return nil
}

// Notifications returns the stored notifications of userID, oldest first.
func (r *MemoryRepository) Notifications(userID string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (r *MemoryRepository) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auditLogs = append(r.auditLogs, *log)
	return nil
}

func (r *MemoryRepository) AuditLogs() []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AuditLog(nil), r.auditLogs...)
}

func (r *MemoryRepository) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.AuditLog{}
	for i := len(r.auditLogs) - 1; i >= 0; i-- {
		log := r.auditLogs[i]
		if log.ProviderID != f.ProviderID {
			continue
		}
		if f.Action != "" && log.Action != f.Action {
			continue
		}
		if f.Entity != "" && log.Entity != f.Entity {
			continue
		}
		out = append(out, log)
	}

	if f.Offset >= len(out) {
		return []models.AuditLog{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func sortByDateTime(apps []models.Appointment) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].Date != apps[j].Date {
			return apps[i].Date < apps[j].Date
		}
		return apps[i].Time < apps[j].Time
	})
}

var (
	_ domain.Ledger  = (*MemoryRepository)(nil)
	_ domain.Catalog = (*MemoryRepository)(nil)
	_ audit.Reader   = (*MemoryRepository)(nil)
)
