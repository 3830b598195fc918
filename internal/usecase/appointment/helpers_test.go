package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

const (
	shopID     = "shop-1"
	employeeID = "emp-1"
	customerID = "cust-1"
	haircut    = "Saç Kesimi"
	beard      = "Sakal"
	monday     = "2026-10-19"
	sunday     = "2026-10-18"
)

type recordingNotifier struct {
	mu     sync.Mutex
	accept bool
	msgs   []notification.Message
}

func (n *recordingNotifier) Dispatch(msg notification.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.accept
}

func (n *recordingNotifier) sent() []notification.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Message(nil), n.msgs...)
}

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []string
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

func services() []models.Service {
	return []models.Service{
		{Name: haircut, Price: 250, DurationMinutes: 30},
		{Name: beard, Price: 150, DurationMinutes: 45},
	}
}

// fixedNow is the Saturday before the test Monday, early morning in
// Istanbul.
func fixedNow() time.Time {
	return time.Date(2026, 10, 17, 8, 0, 0, 0, time.FixedZone("TRT", 3*60*60))
}

func seed(t *testing.T) *repository.MemoryRepository {
	t.Helper()

	repo := repository.NewMemoryRepository()

	repo.SeedUser(models.User{ID: customerID, Name: "Ayşe", Role: models.RoleCustomer})
	repo.SeedUser(models.User{ID: "cust-2", Name: "Mehmet", Role: models.RoleCustomer})
	repo.SeedUser(models.User{ID: shopID, Name: "Usta", Role: models.RoleBarber})
	repo.SeedUser(models.User{ID: employeeID, Name: "Kemal", Role: models.RoleEmployee})

	repo.SeedProvider(models.Provider{
		ID:           shopID,
		BarbershopID: shopID,
		Name:         "Usta Berber",
		Role:         models.RoleBarber,
		Timezone:     "Europe/Istanbul",
		WorkingHours: *schedule.LegacyHours("09:00-18:00"),
		Services:     services(),
	})
	repo.SeedProvider(models.Provider{
		ID:           employeeID,
		BarbershopID: shopID,
		Name:         "Kemal",
		Role:         models.RoleEmployee,
		Timezone:     "Europe/Istanbul",
		WorkingHours: *schedule.LegacyHours("09:00-18:00"),
		Services:     services(),
	})
	repo.SeedProvider(models.Provider{
		ID:           "elsewhere",
		BarbershopID: "shop-2",
		Role:         models.RoleEmployee,
		Services:     services(),
	})

	return repo
}

type fixture struct {
	repo     *repository.MemoryRepository
	notifier *recordingNotifier
	audit    *recordingAudit

	availability *GetAvailability
	create       *CreateAppointment
	deps         TransitionDeps
}

// newFixture wires the use cases over a seeded memory repository. wrap, when
// set, decorates the repository before it is used as the ledger.
func newFixture(t *testing.T, wrap func(*repository.MemoryRepository) domain.Ledger, locker lock.Locker) *fixture {
	t.Helper()

	repo := seed(t)
	var ledger domain.Ledger = repo
	if wrap != nil {
		ledger = wrap(repo)
	}

	f := &fixture{
		repo:     repo,
		notifier: &recordingNotifier{accept: true},
		audit:    &recordingAudit{},
	}

	f.availability = NewGetAvailability(ledger, repo, AvailabilityConfig{
		StepMinutes: 30,
		Timeout:     200 * time.Millisecond,
		Now:         fixedNow,
	}, nil, zap.NewNop())

	f.create = NewCreateAppointment(ledger, repo, f.availability, locker, f.audit, f.notifier, nil, zap.NewNop())

	f.deps = TransitionDeps{
		Ledger:   ledger,
		Audit:    f.audit,
		Notifier: f.notifier,
		Log:      zap.NewNop(),
		Now:      fixedNow,
	}
	return f
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(schedule.DateFormat, s)
	require.NoError(t, err)
	return d
}

func (f *fixture) book(ctx context.Context, customer, hm string) (*models.Appointment, error) {
	return f.create.Execute(ctx, CreateAppointmentInput{
		CustomerID:  customer,
		ProviderID:  shopID,
		EmployeeID:  employeeID,
		ServiceName: haircut,
		Date:        monday,
		Time:        hm,
	})
}
