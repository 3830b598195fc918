package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func appt(id, employee, hm string, duration int, status domain.Status) *models.Appointment {
	return &models.Appointment{
		ID:              id,
		ProviderID:      "shop",
		EmployeeID:      employee,
		Date:            "2026-10-19",
		Time:            hm,
		DurationMinutes: duration,
		Status:          string(status),
	}
}

func TestMemory_ReserveRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.Reserve(ctx, appt("a", "e1", "10:00", 60, domain.StatusPending)))

	assert.ErrorIs(t, repo.Reserve(ctx, appt("b", "e1", "10:30", 30, domain.StatusPending)), domain.ErrSlotTaken)
	assert.NoError(t, repo.Reserve(ctx, appt("c", "e1", "11:00", 30, domain.StatusPending)))
	assert.NoError(t, repo.Reserve(ctx, appt("d", "e2", "10:00", 60, domain.StatusPending)))
}

func TestMemory_ReserveIgnoresTerminal(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	repo.SeedAppointment(*appt("old", "e1", "10:00", 60, domain.StatusCancelled))
	assert.NoError(t, repo.Reserve(ctx, appt("new", "e1", "10:00", 60, domain.StatusPending)))
}

func TestMemory_ConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if repo.Reserve(ctx, appt(fmt.Sprintf("ap-%d", i), "e1", "14:00", 30, domain.StatusPending)) == nil {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	active, err := repo.ListActiveForDay(ctx, "shop", "2026-10-19")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestMemory_UpdateStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	repo.SeedAppointment(*appt("a", "e1", "10:00", 30, domain.StatusPending))

	ap, err := repo.GetAppointment(ctx, "a")
	require.NoError(t, err)
	ap.Status = string(domain.StatusConfirmed)

	require.NoError(t, repo.UpdateStatus(ctx, ap, domain.StatusPending))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, ap, domain.StatusPending), domain.ErrStaleState)

	_, err = repo.GetAppointment(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemory_ListForEmployeeOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	late := appt("late", "e1", "15:00", 30, domain.StatusCompleted)
	early := appt("early", "e1", "09:00", 30, domain.StatusPending)
	other := appt("other", "e2", "09:00", 30, domain.StatusPending)
	nextMonth := appt("next", "e1", "09:00", 30, domain.StatusPending)
	nextMonth.Date = "2026-11-02"

	for _, ap := range []*models.Appointment{late, early, other, nextMonth} {
		repo.SeedAppointment(*ap)
	}

	got, err := repo.ListForEmployee(ctx, "e1", "2026-10-01", "2026-10-31")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
}

func TestMemory_WorkingHours(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	repo.SeedProvider(models.Provider{ID: "shop", BarbershopID: "shop"})

	require.NoError(t, repo.UpdateWorkingHours(ctx, "shop", *schedule.LegacyHours("10:00-18:00")))
	p, err := repo.GetProvider(ctx, "shop")
	require.NoError(t, err)
	require.NotNil(t, p.WorkingHours.Legacy)
	assert.Equal(t, "10:00-18:00", *p.WorkingHours.Legacy)

	assert.ErrorIs(t, repo.UpdateWorkingHours(ctx, "nope", schedule.Raw{}), domain.ErrNotFound)
}
