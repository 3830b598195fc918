package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusRejected, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.ErrorIs(t, err, ErrStaleState, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestStatusBlocks(t *testing.T) {
	assert.True(t, StatusPending.Blocks())
	assert.True(t, StatusConfirmed.Blocks())
	for _, s := range []Status{StatusCompleted, StatusRejected, StatusCancelled} {
		assert.False(t, s.Blocks())
		assert.True(t, s.IsTerminal())
	}
	assert.Equal(t, StatusPending, InitialStatus())
}

func TestTransition_StampsTimestamps(t *testing.T) {
	now := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	from, err := Transition(ap, StatusConfirmed, now)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, from)
	assert.Equal(t, now, *ap.ConfirmedAt)

	_, err = Transition(ap, StatusCompleted, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Equal(t, now.Add(time.Hour), ap.UpdatedAt)
	require.NotNil(t, ap.CompletedAt)

	_, err = Transition(ap, StatusCancelled, now)
	assert.Error(t, err)
	assert.Equal(t, string(StatusCompleted), ap.Status)
}

func TestCanAct(t *testing.T) {
	ap := &models.Appointment{CustomerID: "c1", ProviderID: "shop", EmployeeID: "e1"}

	assert.True(t, CanAct(ap, "e1", StatusCompleted))
	assert.True(t, CanAct(ap, "shop", StatusConfirmed))
	assert.False(t, CanAct(ap, "e2", StatusConfirmed))
	assert.False(t, CanAct(ap, "c1", StatusConfirmed))
	assert.True(t, CanAct(ap, "c1", StatusCancelled))
	assert.False(t, CanAct(ap, "", StatusCancelled))
}
