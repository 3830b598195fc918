package audit

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type memStore struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (m *memStore) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, *log)
	return nil
}

func TestDispatcher_WritesEvents(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(New(store), zap.NewNop())

	d.Dispatch(Event{
		ProviderID: "shop-1",
		ActorID:    "cust-1",
		Action:     ActionAppointmentCreated,
		Entity:     "appointment",
		EntityID:   "ap-1",
		Metadata:   map[string]string{"time": "10:00"},
	})
	require.NoError(t, d.Close(context.Background()))

	require.Len(t, store.logs, 1)
	log := store.logs[0]
	assert.Equal(t, "shop-1", log.ProviderID)
	assert.Equal(t, ActionAppointmentCreated, log.Action)
	assert.False(t, log.CreatedAt.IsZero())

	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(log.Metadata), &meta))
	assert.Equal(t, "10:00", meta["time"])
}
