package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type recordingSink struct {
	mu   sync.Mutex
	msgs []Message
	err  error
	gate chan struct{}
}

func (s *recordingSink) Send(_ context.Context, msg Message) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.err
}

func (s *recordingSink) sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.msgs...)
}

func completed() *models.Appointment {
	return &models.Appointment{
		ID:          "ap-1",
		CustomerID:  "cust-1",
		ProviderID:  "shop-1",
		EmployeeID:  "emp-1",
		ServiceName: "Saç Kesimi",
		Date:        "2026-10-19",
		Time:        "10:00",
		Status:      "completed",
	}
}

func TestReviewRequest(t *testing.T) {
	msg := ReviewRequest(completed())

	assert.Equal(t, "cust-1", msg.UserID)
	assert.Equal(t, TypeReviewRequest, msg.Type)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "ap-1", msg.Data["appointmentId"])
	assert.Equal(t, "shop-1", msg.Data["barberId"])
}

func TestDispatcher_DeliversAndDrains(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, 10, zap.NewNop())

	assert.True(t, d.Dispatch(ReviewRequest(completed())))
	assert.True(t, d.Dispatch(Booked(completed())))

	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, sink.sent(), 2)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{gate: make(chan struct{})}
	d := NewDispatcher(sink, 1, zap.NewNop())

	// The worker takes the first message and blocks on the gate; the
	// second fills the queue.
	require.True(t, d.Dispatch(Booked(completed())))
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, time.Millisecond)
	require.True(t, d.Dispatch(Booked(completed())))

	assert.False(t, d.Dispatch(Booked(completed())))

	close(sink.gate)
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, sink.sent(), 2)
}

func TestDispatcher_SinkErrorIsSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("boom")}
	d := NewDispatcher(sink, 4, zap.NewNop())

	assert.True(t, d.Dispatch(ReviewRequest(completed())))
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, sink.sent(), 1)
}

type fakeStore struct{ saved []*models.Notification }

func (f *fakeStore) CreateNotification(_ context.Context, n *models.Notification) error {
	f.saved = append(f.saved, n)
	return nil
}

func TestStoreSink(t *testing.T) {
	store := &fakeStore{}
	msg := ReviewRequest(completed())

	require.NoError(t, NewStoreSink(store).Send(context.Background(), msg))
	require.Len(t, store.saved, 1)

	n := store.saved[0]
	assert.Equal(t, msg.ID, n.ID)
	assert.Equal(t, "cust-1", n.UserID)
	assert.Equal(t, TypeReviewRequest, n.Type)

	var data map[string]string
	require.NoError(t, json.Unmarshal([]byte(n.Data), &data))
	assert.Equal(t, "ap-1", data["appointmentId"])
}

type fakeUsers map[string]models.User

func (f fakeUsers) GetUser(_ context.Context, id string) (*models.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &u, nil
}

type fakeMessenger struct{ sent []*messaging.Message }

func (f *fakeMessenger) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	return "projects/x/messages/1", nil
}

func TestFCMSink(t *testing.T) {
	users := fakeUsers{
		"cust-1": {ID: "cust-1", PushToken: "tok-1"},
		"cust-2": {ID: "cust-2"},
	}
	messenger := &fakeMessenger{}
	sink := NewFCMSink(users, messenger)

	require.NoError(t, sink.Send(context.Background(), ReviewRequest(completed())))
	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "tok-1", messenger.sent[0].Token)
	assert.Equal(t, TypeReviewRequest, messenger.sent[0].Data["type"])

	ap := completed()
	ap.CustomerID = "cust-2"
	require.NoError(t, sink.Send(context.Background(), ReviewRequest(ap)))
	assert.Len(t, messenger.sent, 1)

	ap.CustomerID = "ghost"
	assert.Error(t, sink.Send(context.Background(), ReviewRequest(ap)))
}

type fakeWriter struct{ msgs []kafka.Message }

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestKafkaSink(t *testing.T) {
	w := &fakeWriter{}
	msg := ReviewRequest(completed())

	require.NoError(t, NewKafkaSink(w).Send(context.Background(), msg))
	require.Len(t, w.msgs, 1)

	km := w.msgs[0]
	assert.Equal(t, "cust-1", string(km.Key))
	assert.Equal(t, []kafka.Header{
		{Key: "event_id", Value: []byte(msg.ID)},
		{Key: "event_type", Value: []byte(TypeReviewRequest)},
	}, km.Headers)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(km.Value, &payload))
	assert.Equal(t, "review_request", payload["type"])
}

func TestMultiSink_ContinuesAfterFailure(t *testing.T) {
	failing := &recordingSink{err: errors.New("down")}
	ok := &recordingSink{}

	err := MultiSink{failing, ok}.Send(context.Background(), Booked(completed()))
	assert.Error(t, err)
	assert.Len(t, ok.sent(), 1)
}
