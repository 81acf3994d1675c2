package events

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func TestEncodeDecode(t *testing.T) {
	payload, err := Encode(Event{EventType: UserJoined, BarberID: 3, Data: map[string]interface{}{"user_id": 9}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event_type":"user_joined","barber_id":3,"data":{"user_id":9}}`, string(payload))

	e, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, UserJoined, e.EventType)
	assert.Equal(t, uint(3), e.BarberID)
	assert.EqualValues(t, 9, e.Data["user_id"])
}

func TestDecode_Rejects(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
	_, err = Decode([]byte(`{"event_type":"user_left"}`))
	assert.Error(t, err)
}

func TestForward(t *testing.T) {
	rec := &recorder{}
	forward(context.Background(), []byte(`{"event_type":"user_left","barber_id":5}`), rec)
	forward(context.Background(), []byte(`{}`), rec)

	require.Len(t, rec.events, 1)
	assert.Equal(t, UserLeft, rec.events[0].EventType)
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard{}.Publish(context.Background(), Event{}))
}
