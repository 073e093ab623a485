package events

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func TestBus_EmitDeliversToSubscribersOfType(t *testing.T) {
	bus := NewBus(testLogger())

	var got []*Event
	bus.Subscribe(LedgerReplaced, func(e *Event) { got = append(got, e) })
	bus.Subscribe(LedgerFetchFailed, func(e *Event) { t.Fatal("wrong type delivered") })

	bus.Emit(LedgerReplaced, "ledger", map[string]interface{}{"source": "file"})

	require.Len(t, got, 1)
	assert.Equal(t, LedgerReplaced, got[0].Type)
	assert.Equal(t, "ledger", got[0].Module)
	assert.Equal(t, "file", got[0].Data["source"])
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(testLogger())

	calls := 0
	unsubscribe := bus.Subscribe(SessionsEvicted, func(*Event) { calls++ })
	other := bus.Subscribe(SessionsEvicted, func(*Event) {})
	defer other()

	bus.Emit(SessionsEvicted, "sessions", nil)
	unsubscribe()
	bus.Emit(SessionsEvicted, "sessions", nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, bus.Subscribers(SessionsEvicted))
}

func TestBus_HandlerPanicDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(testLogger())

	delivered := false
	bus.Subscribe(ErrorOccurred, func(*Event) { panic("boom") })
	bus.Subscribe(ErrorOccurred, func(*Event) { delivered = true })

	assert.NotPanics(t, func() { bus.Emit(ErrorOccurred, "test", nil) })
	assert.True(t, delivered)
}

func TestManager_EmitTyped(t *testing.T) {
	bus := NewBus(testLogger())
	m := NewManager(bus, testLogger())

	var got *Event
	bus.Subscribe(LedgerReplaced, func(e *Event) { got = e })

	m.EmitTyped("ledger", &LedgerReplacedData{Source: "s3://b/k", Years: []string{"2023", "2024"}})

	require.NotNil(t, got)
	assert.Equal(t, "s3://b/k", got.Data["source"])
	assert.Equal(t, []interface{}{"2023", "2024"}, got.Data["years"])
}

func TestManager_EmitError(t *testing.T) {
	bus := NewBus(testLogger())
	m := NewManager(bus, testLogger())

	var got *Event
	bus.Subscribe(ErrorOccurred, func(e *Event) { got = e })

	m.EmitError("ledger", errors.New("fetch failed"), map[string]interface{}{"attempt": 1})

	require.NotNil(t, got)
	assert.Equal(t, "fetch failed", got.Data["error"])
	assert.Equal(t, float64(1), got.Data["context"].(map[string]interface{})["attempt"])
}
