package order_test

import (
	"testing"

	"foodorder/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    order.Status
		wantErr bool
	}{
		{name: "placed", input: "placed", want: order.StatusPlaced},
		{name: "confirmed", input: "confirmed", want: order.StatusConfirmed},
		{name: "preparing", input: "preparing", want: order.StatusPreparing},
		{name: "ready for pickup", input: "ready_for_pickup", want: order.StatusReadyForPickup},
		{name: "out for delivery", input: "out_for_delivery", want: order.StatusOutForDelivery},
		{name: "delivered", input: "delivered", want: order.StatusDelivered},
		{name: "cancelled", input: "cancelled", want: order.StatusCancelled},
		{name: "unknown", input: "shipped", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := order.StatusFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_CanTransitionTo_ForwardChain(t *testing.T) {
	chain := []order.Status{
		order.StatusPlaced,
		order.StatusConfirmed,
		order.StatusPreparing,
		order.StatusReadyForPickup,
		order.StatusOutForDelivery,
		order.StatusDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, chain[i].CanTransitionTo(chain[i+1]),
			"%s -> %s must be allowed", chain[i], chain[i+1])
	}

	// No skipping steps and no going backwards.
	assert.False(t, order.StatusPlaced.CanTransitionTo(order.StatusPreparing))
	assert.False(t, order.StatusConfirmed.CanTransitionTo(order.StatusDelivered))
	assert.False(t, order.StatusPreparing.CanTransitionTo(order.StatusConfirmed))
	assert.False(t, order.StatusOutForDelivery.CanTransitionTo(order.StatusReadyForPickup))
}

func TestStatus_CanTransitionTo_Cancellation(t *testing.T) {
	nonTerminal := []order.Status{
		order.StatusPlaced,
		order.StatusConfirmed,
		order.StatusPreparing,
		order.StatusReadyForPickup,
		order.StatusOutForDelivery,
	}

	for _, s := range nonTerminal {
		assert.True(t, s.CanTransitionTo(order.StatusCancelled),
			"%s must be cancellable", s)
	}

	assert.False(t, order.StatusDelivered.CanTransitionTo(order.StatusCancelled))
	assert.False(t, order.StatusCancelled.CanTransitionTo(order.StatusCancelled))
}

func TestStatus_TerminalStatesAcceptNothing(t *testing.T) {
	all := []order.Status{
		order.StatusPlaced,
		order.StatusConfirmed,
		order.StatusPreparing,
		order.StatusReadyForPickup,
		order.StatusOutForDelivery,
		order.StatusDelivered,
		order.StatusCancelled,
	}

	for _, next := range all {
		assert.False(t, order.StatusDelivered.CanTransitionTo(next))
		assert.False(t, order.StatusCancelled.CanTransitionTo(next))
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	next, err := order.StatusPlaced.TransitionTo(order.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, next)

	_, err = order.StatusPlaced.TransitionTo(order.StatusDelivered)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	var invalidErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, order.StatusPlaced, invalidErr.From)
	assert.Equal(t, order.StatusDelivered, invalidErr.To)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.StatusPlaced.IsTerminal())
	assert.False(t, order.StatusOutForDelivery.IsTerminal())
}
