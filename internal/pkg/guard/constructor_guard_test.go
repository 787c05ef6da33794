package guard_test

import (
	"errors"
	"testing"

	"production/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("GetOrderQuery must be created via NewGetOrderQuery")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errTicketNotConstructed := errors.New("ticket must be created via newTicket")

	type ticket struct {
		number string
		guard  guard.ConstructorGuard
	}

	newTicket := func(number string) (ticket, error) {
		if number == "" {
			return ticket{}, errors.New("number is required")
		}
		return ticket{number: number, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_ticket_is_valid", func(t *testing.T) {
		tk, err := newTicket("A-17")
		require.NoError(t, err)
		require.NoError(t, tk.guard.Validate(errTicketNotConstructed))
	})

	t.Run("literal_ticket_is_rejected", func(t *testing.T) {
		tk := ticket{number: "A-17"}
		assert.Equal(t, errTicketNotConstructed, tk.guard.Validate(errTicketNotConstructed))
	})

	t.Run("copies_keep_their_state", func(t *testing.T) {
		tk, err := newTicket("A-18")
		require.NoError(t, err)
		cp := tk
		require.NoError(t, cp.guard.Validate(errTicketNotConstructed))
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 100 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}
	for range 50 {
		<-done
	}
}
