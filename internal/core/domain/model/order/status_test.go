package order_test

import (
	"fmt"
	"testing"

	"commissions/internal/core/domain/model/order"
	"commissions/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []order.Status{
		order.PendingPayment,
		order.Paid,
		order.AwaitingFiles,
		order.UnderReview,
		order.InProduction,
		order.DemoReady,
		order.ClientReviewing,
		order.Delivered,
		order.AwaitingFinal,
		order.Completed,
	}

	for _, status := range valid {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(99).Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "99 is not a valid status")
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending_payment", order.PendingPayment.String())
	assert.Equal(t, "client_reviewing", order.ClientReviewing.String())
	assert.Equal(t, "awaiting_final", order.AwaitingFinal.String())
	assert.Equal(t, "unknown", order.Status(-1).String())
}

func TestParseStatus(t *testing.T) {
	t.Run("should round-trip every valid status", func(t *testing.T) {
		for s := order.PendingPayment; s <= order.Completed; s++ {
			parsed, err := order.ParseStatus(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("unknown")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.ParseStatus("shipped")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.False(t, order.Delivered.IsTerminal())
}

func TestParseEvent(t *testing.T) {
	event, err := order.ParseEvent("requestRevision")
	require.NoError(t, err)
	assert.Equal(t, order.EventRequestRevision, event)

	_, err = order.ParseEvent("cancel")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.True(t, order.EventAutoComplete.IsSystemOnly())
	assert.True(t, order.EventPay.IsSystemOnly())
	assert.False(t, order.EventAcceptDelivery.IsSystemOnly())
}
