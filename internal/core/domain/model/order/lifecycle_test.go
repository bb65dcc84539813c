package order_test

import (
	"testing"

	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleFor(t *testing.T) {
	t.Run("should reject unknown product line", func(t *testing.T) {
		_, err := order.LifecycleFor(kernel.ProductLine("podcast"))
		require.Error(t, err)
	})

	t.Run("voice table", func(t *testing.T) {
		lc, err := order.LifecycleFor(kernel.ProductLineVoice)
		require.NoError(t, err)

		next, ok := lc.Next(order.Delivered, order.EventRequestRevision)
		assert.True(t, ok)
		assert.Equal(t, order.InProduction, next)

		_, ok = lc.Next(order.Paid, order.EventApproveVersion)
		assert.False(t, ok)

		assert.Equal(t, []order.Event{order.EventRequestRevision, order.EventApproveVersion}, lc.Events(order.Delivered))
		assert.Empty(t, lc.Events(order.Completed))
	})

	t.Run("music routes revisions back through production", func(t *testing.T) {
		lc, err := order.LifecycleFor(kernel.ProductLineMusic)
		require.NoError(t, err)

		next, ok := lc.Next(order.ClientReviewing, order.EventRequestRevision)
		assert.True(t, ok)
		assert.Equal(t, order.InProduction, next)

		next, ok = lc.Next(order.InProduction, order.EventDeliverVersion)
		assert.True(t, ok)
		assert.Equal(t, order.DemoReady, next)
	})

	t.Run("orchestra has no revision edge", func(t *testing.T) {
		lc, err := order.LifecycleFor(kernel.ProductLineOrchestra)
		require.NoError(t, err)

		for s := order.PendingPayment; s <= order.Completed; s++ {
			_, ok := lc.Next(s, order.EventRequestRevision)
			assert.False(t, ok, "status %s", s)
		}
	})
}

func TestLifecycle_Permissions(t *testing.T) {
	tests := []struct {
		line        kernel.ProductLine
		status      order.Status
		messaging   bool
		certificate bool
	}{
		{kernel.ProductLineVoice, order.PendingPayment, false, false},
		{kernel.ProductLineVoice, order.Delivered, true, false},
		{kernel.ProductLineVoice, order.AwaitingFinal, true, true},
		{kernel.ProductLineVoice, order.Completed, false, true},
		{kernel.ProductLineMusic, order.DemoReady, true, false},
		{kernel.ProductLineMusic, order.AwaitingFinal, true, true},
		{kernel.ProductLineOrchestra, order.Paid, false, false},
		{kernel.ProductLineOrchestra, order.AwaitingFiles, true, false},
		{kernel.ProductLineOrchestra, order.Delivered, true, true},
		{kernel.ProductLineOrchestra, order.Completed, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.line.String()+"/"+tt.status.String(), func(t *testing.T) {
			lc, err := order.LifecycleFor(tt.line)
			require.NoError(t, err)

			assert.Equal(t, tt.messaging, lc.AllowsMessaging(tt.status))
			assert.Equal(t, tt.certificate, lc.AllowsCertificate(tt.status))
		})
	}
}
