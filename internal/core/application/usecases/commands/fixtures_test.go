package commands_test

import (
	"testing"
	"time"

	"commissions/internal/core/domain/model/catalog"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"
	"commissions/internal/core/domain/model/talent"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, pl kernel.ProductLine, tier string, requested, effective kernel.RightsLevel) *order.Order {
	t.Helper()
	c := catalog.Default()
	tr, err := c.Tier(pl, tier)
	require.NoError(t, err)
	email, err := kernel.NewEmail("client@example.com")
	require.NoError(t, err)
	price, err := kernel.NewMoney(decimal.NewFromInt(500), "USD")
	require.NoError(t, err)

	o, err := order.NewOrder(order.Terms{
		ID:              kernel.NewUUID(),
		ProductLine:     pl,
		Tier:            tier,
		ClientEmail:     email,
		Units:           decimal.NewFromInt(3),
		RequestedRights: requested,
		EffectiveRights: effective,
		TopTier:         c.IsTopTier(pl, tier),
		Price:           price,
		MaxRevisions:    tr.MaxRevisions,
		MaxVersions:     tr.MaxVersions,
		TurnaroundDays:  tr.TurnaroundDays,
		CreatedAt:       t0,
	})
	require.NoError(t, err)
	return o
}

func apply(t *testing.T, o *order.Order, event order.Event, p order.Payload) {
	t.Helper()
	require.NoError(t, o.Apply(event, p, order.Env{Now: t0}), "event %s in %s", event, o.Status())
}

func paidVoice(t *testing.T) *order.Order {
	t.Helper()
	o := newOrder(t, kernel.ProductLineVoice, "tier2", kernel.RightsBroadcast, kernel.RightsBroadcast)
	apply(t, o, order.EventPay, order.Payload{PaymentRef: "pi_1"})
	return o
}

func deliveredOrchestra(t *testing.T) *order.Order {
	t.Helper()
	o := newOrder(t, kernel.ProductLineOrchestra, "tier1", kernel.RightsStandard, kernel.RightsGlobal)
	apply(t, o, order.EventPay, order.Payload{PaymentRef: "pi_1"})
	apply(t, o, order.EventUploadReferenceFile, order.Payload{Ref: "files/ref.pdf"})
	apply(t, o, order.EventSubmitFiles, order.Payload{})
	apply(t, o, order.EventStartProduction, order.Payload{})
	apply(t, o, order.EventUploadDeliveryFile, order.Payload{Ref: "files/final.wav"})
	o.MarkPersisted()
	return o
}

func newTalent(t *testing.T, name string, lines ...kernel.ProductLine) *talent.Talent {
	t.Helper()
	email, err := kernel.NewEmail(name + "@studio.example.com")
	require.NoError(t, err)
	tl, err := talent.NewTalent(kernel.NewUUID(), name, email, lines, 2)
	require.NoError(t, err)
	return tl
}

var reviewWindow = order.DefaultAutoCompleteAfter + time.Hour
