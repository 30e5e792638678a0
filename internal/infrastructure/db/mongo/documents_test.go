package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

func TestOrderDoc_AmountIsExact(t *testing.T) {
	at := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.FixedZone("CST", -6*3600))
	o := &domain.Order{
		ID:          3,
		ClientID:    1,
		OrderDate:   at,
		TotalAmount: decimal.RequireFromString("1234567890.1"),
		Status:      domain.OrderApproved,
		Quantity:    4,
	}

	doc, err := toOrderDoc(o)
	require.NoError(t, err)
	assert.Equal(t, "1234567890.10", doc.TotalAmount.String())
	assert.Equal(t, time.UTC, doc.OrderDate.Location())

	back, err := doc.toDomain()
	require.NoError(t, err)
	assert.True(t, back.TotalAmount.Equal(o.TotalAmount))
	assert.True(t, back.OrderDate.Equal(at))
	assert.Equal(t, domain.OrderApproved, back.Status)
}
