package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateShipping(t *testing.T) {
	assert.Equal(t, StandardShippingFee, CalculateShipping(0))
	assert.Equal(t, StandardShippingFee, CalculateShipping(4999.99))
	// exactly at the threshold still pays shipping
	assert.Equal(t, StandardShippingFee, CalculateShipping(FreeShippingThreshold))
	assert.Equal(t, 0.0, CalculateShipping(5000.01))
	assert.Equal(t, 0.0, CalculateShipping(20000))
}

func TestCalculateTotals(t *testing.T) {
	order := &Order{Items: []OrderItem{
		{Price: 2000, Quantity: 2},
		{Price: 500, Quantity: 3},
	}}
	order.CalculateTotals()

	assert.Equal(t, 5500.0, order.Subtotal)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 5500.0, order.TotalAmount)
}

func TestGenerateOrderNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()

		assert.True(t, strings.HasPrefix(number, "SKM-"))
		assert.Len(t, number, 12)
		for _, c := range number[4:] {
			assert.Contains(t, orderNumberAlphabet, string(c))
		}
		seen[number] = true
	}
	// 100 draws from a 32^8 space colliding would mean broken generation
	assert.Len(t, seen, 100)
}

func TestOrderTerminal(t *testing.T) {
	assert.False(t, (&Order{Status: OrderProcessing}).Terminal())
	assert.False(t, (&Order{Status: OrderShipped}).Terminal())
	assert.True(t, (&Order{Status: OrderDelivered}).Terminal())
	assert.True(t, (&Order{Status: OrderCancelled}).Terminal())
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMpesa))
	assert.True(t, ValidPaymentMethod(PaymentCard))
	assert.True(t, ValidPaymentMethod(PaymentCash))
	assert.False(t, ValidPaymentMethod("barter"))
	assert.False(t, ValidPaymentMethod(""))
}
