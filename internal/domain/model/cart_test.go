package model_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

// 合計は常にitemsから計算される
func TestCart_Totals(t *testing.T) {
	cart := model.Cart{
		ID:        1,
		SessionID: "sess-1",
		Items: []model.CartItem{
			{ID: 1, CartID: 1, ProductID: 10, Quantity: 2, UnitPriceSnapshot: 500},
			{ID: 2, CartID: 1, ProductID: 20, Quantity: 3, UnitPriceSnapshot: 200},
		},
	}

	assert.Equal(t, int64(1600), cart.TotalAmount())
	assert.Equal(t, int64(5), cart.TotalItems())

	// 明細を減らせば合計も追従する
	cart.Items = cart.Items[:1]
	assert.Equal(t, int64(1000), cart.TotalAmount())
	assert.Equal(t, int64(2), cart.TotalItems())
}

func TestCart_TotalsEmpty(t *testing.T) {
	cart := model.Cart{ID: 1, SessionID: "sess-1"}

	assert.Equal(t, int64(0), cart.TotalAmount())
	assert.Equal(t, int64(0), cart.TotalItems())
}

func TestCartItem_Subtotal(t *testing.T) {
	item := model.CartItem{Quantity: 4, UnitPriceSnapshot: 250}
	assert.Equal(t, int64(1000), item.Subtotal())
}
