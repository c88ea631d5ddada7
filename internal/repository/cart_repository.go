package repository

import (
	"context"

	"app/internal/domain/model"
)

// カートと明細の永続化だけを約束。業務判断はusecase側。
type CartRepository interface {
	// session_idで1件取得（明細込み）
	FindBySessionID(ctx context.Context, sessionID string) (model.Cart, error)
	// user_idで1件取得（明細込み）
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	// 空カートを作成。userIDはログイン済みのときだけ。
	Create(ctx context.Context, sessionID string, userID *string) (model.Cart, error)

	FindItem(ctx context.Context, cartID int64, productID int64) (model.CartItem, error)
	AddItem(ctx context.Context, item model.CartItem) (model.CartItem, error)
	// quantityとcart_id（付け替え）を保存
	UpdateItem(ctx context.Context, item model.CartItem) (model.CartItem, error)
	DeleteItem(ctx context.Context, cartItemID int64) error

	// 明細を全削除。カート本体は残す。
	Clear(ctx context.Context, cartID int64) error
	// カートと明細をまとめて削除
	Delete(ctx context.Context, cartID int64) error
	// updated_atを更新して明細込みの最新カートを返す
	Save(ctx context.Context, cart model.Cart) (model.Cart, error)
}
