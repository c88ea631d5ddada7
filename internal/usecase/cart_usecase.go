package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase はカートの解決・明細操作・ログイン時マージの業務ロジック。
// 呼び出し側は毎回sessionIDと、ログイン済みのときだけuserIDを渡す。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

// DI
func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart は現在のカートを返す。無ければ作る。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string, userID *string) (model.Cart, error) {
	if sessionID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "session id is required")
	}
	return u.resolveCart(ctx, sessionID, userID)
}

// ログイン済みはuser_id優先でカートを引く。カートはアカウントに付いて回る。
func (u *CartUsecase) resolveCart(ctx context.Context, sessionID string, userID *string) (model.Cart, error) {
	if userID != nil && *userID != "" {
		cart, err := u.cartRepo.FindByUserID(ctx, *userID)
		if err == nil {
			return cart, nil
		}
		if err != repo.ErrNotFound {
			return model.Cart{}, err
		}
		return u.cartRepo.Create(ctx, sessionID, userID)
	}

	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if err != repo.ErrNotFound {
		return model.Cart{}, err
	}
	return u.cartRepo.Create(ctx, sessionID, nil)
}

// 参照だけ。カートは作らない。
func (u *CartUsecase) findCart(ctx context.Context, sessionID string, userID *string) (model.Cart, error) {
	if userID != nil && *userID != "" {
		return u.cartRepo.FindByUserID(ctx, *userID)
	}
	return u.cartRepo.FindBySessionID(ctx, sessionID)
}

// AddToCart はカートに追加。同一商品は数量加算、単価は追加時点のまま据え置き。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput, userID *string) (model.Cart, error) {
	if sessionID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "session id is required")
	}
	if in.ProductID <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（現在価格のスナップショット取得を兼ねる）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "product not found")
	}
	if err != nil {
		return model.Cart{}, err
	}

	cart, err := u.resolveCart(ctx, sessionID, userID)
	if err != nil {
		return model.Cart{}, err
	}

	item, err := u.cartRepo.FindItem(ctx, cart.ID, in.ProductID)
	switch {
	case err == nil:
		// 既存明細は加算。unit_price_snapshotは更新しない。
		item.Quantity += in.Quantity
		if _, err := u.cartRepo.UpdateItem(ctx, item); err != nil {
			return model.Cart{}, err
		}
	case err == repo.ErrNotFound:
		newItem := model.CartItem{
			CartID:            cart.ID,
			ProductID:         in.ProductID,
			Quantity:          in.Quantity,
			UnitPriceSnapshot: p.Price,
		}
		if _, err := u.cartRepo.AddItem(ctx, newItem); err != nil {
			return model.Cart{}, err
		}
	default:
		return model.Cart{}, err
	}

	return u.cartRepo.Save(ctx, cart)
}

// UpdateCartItem は数量の上書き。0は削除、明細が無ければ何もしない（作らない）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, sessionID string, productID int64, quantity int64, userID *string) (model.Cart, error) {
	if sessionID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "session id is required")
	}
	if productID <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if quantity < 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "quantity cannot be negative")
	}

	cart, err := u.resolveCart(ctx, sessionID, userID)
	if err != nil {
		return model.Cart{}, err
	}

	item, err := u.cartRepo.FindItem(ctx, cart.ID, productID)
	switch {
	case err == nil:
		if quantity == 0 {
			if err := u.cartRepo.DeleteItem(ctx, item.ID); err != nil {
				return model.Cart{}, err
			}
		} else {
			item.Quantity = quantity
			if _, err := u.cartRepo.UpdateItem(ctx, item); err != nil {
				return model.Cart{}, err
			}
		}
	case err == repo.ErrNotFound:
		// 無い明細はそのまま
	default:
		return model.Cart{}, err
	}

	return u.cartRepo.Save(ctx, cart)
}

// RemoveFromCart は明細があれば削除。無ければ何もしない。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, sessionID string, productID int64, userID *string) (model.Cart, error) {
	if sessionID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "session id is required")
	}
	if productID <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.resolveCart(ctx, sessionID, userID)
	if err != nil {
		return model.Cart{}, err
	}

	item, err := u.cartRepo.FindItem(ctx, cart.ID, productID)
	switch {
	case err == nil:
		if err := u.cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return model.Cart{}, err
		}
	case err == repo.ErrNotFound:
	default:
		return model.Cart{}, err
	}

	return u.cartRepo.Save(ctx, cart)
}

// ClearCart は明細を全削除。カート本体は残す。
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string, userID *string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	cart, err := u.resolveCart(ctx, sessionID, userID)
	if err != nil {
		return err
	}

	return u.cartRepo.Clear(ctx, cart.ID)
}

// ItemCount は数量合計。カートが無ければ0を返すだけで、作らない。
func (u *CartUsecase) ItemCount(ctx context.Context, sessionID string, userID *string) (int64, error) {
	if sessionID == "" {
		return 0, nil
	}

	cart, err := u.findCart(ctx, sessionID, userID)
	if err == repo.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return cart.TotalItems(), nil
}

// CartTotal は合計金額。カートが無ければ0を返すだけで、作らない。
func (u *CartUsecase) CartTotal(ctx context.Context, sessionID string, userID *string) (int64, error) {
	if sessionID == "" {
		return 0, nil
	}

	cart, err := u.findCart(ctx, sessionID, userID)
	if err == repo.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return cart.TotalAmount(), nil
}

// MergeCarts はログイン直後に1回だけ呼ぶ。
// セッションカートの明細をユーザーカートへ移し、最後にセッションカートを消す。
// ステップをまたぐトランザクションは張らない。途中で失敗したら削除まで進まない。
func (u *CartUsecase) MergeCarts(ctx context.Context, sessionID string, userID string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusBadRequest, "session id is required")
	}
	if userID == "" {
		return NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	sessionCart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	// 空のセッションカートは対象外。削除もしない。
	if len(sessionCart.Items) == 0 {
		return nil
	}

	userCart, err := u.cartRepo.FindByUserID(ctx, userID)
	switch {
	case err == repo.ErrNotFound:
		// ユーザーカートを新規作成して明細を付け替える
		userCart, err = u.cartRepo.Create(ctx, sessionID, &userID)
		if err != nil {
			return err
		}
		for _, item := range sessionCart.Items {
			item.CartID = userCart.ID
			if _, err := u.cartRepo.UpdateItem(ctx, item); err != nil {
				return err
			}
		}
	case err == nil:
		// 既存ユーザーカートへマージ。同一商品は数量加算、それ以外は付け替え。
		for _, sessionItem := range sessionCart.Items {
			existing, err := u.cartRepo.FindItem(ctx, userCart.ID, sessionItem.ProductID)
			switch {
			case err == nil:
				existing.Quantity += sessionItem.Quantity
				if _, err := u.cartRepo.UpdateItem(ctx, existing); err != nil {
					return err
				}
			case err == repo.ErrNotFound:
				sessionItem.CartID = userCart.ID
				if _, err := u.cartRepo.UpdateItem(ctx, sessionItem); err != nil {
					return err
				}
			default:
				return err
			}
		}
	default:
		return err
	}

	// 最後にセッションカートを削除（残った明細もまとめて消える）
	return u.cartRepo.Delete(ctx, sessionCart.ID)
}
