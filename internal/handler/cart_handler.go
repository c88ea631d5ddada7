package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartResponse はカート本体＋その場で計算した合計。
type CartResponse struct {
	ID        int64            `json:"id"`
	SessionID string           `json:"session_id"`
	UserID    *string          `json:"user_id,omitempty"`
	Items     []model.CartItem `json:"items"`
	Total     int64            `json:"total"`
	ItemCount int64            `json:"item_count"`
}

func newCartResponse(cart model.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return CartResponse{
		ID:        cart.ID,
		SessionID: cart.SessionID,
		UserID:    cart.UserID,
		Items:     items,
		Total:     cart.TotalAmount(),
		ItemCount: cart.TotalItems(),
	}
}

// /cart配下を登録。匿名でも使えるので認証は任意。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.CartSession())
	g.Use(middleware.OptionalAuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("", h.clearCart)
	g.GET("/count", h.count)
	g.GET("/total", h.total)
	g.PATCH("/items/:product_id", h.updateItem)
	g.DELETE("/items/:product_id", h.removeItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	sessionID := getSessionIDFromContext(c)
	userID := getUserIDFromContext(c)

	cart, err := h.uc.GetCart(c.Request().Context(), sessionID, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *CartHandler) addToCart(c echo.Context) error {
	sessionID := getSessionIDFromContext(c)
	userID := getUserIDFromContext(c)

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	// 数量未指定は1つ追加とみなす
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.uc.AddToCart(c.Request().Context(), sessionID, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *CartHandler) updateItem(c echo.Context) error {
	sessionID := getSessionIDFromContext(c)
	userID := getUserIDFromContext(c)

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cart, err := h.uc.UpdateCartItem(c.Request().Context(), sessionID, productID, req.Quantity, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *CartHandler) removeItem(c echo.Context) error {
	sessionID := getSessionIDFromContext(c)
	userID := getUserIDFromContext(c)

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	cart, err := h.uc.RemoveFromCart(c.Request().Context(), sessionID, productID, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, newCartResponse(cart))
}

func (h *CartHandler) clearCart(c echo.Context) error {
	sessionID := getSessionIDFromContext(c)
	userID := getUserIDFromContext(c)

	if err := h.uc.ClearCart(c.Request().Context(), sessionID, userID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) count(c echo.Context) error {
	sessionID := getSessionIDFromContext(c)
	userID := getUserIDFromContext(c)

	n, err := h.uc.ItemCount(c.Request().Context(), sessionID, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}

func (h *CartHandler) total(c echo.Context) error {
	sessionID := getSessionIDFromContext(c)
	userID := getUserIDFromContext(c)

	total, err := h.uc.CartTotal(c.Request().Context(), sessionID, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int64{"total": total})
}

func getSessionIDFromContext(c echo.Context) string {
	s, _ := c.Get(middleware.CtxSessionIDKey).(string)
	return s
}

// ログインしていなければnil
func getUserIDFromContext(c echo.Context) *string {
	s, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
