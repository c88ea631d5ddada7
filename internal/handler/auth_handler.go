package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /auth配下のHTTP
type AuthHandler struct {
	uc     *usecase.AuthUsecase
	cartUC *usecase.CartUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cartUC *usecase.CartUsecase) *AuthHandler {
	return &AuthHandler{uc: uc, cartUC: cartUC}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /auth/register, /auth/login を登録。
// ログインはセッションカートのマージに使うのでCookieのセッションIDが要る。
func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")
	g.Use(middleware.CartSession())

	g.POST("/register", h.register)
	g.POST("/login", h.login)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	// ログイン直後に1回だけセッションカートをユーザーカートへマージする。
	// マージ失敗でログイン自体は失敗させない。
	sessionID := getSessionIDFromContext(c)
	if err := h.cartUC.MergeCarts(c.Request().Context(), sessionID, out.UserID); err != nil {
		c.Logger().Warnf("cart merge failed: %v", err)
	}

	return c.JSON(http.StatusOK, out)
}
