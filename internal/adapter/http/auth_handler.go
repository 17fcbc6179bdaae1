package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loanledger-backend/internal/adapter/middleware"
	"loanledger-backend/internal/usecase/auth"
	"loanledger-backend/pkg/money"
)

type AuthHandler struct {
	uc         *auth.Usecase
	sessionTTL time.Duration
}

func NewAuthHandler(uc *auth.Usecase, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, sessionTTL: sessionTTL}
}

type registerReq struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), auth.RegisterInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error { return h.login(c, false) }

// AdminLogin is the separate admin entry; borrower credentials are refused.
func (h *AuthHandler) AdminLogin(c echo.Context) error { return h.login(c, true) }

func (h *AuthHandler) login(c echo.Context, requireAdmin bool) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	sess, dto, err := h.uc.Login(c.Request().Context(), req.Email, req.Password, requireAdmin)
	if err != nil {
		return respondError(c, err)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.SessionCookie); err == nil {
		_ = h.uc.Logout(c.Request().Context(), ck.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) CurrentUser(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	dto, err := h.uc.CurrentUser(c.Request().Context(), sess.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type profileReq struct {
	Phone          string       `json:"phone"          validate:"required"`
	Address        string       `json:"address"        validate:"required"`
	Employment     string       `json:"employment"     validate:"required"`
	MonthlyIncome  money.Amount `json:"monthlyIncome"`
	Identification string       `json:"identification" validate:"required"`
	NextOfKin      string       `json:"nextOfKin"      validate:"required"`
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	sess := middleware.SessionFrom(c)
	dto, err := h.uc.CompleteProfile(c.Request().Context(), sess.UserID, auth.ProfileInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
