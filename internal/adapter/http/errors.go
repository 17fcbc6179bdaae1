package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	loanDomain "loanledger-backend/internal/domain/loan"
	repaymentDomain "loanledger-backend/internal/domain/repayment"
	userDomain "loanledger-backend/internal/domain/user"
	"loanledger-backend/internal/usecase/auth"
	"loanledger-backend/pkg/datemath"
	"loanledger-backend/pkg/money"
)

// statusFor maps domain errors onto HTTP codes. Anything unmapped is an
// internal error; storage details never reach the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loanDomain.ErrValidation),
		errors.Is(err, repaymentDomain.ErrValidation),
		errors.Is(err, userDomain.ErrValidation),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, datemath.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, userDomain.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, repaymentDomain.ErrNotFound),
		errors.Is(err, userDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanDomain.ErrInvalidState),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrConflict),
		errors.Is(err, repaymentDomain.ErrAlreadyApproved),
		errors.Is(err, userDomain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, repaymentDomain.ErrOverpayment):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}
