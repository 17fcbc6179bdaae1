package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanledger-backend/internal/adapter/middleware"
	loanDomain "loanledger-backend/internal/domain/loan"
	repaymentDomain "loanledger-backend/internal/domain/repayment"
	loanUC "loanledger-backend/internal/usecase/loan"
	repaymentUC "loanledger-backend/internal/usecase/repayment"
	reportUC "loanledger-backend/internal/usecase/report"
	"loanledger-backend/pkg/datemath"
	"loanledger-backend/pkg/money"
)

// LoanHandler serves the borrower side of the portal.
type LoanHandler struct {
	loans      *loanUC.Usecase
	repayments *repaymentUC.Usecase
	reports    *reportUC.Usecase
	pageSize   int
}

func NewLoanHandler(loans *loanUC.Usecase, repayments *repaymentUC.Usecase, reports *reportUC.Usecase, pageSize int) *LoanHandler {
	return &LoanHandler{loans: loans, repayments: repayments, reports: reports, pageSize: pageSize}
}

type applyLoanReq struct {
	Principal      money.Amount `json:"principal"`
	InterestRate   float64      `json:"interestRate"   validate:"gte=0,lte=100,dec2"`
	DurationMonths int          `json:"durationMonths" validate:"required,gt=0,lte=360"`
	Purpose        string       `json:"purpose"        validate:"required"`
	StartDate      string       `json:"startDate"      validate:"required,datetime=2006-01-02"`
	// optional; defaults to startDate + durationMonths
	DueDate string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	start, err := datemath.ParseDate(req.StartDate)
	if err != nil {
		return respondError(c, err)
	}
	in := loanUC.ApplyInput{
		BorrowerID:     middleware.SessionFrom(c).UserID,
		Principal:      req.Principal,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
		Purpose:        req.Purpose,
		StartDate:      start,
	}
	if req.DueDate != "" {
		due, err := datemath.ParseDate(req.DueDate)
		if err != nil {
			return respondError(c, err)
		}
		in.DueDate = due
	}

	dto, err := h.loans.Apply(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) MyLoans(c echo.Context) error {
	return h.listMine(c, "")
}

func (h *LoanHandler) MyPendingLoans(c echo.Context) error {
	return h.listMine(c, loanDomain.StatusPending)
}

func (h *LoanHandler) MyApprovedLoans(c echo.Context) error {
	return h.listMine(c, loanDomain.StatusApproved)
}

func (h *LoanHandler) MyRejectedLoans(c echo.Context) error {
	return h.listMine(c, loanDomain.StatusRejected)
}

func (h *LoanHandler) listMine(c echo.Context, status loanDomain.Status) error {
	sess := middleware.SessionFrom(c)
	offset, limit := pageParams(c, h.pageSize)
	loans, err := h.loans.ListForBorrower(c.Request().Context(), sess.UserID, status, offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) Dashboard(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	s, err := h.reports.BorrowerSummary(c.Request().Context(), sess.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

type repayReq struct {
	LoanID        string       `json:"loanId"        validate:"required,hex32"`
	AmountPaid    money.Amount `json:"amountPaid"`
	PaymentDate   string       `json:"paymentDate"   validate:"required,datetime=2006-01-02"`
	PaymentMethod string       `json:"paymentMethod" validate:"required,paymethod"`
}

func (h *LoanHandler) Repay(c echo.Context) error {
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	payDate, err := datemath.ParseDate(req.PaymentDate)
	if err != nil {
		return respondError(c, err)
	}

	dto, err := h.repayments.Record(c.Request().Context(), repaymentUC.RecordInput{
		BorrowerID:  middleware.SessionFrom(c).UserID,
		LoanID:      req.LoanID,
		Amount:      req.AmountPaid,
		PaymentDate: payDate,
		Method:      repaymentDomain.Method(req.PaymentMethod),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
