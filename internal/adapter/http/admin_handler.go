package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loanledger-backend/internal/adapter/middleware"
	loanDomain "loanledger-backend/internal/domain/loan"
	repaymentDomain "loanledger-backend/internal/domain/repayment"
	userDomain "loanledger-backend/internal/domain/user"
	loanUC "loanledger-backend/internal/usecase/loan"
	repaymentUC "loanledger-backend/internal/usecase/repayment"
	reportUC "loanledger-backend/internal/usecase/report"
	userUC "loanledger-backend/internal/usecase/user"
	workflowUC "loanledger-backend/internal/usecase/workflow"
	"loanledger-backend/pkg/money"
)

// AdminHandler serves the loan-officer side: workflow transitions, ledger
// approval, reporting, and account management.
type AdminHandler struct {
	loans      *loanUC.Usecase
	workflow   *workflowUC.Usecase
	repayments *repaymentUC.Usecase
	reports    *reportUC.Usecase
	users      *userUC.Usecase
	pageSize   int
}

func NewAdminHandler(
	loans *loanUC.Usecase,
	workflow *workflowUC.Usecase,
	repayments *repaymentUC.Usecase,
	reports *reportUC.Usecase,
	users *userUC.Usecase,
	pageSize int,
) *AdminHandler {
	return &AdminHandler{
		loans:      loans,
		workflow:   workflow,
		repayments: repayments,
		reports:    reports,
		users:      users,
		pageSize:   pageSize,
	}
}

// ---- loan listings ----

func (h *AdminHandler) PendingLoans(c echo.Context) error {
	return h.listByStatus(c, loanDomain.StatusPending, nil)
}

func (h *AdminHandler) ApprovedLoans(c echo.Context) error {
	return h.listByStatus(c, loanDomain.StatusApproved, nil)
}

func (h *AdminHandler) RejectedLoans(c echo.Context) error {
	return h.listByStatus(c, loanDomain.StatusRejected, nil)
}

// RepaidLoans lists archived fully-paid loans (the default "repaid" page).
func (h *AdminHandler) RepaidLoans(c echo.Context) error {
	archived := true
	return h.listByStatus(c, loanDomain.StatusFullyPaid, &archived)
}

// UnarchivedLoans lists fully-paid loans still visible in default views.
func (h *AdminHandler) UnarchivedLoans(c echo.Context) error {
	archived := false
	return h.listByStatus(c, loanDomain.StatusFullyPaid, &archived)
}

func (h *AdminHandler) listByStatus(c echo.Context, status loanDomain.Status, archived *bool) error {
	offset, limit := pageParams(c, h.pageSize)
	loans, err := h.loans.ListByStatus(c.Request().Context(), status, archived, offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

// ---- workflow ----

type loanDecisionReq struct {
	LoanID       string `json:"loanId"       validate:"required,hex32"`
	TargetStatus string `json:"targetStatus" validate:"required,oneof=approved rejected"`
}

// DecideLoan handles PUT /api/admin/approveLoan for both approve and reject,
// which is how the portal's single decision endpoint behaves.
func (h *AdminHandler) DecideLoan(c echo.Context) error {
	var req loanDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	adminID := middleware.SessionFrom(c).UserID
	var (
		dto *loanUC.LoanDTO
		err error
	)
	if req.TargetStatus == "approved" {
		dto, err = h.workflow.Approve(c.Request().Context(), req.LoanID, adminID)
	} else {
		dto, err = h.workflow.Reject(c.Request().Context(), req.LoanID, adminID)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type loanIDReq struct {
	LoanID string `json:"loanId" validate:"required,hex32"`
}

func (h *AdminHandler) ArchiveLoan(c echo.Context) error {
	return h.archive(c, true)
}

func (h *AdminHandler) UnarchiveLoan(c echo.Context) error {
	return h.archive(c, false)
}

func (h *AdminHandler) archive(c echo.Context, hide bool) error {
	var req loanIDReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	var (
		dto *loanUC.LoanDTO
		err error
	)
	if hide {
		dto, err = h.workflow.Archive(c.Request().Context(), req.LoanID)
	} else {
		dto, err = h.workflow.Unarchive(c.Request().Context(), req.LoanID)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) DeleteLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	adminID := middleware.SessionFrom(c).UserID
	if err := h.loans.Delete(c.Request().Context(), loanID, adminID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- repayments ----

func (h *AdminHandler) Repayments(c echo.Context) error {
	offset, limit := pageParams(c, h.pageSize)
	rows, err := h.repayments.List(c.Request().Context(), repaymentUC.ListFilter{
		SearchTerm: c.QueryParam("search"),
		Status:     repaymentDomain.Status(c.QueryParam("status")),
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type approveRepaymentReq struct {
	RepaymentID string `json:"repaymentId" validate:"required,hex32"`
	Status      string `json:"status"      validate:"required,oneof=approved"`
}

func (h *AdminHandler) ApproveRepayment(c echo.Context) error {
	var req approveRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	adminID := middleware.SessionFrom(c).UserID
	res, err := h.repayments.Approve(c.Request().Context(), req.RepaymentID, adminID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ---- reporting ----

func (h *AdminHandler) Dashboard(c echo.Context) error {
	s, err := h.reports.AdminSummary(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// ---- user management ----

func (h *AdminHandler) Users(c echo.Context) error {
	offset, limit := pageParams(c, h.pageSize)
	users, err := h.users.List(c.Request().Context(), offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UserDetails(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}
	details, err := h.users.Details(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

type addUserReq struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (h *AdminHandler) AddUser(c echo.Context) error {
	var req addUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.users.Add(c.Request().Context(), userUC.AddInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     userDomain.Role(req.Role),
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type updateUserReq struct {
	Name           string        `json:"name"`
	Phone          string        `json:"phone"`
	Address        string        `json:"address"`
	Employment     string        `json:"employment"`
	MonthlyIncome  *money.Amount `json:"monthlyIncome"`
	Identification string        `json:"identification"`
	NextOfKin      string        `json:"nextOfKin"`
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.users.Update(c.Request().Context(), userID, userUC.UpdateInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) RemoveUser(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}
	if err := h.users.Remove(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
