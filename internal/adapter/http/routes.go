package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the portal's route table. Route names mirror the
// paths the frontend already calls.
func RegisterRoutes(
	e *echo.Echo,
	h *Handler,
	authH *AuthHandler,
	loanH *LoanHandler,
	adminH *AdminHandler,
	sessionMW, adminMW, idempMW echo.MiddlewareFunc,
) {
	e.GET("/health", h.Health)

	// public
	e.POST("/api/auth/register", authH.Register)
	e.POST("/api/auth/login", authH.Login)
	e.POST("/api/admin/login", authH.AdminLogin)

	// borrower session
	user := e.Group("", sessionMW)
	user.POST("/api/auth/logout", authH.Logout)
	user.GET("/api/auth/user", authH.CurrentUser)
	user.PUT("/api/auth/profile", authH.UpdateProfile)

	user.GET("/api/loan/user/all", loanH.MyLoans)
	user.GET("/api/loan/borrower/pendingLoans", loanH.MyPendingLoans)
	user.GET("/api/loan/borrower/approvedLoans", loanH.MyApprovedLoans)
	user.GET("/api/loan/borrower/rejectedLoans", loanH.MyRejectedLoans)
	user.GET("/api/loan/user/dashboard", loanH.Dashboard)

	// double-submit protection on the money-moving borrower endpoints
	user.POST("/api/loan/apply", loanH.Apply, idempMW)
	user.POST("/api/loan/repay", loanH.Repay, idempMW)

	// admin session
	admin := e.Group("/api/admin", sessionMW, adminMW)
	admin.GET("/pendingLoans", adminH.PendingLoans)
	admin.GET("/getApprovedLoans", adminH.ApprovedLoans)
	admin.GET("/rejectedLoans", adminH.RejectedLoans)
	admin.GET("/repaidLoans", adminH.RepaidLoans)
	admin.GET("/getUnArchiveLoans", adminH.UnarchivedLoans)
	admin.PUT("/approveLoan", adminH.DecideLoan)
	admin.PUT("/archiveloan", adminH.ArchiveLoan)
	admin.PUT("/unarchiveloan", adminH.UnarchiveLoan)
	admin.DELETE("/deleteLoan/:loan_id", adminH.DeleteLoan)

	admin.GET("/repayments", adminH.Repayments)
	admin.PUT("/approveRepayment", adminH.ApproveRepayment)

	admin.GET("/dashboard", adminH.Dashboard)

	admin.GET("/getUsers", adminH.Users)
	admin.GET("/userDetails/:user_id", adminH.UserDetails)
	admin.POST("/addUser", adminH.AddUser)
	admin.PUT("/updateUser/:user_id", adminH.UpdateUser)
	admin.DELETE("/removeUser/:user_id", adminH.RemoveUser)
}
