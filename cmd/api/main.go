package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loanledger-backend/internal/adapter/http"
	"loanledger-backend/internal/adapter/middleware"
	"loanledger-backend/internal/adapter/repository/mysql"
	"loanledger-backend/internal/adapter/sessionstore"
	"loanledger-backend/internal/config"
	loanDomain "loanledger-backend/internal/domain/loan"
	repaymentDomain "loanledger-backend/internal/domain/repayment"
	userDomain "loanledger-backend/internal/domain/user"
	"loanledger-backend/internal/infrastructure/cache"
	"loanledger-backend/internal/infrastructure/db"
	"loanledger-backend/internal/usecase/auth"
	loanUC "loanledger-backend/internal/usecase/loan"
	repaymentUC "loanledger-backend/internal/usecase/repayment"
	reportUC "loanledger-backend/internal/usecase/report"
	userUC "loanledger-backend/internal/usecase/user"
	workflowUC "loanledger-backend/internal/usecase/workflow"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&userDomain.User{}, &loanDomain.Loan{}, &repaymentDomain.Repayment{}); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories + unit of work
	loanRepo := mysql.NewLoanRepository(gdb)
	repaymentRepo := mysql.NewRepaymentRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	// usecases
	sessionTTL := time.Duration(cfg.SessionTTLSecs) * time.Second
	authU := auth.NewUsecase(userRepo, sessionstore.NewRedisStore(rdb), sessionTTL, cfg.BcryptCost)
	loanU := loanUC.NewUsecase(loanRepo, tx)
	workflowU := workflowUC.NewUsecase(tx)
	repaymentU := repaymentUC.NewUsecase(repaymentRepo, tx)
	reportU := reportUC.NewUsecase(tx, rdb, time.Duration(cfg.DashboardTTLSecs)*time.Second)
	userU := userUC.NewUsecase(userRepo, loanU, cfg.BcryptCost)

	// handlers
	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authU, sessionTTL)
	loanH := httpadp.NewLoanHandler(loanU, repaymentU, reportU, cfg.PageSize)
	adminH := httpadp.NewAdminHandler(loanU, workflowU, repaymentU, reportU, userU, cfg.PageSize)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	httpadp.RegisterRoutes(e, h, authH, loanH, adminH,
		middleware.SessionAuth(authU),
		middleware.RequireAdmin(),
		middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
