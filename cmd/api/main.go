package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "lamf-backend/internal/adapter/http"
	"lamf-backend/internal/adapter/middleware"
	"lamf-backend/internal/adapter/repository/mysql"
	"lamf-backend/internal/config"
	"lamf-backend/internal/infrastructure/cache"
	"lamf-backend/internal/infrastructure/db"
	"lamf-backend/internal/infrastructure/sched"
	appUC "lamf-backend/internal/usecase/application"
	collUC "lamf-backend/internal/usecase/collateral"
	loanUC "lamf-backend/internal/usecase/loan"
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
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	products := mysql.NewProductRepository(gdb)
	collaterals := mysql.NewCollateralRepository(gdb)
	applications := mysql.NewApplicationRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	collateralUsecase := collUC.NewUsecase(collaterals, uow)
	applicationUsecase := appUC.NewUsecase(applications, collaterals, uow)
	loanUsecase := loanUC.NewUsecase(loans, uow)

	cronjobs, err := sched.StartOverdueSweep(cfg.OverdueCron, loanUsecase)
	if err != nil {
		log.Fatal(err)
	}
	defer cronjobs.Stop()

	h := httpadp.NewHandler()
	productHandler := httpadp.NewProductHandler(products)
	collateralHandler := httpadp.NewCollateralHandler(collateralUsecase)
	applicationHandler := httpadp.NewApplicationHandler(applicationUsecase)
	loanHandler := httpadp.NewLoanHandler(loanUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	e.POST("/products", productHandler.Create)
	e.GET("/products/:code", productHandler.Get)
	e.PUT("/products/:code/status", productHandler.SetStatus)

	e.POST("/collaterals", collateralHandler.Register)
	e.GET("/collaterals/:folio", collateralHandler.Get)
	e.PUT("/collaterals/nav", collateralHandler.UpdateNAV)
	e.POST("/collaterals/:folio/release", collateralHandler.Release)

	e.POST("/applications", applicationHandler.Create)
	e.GET("/applications/:app_number", applicationHandler.Get)
	e.POST("/applications/:app_number/transition", applicationHandler.Transition)
	e.DELETE("/applications/:app_number", applicationHandler.Delete)

	e.GET("/loans/:loan_number", loanHandler.Get)
	e.POST("/loans/:loan_number/payments", loanHandler.RecordPayment,
		middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	e.POST("/loans/sweep-overdue", loanHandler.SweepOverdue)
	e.PUT("/loans/:loan_number/status", loanHandler.UpdateStatus)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
