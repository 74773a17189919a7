package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine-go/internal/repository/postgresql"
	awardService "github.com/cmlabs-hris/payroll-engine-go/internal/service/award"
	exportService "github.com/cmlabs-hris/payroll-engine-go/internal/service/export"
	mappingService "github.com/cmlabs-hris/payroll-engine-go/internal/service/mapping"
	payperiodService "github.com/cmlabs-hris/payroll-engine-go/internal/service/payperiod"
	shiftService "github.com/cmlabs-hris/payroll-engine-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	awardRepo := postgresql.NewAwardRepository(db)
	mappingRepo := postgresql.NewMappingRepository(db)
	payPeriodRepo := postgresql.NewPayPeriodRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	exportRepo := postgresql.NewExportRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	tokenAuth := jwt.NewTokenAuth(cfg.JWT.Secret)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	awardSvc := awardService.NewService(txRunner, awardRepo, auditRepo)
	mappingSvc := mappingService.NewService(mappingRepo)
	payPeriodSvc := payperiodService.NewService(txRunner, payPeriodRepo, auditRepo)
	shiftSvc := shiftService.NewService(awardRepo)
	exportValidator := exportService.NewValidator(payPeriodRepo, timesheetRepo)
	exportSvc := exportService.NewService(
		txRunner,
		exportValidator,
		payPeriodRepo,
		timesheetRepo,
		mappingRepo,
		awardRepo,
		exportRepo,
		auditRepo,
		fileStorage,
	)

	awardHandler := appHTTP.NewAwardHandler(awardSvc)
	mappingHandler := appHTTP.NewMappingHandler(mappingSvc)
	payPeriodHandler := appHTTP.NewPayPeriodHandler(payPeriodSvc)
	exportHandler := appHTTP.NewExportHandler(exportSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)

	router := appHTTP.NewRouter(
		tokenAuth,
		awardHandler,
		mappingHandler,
		payPeriodHandler,
		exportHandler,
		shiftHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
