package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"hr_payroll/config"
	"hr_payroll/database"
	"hr_payroll/handlers"
	"hr_payroll/router"
	"hr_payroll/scheduler"
	"hr_payroll/services"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func initServices(db *gorm.DB, cfg config.Config, location *time.Location) handlers.Services {
	ledger := services.NewAttendanceLedger(db, location)
	payroll := services.NewPayrollAggregator(db)
	employees := services.NewEmployeeService(db)

	identity := services.NewRESTIdentityProvider(cfg.IdentityBaseURL, cfg.IdentityAPIKey, cfg.IdentityRequestTimeout())
	mailer := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPSendTimeout())
	auth := services.NewAuthService(db, identity, mailer, cfg.JWTSecret, cfg.TokenExpiry())

	return handlers.Services{
		Ledger:    ledger,
		Payroll:   payroll,
		Employees: employees,
		Auth:      auth,
		Dashboard: services.NewDashboardService(employees, ledger, payroll),
	}
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.Logger.Sync()

	location, err := cfg.AttendanceLocation()
	if err != nil {
		utils.Logger.Fatal("Invalid ATTENDANCE_UTC_OFFSET", zap.Error(err))
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBLogLevel)
	if err != nil {
		utils.Logger.Fatal("Failed to connect to database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	svc := initServices(db, cfg, location)
	handlers.InitHandlers(db, svc)

	if cfg.SchedulerEnabled {
		jobs := scheduler.NewScheduler(svc.Ledger, svc.Payroll, cfg.AbsenceCron, cfg.PayrollReportCron, utils.Named("scheduler"))
		if err := jobs.Start(); err != nil {
			utils.Logger.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer jobs.Stop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				utils.Logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(types.APIResponse{
				Success: false,
				Error:   err.Error(),
			})
		},
	})
	router.SetupRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		utils.Logger.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			utils.Logger.Error("Failed to shut down cleanly", zap.Error(err))
		}
	}()

	utils.Logger.Info("Listening", zap.String("port", cfg.Port), zap.String("attendance_zone", location.String()))
	if err := app.Listen(":" + cfg.Port); err != nil {
		utils.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
