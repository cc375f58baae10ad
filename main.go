package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parqueo_api/internal/api"
	"parqueo_api/internal/api/middleware"
	"parqueo_api/internal/clock"
	"parqueo_api/internal/config"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"
	"parqueo_api/internal/repository/postgresql"
	"parqueo_api/internal/service"
	"parqueo_api/migrations"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to the dotenv file")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	if err := run(*envFile, *migrateOnly); err != nil {
		logrus.WithError(err).Fatal("parqueo api stopped")
	}
}

func run(envFile string, migrateOnly bool) error {
	// 1. Configuration and logging
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database
	pool, err := postgresql.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	logrus.WithFields(logrus.Fields{"host": cfg.DBHost, "db": cfg.DBName}).Info("database connected")

	if cfg.DBAutoMigrate || migrateOnly {
		if err := migrations.Apply(ctx, pool); err != nil {
			return err
		}
	}
	if migrateOnly {
		logrus.Info("migrations applied, exiting")
		return nil
	}
	db := postgresql.NewDB(pool)
	defer db.Close()

	// 3. Repositories
	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewPgUserRepository(db)
	roleRepo := postgresql.NewPgRoleRepository(db)
	accessLogRepo := postgresql.NewPgAccessLogRepository(db)
	clientRepo := postgresql.NewPgClientRepository(db)
	vehicleRepo := postgresql.NewPgVehicleRepository(db)
	zoneRepo := postgresql.NewPgZoneRepository(db)
	spaceRepo := postgresql.NewPgSpaceRepository(db)
	tariffRepo := postgresql.NewPgTariffRepository(db)
	ticketRepo := postgresql.NewPgTicketRepository(db)
	paymentRepo := postgresql.NewPgPaymentRepository(db)
	paymentTypeRepo := postgresql.NewPgPaymentTypeRepository(db)
	fineRepo := postgresql.NewPgFineRepository(db)
	reservationRepo := postgresql.NewPgReservationRepository(db)
	employeeRepo := postgresql.NewPgEmployeeRepository(db)
	shiftRepo := postgresql.NewPgShiftRepository(db)

	// 4. Services
	clk := clock.NewSystem()
	policy := domain.DefaultPolicy()

	authService := service.NewAuthService(userRepo, roleRepo, accessLogRepo, policy, cfg.JWTSecret, cfg.JWTExpirationHours, clk)
	services := api.Services{
		Auth:         authService,
		Tickets:      service.NewTicketService(tx, ticketRepo, vehicleRepo, spaceRepo, tariffRepo, employeeRepo, clk),
		Payments:     service.NewPaymentService(tx, paymentRepo, paymentTypeRepo, ticketRepo, clk),
		Clients:      service.NewClientService(clientRepo, vehicleRepo),
		Vehicles:     service.NewVehicleService(vehicleRepo, clientRepo, ticketRepo),
		Facility:     service.NewFacilityService(zoneRepo, spaceRepo, ticketRepo),
		Tariffs:      service.NewTariffService(tariffRepo, ticketRepo),
		PaymentTypes: service.NewPaymentTypeService(paymentTypeRepo, paymentRepo),
		Fines:        service.NewFineService(fineRepo, ticketRepo, clk),
		Reservations: service.NewReservationService(tx, reservationRepo, clientRepo, spaceRepo, clk),
		Roles:        service.NewRoleService(roleRepo, userRepo, policy),
		Employees:    service.NewEmployeeService(tx, employeeRepo, shiftRepo, userRepo, ticketRepo),
		AccessLogs:   service.NewAccessLogService(accessLogRepo, userRepo, clk),
	}

	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	// 5. HTTP server
	authMiddleware := middleware.NewAuthMiddleware(authService, policy)
	router := api.SetupRouter(services, authMiddleware, pool, cfg.IsDevelopment())

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("port", cfg.ServerPort).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logrus.Info("server stopped")
	return nil
}
