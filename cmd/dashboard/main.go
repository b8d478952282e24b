package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dailymart/admin-dashboard/internal/app"
	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/dashboard"
	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/masterdata/categories"
	"github.com/dailymart/admin-dashboard/internal/masterdata/products"
	"github.com/dailymart/admin-dashboard/internal/observability"
	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/platform/cache"
	"github.com/dailymart/admin-dashboard/internal/profile"
	"github.com/dailymart/admin-dashboard/internal/salesreport"
	"github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/stockrequests"
	"github.com/dailymart/admin-dashboard/internal/users"
	"github.com/dailymart/admin-dashboard/internal/view"
	"github.com/dailymart/admin-dashboard/web"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "dailymart_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction()).
		WithCookiePath(cfg.AppBasePath)
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine(cfg.AppBasePath)
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	nav, err := view.ParseNavigation(web.Navigation)
	if err != nil {
		logger.Error("parse navigation", slog.Any("error", err))
		os.Exit(1)
	}
	responder := view.NewResponder(logger, templates, csrfManager, nav)

	metrics := observability.NewMetrics()
	apiClient := apiclient.New(apiclient.Options{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.APITimeout,
		Logger:   logger,
		Observer: metrics,
	})
	credentials := auth.NewCredentials(apiClient, logger)

	authService := auth.NewService(auth.NewRepository(apiClient))
	authHandler := auth.NewHandler(logger, authService, responder, sessionManager, csrfManager)

	rosters := []*users.RosterHandler{
		users.NewRosterHandler(users.Staff, logger, credentials, responder),
		users.NewRosterHandler(users.Couriers, logger, credentials, responder),
		users.NewRosterHandler(users.Customers, logger, credentials, responder),
	}
	snapshots := salesreport.NewSnapshotStore(redisClient, cfg.ReportSnapshotTTL)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		Responder:            responder,
		SessionManager:       sessionManager,
		CSRFManager:          csrfManager,
		Metrics:              metrics,
		AuthHandler:          authHandler,
		DashboardHandler:     dashboard.NewHandler(logger, credentials, responder),
		BranchesHandler:      branches.NewHandler(logger, credentials, responder),
		ProductsHandler:      products.NewHandler(logger, credentials, responder),
		CategoriesHandler:    categories.NewHandler(logger, credentials, responder),
		UsersHandler:         users.NewHandler(logger, credentials, responder),
		RosterHandlers:       rosters,
		StockRequestsHandler: stockrequests.NewHandler(logger, credentials, responder),
		SalesReportHandler:   salesreport.NewHandler(logger, credentials, responder, snapshots),
		ProfileHandler:       profile.NewHandler(logger, credentials, responder),
	})

	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("base_path", cfg.AppBasePath), slog.String("api", cfg.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
