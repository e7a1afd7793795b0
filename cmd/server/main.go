package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/chatterloop/widget/internal/config"
	"github.com/chatterloop/widget/internal/repository/mongodb"
	"github.com/chatterloop/widget/internal/repository/sheets"
	"github.com/chatterloop/widget/internal/scheduler"
	"github.com/chatterloop/widget/internal/server/handlers"
	"github.com/chatterloop/widget/internal/server/router"
	leadexportsvc "github.com/chatterloop/widget/internal/service/leadexport"
	widgetsvc "github.com/chatterloop/widget/internal/service/widget"
	"github.com/chatterloop/widget/internal/session"
	"github.com/chatterloop/widget/pkg/clients/platform"
	"github.com/chatterloop/widget/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var (
		leadRepo      mongodb.Repository
		identityStore session.Store = session.NewMemoryStore()
	)

	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()

		leadRepo = mongoRepo
		if cfg.Sessions.Backend == "mongo" {
			identityStore = session.NewMongoStore(
				mongoRepo.Database().Collection("visitor_identities"),
				baseLogger.Named("store.mongo"))
		}
	} else {
		baseLogger.Warn("mongodb uri missing, leads kept upstream only and identities in memory")
	}

	// Sheets export is optional; without credentials leads still land in
	// MongoDB and the platform API.
	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("google sheets lead export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, daily lead export disabled")
	}

	exportSvc := leadexportsvc.NewService(leadRepo, sheetsRepo, cfg.Sheets.LeadRange, baseLogger.Named("svc.leadexport"))

	platformClient := platform.NewClient(cfg.Platform)
	widgetSvc := widgetsvc.NewEngineService(platformClient, identityStore, exportSvc, baseLogger.Named("svc.widget"))

	widgetHandler := handlers.NewWidgetHandler(widgetSvc, baseLogger.Named("handlers.widget"))
	engine := router.New(widgetHandler, baseLogger.Named("router"))

	var identitySweeper session.Sweeper
	if sweeper, ok := identityStore.(session.Sweeper); ok {
		identitySweeper = sweeper
	}

	sched := scheduler.NewScheduler(*cfg, exportSvc, widgetSvc, identitySweeper, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
