package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"site-analytics-service/internal/platform/config"
	"site-analytics-service/internal/platform/logger"

	analyticsHttp "site-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsRepoPg "site-analytics-service/internal/analytics/adapters/postgres"
	analyticsUsecase "site-analytics-service/internal/analytics/core/usecase"

	trackingHttp "site-analytics-service/internal/tracking/adapters/http/fiber"
	trackingRepoPg "site-analytics-service/internal/tracking/adapters/postgres"
	trackingUsecase "site-analytics-service/internal/tracking/core/usecase"

	leadsHttp "site-analytics-service/internal/leads/adapters/http/fiber"
	leadsRepoPg "site-analytics-service/internal/leads/adapters/postgres"
	leadsUsecase "site-analytics-service/internal/leads/core/usecase"

	postsHttp "site-analytics-service/internal/posts/adapters/http/fiber"
	postsRepoPg "site-analytics-service/internal/posts/adapters/postgres"
	postsUsecase "site-analytics-service/internal/posts/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "site-analytics-service/docs"
)

func main() {
	// Config
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{ServiceName: "site-analytics-service"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		ServiceName: "site-analytics-service",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
	})

	// DB connection
	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open postgres")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping postgres")
	}

	// Adapter-level DB wrappers
	analyticsDB := analyticsRepoPg.NewSQLDB(db)
	trackingDB := trackingRepoPg.NewSQLDB(db)
	leadsDB := leadsRepoPg.NewSQLDB(db)
	postsDB := postsRepoPg.NewSQLDB(db)

	// Repositories
	sessionReader := analyticsRepoPg.NewSessionRepository(analyticsDB)
	eventReader := analyticsRepoPg.NewEventRepository(analyticsDB)
	leadReader := analyticsRepoPg.NewLeadRepository(analyticsDB)
	postReader := analyticsRepoPg.NewPostRepository(analyticsDB)
	trackingRepository := trackingRepoPg.NewTrackingRepository(trackingDB)
	leadRepository := leadsRepoPg.NewLeadRepository(leadsDB)
	postRepository := postsRepoPg.NewPostRepository(postsDB)

	// Usecases
	overviewUC := analyticsUsecase.NewGetOverviewUseCase(sessionReader, eventReader, leadReader, log)
	acquisitionUC := analyticsUsecase.NewGetAcquisitionUseCase(sessionReader, eventReader)
	funnelUC := analyticsUsecase.NewGetFunnelUseCase(eventReader)
	blogUC := analyticsUsecase.NewGetBlogEngagementUseCase(eventReader, postReader, log)
	pipelineUC := analyticsUsecase.NewGetLeadPipelineUseCase(leadReader, log)
	whatsappUC := analyticsUsecase.NewGetWhatsAppUseCase(eventReader, leadReader)
	dashboardUC := analyticsUsecase.NewGetDashboardUseCase(
		overviewUC, acquisitionUC, funnelUC, blogUC, pipelineUC, whatsappUC, log,
	)
	trackEventUC := trackingUsecase.NewTrackEventUseCase(trackingRepository)
	manageLeadsUC := leadsUsecase.NewManageLeadsUseCase(leadRepository)
	managePostsUC := postsUsecase.NewManagePostsUseCase(postRepository)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	// tracking endpoints
	trackingHandler := trackingHttp.NewTrackingHandler(trackEventUC)
	app.Post("/track", trackingHandler.TrackEvent)
	app.Post("/track/bulk", trackingHandler.BulkTrackEvents)
	app.Post("/sessions", trackingHandler.UpsertSession)
	app.Post("/sessions/:id/page-view", trackingHandler.IncrementPageViews)

	// analytics endpoints
	analyticsHandler := analyticsHttp.NewAnalyticsHandler(
		overviewUC, acquisitionUC, funnelUC, blogUC, pipelineUC, whatsappUC, dashboardUC,
	)
	app.Get("/analytics/overview", analyticsHandler.GetOverview)
	app.Get("/analytics/acquisition", analyticsHandler.GetAcquisition)
	app.Get("/analytics/funnel", analyticsHandler.GetFunnel)
	app.Get("/analytics/blog", analyticsHandler.GetBlog)
	app.Get("/analytics/pipeline", analyticsHandler.GetPipeline)
	app.Get("/analytics/whatsapp", analyticsHandler.GetWhatsApp)
	app.Get("/analytics/dashboard", analyticsHandler.GetDashboard)

	// leads endpoints
	leadHandler := leadsHttp.NewLeadHandler(manageLeadsUC)
	app.Post("/leads", leadHandler.CreateLead)
	app.Patch("/leads/:id/status", leadHandler.AdvanceStatus)
	app.Patch("/leads/:id/reply-time", leadHandler.RecordReplyTime)

	// posts endpoints
	postHandler := postsHttp.NewPostHandler(managePostsUC)
	app.Post("/posts", postHandler.CreatePost)
	app.Get("/posts", postHandler.ListPosts)
	app.Get("/posts/:slug", postHandler.GetPost)
	app.Put("/posts/:slug", postHandler.UpdatePost)
	app.Post("/posts/:slug/publish", postHandler.PublishPost)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
}
