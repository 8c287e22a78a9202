package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samrambhak/community-server-go/internal/config"
	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/handler"
	"github.com/samrambhak/community-server-go/internal/jobs"
	"github.com/samrambhak/community-server-go/internal/middleware"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/redis"
	"github.com/samrambhak/community-server-go/internal/repository"
	"github.com/samrambhak/community-server-go/internal/service"
	"github.com/samrambhak/community-server-go/internal/sse"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	if cfg.AutoMigrate {
		if err := db.ApplySchema(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
		log.Info().Msg("schema applied")
	}

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	sessionRepo := repository.NewSessionRepository(db.DB)
	credentialRepo := repository.NewCredentialRepository(db.DB)
	profileRepo := repository.NewProfileRepository(db.DB)
	roleRepo := repository.NewRoleRepository(db.DB)
	convRepo := repository.NewConversationRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)
	commentRepo := repository.NewCommentRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)
	blockedWordRepo := repository.NewBlockedWordRepository(db.DB)
	businessRepo := repository.NewBusinessRepository(db.DB)
	deletionRepo := repository.NewDeletionRequestRepository(db.DB)
	purgeRepo := repository.NewAccountPurgeRepository(db.DB)
	activityLogRepo := repository.NewActivityLogRepository(db.DB)
	adminDataRepo := repository.NewAdminDataRepository(db.DB)
	searchRepo := repository.NewSearchRepository(db.DB)

	broker := sse.NewBroker(redisClient)
	defer broker.Close()

	accessService := service.NewAccessService(roleRepo)
	sessionService := service.NewSessionService(sessionRepo, credentialRepo, profileRepo, roleRepo, cfg.SessionTTL())
	messagingService := service.NewMessagingService(db, convRepo, messageRepo, profileRepo, broker)
	likeService := service.NewLikeService(postRepo)
	commentService := service.NewCommentService(commentRepo, reportRepo, blockedWordRepo)
	reportService := service.NewReportService(db, reportRepo, postRepo, cfg.ReportHideThreshold)
	businessService := service.NewBusinessService(businessRepo)
	profileService := service.NewProfileService(profileRepo, cfg.EmailVerificationTTL())
	deletionService := service.NewAccountDeletionService(
		db, deletionRepo, purgeRepo, activityLogRepo, accessService, cfg.DeletionGracePeriod(),
	)
	blockedWordService := service.NewBlockedWordService(blockedWordRepo)
	adminDataService := service.NewAdminDataService(adminDataRepo, businessRepo, activityLogRepo)
	searchService := service.NewSearchService(searchRepo, config.SearchResultLimit)

	redisLimiter := middleware.NewRedisRateLimiter(redisClient.Client)
	sessionAuth := middleware.NewSessionAuth(sessionService)
	apiRateLimit := middleware.NewRateLimitMiddleware(redisLimiter, cfg.RateLimitPerMin, "api")
	loginRateLimit := middleware.NewRateLimitMiddleware(redisLimiter, config.LoginRateLimitPerMin, "login")
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(cfg.IsProduction())
	requireModerator := middleware.RequireRoles(accessService, model.RoleSuperAdmin, model.RoleContentModerator)
	requireAdmin := middleware.RequireRoles(accessService, model.AllRoles...)

	messagingHandler := handler.NewMessagingHandler(messagingService)
	postHandler := handler.NewPostHandler(likeService, commentService, reportService)
	businessHandler := handler.NewBusinessHandler(businessService)
	profileHandler := handler.NewProfileHandler(profileService)
	deletionHandler := handler.NewDeletionHandler(deletionService)
	blockedWordHandler := handler.NewBlockedWordHandler(blockedWordService)
	adminDataHandler := handler.NewAdminDataHandler(adminDataService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	searchHandler := handler.NewSearchHandler(searchService)
	eventsHandler := handler.NewEventsHandler(broker)
	healthHandler := handler.NewHealthHandler(db, config.DBPingTimeout)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	// The event stream is long-lived and stays outside the request timeout.
	r.With(sessionAuth.Handler, apiRateLimit.Handler).Get("/v1/events", eventsHandler.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
		r.Use(bodyLimitMiddleware.Handler)

		r.Route("/v1/sessions", func(r chi.Router) {
			r.With(loginRateLimit.Handler).Post("/login", sessionHandler.Login)
			r.Mount("/", sessionHandler.Routes())
		})

		r.With(sessionAuth.Handler, apiRateLimit.Handler).Get("/v1/search", searchHandler.Search)

		r.Route("/functions/v1", func(r chi.Router) {
			r.With(loginRateLimit.Handler).Post("/verify-email", profileHandler.VerifyEmail)

			r.Group(func(r chi.Router) {
				r.Use(sessionAuth.Handler)
				r.Use(apiRateLimit.Handler)

				r.Post("/messaging", messagingHandler.Handle)
				r.Post("/toggle-like", postHandler.ToggleLike)
				r.Post("/create-comment", postHandler.CreateComment)
				r.Post("/report-post", postHandler.ReportPost)
				r.Post("/manage-business", businessHandler.Manage)
				r.Post("/manage-business-follow", businessHandler.Follow)
				r.Post("/update-profile", profileHandler.Update)
				r.Post("/manage-account-deletion", deletionHandler.Handle)

				r.With(requireModerator).Post("/manage-blocked-words", blockedWordHandler.Handle)
				r.With(requireAdmin).Post("/admin-data", adminDataHandler.Handle)
			})
		})
	})

	cleanupJob := jobs.NewCleanupJob(sessionRepo, config.SessionCleanupInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	deletionScheduler, err := jobs.NewDeletionScheduler(deletionService, cfg.DeletionCron, config.DeletionJobTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule account deletion job")
	}
	deletionScheduler.Start()
	defer deletionScheduler.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
