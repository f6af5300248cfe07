// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/pulok-thedeveloper/music-spot-server/cache"
	"github.com/pulok-thedeveloper/music-spot-server/config"
	"github.com/pulok-thedeveloper/music-spot-server/controllers"
	"github.com/pulok-thedeveloper/music-spot-server/middleware"
	"github.com/pulok-thedeveloper/music-spot-server/routes"
	"github.com/pulok-thedeveloper/music-spot-server/store"
	"github.com/pulok-thedeveloper/music-spot-server/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	// Token signing is process-wide and fixed at startup
	utils.JwtKey = []byte(cfg.AccessToken)
	utils.TokenTTL = cfg.TokenTTL

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := utils.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			logger.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	logger.Info().Str("db", cfg.DBName).Msg("connected to MongoDB")

	st := store.New(client.Database(cfg.DBName))
	idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = st.EnsureIndexes(idxCtx)
	cancel()
	var conflict *store.IndexConflictError
	if errors.As(err, &conflict) {
		logger.Fatal().Err(conflict.Err).
			Str("collection", conflict.Collection).
			Strs("indexes", conflict.Indexes).
			Msg("existing duplicate documents block a unique index, remove them and restart")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("index setup failed")
	}

	var categories controllers.CategoryStore = st.Categories
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn().Err(err).Msg("category cache disabled")
		} else {
			defer rdb.Close()
			categories = cache.NewCategories(st.Categories, rdb, cfg.CategoryCacheTTL, logger)
			logger.Info().Str("addr", cfg.RedisAddr).Msg("category cache enabled")
		}
	}

	emailService, err := utils.NewEmailService(cfg.MailProvider, cfg.MailAPIKey, cfg.EmailSender)
	if err != nil {
		logger.Fatal().Err(err).Msg("mail setup failed")
	}
	var notifier controllers.Notifier
	if emailService != nil {
		notifier = emailService
	}

	// Initialize controllers
	userController := controllers.NewUserController(st.Users, notifier)
	productController := controllers.NewProductController(st.Products)
	categoryController := controllers.NewCategoryController(categories)
	bookingController := controllers.NewBookingController(st.Bookings, notifier)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, st.Users, userController, productController, categoryController, bookingController)

	// Outer chain wraps the router so CORS preflights and unmatched paths pass through it too
	var handler http.Handler = router
	handler = middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst).Middleware()(handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Recover(logger)(handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		logger.Info().Msgf("Music Spot Running on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
