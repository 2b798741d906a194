package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menulink/internal/cart"
	"menulink/internal/config"
	"menulink/internal/database"
	"menulink/internal/handlers"
	"menulink/internal/logger"
	"menulink/internal/metrics"
	"menulink/internal/order"
	"menulink/internal/redis"
	"menulink/internal/repository"
	"menulink/internal/services"
	"menulink/pkg/menuapi"
	"menulink/pkg/whatsapp"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(logger.Options{
		ServiceName: "menulink",
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx).Err(err).Msg("failed to connect to database")
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Error(ctx).Err(err).Msg("failed to connect to Redis")
		os.Exit(1)
	}
	defer redisClient.Close()

	// Remote clients
	menuAPI := menuapi.NewClient(cfg.MenuAPIURL)
	var sender services.MessageSender
	if cfg.WhatsAppGatewayEnabled {
		sender = whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
	}

	m := metrics.New()
	cartTTL := time.Duration(cfg.CartTTL) * time.Second
	sessions := cart.NewSessions(func(sessionID string) cart.Repository {
		return cart.NewRedisRepository(redisClient, sessionID, cartTTL)
	}, log)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	tracker := services.NewTracker(menuAPI, log, 5*time.Second)
	cartService := services.NewCartService(sessions, m)
	authService := services.NewAuthService(menuAPI, redisClient, time.Duration(cfg.TokenTTL)*time.Second, log)
	menuService := services.NewMenuService(menuAPI, authService, tracker, m, cfg.PublicURL)
	whatsappService := services.NewWhatsAppService(sender, log)
	orderService := services.NewOrderService(
		orderRepo,
		cartService,
		menuService,
		authService,
		whatsappService,
		tracker,
		order.NewFormatter(cfg.BrandLabel),
		m,
		log,
	)

	// Initialize handlers
	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(
		handlers.NewStorefrontHandler(menuService, cartService, orderService, log),
		handlers.NewMerchantHandler(authService, menuService, orderService, log),
		log,
		handlers.RouterOptions{
			AllowedOrigins: []string{cfg.PublicURL},
			Metrics:        m.Handler(),
		},
	)

	if idle := time.Duration(cfg.CartIdleMins) * time.Minute; idle > 0 {
		go sessions.RunSweeper(ctx, idle/2, idle)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info(ctx).Str("port", cfg.ServerPort).Bool("whatsapp_gateway", whatsappService.Enabled()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx).Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx).Err(err).Msg("graceful shutdown failed")
	}
	tracker.Wait()
}
