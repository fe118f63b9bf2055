package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/flicky/haiti-storefront/internal/config"
	"github.com/flicky/haiti-storefront/internal/handler"
	"github.com/flicky/haiti-storefront/internal/middleware"
	"github.com/flicky/haiti-storefront/internal/notify"
	"github.com/flicky/haiti-storefront/internal/repository"
	"github.com/flicky/haiti-storefront/internal/service"
	"github.com/flicky/haiti-storefront/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		log.Error("parse db config", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// RabbitMQ
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Error("open RabbitMQ channel", "error", err)
		os.Exit(1)
	}
	defer amqpCh.Close()

	if err := worker.SetupRabbitMQ(amqpCh); err != nil {
		log.Error("setup RabbitMQ", "error", err)
		os.Exit(1)
	}
	log.Info("connected to RabbitMQ")

	// Repositories
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	sessionStore := repository.NewSessionStore(redisClient, cfg.Redis.SessionTTL)

	// Services
	fee := cfg.Store.Fee()
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	sessionSvc := service.NewSessionService(sessionStore)
	productSvc := service.NewProductService(productRepo, redisClient)
	cartSvc := service.NewCartService(sessionStore, productSvc, fee)
	orderSvc := service.NewOrderService(orderRepo, amqpCh, log)
	checkoutSvc := service.NewCheckoutService(sessionStore, cartSvc, orderSvc, userRepo, fee, cfg.Store.WhatsAppNumber)
	adminSvc := service.NewAdminService(orderRepo, productRepo, log)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	productH := handler.NewProductHandler(productSvc, sessionSvc)
	cartH := handler.NewCartHandler(cartSvc, sessionSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc, sessionSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	healthH := handler.NewHealthHandler(
		handler.PostgresCheck(dbPool),
		handler.RedisCheck(redisClient),
		handler.RabbitMQCheck(amqpConn),
	)

	// Worker
	var sender notify.Sender = notify.NewLogSender(log)
	if cfg.Store.WebhookURL != "" {
		sender = notify.NewWebhookSender(cfg.Store.WebhookURL, cfg.Store.WebhookTimeout)
	}
	orderWorker := worker.NewOrderWorker(amqpCh, orderRepo, redisClient, sender, cfg.Store.WhatsAppNumber, log)

	// Router
	router := gin.Default()
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	requireAuth := middleware.AuthMiddleware(cfg.JWT.Secret)

	v1 := router.Group("/api/v1", middleware.Session(), middleware.OptionalAuth(cfg.JWT.Secret))
	{
		auth := v1.Group("/auth")
		auth.POST("/signup", authH.SignUp)
		auth.POST("/signin", authH.SignIn)
		auth.POST("/signout", authH.SignOut)
		auth.GET("/me", requireAuth, authH.Me)

		products := v1.Group("/products")
		products.GET("", productH.List)
		products.GET("/:id", productH.GetByID)

		session := v1.Group("/session")
		session.GET("/language", sessionH.GetLanguage)
		session.PUT("/language", sessionH.SetLanguage)

		cart := v1.Group("/cart")
		cart.GET("", cartH.GetCart)
		cart.POST("/items", cartH.AddItem)
		cart.PUT("/items", cartH.UpdateItem)
		cart.DELETE("/items", cartH.RemoveItem)
		cart.DELETE("", cartH.Clear)

		checkout := v1.Group("/checkout")
		checkout.POST("", checkoutH.Start)
		checkout.GET("", checkoutH.Get)
		checkout.DELETE("", checkoutH.Abandon)
		checkout.PUT("/delivery", checkoutH.SetDelivery)
		checkout.POST("/next", checkoutH.Next)
		checkout.POST("/back", checkoutH.Back)
		checkout.POST("/terms", checkoutH.Terms)
		checkout.POST("/place", checkoutH.Place)
		checkout.POST("/dispatch", checkoutH.Dispatch)
		checkout.POST("/dismiss", checkoutH.Dismiss)

		orders := v1.Group("/orders", requireAuth)
		orders.GET("", orderH.ListOrders)
		orders.GET("/:id", orderH.GetOrder)

		admin := v1.Group("/admin", requireAuth, middleware.AdminOnly())
		admin.GET("/stats", adminH.Stats)
		admin.GET("/orders", adminH.ListOrders)
		admin.GET("/orders/export", adminH.Export)
		admin.PATCH("/orders", adminH.BulkUpdate)
		admin.PATCH("/orders/:id", adminH.UpdateStatus)
	}

	if err := orderWorker.Start(ctx); err != nil {
		log.Error("start order worker", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	orderWorker.Stop()
	time.Sleep(500 * time.Millisecond)
	cancel()
	log.Info("server stopped")
}
