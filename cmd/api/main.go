package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
	"github.com/jcmexdev/ecommerce-api/internal/core/service"
	"github.com/jcmexdev/ecommerce-api/internal/infra/gateway"
	"github.com/jcmexdev/ecommerce-api/internal/infra/httpx"
	"github.com/jcmexdev/ecommerce-api/internal/infra/storage/gormstore"
	"github.com/jcmexdev/ecommerce-api/internal/pkg/cache"
	"github.com/jcmexdev/ecommerce-api/internal/pkg/config"
	"github.com/jcmexdev/ecommerce-api/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName)
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	db, err := gormstore.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	var productCache cache.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
	}

	var paymentGateway ports.PaymentGateway
	if cfg.GatewayURL != "" {
		paymentGateway = gateway.NewHTTPGateway(cfg.GatewayURL)
	} else {
		slog.Warn("no GATEWAY_URL configured, using simulated payment gateway")
		paymentGateway = gateway.Simulated{}
	}

	roles := gormstore.NewRoleRepository(db)
	users := gormstore.NewUserRepository(db)
	customers := gormstore.NewCustomerRepository(db)
	categories := gormstore.NewCategoryRepository(db)
	products := gormstore.NewProductRepository(db)
	images := gormstore.NewProductImageRepository(db)
	orders := gormstore.NewOrderRepository(db)
	payments := gormstore.NewPaymentRepository(db)

	authSvc := service.NewAuthService(users, roles, cfg.JWTSecret, cfg.JWTTTL)
	customerSvc := service.NewCustomerService(customers)
	catalogSvc := service.NewCatalogService(categories, products, images, productCache)
	orderSvc := service.NewOrderService(orders, products, customers)
	paymentSvc := service.NewPaymentService(orders, payments, customers, paymentGateway, cfg.GatewayTimeout)

	handler := httpx.NewHandler(authSvc, customerSvc, catalogSvc, orderSvc, paymentSvc, cfg.UploadDir)
	router := httpx.NewRouter(handler, authSvc, cfg.UploadDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("ecommerce API running", "addr", srv.Addr, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
