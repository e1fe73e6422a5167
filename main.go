package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/waveshop/waveshop/internal/application/auth"
	"github.com/waveshop/waveshop/internal/application/cart"
	"github.com/waveshop/waveshop/internal/application/catalogsvc"
	"github.com/waveshop/waveshop/internal/application/checkout"
	"github.com/waveshop/waveshop/internal/application/orders"
	"github.com/waveshop/waveshop/internal/application/sitesvc"
	"github.com/waveshop/waveshop/internal/application/stock"
	"github.com/waveshop/waveshop/internal/config"
	"github.com/waveshop/waveshop/internal/infrastructure/id"
	"github.com/waveshop/waveshop/internal/infrastructure/memory"
	"github.com/waveshop/waveshop/internal/infrastructure/notifier"
	"github.com/waveshop/waveshop/internal/infrastructure/outbox"
	"github.com/waveshop/waveshop/internal/infrastructure/token"
	"github.com/waveshop/waveshop/internal/observability"
	httppresentation "github.com/waveshop/waveshop/internal/presentation/http"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	metrics := observability.NewMetrics(cfg.ServiceName)

	var productOpts []memory.ProductOption
	if cfg.StockAllowNegative {
		productOpts = append(productOpts, memory.WithAllowNegative())
	}
	productRepo := memory.NewProductRepository(productOpts...)
	brandRepo := memory.NewBrandRepository()
	woodRepo := memory.NewWoodRepository()
	userRepo := memory.NewUserRepository()
	orderRepo := memory.NewOrderRepository()
	siteRepo := memory.NewSiteRepository()

	idGenerator := id.NewUUIDGenerator()
	tokens := token.NewJWT(cfg.JWTSecret)

	bus := outbox.NewBus(baseLogger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	ledger := stock.NewLedger(productRepo, metrics.Counter(
		"stock_adjustments_total",
		"Stock counter adjustments by counter and outcome.",
		"counter", "outcome",
	))

	authService := auth.NewService(userRepo, tokens, idGenerator, bus)
	cartService := cart.NewService(userRepo, ledger)
	checkoutService := checkout.NewService(userRepo, productRepo, brandRepo, orderRepo, idGenerator, bus)
	ordersService := orders.NewService(orderRepo, ledger)
	catalogService := catalogsvc.NewService(productRepo, brandRepo, woodRepo, idGenerator)
	siteService := sitesvc.NewService(siteRepo, idGenerator)

	mailWorker := notifier.New(bus, notifier.NewLogSender(baseLogger), baseLogger, metrics.Counter(
		"notifications_sent_total",
		"Notification deliveries by template and outcome.",
		"template", "outcome",
	))
	mailWorker.Start()

	handler := httppresentation.NewHandler(httppresentation.Deps{
		Auth:       authService,
		Cart:       cartService,
		Checkout:   checkoutService,
		Orders:     ordersService,
		Catalog:    catalogService,
		Site:       siteService,
		CookieName: cfg.CookieName,
		Logger:     baseLogger,
		Metrics:    metrics,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("http_server_error",
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		baseLogger.Info("http_server_stopped")
	}
}
