package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/retail-ledger/internal/application/auth"
	"github.com/tu-usuario/retail-ledger/internal/application/payments"
	"github.com/tu-usuario/retail-ledger/internal/application/purchasing"
	"github.com/tu-usuario/retail-ledger/internal/application/quotation"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
	"github.com/tu-usuario/retail-ledger/internal/application/stock"
	"github.com/tu-usuario/retail-ledger/internal/application/usecase"
	infraaudit "github.com/tu-usuario/retail-ledger/internal/infrastructure/audit"
	infranotify "github.com/tu-usuario/retail-ledger/internal/infrastructure/notify"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-ledger/internal/interfaces/http"
	"github.com/tu-usuario/retail-ledger/pkg/config"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	customerPaymentRepo := postgres.NewCustomerPaymentRepository(pool)
	supplierPaymentRepo := postgres.NewSupplierPaymentRepository(pool)
	adjustmentRepo := postgres.NewStockAdjustmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := infraaudit.NewZerologRecorder(log)
	notifier := infranotify.NewLogNotifier(log)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := usecase.NewItemUseCase(itemRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	salesUC := sales.NewSalesUseCase(txRunner, saleRepo, itemRepo, customerRepo, quotationRepo, recorder)
	purchasingUC := purchasing.NewPurchasingUseCase(txRunner, purchaseRepo, itemRepo, supplierRepo, orderRepo, recorder)
	quotationUC := quotation.NewQuotationUseCase(txRunner, quotationRepo, itemRepo, customerRepo, recorder)
	paymentsUC := payments.NewPaymentsUseCase(txRunner, customerRepo, supplierRepo, customerPaymentRepo, supplierPaymentRepo, recorder, notifier)
	stockUC := stock.NewStockUseCase(txRunner, itemRepo, adjustmentRepo, recorder)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		SalesUC:     salesUC,
		PurchasesUC: purchasingUC,
		QuotationUC: quotationUC,
		PaymentsUC:  paymentsUC,
		StockUC:     stockUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
