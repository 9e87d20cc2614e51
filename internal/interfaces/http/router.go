package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/auth"
	"github.com/tu-usuario/retail-ledger/internal/application/payments"
	"github.com/tu-usuario/retail-ledger/internal/application/purchasing"
	"github.com/tu-usuario/retail-ledger/internal/application/quotation"
	"github.com/tu-usuario/retail-ledger/internal/application/sales"
	"github.com/tu-usuario/retail-ledger/internal/application/stock"
	"github.com/tu-usuario/retail-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *usecase.ItemUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	SalesUC     *sales.SalesUseCase
	PurchasesUC *purchasing.PurchasingUseCase
	QuotationUC *quotation.QuotationUseCase
	PaymentsUC  *payments.PaymentsUseCase
	StockUC     *stock.StockUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. La autorización por rol no vive
// aquí: cada caso de uso pasa por la puerta de permisos con la identidad
// extraída del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.RegisterTenant)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios adicionales del tenant (solo Owner)
	protected.Post("/auth/users", authHandler.RegisterUser)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)

	// Customers (incluye pagos y overrides de saldo)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	paymentHandler := NewPaymentHandler(deps.PaymentsUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Put("/balances", paymentHandler.SetCustomerBalances)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/payments", paymentHandler.RecordCustomerPayment)
	customers.Get("/:id/payments", paymentHandler.ListCustomerPayments)
	customers.Put("/:id/balance", paymentHandler.SetCustomerBalance)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Put("/balances", paymentHandler.SetSupplierBalances)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Post("/:id/payments", paymentHandler.RecordSupplierPayment)
	suppliers.Get("/:id/payments", paymentHandler.ListSupplierPayments)
	suppliers.Put("/:id/balance", paymentHandler.SetSupplierBalance)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Edit)
	salesGroup.Delete("/:id", saleHandler.Void)

	// Purchases
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchasesUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Delete("/:id", purchaseHandler.Void)

	// Quotations (conversión a venta incluida)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Patch("/:id/status", quotationHandler.UpdateStatus)
	quotations.Delete("/:id", quotationHandler.Delete)
	quotations.Post("/:id/convert", saleHandler.ConvertQuotation)

	// Purchase orders (conversión a compra incluida)
	orders := protected.Group("/purchase-orders")
	orders.Post("/", purchaseHandler.CreateOrder)
	orders.Get("/", purchaseHandler.ListOrders)
	orders.Get("/:id", purchaseHandler.GetOrder)
	orders.Patch("/:id/status", purchaseHandler.UpdateOrderStatus)
	orders.Delete("/:id", purchaseHandler.DeleteOrder)
	orders.Post("/:id/convert", purchaseHandler.ConvertOrder)

	// Stock adjustments
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/adjustments", stockHandler.CreateAdjustment)
	stockGroup.Get("/adjustments/:itemId", stockHandler.ListAdjustments)
	stockGroup.Put("/quantity", stockHandler.SetQuantity)
}
