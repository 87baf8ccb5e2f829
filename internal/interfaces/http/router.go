package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/pkg/jwt"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Documents    *ledger.DocumentUseCase
	Settlements  *ledger.SettlementUseCase
	Cancellation *ledger.CancellationUseCase
	Queries      *ledger.QueryUseCase
	Conversion   *ledger.ConversionUseCase
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(jwt.RoleAdmin)

	documentHandler := NewDocumentHandler(deps.Documents, deps.Queries, deps.Cancellation, deps.Log)
	api.Post("/purchases", documentHandler.CreatePurchase)
	api.Post("/contracts", documentHandler.CreateContract)
	api.Post("/deposits", documentHandler.CreateDeposit)
	api.Post("/sales", documentHandler.CreateSale)

	documents := api.Group("/documents")
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/pending", documentHandler.Pending)
	documents.Get("/:id/settlements", documentHandler.ListSettlements)
	documents.Delete("/:id", adminOnly, documentHandler.Void)

	settlementHandler := NewSettlementHandler(deps.Settlements, deps.Cancellation, deps.Log)
	settlements := api.Group("/settlements")
	settlements.Post("/", settlementHandler.Create)
	settlements.Delete("/:id", adminOnly, settlementHandler.Void)

	ledgerHandler := NewLedgerHandler(deps.Queries, deps.Log)
	api.Get("/balances/:productID", ledgerHandler.Balance)
	api.Get("/balances/:productID/scopes", ledgerHandler.BalanceScopes)
	api.Get("/balances/:productID/replay", ledgerHandler.Replay)
	api.Get("/movements", ledgerHandler.Movements)

	conversionHandler := NewConversionHandler(deps.Conversion, deps.Log)
	conversion := api.Group("/conversion")
	conversion.Post("/net", conversionHandler.Net)
	conversion.Post("/gross", conversionHandler.Gross)
}
