package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	apporder "github.com/jhoicas/pedidos-api/internal/application/order"
	"github.com/jhoicas/pedidos-api/internal/application/stock"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/event"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/events"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/mail"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/observability/prometrics"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend de persistencia: PostgreSQL, o memoria en development sin DATABASE_URL.
	var (
		txRunner       apporder.TxRunner
		productRepo    repository.ProductRepository
		ingredientRepo repository.IngredientRepository
		orderRepo      repository.OrderRepository
	)
	if cfg.DB.DatabaseURL == "" && cfg.App.Env == "development" {
		store := memory.NewStore()
		txRunner = memory.NewTxRunner(store)
		productRepo = memory.NewProductRepository(store)
		ingredientRepo = memory.NewIngredientRepository(store)
		orderRepo = memory.NewOrderRepository(store)
		if err := seedDevCatalog(productRepo, ingredientRepo); err != nil {
			log.Fatal().Err(err).Msg("seed de catálogo en memoria")
		}
		log.Warn().Msg("sin DATABASE_URL: usando store en memoria con catálogo demo")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		productRepo = postgres.NewProductRepository(pool)
		ingredientRepo = postgres.NewIngredientRepository(pool)
		orderRepo = postgres.NewOrderRepository(pool)
	}

	metrics := prometrics.New(nil)

	// Sender de alertas: SMTP si hay host configurado, si no solo log.
	var sender stock.AlertSender
	if cfg.Mail.Host != "" {
		sender = mail.NewGomailSender(cfg.Mail, metrics, log)
	} else {
		sender = mail.NewLogSender(metrics, log)
	}

	// Bus de eventos post-commit con suscripciones explícitas.
	bus := events.NewBus(log)
	notifier := stock.NewLowStockNotifier(ingredientRepo, sender, log)
	bus.Subscribe(event.NameStockUpdated, notifier.Handle)
	bus.Subscribe(event.NameOrderPlaced, func(ctx context.Context, e event.Event) error {
		placed, ok := e.(event.OrderPlaced)
		if !ok {
			return nil
		}
		log.Info().Int64("order_id", placed.Order.ID).Msg("evento order.placed despachado")
		return nil
	})
	bus.Start(ctx)
	defer bus.Stop()

	placeOrderUC := apporder.NewPlaceOrderUseCase(txRunner, bus, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Orders:  httpRouter.NewOrderHandler(placeOrderUC, orderRepo, metrics, log),
		Catalog: httpRouter.NewCatalogHandler(productRepo, ingredientRepo, log),
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

// seedDevCatalog carga el catálogo demo de la hamburguesería en el store en
// memoria (mismos valores que cmd/seed para PostgreSQL).
func seedDevCatalog(productRepo repository.ProductRepository, ingredientRepo repository.IngredientRepository) error {
	beef := &entity.Ingredient{Name: "Beef", Stock: decimal.NewFromInt(20000), Available: decimal.NewFromInt(20000)}
	cheese := &entity.Ingredient{Name: "Cheese", Stock: decimal.NewFromInt(5000), Available: decimal.NewFromInt(5000)}
	onion := &entity.Ingredient{Name: "Onion", Stock: decimal.NewFromInt(1000), Available: decimal.NewFromInt(1000)}
	for _, ingredient := range []*entity.Ingredient{beef, cheese, onion} {
		if err := ingredientRepo.Create(ingredient); err != nil {
			return err
		}
	}

	burger := &entity.Product{
		Name: "Burger",
		Ingredients: []entity.ProductIngredient{
			{IngredientID: beef.ID, Amount: decimal.NewFromInt(150)},
			{IngredientID: cheese.ID, Amount: decimal.NewFromInt(30)},
			{IngredientID: onion.ID, Amount: decimal.NewFromInt(20)},
		},
	}
	return productRepo.Create(burger)
}
