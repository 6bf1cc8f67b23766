// seed aplica el esquema y carga el catálogo inicial de la hamburguesería:
// ingredientes con su capacidad nominal y el producto Burger con sus
// cantidades por unidad.
//
// Uso: go run ./cmd/seed
// Requiere DATABASE_URL o las variables DB_* (ver pkg/config).
package main

import (
	"context"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

const migrationPath = "internal/infrastructure/postgres/migrations/001_init.sql"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	schema, err := os.ReadFile(migrationPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", migrationPath).Msg("leer migración")
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("esquema aplicado")

	ingredientRepo := postgres.NewIngredientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	// Cantidades en gramos; stock es la capacidad nominal (inmutable después del seed)
	beef := &entity.Ingredient{Name: "Beef", Stock: decimal.NewFromInt(20000), Available: decimal.NewFromInt(20000)}
	cheese := &entity.Ingredient{Name: "Cheese", Stock: decimal.NewFromInt(5000), Available: decimal.NewFromInt(5000)}
	onion := &entity.Ingredient{Name: "Onion", Stock: decimal.NewFromInt(1000), Available: decimal.NewFromInt(1000)}
	for _, ingredient := range []*entity.Ingredient{beef, cheese, onion} {
		if err := ingredientRepo.Create(ingredient); err != nil {
			log.Fatal().Err(err).Str("ingredient", ingredient.Name).Msg("seed de ingrediente")
		}
		log.Info().Int64("id", ingredient.ID).Str("name", ingredient.Name).Msg("ingrediente creado")
	}

	burger := &entity.Product{
		Name: "Burger",
		Ingredients: []entity.ProductIngredient{
			{IngredientID: beef.ID, Amount: decimal.NewFromInt(150)},
			{IngredientID: cheese.ID, Amount: decimal.NewFromInt(30)},
			{IngredientID: onion.ID, Amount: decimal.NewFromInt(20)},
		},
	}
	if err := productRepo.Create(burger); err != nil {
		log.Fatal().Err(err).Msg("seed de producto")
	}
	log.Info().Int64("id", burger.ID).Str("name", burger.Name).Msg("producto creado")

	log.Info().Msg("catálogo inicial cargado")
}
