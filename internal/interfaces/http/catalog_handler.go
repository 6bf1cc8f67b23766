package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// CatalogHandler maneja la consulta de catálogo y el ledger de ingredientes.
type CatalogHandler struct {
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
	log            *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(productRepo repository.ProductRepository, ingredientRepo repository.IngredientRepository, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{productRepo: productRepo, ingredientRepo: ingredientRepo, log: log}
}

// ListProducts godoc
// @Summary      Listar productos con sus ingredientes por unidad
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.ProductDTO
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.productRepo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("listar productos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal error.", Message: "Could not list products.",
		})
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.NewProductDTO(p))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ListIngredients godoc
// @Summary      Listar el ledger de ingredientes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.IngredientDTO
// @Router       /api/ingredients [get]
func (h *CatalogHandler) ListIngredients(c *fiber.Ctx) error {
	ingredients, err := h.ingredientRepo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("listar ingredientes")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal error.", Message: "Could not list ingredients.",
		})
	}
	out := make([]dto.IngredientDTO, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, dto.NewIngredientDTO(i))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Restock godoc
// @Summary      Reponer un ingrediente (reset externo del flag low_stock)
// @Description  Fija available y limpia low_stock. No modifica stock: es la
//               capacidad nominal definida en el seed.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del ingrediente"
// @Param        body  body  dto.RestockRequest  true  "available"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/restock [put]
func (h *CatalogHandler) Restock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request.", Message: "Ingredient id must be a positive integer.",
		})
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil || in.Available.Cmp(decimal.Zero) < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request.", Message: "available must be >= 0.",
		})
	}

	if err := h.ingredientRepo.Restock(int64(id), in.Available); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Not found.", Message: "Ingredient does not exist.",
			})
		}
		h.log.Error().Err(err).Int("ingredient_id", id).Msg("reponer ingrediente")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal error.", Message: "Could not restock the ingredient.",
		})
	}

	h.log.Info().Int("ingredient_id", id).Str("available", in.Available.String()).Msg("ingrediente repuesto")
	return c.JSON(fiber.Map{"message": "ingredient restocked"})
}
