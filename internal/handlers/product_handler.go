package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	// Registered before /:id so that "db" is never taken for an id.
	productRoutes.Get("/db/seed", h.HandleSeedProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var draft models.ProductDraft
	if err := c.BodyParser(&draft); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), &draft)
	if err != nil {
		return productError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), productID(c))
	if err != nil {
		return productError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces an existing product with the request body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var draft models.ProductDraft
	if err := c.BodyParser(&draft); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), productID(c), &draft)
	if err != nil {
		return productError(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and responds with the removed record.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.UserContext(), productID(c))
	if err != nil {
		return productError(c, err, "Could not delete product")
	}
	return c.JSON(product)
}

// HandleSeedProducts deletes every product and inserts the sample catalog.
// The deletion is irreversible.
func (h *ProductHandler) HandleSeedProducts(c *fiber.Ctx) error {
	products, err := h.service.SeedProducts(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Seeding failed",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Seeding successful",
		"products": products,
	})
}

// productID copies the id route param, which fiber only guarantees for the
// lifetime of the handler.
func productID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

func invalidBody(c *fiber.Ctx, err error) error {
	zerolog.Ctx(c.UserContext()).Debug().Err(err).Msg("Error parsing product request body")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// productError maps service errors to responses. message is used for store
// failures only.
func productError(c *fiber.Ctx, err error, message string) error {
	var validationErr *repositories.ValidationError
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product Not Found",
		})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}
