package handlers

import (
	"fmt"

	"warung/internal/models"
	"warung/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	log      *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validator.Validate, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
		log:      log,
	}
}

// RegisterRoutes registers the public catalog routes and the protected
// management routes. protected is applied to mutations only.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, protected fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", protected, h.HandleCreateProduct)
	productRoutes.Put("/:id", protected, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", protected, h.HandleDeleteProduct)
}

// ProductRequest is the body of create and update calls. Price accepts a JSON
// number or string.
type ProductRequest struct {
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	Price    *decimal.Decimal `json:"price" validate:"required"`
	ImageURL string           `json:"image_url" validate:"omitempty,url,max=500"`
}

// parse writes the error response itself; a nil request means it did.
func (h *ProductHandler) parse(c *fiber.Ctx) (*ProductRequest, error) {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, validationFailed(c, err)
	}
	return &req, nil
}

// HandleGetProducts lists the catalog, filtered by ?search= when given.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), c.Query("search"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if req == nil {
		return err
	}

	product := models.Product{Name: req.Name, Price: *req.Price, ImageURL: req.ImageURL}
	if err := h.service.CreateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, h.log, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the name, price and image of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if req == nil {
		return err
	}

	product := models.Product{ID: c.Params("id"), Name: req.Name, Price: *req.Price, ImageURL: req.ImageURL}
	if err := h.service.UpdateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, h.log, "Could not update product", err)
	}
	updated, err := h.service.GetProductByID(c.UserContext(), product.ID)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve product", err)
	}
	return c.JSON(updated)
}

// HandleDeleteProduct removes a product from the catalog. Cart lines that
// reference it stay and count as zero.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, h.log, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", id),
	})
}
