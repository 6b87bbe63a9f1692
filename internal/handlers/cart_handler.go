package handlers

import (
	"warung/internal/middleware"
	"warung/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler serves the cart view and cart line updates.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
	log      *zap.Logger
}

func NewCartHandler(service *services.CartService, validate *validator.Validate, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validate,
		log:      log,
	}
}

// RegisterRoutes mounts GET /cart behind optional and POST /cart/items behind
// required authentication.
func (h *CartHandler) RegisterRoutes(router fiber.Router, optional, required fiber.Handler) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", optional, h.HandleGetCart)
	cartRoutes.Post("/items", required, h.HandleUpdateItem)
}

type cartView struct {
	Items     []lineView `json:"items"`
	CartTotal string     `json:"cart_total"`
	CartItems int        `json:"cart_items"`
}

func newCartView(cart services.Cart) cartView {
	return cartView{
		Items:     linesView(cart.Lines()),
		CartTotal: cart.Total().StringFixed(2),
		CartItems: cart.ItemCount(),
	}
}

// HandleGetCart renders the caller's cart; guests get an empty one.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.CustomerID(c))
	if err != nil {
		return respondError(c, h.log, "Could not load cart", err)
	}
	return c.JSON(newCartView(cart))
}

// UpdateItemRequest is the body of POST /cart/items.
type UpdateItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=add remove"`
}

// HandleUpdateItem adds or removes one unit of a product.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	quantity, err := h.service.UpdateItem(c.UserContext(), middleware.CustomerID(c), req.ProductID, services.CartAction(req.Action))
	if err != nil {
		return respondError(c, h.log, "Could not update cart", err)
	}
	return c.JSON(fiber.Map{
		"message":  "Item was " + pastTense(req.Action),
		"quantity": quantity,
	})
}

func pastTense(action string) string {
	if action == string(services.ActionRemove) {
		return "removed"
	}
	return "added"
}
