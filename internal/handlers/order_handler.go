package handlers

import (
	"time"

	"warung/internal/middleware"
	"warung/internal/models"
	"warung/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderHandler handles checkout and order history.
type OrderHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
	validate *validator.Validate
	log      *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, orders *services.OrderService, validate *validator.Validate, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		validate: validate,
		log:      log,
	}
}

// RegisterRoutes registers checkout behind optional authentication, so guests
// get a readable 401 body, and the history routes behind required auth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, optional, required fiber.Handler) {
	router.Post("/checkout", optional, h.HandleCheckout)

	orderRoutes := router.Group("/orders", required)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// CheckoutRequest is the body of POST /checkout. Total is the client's view of
// the cart total, compared exactly against the server's; it may be sent as a
// JSON number or string.
type CheckoutRequest struct {
	Form struct {
		Total *decimal.Decimal `json:"total" validate:"required"`
	} `json:"form"`
	Shipping *ShippingRequest `json:"shipping"`
}

// ShippingRequest fields are stored as sent, cut to the column width.
type ShippingRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

const shippingFieldMax = 200

func clip(s string) string {
	r := []rune(s)
	if len(r) <= shippingFieldMax {
		return s
	}
	return string(r[:shippingFieldMax])
}

// HandleCheckout finalizes the caller's open order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	customerID := middleware.CustomerID(c)
	if customerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User is not logged in",
			"error":   "not_authenticated",
		})
	}

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	submitted := *req.Form.Total

	var shipping *services.ShippingInfo
	if req.Shipping != nil {
		shipping = &services.ShippingInfo{
			Address: clip(req.Shipping.Address),
			City:    clip(req.Shipping.City),
			State:   clip(req.Shipping.State),
			Zipcode: clip(req.Shipping.Zipcode),
		}
	}

	result, err := h.checkout.Checkout(c.UserContext(), customerID, submitted, shipping)
	if err != nil {
		return respondError(c, h.log, "Checkout failed", err)
	}

	switch r := result.(type) {
	case services.CheckoutCompleted:
		return c.JSON(fiber.Map{
			"status":         "completed",
			"message":        "Payment submitted",
			"order_id":       r.OrderID,
			"transaction_id": r.TransactionID,
			"total":          r.Total.StringFixed(2),
			"cart_items":     r.ItemCount,
		})
	case services.CheckoutMismatched:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":         "mismatched",
			"message":        "Submitted total does not match the cart",
			"order_id":       r.OrderID,
			"transaction_id": r.TransactionID,
			"expected":       r.Expected.StringFixed(2),
			"submitted":      r.Submitted.String(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Checkout failed",
		})
	}
}

type orderView struct {
	ID            string     `json:"id"`
	DateOrdered   time.Time  `json:"date_ordered"`
	Complete      bool       `json:"complete"`
	TransactionID *string    `json:"transaction_id"`
	Items         []lineView `json:"items"`
	CartTotal     string     `json:"cart_total"`
	CartItems     int        `json:"cart_items"`
}

func newOrderView(order *models.Order) orderView {
	return orderView{
		ID:            order.ID,
		DateOrdered:   order.DateOrdered,
		Complete:      order.Complete,
		TransactionID: order.TransactionID,
		Items:         linesView(order.Items),
		CartTotal:     order.CartTotal().StringFixed(2),
		CartItems:     order.CartItems(),
	}
}

// HandleGetOrders lists the caller's completed orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListCompletedOrders(c.UserContext(), middleware.CustomerID(c))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve orders", err)
	}
	views := make([]orderView, 0, len(orders))
	for i := range orders {
		views = append(views, newOrderView(&orders[i]))
	}
	return c.JSON(views)
}

// HandleGetOrderByID retrieves one of the caller's orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.orders.GetOrder(c.UserContext(), middleware.CustomerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve order", err)
	}
	return c.JSON(newOrderView(order))
}
