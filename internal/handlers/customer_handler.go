package handlers

import (
	"warung/internal/middleware"
	"warung/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CustomerHandler serves the caller's profile.
type CustomerHandler struct {
	service *services.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service *services.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, log: log}
}

func (h *CustomerHandler) RegisterRoutes(router fiber.Router, required fiber.Handler) {
	router.Get("/me", required, h.HandleGetProfile)
}

// HandleGetProfile returns the customer linked to the token.
func (h *CustomerHandler) HandleGetProfile(c *fiber.Ctx) error {
	customer, err := h.service.GetProfile(c.UserContext(), middleware.CustomerID(c))
	if err != nil {
		return respondError(c, h.log, "Could not load profile", err)
	}
	return c.JSON(fiber.Map{
		"id":       customer.ID,
		"name":     customer.DisplayName(),
		"email":    customer.Email,
		"username": c.Locals("username"),
	})
}
