package order

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/services"
	"github.com/nmdong/VietThanhProductions/utils/request"
	"github.com/nmdong/VietThanhProductions/utils/response"
	"github.com/nmdong/VietThanhProductions/utils/validation"
)

// OrderHandler handles order-related requests
type OrderHandler struct {
	orders    *services.OrderService
	validator *validation.Validator
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		validator: validation.NewValidator(),
	}
}

// ListOrders handles GET /orders, optionally filtered by ?customer=
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var (
		orders interface{}
		err    error
	)
	if customer := c.Query("customer"); customer != "" {
		orders, err = h.orders.ListByCustomer(ctx, customer)
	} else {
		orders, err = h.orders.List(ctx)
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch orders", err)
	}
	return response.Success(c, fiber.Map{"orders": orders})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return h.failure(c, err)
	}
	return response.Success(c, fiber.Map{"order": order})
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req services.OrderInput
	if _, err := request.Bind(c, "order", &req); err != nil {
		return err
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	order, err := h.orders.Create(c.UserContext(), req)
	if err != nil {
		return h.failure(c, err)
	}

	slog.Info("order created",
		"request_id", response.FromContext(c).ID,
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"items", len(order.Items),
	)
	return response.Created(c, fiber.Map{"order": order})
}

// UpdateOrder handles PUT /orders/:id
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return err
	}

	var req services.OrderStatusUpdate
	if _, err := request.Bind(c, "update", &req); err != nil {
		return err
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return h.failure(c, err)
	}
	return response.Success(c, fiber.Map{"order": order})
}

// AddItem handles POST /orders/:id/items
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return err
	}

	var req services.OrderItemInput
	if _, err := request.Bind(c, "add_item", &req); err != nil {
		return err
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	order, err := h.orders.AddItem(c.UserContext(), id, req)
	if err != nil {
		return h.failure(c, err)
	}
	return response.Created(c, fiber.Map{"order": order})
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return err
	}

	if _, err := request.Bind(c, "remove", nil); err != nil {
		return err
	}

	if err := h.orders.Delete(c.UserContext(), id); err != nil {
		return h.failure(c, err)
	}

	slog.Info("order removed",
		"request_id", response.FromContext(c).ID,
		"order_id", id,
	)
	return response.Success(c, fiber.Map{"deleted": true, "id": id})
}

func (h *OrderHandler) failure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		return response.NotFound(c, response.CodeOrderNotFound, "Order not found")
	case errors.Is(err, services.ErrProductNotFound):
		return response.NotFound(c, response.CodeProductNotFound, "Product not found")
	case errors.Is(err, services.ErrOrderExists):
		return response.Conflict(c, response.CodeOrderExists, "Order number already exists")
	case errors.Is(err, services.ErrOrderWithoutItem):
		return response.BadRequest(c, response.CodeValidationError, err.Error())
	default:
		return response.InternalServerError(c, "Order operation failed", err)
	}
}
