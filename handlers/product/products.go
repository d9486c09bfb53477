package product

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/services"
	"github.com/nmdong/VietThanhProductions/utils/request"
	"github.com/nmdong/VietThanhProductions/utils/response"
	"github.com/nmdong/VietThanhProductions/utils/validation"
)

// ProductHandler handles product-related requests
type ProductHandler struct {
	products  *services.ProductService
	validator *validation.Validator
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{
		products:  products,
		validator: validation.NewValidator(),
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch products", err)
	}
	return response.Success(c, fiber.Map{"products": products})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return h.failure(c, err)
	}
	return response.Success(c, fiber.Map{"product": product})
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req services.ProductInput
	if _, err := request.Bind(c, "create", &req); err != nil {
		return err
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	product, err := h.products.Create(c.UserContext(), req)
	if err != nil {
		return h.failure(c, err)
	}

	slog.Info("product created",
		"request_id", response.FromContext(c).ID,
		"product_id", product.ID,
		"code", product.Code,
	)
	return response.Created(c, fiber.Map{"product": product})
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return err
	}

	var req services.ProductUpdate
	if _, err := request.Bind(c, "update_product", &req); err != nil {
		return err
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	product, err := h.products.Update(c.UserContext(), id, req)
	if err != nil {
		return h.failure(c, err)
	}
	return response.Success(c, fiber.Map{"product": product})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := request.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.UserContext(), id); err != nil {
		return h.failure(c, err)
	}
	return response.Success(c, fiber.Map{"deleted": true, "id": id})
}

func (h *ProductHandler) failure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return response.NotFound(c, response.CodeProductNotFound, "Product not found")
	case errors.Is(err, services.ErrProductExists):
		return response.Conflict(c, response.CodeProductExists, "Product code already exists")
	default:
		return response.InternalServerError(c, "Product operation failed", err)
	}
}
