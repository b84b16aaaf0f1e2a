package handler

import (
	"strconv"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// CreateProduct handles product creation with barcode allocation
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(c.Context(), &req, getUserID(c))
	if err != nil {
		return businessError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetProducts lists products
// GET /api/v1/products?active=true&low_stock=true&category_id=<uuid>
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		ActiveOnly: c.QueryBool("active", false),
		LowStock:   c.QueryBool("low_stock", false),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
		}
		filter.CategoryID = &id
	}

	products, err := h.service.GetAllProducts(c.Context(), filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GetProduct fetches one product by id
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProductByID(c.Context(), id)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(product)
}

// GetProductByBarcode is the scanner lookup used at the register
// GET /api/v1/products/barcode/:code
func (h *ProductHandler) GetProductByBarcode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Barcode is required"})
	}

	product, err := h.service.GetProductByBarcode(c.Context(), code)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(product)
}

// UpdateProduct edits a product
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(c.Context(), id, &req, getUserID(c))
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

// Restock increments stock
// POST /api/v1/products/:id/restock
func (h *ProductHandler) Restock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Restock(c.Context(), id, &req, getUserID(c))
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product restocked", "data": product})
}

// DeleteProduct soft-deletes a product
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeactivateProduct(c.Context(), id, getUserID(c)); err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deactivated"})
}

// GetStockLogs lists the audit trail of a product's stock changes
// GET /api/v1/products/:id/stock-logs?limit=50
func (h *ProductHandler) GetStockLogs(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	logs, err := h.service.GetStockLogs(c.Context(), id, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock logs"})
	}
	return c.JSON(logs)
}

// CreateCategory adds a product category
// POST /api/v1/categories
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateCategory(c.Context(), &category, getUserID(c)); err != nil {
		return businessError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}

// GetCategories lists all categories
// GET /api/v1/categories
func (h *ProductHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(categories)
}
