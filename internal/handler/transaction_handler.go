package handler

import (
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.CheckoutService
}

func NewTransactionHandler(s service.CheckoutService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Checkout records a sale
// POST /api/v1/transactions
func (h *TransactionHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Checkout(c.Context(), &req, getUserID(c))
	if err != nil {
		return businessError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": result})
}

// GetTransactions lists sales, newest first
// GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetAllTransactions(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

// GetTransaction fetches one sale with its items
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetTransactionByID(c.Context(), id)
	if err != nil {
		return businessError(c, err)
	}
	return c.JSON(tx)
}
