package handler

import (
	"errors"

	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to read user info from JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// businessError maps service errors to HTTP status plus a stable error code,
// so the client can react differently to a restock prompt vs. a
// generate-barcodes prompt.
func businessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "code": "EMPTY_CART"})
	case errors.Is(err, service.ErrProductNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error(), "code": "PRODUCT_NOT_FOUND"})
	case errors.Is(err, service.ErrTransactionNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error(), "code": "TRANSACTION_NOT_FOUND"})
	case errors.Is(err, service.ErrCategoryNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error(), "code": "CATEGORY_NOT_FOUND"})
	case errors.Is(err, service.ErrProductInactive):
		return c.Status(409).JSON(fiber.Map{"error": err.Error(), "code": "PRODUCT_INACTIVE"})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{"error": err.Error(), "code": "INSUFFICIENT_STOCK"})
	case errors.Is(err, service.ErrNoBarcodesAvailable):
		return c.Status(409).JSON(fiber.Map{"error": err.Error(), "code": "NO_BARCODES_AVAILABLE"})
	case errors.Is(err, service.ErrDuplicateBarcode):
		return c.Status(409).JSON(fiber.Map{"error": err.Error(), "code": "DUPLICATE_BARCODE"})
	case errors.Is(err, service.ErrPriceBelowCost):
		return c.Status(422).JSON(fiber.Map{"error": err.Error(), "code": "PRICE_BELOW_COST"})
	case errors.Is(err, service.ErrInvalidBatchSize):
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "code": "INVALID_BATCH_SIZE"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": err.Error(), "code": "INVALID_CREDENTIALS"})
	case errors.Is(err, service.ErrSessionSuperseded):
		return c.Status(401).JSON(fiber.Map{"error": err.Error(), "code": "SESSION_SUPERSEDED"})
	case errors.Is(err, service.ErrSessionTimeout):
		return c.Status(401).JSON(fiber.Map{"error": err.Error(), "code": "SESSION_TIMEOUT"})
	case errors.Is(err, service.ErrUserInactive):
		return c.Status(403).JSON(fiber.Map{"error": err.Error(), "code": "USER_INACTIVE"})
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error(), "code": "USER_NOT_FOUND"})
	case errors.Is(err, service.ErrWrongPassword):
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "code": "WRONG_PASSWORD"})
	case errors.Is(err, service.ErrEmailExists):
		return c.Status(409).JSON(fiber.Map{"error": err.Error(), "code": "EMAIL_EXISTS"})
	default:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
}
