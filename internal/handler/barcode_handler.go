package handler

import (
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BarcodeHandler struct {
	service service.BarcodeService
}

func NewBarcodeHandler(s service.BarcodeService) *BarcodeHandler {
	return &BarcodeHandler{service: s}
}

type generateBarcodesRequest struct {
	Count int `json:"count"`
}

// GenerateBarcodes pre-allocates a batch of pool codes
// POST /api/v1/barcodes/generate
func (h *BarcodeHandler) GenerateBarcodes(c *fiber.Ctx) error {
	var req generateBarcodesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	barcodes, err := h.service.Generate(c.Context(), req.Count)
	if err != nil {
		return businessError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Barcodes generated",
		"count":   len(barcodes),
		"data":    barcodes,
	})
}

// GetBarcodeStats reports pool counts per status
// GET /api/v1/barcodes/stats
func (h *BarcodeHandler) GetBarcodeStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}
