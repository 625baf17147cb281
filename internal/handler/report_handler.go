package handler

import (
	"strconv"

	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetInventory returns the current-inventory report with stock valuation and
// low-stock flags.
func (h *ReportHandler) GetInventory(c *fiber.Ctx) error {
	lines, err := h.service.CurrentInventory()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(lines)
}

func (h *ReportHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.InventoryStats()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(stats)
}

func (h *ReportHandler) GetMovements(c *fiber.Ctx) error {
	movements, err := h.service.MovementHistory()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movements)
}

func (h *ReportHandler) GetMovement(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid movement ID"})
	}

	movement, err := h.service.MovementByID(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movement)
}

func (h *ReportHandler) GetProductMovements(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	movements, err := h.service.MovementsForProduct(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movements)
}

func (h *ReportHandler) GetSupplierMovements(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	movements, err := h.service.MovementsForSupplier(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movements)
}

// GetMovementSeries returns daily inbound/outbound aggregates for charts
// Query params: days (default 7)
func (h *ReportHandler) GetMovementSeries(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.DailyMovementSeries(days)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
