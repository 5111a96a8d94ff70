package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lotcast/lotcast/internal/service"
)

type OperatorHandler struct {
	s service.OperatorService
}

func NewOperatorHandler(service service.OperatorService) *OperatorHandler {
	return &OperatorHandler{s: service}
}

func (h *OperatorHandler) GetOperatorInfo(c *fiber.Ctx) error {
	operatorId := GetOperatorID(c)

	operatorInfo, err := h.s.GetOperatorInfo(c.Context(), operatorId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(operatorInfo)
}
