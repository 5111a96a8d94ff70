package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lotcast/lotcast/internal/service"
	"github.com/lotcast/lotcast/internal/transfer"
)

type PublishHandler struct {
	s service.PublishService
}

func NewPublishHandler(service service.PublishService) *PublishHandler {
	return &PublishHandler{s: service}
}

// PublishNow posts immediately to every selected platform and returns one
// result per platform. Partial failure is a normal response, not an error
// status.
func (h *PublishHandler) PublishNow(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)

	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	results, err := h.s.Publish(c.Context(), dealershipId, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

func (h *PublishHandler) ListPosts(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	vehicleId := c.QueryInt("vehicle_id", 0)

	if vehicleId != 0 {
		posts, err := h.s.VehicleHistory(c.Context(), dealershipId, int64(vehicleId))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to list posts",
			})
		}

		return c.Status(fiber.StatusOK).JSON(posts)
	}

	posts, err := h.s.History(c.Context(), dealershipId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}
