package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lotcast/lotcast/internal/service"
	"github.com/lotcast/lotcast/internal/transfer"
)

type CaptionHandler struct {
	s service.CaptionService
}

func NewCaptionHandler(service service.CaptionService) *CaptionHandler {
	return &CaptionHandler{s: service}
}

// GenerateCaption synthesizes a draft for a lifecycle event. On generation
// failure the caller still gets a usable fallback draft.
func (h *CaptionHandler) GenerateCaption(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)

	var cg transfer.CaptionGeneration
	if err := c.BodyParser(&cg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	caption, err := h.s.GenerateDraft(c.Context(), dealershipId, cg.EventID, cg.TemplateID, cg.OperatorNotes)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(caption)
}

func (h *CaptionHandler) GetDraft(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	eventId := c.QueryInt("event_id", 0)

	caption, platformPosts, err := h.s.DraftForEvent(c.Context(), dealershipId, int64(eventId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get draft",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"caption":        caption,
		"platform_posts": platformPosts,
	})
}

func (h *CaptionHandler) EditDraft(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	captionId := c.QueryInt("id", 0)

	var edit transfer.CaptionEdit
	if err := c.BodyParser(&edit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.s.EditDraft(c.Context(), dealershipId, int64(captionId), edit.Body, edit.Hashtags)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
