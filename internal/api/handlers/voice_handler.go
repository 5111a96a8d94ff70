package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lotcast/lotcast/internal/service"
	"github.com/lotcast/lotcast/internal/transfer"
)

type VoiceHandler struct {
	vs service.VoiceService
	ts service.TemplateService
}

func NewVoiceHandler(vs service.VoiceService, ts service.TemplateService) *VoiceHandler {
	return &VoiceHandler{
		vs: vs,
		ts: ts,
	}
}

func (h *VoiceHandler) GetVoiceProfile(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)

	profile, err := h.vs.Get(c.Context(), dealershipId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get voice profile",
		})
	}

	// No profile yet is a valid state, not an error.
	if profile == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{})
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *VoiceHandler) SaveVoiceProfile(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)

	var update transfer.VoiceProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	profile, err := h.vs.Save(c.Context(), dealershipId, &update)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *VoiceHandler) CreateTemplate(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)

	var tu transfer.TemplateUpdate
	if err := c.BodyParser(&tu); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	templateID, err := h.ts.Create(c.Context(), dealershipId, &tu)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": templateID,
	})
}

func (h *VoiceHandler) ListTemplates(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	stage := c.Query("stage")

	templates, err := h.ts.List(c.Context(), dealershipId, stage)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list templates",
		})
	}

	return c.Status(fiber.StatusOK).JSON(templates)
}

func (h *VoiceHandler) UpdateTemplate(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	templateId := c.QueryInt("id", 0)

	var tu transfer.TemplateUpdate
	if err := c.BodyParser(&tu); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.ts.Update(c.Context(), dealershipId, int64(templateId), &tu)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *VoiceHandler) RemoveTemplate(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	templateId := c.QueryInt("id", 0)

	err := h.ts.Remove(c.Context(), dealershipId, int64(templateId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to delete template",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
