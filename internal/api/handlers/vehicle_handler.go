package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lotcast/lotcast/internal/service"
	"github.com/lotcast/lotcast/internal/transfer"
)

type VehicleHandler struct {
	vs service.VehicleService
	ls service.LifecycleService
}

func NewVehicleHandler(vs service.VehicleService, ls service.LifecycleService) *VehicleHandler {
	return &VehicleHandler{
		vs: vs,
		ls: ls,
	}
}

func (h *VehicleHandler) CreateVehicle(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)

	var vc transfer.VehicleCreation
	if err := c.BodyParser(&vc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	vehicleID, err := h.vs.Create(c.Context(), dealershipId, &vc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": vehicleID,
	})
}

func (h *VehicleHandler) ListVehicles(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	vehicleId := c.QueryInt("id", 0)

	if vehicleId != 0 {
		vehicle, err := h.vs.VehicleInfo(c.Context(), dealershipId, int64(vehicleId))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get vehicle",
			})
		}

		return c.Status(fiber.StatusOK).JSON(vehicle)
	}

	vehicles, err := h.vs.List(c.Context(), dealershipId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list vehicles",
		})
	}

	return c.Status(fiber.StatusOK).JSON(vehicles)
}

func (h *VehicleHandler) ArchiveVehicle(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	vehicleId := c.QueryInt("id", 0)

	err := h.vs.Archive(c.Context(), dealershipId, int64(vehicleId))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to archive vehicle",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

// AdvanceStage moves the vehicle to the next stage in order and records the
// transition event.
func (h *VehicleHandler) AdvanceStage(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	vehicleId, err := c.ParamsInt("id", 0)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid vehicle id",
		})
	}

	var sc transfer.StageChange
	if err := c.BodyParser(&sc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	vehicle, err := h.ls.AdvanceStage(c.Context(), dealershipId, int64(vehicleId), sc.Notes)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(vehicle)
}

// SetStage is the escape hatch for corrections; any stage is allowed,
// including going backward.
func (h *VehicleHandler) SetStage(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	vehicleId, err := c.ParamsInt("id", 0)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid vehicle id",
		})
	}

	var sc transfer.StageChange
	if err := c.BodyParser(&sc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	vehicle, err := h.ls.SetStage(c.Context(), dealershipId, int64(vehicleId), sc.Stage, sc.Notes)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(vehicle)
}

func (h *VehicleHandler) ListEvents(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	vehicleId, err := c.ParamsInt("id", 0)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid vehicle id",
		})
	}

	events, err := h.ls.Events(c.Context(), dealershipId, int64(vehicleId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list events",
		})
	}

	return c.Status(fiber.StatusOK).JSON(events)
}

func (h *VehicleHandler) SuggestedActions(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	vehicleId, err := c.ParamsInt("id", 0)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid vehicle id",
		})
	}

	vehicle, err := h.vs.VehicleInfo(c.Context(), dealershipId, int64(vehicleId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get vehicle",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"stage":   vehicle.Status,
		"actions": h.ls.SuggestedActions(vehicle.Status),
	})
}
