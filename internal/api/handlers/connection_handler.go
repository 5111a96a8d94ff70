package handlers

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	config "github.com/lotcast/lotcast/configs"
	"github.com/lotcast/lotcast/internal/service"
	"github.com/lotcast/lotcast/pkg/utils"
)

type ConnectionHandler struct {
	s   service.ConnectionService
	cfg config.Config
}

func NewConnectionHandler(cfg config.Config, service service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{s: service, cfg: cfg}
}

func (h *ConnectionHandler) ConnectPlatform(c *fiber.Ctx) error {
	authURL, err := h.s.AuthURL(c.Context(), c.Params("platform"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Redirect(authURL)
}

// CallbackHandler runs outside the auth middleware; the operator's session
// cookie carries the dealership identity through the redirect.
func (h *ConnectionHandler) CallbackHandler(c *fiber.Ctx) error {
	code := c.Query("code")
	platform := c.Params("platform")

	tokenString := c.Cookies(h.cfg.CookieName)
	claims, err := utils.ValidateToken(h.cfg.SecretKey, tokenString)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to validate operator",
		})
	}

	dealershipID, err := strconv.ParseInt(claims.DealershipID, 10, 64)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to validate operator",
		})
	}

	err = h.s.Callback(c.Context(), dealershipID, platform, code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	redirectURL := fmt.Sprintf("%s/dashboard/connections", h.cfg.FrontendURL)
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *ConnectionHandler) ListConnections(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)

	connections, err := h.s.List(c.Context(), dealershipId)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch platform connections",
		})
	}

	return c.Status(fiber.StatusOK).JSON(connections)
}

func (h *ConnectionHandler) ListTargets(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	platform := c.Params("platform")

	targets, err := h.s.ListTargets(c.Context(), dealershipId, platform)
	if err != nil {
		if err == service.ErrAuthExpired {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(targets)
}

func (h *ConnectionHandler) SelectTarget(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	platform := c.Params("platform")

	var body struct {
		TargetID   string `json:"target_id"`
		TargetName string `json:"target_name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.s.SelectTarget(c.Context(), dealershipId, platform, body.TargetID, body.TargetName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ConnectionHandler) DisconnectPlatform(c *fiber.Ctx) error {
	dealershipId := GetDealershipID(c)
	platform := c.Params("platform")

	err := h.s.Disconnect(c.Context(), dealershipId, platform)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to disconnect platform",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
