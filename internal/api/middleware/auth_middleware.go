package middleware

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	config "github.com/lotcast/lotcast/configs"
	"github.com/lotcast/lotcast/internal/service"
	"github.com/lotcast/lotcast/pkg/utils"
)

type AuthMiddleware struct {
	s   service.ApiKeyService
	os  service.OperatorService
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, keys service.ApiKeyService, operators service.OperatorService) *AuthMiddleware {
	return &AuthMiddleware{s: keys, os: operators, cfg: cfg}
}

func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		apiKey := c.Query("api_key")

		if tokenString == "" && apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing Keys or cookies",
			})
		}

		if apiKey != "" {
			operatorID, err := m.s.GetOperatorID(c.Context(), apiKey)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			operator, err := m.os.GetOperatorInfo(c.Context(), operatorID)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			c.Locals("operator_id", fmt.Sprintf("%d", operatorID))
			c.Locals("dealership_id", fmt.Sprintf("%d", operator.DealershipID))
		} else if tokenString != "" {

			claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString)
			if err != nil {
				c.Cookie(&fiber.Cookie{
					Name:   m.cfg.CookieName,
					Value:  "",
					Path:   "/",
					MaxAge: -1, // Delete cookie
				})

				log.Printf("Token validation failed: %v", err)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid or expired token",
				})
			}

			c.Locals("operator_id", claims.OperatorID)
			c.Locals("dealership_id", claims.DealershipID)
		}
		return c.Next()
	}
}
