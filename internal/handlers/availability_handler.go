package handlers

import (
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
	availabilityws "github.com/saeid-a/KickoffCoachWeb/internal/websocket"
)

type AvailabilityHandler struct {
	hub *availabilityws.Hub
}

func NewAvailabilityHandler(hub *availabilityws.Hub) *AvailabilityHandler {
	return &AvailabilityHandler{hub: hub}
}

// Upgrade validates the websocket handshake before HandleWebSocket takes over.
func (h *AvailabilityHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	date := c.Query("date")
	if _, err := time.Parse(services.DateLayout, date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}

	c.Locals("date", date)
	return c.Next()
}

func (h *AvailabilityHandler) HandleWebSocket(conn *websocket.Conn) {
	date, _ := conn.Locals("date").(string)
	client := availabilityws.NewClient(h.hub, conn, date)

	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}
	go client.WritePump()
	client.ReadPump()
}
