package handlers

import (
	"net/http"
	"time"

	"paperstore/internal/auth"
	"paperstore/internal/services"
	"paperstore/pkg/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler streams the live order feed to the admin console
type WebSocketHandler struct {
	authService *auth.Service
	feed        *services.OrderFeed
	upgrader    websocket.Upgrader
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(authService *auth.Service, feed *services.OrderFeed) *WebSocketHandler {
	return &WebSocketHandler{
		authService: authService,
		feed:        feed,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket godoc
// @Summary Live order feed
// @Description Stream order and payment events to an authenticated staff connection
// @Tags ws
// @Param token query string true "Access token"
// @Router /ws [get]
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	// Browsers cannot set headers on websocket dials, so the token rides
	// the query string.
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	if claims.Role == models.RoleCustomer {
		return echo.NewHTTPError(http.StatusForbidden, "Staff access required")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return err
	}
	defer conn.Close()

	events, cancel := h.feed.Subscribe()
	defer cancel()

	log.Info().Str("user", claims.Email).Msg("order feed connected")

	// Reader drains client frames so closes are noticed promptly
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Debug().Err(err).Msg("order feed write failed")
				return nil
			}
		case <-ping.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-done:
			return nil
		}
	}
}
