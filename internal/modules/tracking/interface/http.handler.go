package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"bistroPulseWs/internal/modules/tracking/domain"
	"bistroPulseWs/internal/modules/tracking/infrastructure"
	"bistroPulseWs/internal/shared/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewOrderTrackingHandler serves /ws/orders/:order_id. Each connection is
// bound to that order's topic for its whole life; a client tracking several
// orders opens one connection per order.
func NewOrderTrackingHandler(hub *infrastructure.Hub, validator auth.TokenValidator, opts infrastructure.ClientOptions) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID := strings.TrimSpace(c.Param("order_id"))
		if orderID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing order id")
		}
		return serveSubscriber(c, hub, validator, domain.OrderTopic(orderID), opts, nil)
	}
}

// NewRestaurantDashboardHandler serves /ws/restaurants/:restaurant_id, the
// dashboard stream carrying every change to that restaurant's orders.
func NewRestaurantDashboardHandler(hub *infrastructure.Hub, validator auth.TokenValidator, opts infrastructure.ClientOptions) echo.HandlerFunc {
	return func(c echo.Context) error {
		restaurantID := strings.TrimSpace(c.Param("restaurant_id"))
		if restaurantID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing restaurant id")
		}
		return serveSubscriber(c, hub, validator, domain.RestaurantTopic(restaurantID), opts, nil)
	}
}

// NewTestHandler serves /ws/test, the diagnostic channel: a greeting frame on
// connect, then the usual echo contract. Manual broadcasts to the "test"
// topic reach these connections.
func NewTestHandler(hub *infrastructure.Hub, opts infrastructure.ClientOptions) echo.HandlerFunc {
	return func(c echo.Context) error {
		greeting := func(client *infrastructure.Client) {
			client.SendJSON(map[string]any{
				"message":       "WebSocket connected successfully!",
				"connection_id": client.ID(),
			})
		}
		return serveSubscriber(c, hub, nil, domain.TopicTest, opts, greeting)
	}
}

func serveSubscriber(
	c echo.Context,
	hub *infrastructure.Hub,
	validator auth.TokenValidator,
	topic string,
	opts infrastructure.ClientOptions,
	greeting func(*infrastructure.Client),
) error {
	if validator != nil {
		token := bearerToken(c)
		if _, err := validator.Validate(token); err != nil {
			status := http.StatusUnauthorized
			message := "invalid token"
			if errors.Is(err, auth.ErrMissingToken) {
				status = http.StatusBadRequest
				message = "missing token"
			}
			slog.Warn("ws handshake rejected", slog.String("topic", topic), slog.Int("status", status), slog.Any("error", err))
			return echo.NewHTTPError(status, message)
		}
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("ws upgrade failed", slog.String("topic", topic), slog.Any("error", err))
		return err
	}

	client := infrastructure.NewClient(hub, conn, topic, opts)
	if !hub.Attach(client) {
		return nil
	}

	go client.WritePump()
	go client.ReadPump()

	if greeting != nil {
		greeting(client)
	}

	slog.Info("ws connected", slog.String("connectionId", client.ID()), slog.String("topic", topic), slog.String("ip", c.RealIP()))
	return nil
}

func bearerToken(c echo.Context) string {
	if token := strings.TrimSpace(c.QueryParam("token")); token != "" {
		return token
	}
	authz := strings.TrimSpace(c.Request().Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}
