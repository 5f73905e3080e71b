package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"bistroPulseWs/internal/modules/tracking/application/usecase"
	"bistroPulseWs/internal/modules/tracking/domain"
)

// BroadcastRequest is the body of the manual publish endpoint used by
// operational tooling for health checks and live testing.
type BroadcastRequest struct {
	Topic   string         `json:"topic"`
	Payload map[string]any `json:"payload"`
}

type BroadcastResponse struct {
	Success bool   `json:"success"`
	Topic   string `json:"topic"`
	Members int    `json:"members"`
}

// NewBroadcastHTTPHandler exposes POST /broadcast: deliver an arbitrary JSON
// payload to one topic, bypassing order-event routing.
func NewBroadcastHTTPHandler(broadcastUC *usecase.BroadcastUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req BroadcastRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		members, err := broadcastUC.Execute(c.Request().Context(), req.Topic, req.Payload)
		if err != nil {
			if errors.Is(err, usecase.ErrMissingTopic) {
				return echo.NewHTTPError(http.StatusBadRequest, "topic field is required")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "broadcast failed")
		}

		slog.Info("manual broadcast sent", slog.String("topic", req.Topic), slog.Int("members", members))
		return c.JSON(http.StatusOK, BroadcastResponse{Success: true, Topic: req.Topic, Members: members})
	}
}

type NotifyResponse struct {
	Accepted bool     `json:"accepted"`
	Topics   []string `json:"topics"`
}

// NewOrderChangedHandler exposes POST /internal/orders/changed, the notify
// entry point called by the order-management service once per durable commit.
func NewOrderChangedHandler(publishUC *usecase.PublishOrderEventUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var event domain.OrderEvent
		if err := c.Bind(&event); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		if err := publishUC.Execute(c.Request().Context(), event); err != nil {
			switch {
			case errors.Is(err, domain.ErrUnknownEventKind):
				return echo.NewHTTPError(http.StatusBadRequest, "event must be created, updated or deleted")
			case errors.Is(err, domain.ErrMissingOrderID):
				return echo.NewHTTPError(http.StatusBadRequest, "order_id is required")
			default:
				return echo.NewHTTPError(http.StatusInternalServerError, "publish failed")
			}
		}

		return c.JSON(http.StatusAccepted, NotifyResponse{Accepted: true, Topics: event.Topics()})
	}
}
