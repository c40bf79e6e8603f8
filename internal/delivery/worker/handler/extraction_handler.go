// Package handler contains the push endpoint consuming extraction events.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "geosynth/internal/delivery/context"
	"geosynth/internal/domain/entity"
	"geosynth/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// timeWindowPayload mirrors the extraction collaborator's window format.
type timeWindowPayload struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type pinPayload struct {
	Address     string              `json:"address"`
	TimeWindows []timeWindowPayload `json:"time_windows,omitempty"`
}

type streetPayload struct {
	StreetName  string              `json:"street_name"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	TimeWindows []timeWindowPayload `json:"time_windows,omitempty"`
}

// extractionPayload is the event body published by the text-extraction
// collaborator for one message.
type extractionPayload struct {
	MessageID         string          `json:"message_id"`
	ResponsibleEntity string          `json:"responsible_entity"`
	RequestID         string          `json:"request_id,omitempty"`
	Pins              []pinPayload    `json:"pins"`
	Streets           []streetPayload `json:"streets"`
}

// ExtractionHandler handles Pub/Sub push messages carrying extraction events
type ExtractionHandler struct {
	logger       *slog.Logger
	extractionUC usecase.ExtractionUsecase
}

// ExtractionHandlerParams holds dependencies for the ExtractionHandler
type ExtractionHandlerParams struct {
	fx.In

	Logger       *slog.Logger
	ExtractionUC usecase.ExtractionUsecase
}

// NewExtractionHandler creates a new Pub/Sub push handler
func NewExtractionHandler(params ExtractionHandlerParams) *ExtractionHandler {
	return &ExtractionHandler{
		logger:       params.Logger,
		extractionUC: params.ExtractionUC,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Malformed envelopes are
// acknowledged with 4xx so the broker does not redeliver them; processing
// failures return 503 to trigger a retry.
func (h *ExtractionHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var payload extractionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.logger.Error("[Worker] Failed to parse extraction event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	messageID, err := uuid.Parse(payload.MessageID)
	if err != nil {
		h.logger.Error("[Worker] Invalid message ID in extraction event",
			slog.String("message_id", payload.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &payload)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	extraction := toExtraction(messageID, &payload)

	reqLogger.Info("[Worker] Processing extraction event",
		slog.String("message_id", payload.MessageID),
		slog.Int("pin_count", len(extraction.Pins)),
		slog.Int("street_count", len(extraction.Streets)),
	)

	if err := h.extractionUC.ProcessExtraction(ctx, extraction); err != nil {
		reqLogger.Error("[Worker] Failed to process extraction",
			slog.String("message_id", payload.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusServiceUnavailable)
	}

	reqLogger.Info("[Worker] Extraction processed successfully",
		slog.String("message_id", payload.MessageID),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *ExtractionHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, payload *extractionPayload) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if payload.RequestID != "" {
		return payload.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// toExtraction converts the wire payload into the domain entity.
func toExtraction(messageID uuid.UUID, payload *extractionPayload) *entity.LocationExtraction {
	pins := make([]entity.Pin, 0, len(payload.Pins))
	for _, pin := range payload.Pins {
		pins = append(pins, entity.Pin{
			Address:     pin.Address,
			TimeWindows: toTimeWindows(pin.TimeWindows),
		})
	}

	streets := make([]entity.StreetSection, 0, len(payload.Streets))
	for _, street := range payload.Streets {
		streets = append(streets, entity.StreetSection{
			StreetName:  street.StreetName,
			From:        street.From,
			To:          street.To,
			TimeWindows: toTimeWindows(street.TimeWindows),
		})
	}

	return &entity.LocationExtraction{
		MessageID:         messageID,
		ResponsibleEntity: payload.ResponsibleEntity,
		Pins:              pins,
		Streets:           streets,
	}
}

func toTimeWindows(windows []timeWindowPayload) []entity.TimeWindow {
	if len(windows) == 0 {
		return nil
	}

	converted := make([]entity.TimeWindow, 0, len(windows))
	for _, window := range windows {
		converted = append(converted, entity.TimeWindow{
			Start: window.Start,
			End:   window.End,
		})
	}

	return converted
}
