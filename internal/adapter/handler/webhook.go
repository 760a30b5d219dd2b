package handler

import (
	"io"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/errors"
	"github.com/clientwatch-team/clientwatch/internal/adapter/dto/common"
	"github.com/clientwatch-team/clientwatch/internal/usecase/ingest"
)

// signatureHeader is the header Fathom signs webhook deliveries with
const signatureHeader = "webhook-signature"

// FathomWebhook receives meeting-completed events from Fathom
type FathomWebhook struct {
	svc    ingest.Service
	logger *zap.Logger
}

// NewFathomWebhookHandler creates a new webhook handler
func NewFathomWebhookHandler(svc ingest.Service, logger *zap.Logger) *FathomWebhook {
	return &FathomWebhook{svc: svc, logger: logger}
}

// Handle receives a Fathom webhook delivery
func (h *FathomWebhook) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	signature := c.Request().Header.Get(signatureHeader)
	if !h.svc.VerifySignature(body, signature) {
		return HandleError(h.logger, c, errors.ErrInvalidWebhookSignature())
	}

	result, err := h.svc.HandleWebhook(c.Request().Context(), body)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("fathom webhook handler error", zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrIngestFailed(err))
	}

	ack := common.WebhookAck{
		Outcome:             string(result.Outcome),
		WindowSize:          result.WindowSize,
		WindowReady:         result.WindowReady,
		AutoAnalysisStarted: result.AutoAnalysisStarted,
	}
	if result.ClientID != uuid.Nil {
		ack.ClientID = result.ClientID.String()
	}
	return HandleSuccess(h.logger, c, ack)
}

// Sync triggers a manual backfill from the Fathom API
func (h *FathomWebhook) Sync(c echo.Context) error {
	if err := h.svc.RunScheduledSync(c.Request().Context()); err != nil {
		return HandleError(h.logger, c, errors.ErrIngestFailed(err))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": "ok"})
}
