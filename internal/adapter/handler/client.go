package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/errors"
	clientdto "github.com/clientwatch-team/clientwatch/internal/adapter/dto/client"
	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	clientUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/client"
	queueUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/queue"
)

// Client handles client profile HTTP requests
type Client struct {
	clientSvc clientUsecase.Service
	queueSvc  queueUsecase.Service
	logger    *zap.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientSvc clientUsecase.Service, queueSvc queueUsecase.Service, logger *zap.Logger) *Client {
	return &Client{clientSvc: clientSvc, queueSvc: queueSvc, logger: logger}
}

func (h *Client) clientID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("client id must be a UUID")
	}
	return id, nil
}

// Create handles POST /clients
func (h *Client) Create(c echo.Context) error {
	var req clientdto.CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ownerID, _ := callerID(c)
	created, err := h.clientSvc.Create(c.Request().Context(), ownerID, &entities.ClientProfile{
		Name:         req.Name,
		Pod:          req.Pod,
		MonthlySpend: req.MonthlySpend,
		Duration:     req.Duration,
		Notes:        req.Notes,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleCreated(h.logger, c, clientdto.FromEntity(created))
}

// List handles GET /clients
func (h *Client) List(c echo.Context) error {
	ownerID, _ := callerID(c)
	clients, err := h.clientSvc.List(c.Request().Context(), ownerID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}

	out := make([]clientdto.ClientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, clientdto.FromEntity(cl))
	}
	return HandleSuccess(h.logger, c, out)
}

// Get handles GET /clients/:id
func (h *Client) Get(c echo.Context) error {
	id, err := h.clientID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	client, err := h.clientSvc.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, clientdto.FromEntity(client))
}

// Update handles PATCH /clients/:id
func (h *Client) Update(c echo.Context) error {
	id, err := h.clientID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req clientdto.UpdateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	updated, err := h.clientSvc.Update(c.Request().Context(), id, clientUsecase.UpdateFields{
		Name:         req.Name,
		Pod:          req.Pod,
		MonthlySpend: req.MonthlySpend,
		Duration:     req.Duration,
		Notes:        req.Notes,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, clientdto.FromEntity(updated))
}

// GetMapping handles GET /clients/:id/mapping
func (h *Client) GetMapping(c echo.Context) error {
	id, err := h.clientID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	mapping, err := h.clientSvc.GetMapping(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	if mapping == nil {
		mapping = &entities.ClientMeetingMapping{ClientID: id}
	}
	return HandleSuccess(h.logger, c, mappingResponse(mapping))
}

// UpdateMapping handles PUT /clients/:id/mapping
func (h *Client) UpdateMapping(c echo.Context) error {
	id, err := h.clientID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req clientdto.UpdateMappingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	mapping := &entities.ClientMeetingMapping{
		ClientID:          id,
		ParticipantEmails: req.ParticipantEmails,
		TitlePattern:      req.TitlePattern,
		FathomMeetingIDs:  req.FathomMeetingIDs,
		AutoDetect:        req.AutoDetect,
	}
	if err := h.clientSvc.SaveMapping(c.Request().Context(), mapping); err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, mappingResponse(mapping))
}

// GetNotificationPrefs handles GET /clients/:id/notifications
func (h *Client) GetNotificationPrefs(c echo.Context) error {
	id, err := h.clientID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	prefs, err := h.clientSvc.GetNotificationPrefs(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	if prefs == nil {
		prefs = &entities.NotificationPreferences{ClientID: id, NotifyOnAutoAnalysis: true}
	}
	return HandleSuccess(h.logger, c, prefsResponse(prefs))
}

// UpdateNotificationPrefs handles PUT /clients/:id/notifications
func (h *Client) UpdateNotificationPrefs(c echo.Context) error {
	id, err := h.clientID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req clientdto.UpdateNotificationPrefsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	prefs := &entities.NotificationPreferences{
		ClientID:              id,
		PodLeaderEmail:        req.PodLeaderEmail,
		SlackWebhookURL:       req.SlackWebhookURL,
		NotifyOnNewTranscript: req.NotifyOnNewTranscript,
		NotifyOnAutoAnalysis:  req.NotifyOnAutoAnalysis,
	}
	if err := h.clientSvc.SaveNotificationPrefs(c.Request().Context(), prefs); err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, prefsResponse(prefs))
}

// GetQueue handles GET /clients/:id/queue
func (h *Client) GetQueue(c echo.Context) error {
	id, err := h.clientID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if _, err := h.clientSvc.Get(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}

	q, err := h.queueSvc.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	if q == nil {
		q = entities.NewClientTranscriptQueue(id)
	}
	return HandleSuccess(h.logger, c, clientdto.QueueFromEntity(q))
}

// SetAutoAnalysis handles PUT /clients/:id/queue/auto-analysis
func (h *Client) SetAutoAnalysis(c echo.Context) error {
	id, err := h.clientID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req clientdto.SetAutoAnalysisRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if _, err := h.clientSvc.Get(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	if err := h.queueSvc.SetAutoAnalysis(c.Request().Context(), id, *req.Enabled); err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"enabled": *req.Enabled})
}

func mappingResponse(m *entities.ClientMeetingMapping) clientdto.MappingResponse {
	return clientdto.MappingResponse{
		ClientID:          m.ClientID,
		ParticipantEmails: m.ParticipantEmails,
		TitlePattern:      m.TitlePattern,
		FathomMeetingIDs:  m.FathomMeetingIDs,
		AutoDetect:        m.AutoDetect,
		UpdatedAt:         m.UpdatedAt,
	}
}

func prefsResponse(p *entities.NotificationPreferences) clientdto.NotificationPrefsResponse {
	return clientdto.NotificationPrefsResponse{
		ClientID:              p.ClientID,
		PodLeaderEmail:        p.PodLeaderEmail,
		SlackWebhookURL:       p.SlackWebhookURL,
		NotifyOnNewTranscript: p.NotifyOnNewTranscript,
		NotifyOnAutoAnalysis:  p.NotifyOnAutoAnalysis,
	}
}
