package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/errors"
	analysisdto "github.com/clientwatch-team/clientwatch/internal/adapter/dto/analysis"
	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	analysisUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/analysis"
	historyUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/history"
)

// defaultAnalysesLimit bounds history lists unless the caller overrides it
const defaultAnalysesLimit = 5

// Analysis handles analysis HTTP requests
type Analysis struct {
	analysisSvc analysisUsecase.Service
	historySvc  historyUsecase.Service
	logger      *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisSvc analysisUsecase.Service, historySvc historyUsecase.Service, logger *zap.Logger) *Analysis {
	return &Analysis{analysisSvc: analysisSvc, historySvc: historySvc, logger: logger}
}

func (h *Analysis) pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(name + " must be a UUID")
	}
	return id, nil
}

// Run handles POST /clients/:id/analyses
func (h *Analysis) Run(c echo.Context) error {
	clientID, err := h.pathID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.run(c, clientID)
}

// RunFromBody handles POST /analyses, naming the client in the body
func (h *Analysis) RunFromBody(c echo.Context) error {
	var req analysisdto.RunAnalysisRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("client_id must be a UUID"))
	}
	return h.runWith(c, clientID, req.Context)
}

func (h *Analysis) run(c echo.Context, clientID uuid.UUID) error {
	var req analysisdto.RunAnalysisRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.runWith(c, clientID, req.Context)
}

func (h *Analysis) runWith(c echo.Context, clientID uuid.UUID, runContext string) error {
	ownerID, _ := callerID(c)
	record, err := h.analysisSvc.Run(c.Request().Context(), clientID, ownerID, analysisUsecase.RunOptions{
		Context: runContext,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleCreated(h.logger, c, analysisdto.FromEntity(record))
}

// ListByClient handles GET /clients/:id/analyses
func (h *Analysis) ListByClient(c echo.Context) error {
	clientID, err := h.pathID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	limit := defaultAnalysesLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 0 {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("limit must be a non-negative integer"))
		}
		limit = parsed
	}

	records, err := h.analysisSvc.ListByClient(c.Request().Context(), clientID, limit)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, analysisdto.ListFromEntities(records))
}

// Get handles GET /analyses/:id
func (h *Analysis) Get(c echo.Context) error {
	id, err := h.pathID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.analysisSvc.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, analysisdto.FromEntity(record))
}

// Rerun handles POST /analyses/:id/rerun
func (h *Analysis) Rerun(c echo.Context) error {
	id, err := h.pathID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req analysisdto.RerunRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Inaccuracies == "" && req.AdditionalContext == "" && len(req.FocusAreas) == 0 {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("feedback must not be empty"))
	}

	record, err := h.analysisSvc.Rerun(c.Request().Context(), id, entities.AnalysisFeedback{
		Inaccuracies:      req.Inaccuracies,
		AdditionalContext: req.AdditionalContext,
		FocusAreas:        req.FocusAreas,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, analysisdto.FromEntity(record))
}

// AppendTranscripts handles POST /analyses/:id/transcripts
func (h *Analysis) AppendTranscripts(c echo.Context) error {
	id, err := h.pathID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req analysisdto.AppendTranscriptsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.analysisSvc.AppendTranscripts(c.Request().Context(), id, req.Transcripts)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, analysisdto.FromEntity(record))
}

// Chat handles POST /analyses/:id/chat
func (h *Analysis) Chat(c echo.Context) error {
	id, err := h.pathID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req analysisdto.ChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	chat := make([]analysisUsecase.ChatMessage, 0, len(req.History))
	for _, m := range req.History {
		chat = append(chat, analysisUsecase.ChatMessage{Role: m.Role, Content: m.Content})
	}

	answer, err := h.analysisSvc.FollowUp(c.Request().Context(), id, chat, req.Question)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, analysisdto.ChatResponse{AnalysisID: id, Answer: answer})
}

// GetHistory handles GET /clients/:id/history
func (h *Analysis) GetHistory(c echo.Context) error {
	clientID, err := h.pathID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	// Dashboard read: degrade to an empty history instead of failing the page.
	hist, err := h.historySvc.Get(c.Request().Context(), clientID)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("history read failed, serving empty", zap.Error(err))
		}
		hist = nil
	}

	resp := analysisdto.HistoryResponse{
		ClientID: clientID,
		Trend:    h.historySvc.TrendLabel(hist),
	}
	if hist != nil {
		resp.CumulativeSummary = hist.CumulativeSummary
		resp.KeyMoments = hist.KeyMoments
		resp.TrajectoryHistory = hist.TrajectoryHistory
		resp.ParticipantProfiles = hist.ParticipantProfiles
		resp.TotalMeetingsAnalyzed = hist.TotalMeetingsAnalyzed
		resp.UpdatedAt = hist.UpdatedAt
		if !hist.FirstAnalysisDate.IsZero() {
			first := hist.FirstAnalysisDate
			resp.FirstAnalysisDate = &first
		}
		if !hist.LastAnalysisDate.IsZero() {
			last := hist.LastAnalysisDate
			resp.LastAnalysisDate = &last
		}
	}
	return HandleSuccess(h.logger, c, resp)
}
