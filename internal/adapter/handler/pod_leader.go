package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/errors"
	"github.com/clientwatch-team/clientwatch/internal/adapter/dto/podleader"
	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	podLeaderUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/podleader"
)

// PodLeader handles pod leader profile HTTP requests
type PodLeader struct {
	svc    podLeaderUsecase.Service
	logger *zap.Logger
}

// NewPodLeaderHandler creates a new pod leader handler
func NewPodLeaderHandler(svc podLeaderUsecase.Service, logger *zap.Logger) *PodLeader {
	return &PodLeader{svc: svc, logger: logger}
}

// Me handles GET /pod-leaders/me
func (h *PodLeader) Me(c echo.Context) error {
	userID, email := callerID(c)
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	profile, err := h.svc.Get(c.Request().Context(), userID, email)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, profileResponse(profile))
}

// UpdateMe handles PUT /pod-leaders/me
func (h *PodLeader) UpdateMe(c echo.Context) error {
	userID, email := callerID(c)
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req podleader.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	profile, err := h.svc.Update(c.Request().Context(), userID, email, podLeaderUsecase.ProfileFields{
		Name:               req.Name,
		Pod:                req.Pod,
		PersonalitySummary: req.PersonalitySummary,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, profileResponse(profile))
}

func profileResponse(p *entities.PodLeaderProfile) podleader.ProfileResponse {
	return podleader.ProfileResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Email:              p.Email,
		Pod:                p.Pod,
		PersonalitySummary: p.PersonalitySummary,
		UpdatedAt:          p.UpdatedAt,
	}
}
