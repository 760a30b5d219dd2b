package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/errors"
	usecaseErrors "github.com/clientwatch-team/clientwatch/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleCreated writes a standardized creation response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "created",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusCreated, resp)
}

// HandleError centralizes error handling and logging
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps domain sentinel errors onto the wire error shape
func toAppError(err error) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrClientNotFound):
		return errors.ErrNotFound("client")
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisNotFound):
		return errors.ErrAnalysisNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrQueueNotReady):
		return errors.ErrQueueNotReady("")
	case stdErrors.Is(err, usecaseErrors.ErrAnalyzerNotConfigured):
		return errors.ErrAnalyzerNotConfigured()
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisFailed):
		return errors.ErrAnalysisFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrEmptyTranscript):
		return errors.ErrInvalidArgument(err.Error())
	default:
		return err
	}
}

// bindAndValidate decodes the request body and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// callerID returns the authenticated user's id and email, when present
func callerID(c echo.Context) (string, string) {
	id := ""
	if v, ok := c.Get("user_id").(uuid.UUID); ok {
		id = v.String()
	}
	email, _ := c.Get("user_email").(string)
	return id, email
}
