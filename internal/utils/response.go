package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Iznaur18/molhaAptekaFullStackApp/config"
	"github.com/Iznaur18/molhaAptekaFullStackApp/internal/models"
	"github.com/Iznaur18/molhaAptekaFullStackApp/pkg/logger"
)

// Response is the envelope every endpoint answers with. Data is always
// present so clients can rely on the key, even when it is null.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func NewResponse(status int, message string, data interface{}) Response {
	return Response{
		Status:  status,
		Message: message,
		Data:    data,
	}
}

// NewSuccessResponse builds a 200 envelope around data.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Status:  200,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope with a null data field.
func NewErrorResponse(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
		Data:    nil,
	}
}

// InternalError answers an unexpected error. The error is logged with the
// request context and the acting user; the client sees the real message in
// development and only the generic one in production.
func InternalError(c *gin.Context, err error, message string) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	}
	if val, ok := c.Get("user"); ok {
		if actor, ok := val.(models.User); ok {
			fields = append(fields, zap.Uint("actor_id", actor.ID))
		}
	}
	logger.Log.Error(message, fields...)

	body := message
	if cfg, cfgErr := config.LoadConfig(); cfgErr == nil && !cfg.IsProduction() {
		body = err.Error()
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, body))
}
