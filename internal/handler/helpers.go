package handler

import (
	"errors"
	"net/http"

	"github.com/ca-la/bin-sub002/internal/apierror"
	"github.com/ca-la/bin-sub002/internal/middleware"
	"github.com/ca-la/bin-sub002/internal/pricing"
	"github.com/ca-la/bin-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// uuidParam parses a path parameter, writing 400 on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps service and pricing errors to responses. Anything
// unrecognised is logged and answered with a generic 500.
func writeServiceError(c *gin.Context, err error) {
	var missing *pricing.MissingPrerequisitesError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, apierror.New(missing.Message))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(apierror.MsgNotFound))
	case errors.Is(err, service.ErrInvalidOverride):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrDuplicateTier), errors.Is(err, service.ErrQuoteNotReady):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New(apierror.MsgInternal))
	}
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, apierror.New(apierror.MsgForbidden))
}
