package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-onboarding/internal/blocks"
	"github.com/goliatone/go-onboarding/internal/importer"
	"github.com/goliatone/go-onboarding/internal/validation"
)

const (
	codeImportValidation  = "IMPORT_VALIDATION_FAILED"
	codeInvalidPayload    = "INVALID_PAYLOAD"
	codePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	codeInvalidID         = "INVALID_ID"
	codeCommandValidation = "COMMAND_VALIDATION_FAILED"
	codeNotFound          = "NOT_FOUND"
	codeTimeout           = "TIMEOUT"
	codeInternal          = "INTERNAL_ERROR"
)

type APIError struct {
	Message string                       `json:"message"`
	Code    string                       `json:"code,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	apiErr := APIError{Message: msg, Code: code}
	if errors.Is(err, validation.ErrSchemaValidation) {
		apiErr.Issues = validation.Issues(err)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: apiErr})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func respondMappedError(c *gin.Context, err error) {
	status, code := mapError(err)
	RespondError(c, status, code, err)
}

func mapError(err error) (int, string) {
	var resourceNotFound *importer.NotFoundError
	var blockNotFound *blocks.NotFoundError
	var maxBytes *http.MaxBytesError

	switch {
	case err == nil:
		return http.StatusInternalServerError, codeInternal
	case errors.Is(err, validation.ErrSchemaValidation):
		return http.StatusBadRequest, codeImportValidation
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, codePayloadTooLarge
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return http.StatusBadRequest, codeCommandValidation
	case errors.As(err, &resourceNotFound), errors.As(err, &blockNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeTimeout
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
