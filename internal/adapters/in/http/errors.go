package http

import (
	"errors"
	"net/http"

	"commissions/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	codeValidation         = "validation_error"
	codeNotFound           = "not_found"
	codeUnknownTier        = "unknown_tier"
	codeUnknownRightsLevel = "unknown_rights_level"
	codeUnknownAddOn       = "unknown_add_on"
	codeInvalidTransition  = "invalid_transition"
	codeRevisionLimit      = "revision_limit_exceeded"
	codeVersionLimit       = "version_limit_exceeded"
	codeAlreadyIssued      = "certificate_already_issued"
	codePreconditionFailed = "precondition_failed"
	codeInternal           = "internal_error"
)

// Error is the body of every non-2xx API response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{errs.ErrRevisionLimit, http.StatusConflict, codeRevisionLimit,
		"All included revisions have been used for this order"},
	{errs.ErrVersionLimit, http.StatusConflict, codeVersionLimit,
		"The tier's version allowance has been delivered"},
	{errs.ErrInvalidTransition, http.StatusConflict, codeInvalidTransition,
		"This action is not available in the order's current status"},
	{errs.ErrAlreadyIssued, http.StatusConflict, codeAlreadyIssued,
		"A rights certificate was already issued for this order"},
	{errs.ErrPreconditionFailed, http.StatusPreconditionFailed, codePreconditionFailed,
		"The order was changed by another request; reload and retry"},
	{errs.ErrUnknownTier, http.StatusUnprocessableEntity, codeUnknownTier,
		"The requested tier is not offered for this product line"},
	{errs.ErrUnknownRightsLevel, http.StatusUnprocessableEntity, codeUnknownRightsLevel,
		"Rights level must be standard, broadcast or global"},
	{errs.ErrUnknownAddOn, http.StatusUnprocessableEntity, codeUnknownAddOn,
		"The requested add-on is not offered for this product line"},
	{errs.ErrObjectNotFound, http.StatusNotFound, codeNotFound, ""},
	{errs.ErrValueIsRequired, http.StatusBadRequest, codeValidation, ""},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, codeValidation, ""},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, codeValidation, ""},
	{errs.ErrVersionIsInvalid, http.StatusBadRequest, codeValidation, ""},
}

// writeError maps a typed error to its status and user-facing message. An
// empty message in the table means the error text itself is shown.
func writeError(c echo.Context, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		return c.JSON(m.status, Error{Code: m.code, Message: msg})
	}

	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, Error{
		Code:    codeInternal,
		Message: "Internal server error",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: codeValidation, Message: message})
}
