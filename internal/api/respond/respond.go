// Package respond renders API results and failures as JSON. Every error
// body has the shape {error: <classification>, mensaje: <detail>}.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	ClassValidation   = "validation"
	ClassNotFound     = "not_found"
	ClassConflict     = "conflict"
	ClassUnauthorized = "unauthorized"
	ClassForbidden    = "forbidden"
	ClassInternal     = "internal"
)

const detailsKey = "respond.details"

type ErrorBody struct {
	Error    string       `json:"error"`
	Mensaje  string       `json:"mensaje"`
	Detalles []FieldError `json:"detalles,omitempty"`
}

// ExposeDetails makes Error include the text of internal failures in the
// response. It is set per request in development only.
func ExposeDetails(c *gin.Context) {
	c.Set(detailsKey, true)
}

// Error writes err and aborts the chain. Classified domain errors keep their
// message; anything else is logged and reported as internal.
func Error(c *gin.Context, err error) {
	var fields []FieldError
	var verrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var derr *domain.Error

	switch {
	case errors.As(err, &verrs):
		fields = fieldErrors(verrs)
		err = domain.NewValidationError("%s", summarize(fields))
	case errors.Is(err, io.EOF):
		err = domain.NewValidationError("request body is required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		err = domain.NewValidationError("malformed JSON body")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "request body"
		}
		err = domain.NewValidationError("%s has an invalid type", field)
	}

	if errors.As(err, &derr) {
		status, class := Classify(derr.Kind)
		c.AbortWithStatusJSON(status, ErrorBody{Error: class, Mensaje: derr.Msg, Detalles: fields})
		return
	}

	logger.FromContext(c.Request.Context()).WithError(err).
		WithField("ruta", c.FullPath()).
		Error("request failed")

	msg := "internal server error"
	if c.GetBool(detailsKey) {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Error: ClassInternal, Mensaje: msg})
}

// Classify maps an error kind onto its HTTP status and classification.
// InvalidState is a conflict reported with 400.
func Classify(kind domain.ErrorKind) (int, string) {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest, ClassValidation
	case domain.KindNotFound:
		return http.StatusNotFound, ClassNotFound
	case domain.KindConflict:
		return http.StatusConflict, ClassConflict
	case domain.KindInvalidState:
		return http.StatusBadRequest, ClassConflict
	case domain.KindForbidden:
		return http.StatusForbidden, ClassForbidden
	case domain.KindUnauthorized:
		return http.StatusUnauthorized, ClassUnauthorized
	default:
		return http.StatusInternalServerError, ClassInternal
	}
}
