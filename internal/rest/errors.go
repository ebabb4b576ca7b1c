package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/layers-blog/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

// getStatusCode will get the code of the error from the usecases
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err as JSON. Server-side failures are logged with
// their cause and reported with a generic message.
func abortWithError(c *gin.Context, err error) {
	code := getStatusCode(err)
	res := ResponseError{Message: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		res.Field, res.Constraint = verr.Field, verr.Constraint
	}
	switch code {
	case http.StatusInternalServerError:
		logrus.WithField("path", c.FullPath()).Error(err)
		res.Message = domain.ErrInternalServerError.Error()
	case http.StatusServiceUnavailable:
		logrus.WithField("path", c.FullPath()).Error(err)
		res.Message = domain.ErrStoreUnavailable.Error()
	}
	c.AbortWithStatusJSON(code, res)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
}
