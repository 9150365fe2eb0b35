package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validator "github.com/go-playground/validator/v10"

	"github.com/adijith/HotelManagement/internal/errs"
)

// errorBody is the error envelope: a short human-readable message, nothing else.
type errorBody struct {
	Message string `json:"message"`
}

// respondError maps a service error to its HTTP status. Unknown errors become
// a generic 500 so internals never leak to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorBody{Message: "Invalid username or password"})
	case errors.Is(err, errs.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, errorBody{Message: "Username already exists"})
	case errors.Is(err, errs.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, errorBody{Message: "Email already exists"})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, errorBody{Message: "Invalid request"})
	case errors.Is(err, errs.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, errorBody{Message: "Too many failed attempts, try again later"})
	case errors.Is(err, errs.ErrTokenExpired), errors.Is(err, errs.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, errorBody{Message: "Access denied"})
	default:
		c.JSON(http.StatusInternalServerError, errorBody{Message: "Internal server error"})
	}
}

// respondBindError turns a request binding failure into a 400 with a field
// hint when the failure came from a validation tag.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, errorBody{Message: "Invalid field: " + verrs[0].Field()})
		return
	}
	c.JSON(http.StatusBadRequest, errorBody{Message: "Invalid request body"})
}
