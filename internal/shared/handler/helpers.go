package handler

import (
	"net/http"

	sharedError "github.com/gcclub/membercard/internal/shared/error"
	"github.com/gcclub/membercard/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req CreateMemberRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	return bind(c, obj, c.ShouldBindJSON)
}

// BindQuery parses and validates query string parameters.
func BindQuery(c *gin.Context, obj any) bool {
	return bind(c, obj, c.ShouldBindQuery)
}

func bind(c *gin.Context, obj any, fn func(any) error) bool {
	if err := fn(obj); err != nil {
		// Add error to context for middleware logging
		c.Error(err)

		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp)
		} else {
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		}
		return false
	}
	return true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	c.Error(err)

	c.JSON(errResp.Status, errResp)
}

// RespondServiceError resolves a domain error into its registered response,
// falling back to InternalServerError.
func RespondServiceError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}
	RespondError(c, err, sharedError.InternalServerError)
}
