// Package handlers holds the helpers shared by every handler package.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chef-finokio/internal/pkg/common"
)

// RespondError writes the JSON error envelope for any error produced
// by the handlers. Unknown errors map to a generic 500.
func RespondError(c *gin.Context, err error) {
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		c.JSON(customErr.Status, common.ErrorResponse{
			Code:    customErr.Code,
			Message: customErr.Message,
		})
		return
	}

	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "internal server error",
	})
}

// BindJSON binds the request body and reports a binding failure as a
// validation error. Returns false when the response has been written.
func BindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		RespondError(c, common.NewValidationError(err.Error()))
		return false
	}
	return true
}
