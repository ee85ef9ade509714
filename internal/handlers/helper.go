package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
			Code:    codeValidation,
		})
		return ""
	}
	return idStr
}

// ParseIndexParam reads a non-negative question index. ok is false once a 400 has been written.
func ParseIndexParam(c *gin.Context, param string) (int, bool) {
	index, err := strconv.Atoi(c.Param(param))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a non-negative integer",
			Code:    codeValidation,
		})
		return 0, false
	}
	return index, true
}
