package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/id"
)

// ParseSIDParam parses and validates a prefixed ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id"). prefix is the
// expected SID prefix (e.g., id.PrefixApplication). entityName is used in
// error messages.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

// ParseUintParam parses a numeric URL path parameter.
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}

	return uint(n), nil
}
