package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is set by the JWT middleware.
const ContextUserIDKey = "user_id"

// GetUserIDFromContext returns the authenticated user's ID.
func GetUserIDFromContext(ctx *gin.Context) (uint, error) {
	v, exists := ctx.Get(ContextUserIDKey)
	if !exists {
		return 0, errors.New("user not authenticated")
	}
	userID, ok := v.(uint)
	if !ok {
		return 0, errors.New("invalid user id in context")
	}
	return userID, nil
}

// ParsePaginationParams reads page/size query params with defaults.
func ParsePaginationParams(ctx *gin.Context) (int, int, error) {
	page := StringToInt(ctx.DefaultQuery("page", "1"))
	size := StringToInt(ctx.DefaultQuery("size", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size, nil
}
