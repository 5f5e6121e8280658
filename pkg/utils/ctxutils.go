package utils

import (
	"context"

	"quote-system/pkg/contextkeys"
	apperrors "quote-system/pkg/errors"
)

// GetUserIDFromCtx извлекает ID пользователя, положенный auth-middleware.
func GetUserIDFromCtx(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(int)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

// GetUserRoleFromCtx извлекает роль пользователя из контекста запроса.
func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrUnauthorized
	}
	return role, nil
}
