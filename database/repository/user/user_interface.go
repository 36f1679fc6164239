package userRepo

import (
	"context"
	"errors"

	"winetrail/models"
)

// ErrUserNotFound is returned when no account matches the id.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the account reads this service needs.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ListAdmins retrieves every admin account.
	ListAdmins(ctx context.Context) ([]models.User, error)
}
