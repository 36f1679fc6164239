package wineryRepo

import (
	"context"
	"errors"

	"winetrail/models"
)

// ErrWineryNotFound is returned when no winery matches the requested id.
var ErrWineryNotFound = errors.New("winery not found")

// WineryRepository reads the winery catalog. Every winery it returns carries a
// normalized payment method.
type WineryRepository interface {
	// GetByID retrieves a winery by its id.
	GetByID(ctx context.Context, id string) (*models.Winery, error)
	// List returns one page of wineries and the total count.
	List(ctx context.Context, page, limit int) ([]models.Winery, int64, error)
	// GetMany retrieves the wineries matching ids. Unknown ids are skipped.
	GetMany(ctx context.Context, ids []string) ([]models.Winery, error)
	// ListByOwner returns the wineries managed by an account.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Winery, error)
}
