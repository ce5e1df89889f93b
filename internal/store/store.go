package store

import (
	"context"
	"errors"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

var ErrNotFound = errors.New("cart not found")

// Store persists the ordered cart line list under a session key.
// Consumers define this interface, not the backend implementations.
// Implementations must degrade corrupted data to an empty cart rather
// than fail the load.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}
