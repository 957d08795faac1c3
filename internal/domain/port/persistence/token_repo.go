package persistence

import (
	"context"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
)

// TokenRepository defines the token-lookup collaborator consumed by the core
type TokenRepository interface {
	// FindActiveToken looks up a token by its value. Inactive and expired
	// tokens are treated as absent.
	//
	// Possible errors:
	// - ErrInvalidToken: if no usable token with this value exists
	// - ErrDatabaseConnection: if the lookup fails
	FindActiveToken(ctx context.Context, value string) (*entity.AccessToken, error)
}
