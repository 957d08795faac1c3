package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TokenRepository implements persistence.TokenRepository using GORM
type TokenRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTokenRepository creates a new TokenRepository instance
func NewTokenRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TokenRepository {
	return &TokenRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a token model to an entity
func (r *TokenRepository) modelToEntity(tokenModel *model.AccessToken) *entity.AccessToken {
	return &entity.AccessToken{
		Value:     tokenModel.Value,
		IssuedTo:  tokenModel.IssuedTo,
		Active:    tokenModel.Active,
		IssuedAt:  tokenModel.IssuedAt,
		ExpiresAt: tokenModel.ExpiresAt,
	}
}

// FindActiveToken looks up a token by its value. Inactive and expired tokens
// are reported as ErrInvalidToken, indistinguishable from absent ones.
func (r *TokenRepository) FindActiveToken(ctx context.Context, value string) (*entity.AccessToken, error) {
	if value == "" {
		return nil, errs.ErrInvalidToken
	}

	var tokenModel model.AccessToken
	result := r.db.WithContext(ctx).Where("value = ?", value).First(&tokenModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("Unknown access token presented", map[string]any{
				"token_prefix": tokenPrefix(value),
			})
			return nil, errs.ErrInvalidToken
		}
		r.logger.Error("Database error when looking up token", map[string]any{
			"error":      result.Error.Error(),
			"error_type": string(r.errorClassifier.Classify(result.Error)),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	token := r.modelToEntity(&tokenModel)
	if !token.IsUsable(r.timeProvider.Now()) {
		r.logger.Warn("Inactive or expired token presented", map[string]any{
			"token_prefix": tokenPrefix(value),
			"user_id":      token.IssuedTo,
		})
		return nil, errs.ErrInvalidToken
	}

	return token, nil
}

// tokenPrefix truncates a token value for logging. Full token values never
// reach the log stream.
func tokenPrefix(value string) string {
	if len(value) <= 8 {
		return value
	}
	return value[:8] + "..."
}
