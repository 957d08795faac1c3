package time

import (
	"time"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
)

// RealTimeProvider backs the TimeProvider port with the wall clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a wall-clock time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current wall-clock time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
