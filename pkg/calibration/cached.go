package calibration

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/neurokit/morph/pkg/cache"
)

// DefaultCacheTTL bounds how long a cached z resolution is trusted.
// Calibration values change only when specimens are re-imaged.
const DefaultCacheTTL = 24 * time.Hour

// CachedSource wraps a Source with a cache. Lookup failures are not
// cached; cache errors degrade to a direct lookup rather than failing
// the call.
type CachedSource struct {
	src   Source
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSource wraps src with c. A ttl of zero uses DefaultCacheTTL.
func NewCachedSource(src Source, c cache.Cache, ttl time.Duration) *CachedSource {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{src: src, cache: c, ttl: ttl}
}

// ZResolution implements Source.
func (s *CachedSource) ZResolution(ctx context.Context, specimenID int64) (float64, error) {
	key := fmt.Sprintf("calibration:zres:%d", specimenID)

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		if z, perr := strconv.ParseFloat(string(data), 64); perr == nil {
			return z, nil
		}
		_ = s.cache.Delete(ctx, key)
	}

	z, err := s.src.ZResolution(ctx, specimenID)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Set(ctx, key, []byte(strconv.FormatFloat(z, 'g', -1, 64)), s.ttl)
	return z, nil
}

var _ Source = (*CachedSource)(nil)
