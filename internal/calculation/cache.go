package calculation

import (
	"fmt"
	"sync"

	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"golang.org/x/sync/singleflight"
)

const maxCachedProgressions = 512

// progressionCache memoizes progressions per input and table-set
// fingerprint. Concurrent requests for the same key share one computation.
type progressionCache struct {
	mu      sync.RWMutex
	entries map[string]domain.ProgressionData
	group   singleflight.Group
}

func newProgressionCache() *progressionCache {
	return &progressionCache{entries: make(map[string]domain.ProgressionData)}
}

func cacheKey(input ProgressionInput, set *domain.TableSet) string {
	c := input.Components
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%x",
		input.LawType,
		dateutil.MonthKey(input.EntitlementDate),
		c.NormalBasic.String(),
		c.InjuryBasic.String(),
		c.Variable.String(),
		c.SpecialBonuses.String(),
		input.BonusTableName,
		set.Fingerprint(),
	)
}

// get returns the cached progression for key or computes it with fn.
func (c *progressionCache) get(key string, fn func() domain.ProgressionData) domain.ProgressionData {
	c.mu.RLock()
	data, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return cloneProgression(data)
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		data := fn()
		c.mu.Lock()
		if len(c.entries) >= maxCachedProgressions {
			c.entries = make(map[string]domain.ProgressionData)
		}
		c.entries[key] = data
		c.mu.Unlock()
		return data, nil
	})
	return cloneProgression(v.(domain.ProgressionData))
}

func (c *progressionCache) reset() {
	c.mu.Lock()
	c.entries = make(map[string]domain.ProgressionData)
	c.mu.Unlock()
}

// cloneProgression copies the step slice so callers cannot disturb the
// cached value.
func cloneProgression(data domain.ProgressionData) domain.ProgressionData {
	steps := make([]domain.ProgressionStep, len(data.Steps))
	copy(steps, data.Steps)
	data.Steps = steps
	if data.Summary.ExceptionalGrants != nil {
		grants := make([]domain.ExceptionalGrant, len(data.Summary.ExceptionalGrants))
		copy(grants, data.Summary.ExceptionalGrants)
		data.Summary.ExceptionalGrants = grants
	}
	return data
}
