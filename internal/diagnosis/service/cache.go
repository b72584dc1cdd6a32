package service

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"dirok/internal/inference/models"
)

// resultCache memoises engine output per knowledge-base generation and
// de-duplicated observation list. Cached slices are shared; callers treat
// them as read-only (risk.AdjustResults copies before scaling).
type resultCache struct {
	lru *lru.Cache[string, []models.DiagnosisResult]
}

// newResultCache returns nil when size is not positive, which disables caching.
func newResultCache(size int) *resultCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, []models.DiagnosisResult](size)
	if err != nil {
		return nil
	}
	return &resultCache{lru: c}
}

func (c *resultCache) get(key string) ([]models.DiagnosisResult, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *resultCache) add(key string, results []models.DiagnosisResult) {
	if c != nil {
		c.lru.Add(key, results)
	}
}

func (c *resultCache) purge() {
	if c != nil {
		c.lru.Purge()
	}
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// cacheKey is order sensitive: the engine combines in observation order, so
// the same symptoms given in another order may round differently.
func cacheKey(generation uint64, obs []models.Observation) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(generation, 10))
	for _, o := range obs {
		b.WriteByte('|')
		b.WriteString(string(o.SymptomID))
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(o.Confidence, 'g', -1, 64))
	}
	return b.String()
}
