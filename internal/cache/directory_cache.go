package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
)

// AlumniDataSource defines the interface for alumni directory data fetching
type AlumniDataSource interface {
	ListByRole(ctx context.Context, role models.Role) ([]*models.Profile, error)
}

const (
	alumniListKey    = "directory:alumni"
	cacheCheckPeriod = 30 * time.Second
)

// DirectoryCache holds the alumni directory listing in memory. Filtering
// happens on top of the cached slice, so a directory request never hits the
// database while the entry is warm.
type DirectoryCache struct {
	cache      *gocache.Cache
	dataSource AlumniDataSource
	ttl        time.Duration
	mu         sync.RWMutex
	ready      bool
}

// NewDirectoryCache creates a new alumni directory cache
func NewDirectoryCache(dataSource AlumniDataSource, ttlSeconds int) *DirectoryCache {
	ttl := time.Duration(ttlSeconds) * time.Second

	return &DirectoryCache{
		cache:      gocache.New(ttl, cacheCheckPeriod),
		dataSource: dataSource,
		ttl:        ttl,
	}
}

// Initialize performs the initial population. Blocks until ready so the
// first directory request after startup is served from cache.
func (dc *DirectoryCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing alumni directory cache...")
	startTime := time.Now()

	if err := dc.refresh(ctx); err != nil {
		logger.Error("Failed to initialize directory cache", zap.Error(err))
		return err
	}

	dc.mu.Lock()
	dc.ready = true
	dc.mu.Unlock()

	logger.Info("Alumni directory cache initialized",
		zap.Duration("duration", time.Since(startTime)))
	return nil
}

// IsReady returns true once the cache has been populated at least once
func (dc *DirectoryCache) IsReady() bool {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.ready
}

// Get returns the cached alumni listing, refreshing from the data source
// when the entry has expired.
func (dc *DirectoryCache) Get(ctx context.Context) ([]*models.Profile, error) {
	if !dc.IsReady() {
		return nil, fmt.Errorf("directory cache not initialized")
	}

	if data, found := dc.cache.Get(alumniListKey); found {
		if alumni, ok := data.([]*models.Profile); ok {
			metrics.CacheHits.WithLabelValues("alumni_directory").Inc()
			return alumni, nil
		}
		logger.Error("Invalid directory cache data type, dropping entry")
		dc.cache.Delete(alumniListKey)
	}

	metrics.CacheMisses.WithLabelValues("alumni_directory").Inc()
	if err := dc.refresh(ctx); err != nil {
		return nil, err
	}

	data, found := dc.cache.Get(alumniListKey)
	if !found {
		return []*models.Profile{}, nil
	}
	alumni, ok := data.([]*models.Profile)
	if !ok {
		return []*models.Profile{}, nil
	}
	return alumni, nil
}

// Invalidate drops the cached listing so the next read refetches. Called
// after an alumni profile is created or updated.
func (dc *DirectoryCache) Invalidate() {
	dc.cache.Delete(alumniListKey)
	logger.Debug("Alumni directory cache invalidated")
}

func (dc *DirectoryCache) refresh(ctx context.Context) error {
	alumni, err := dc.dataSource.ListByRole(ctx, models.RoleAlumni)
	if err != nil {
		return fmt.Errorf("failed to refresh alumni directory: %w", err)
	}

	dc.cache.Set(alumniListKey, alumni, dc.ttl)
	metrics.CacheSize.WithLabelValues("alumni_directory").Set(float64(len(alumni)))

	logger.Debug("Alumni directory cache refreshed", zap.Int("count", len(alumni)))
	return nil
}
