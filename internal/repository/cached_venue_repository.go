package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/pkg/redis"
)

// venueCacheTTL bounds staleness for venue reads served from cache
const venueCacheTTL = 5 * time.Minute

// CachedVenueRepository wraps a VenueRepository with a Redis read-through
// cache for single-venue lookups. Writes pass through and invalidate.
// Cache failures degrade to the underlying repository, never to an error.
type CachedVenueRepository struct {
	inner VenueRepository
	redis *redis.Client
}

// NewCachedVenueRepository creates a new CachedVenueRepository
func NewCachedVenueRepository(inner VenueRepository, redisClient *redis.Client) *CachedVenueRepository {
	return &CachedVenueRepository{inner: inner, redis: redisClient}
}

func venueCacheKey(id string) string {
	return fmt.Sprintf("venue:%s", id)
}

// Create creates a new venue
func (r *CachedVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	return r.inner.Create(ctx, venue)
}

// GetByID retrieves a venue, serving from cache when possible
func (r *CachedVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	key := venueCacheKey(id)
	if cached, err := r.redis.Get(ctx, key); err == nil && cached != "" {
		venue := &domain.Venue{}
		if err := json.Unmarshal([]byte(cached), venue); err == nil {
			return venue, nil
		}
	}

	venue, err := r.inner.GetByID(ctx, id)
	if err != nil || venue == nil {
		return venue, err
	}

	if payload, err := json.Marshal(venue); err == nil {
		_ = r.redis.Set(ctx, key, string(payload), venueCacheTTL)
	}
	return venue, nil
}

// GetByTenantID retrieves venues by tenant ID; list reads skip the cache
func (r *CachedVenueRepository) GetByTenantID(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Venue, int, error) {
	return r.inner.GetByTenantID(ctx, tenantID, limit, offset)
}

// Update updates a venue and invalidates its cache entry
func (r *CachedVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	if err := r.inner.Update(ctx, venue); err != nil {
		return err
	}
	_ = r.redis.Del(ctx, venueCacheKey(venue.ID))
	return nil
}

// UpdateSections replaces the section list and invalidates the cache entry
func (r *CachedVenueRepository) UpdateSections(ctx context.Context, id string, sections []domain.Section) error {
	if err := r.inner.UpdateSections(ctx, id, sections); err != nil {
		return err
	}
	_ = r.redis.Del(ctx, venueCacheKey(id))
	return nil
}

// Delete soft deletes a venue and invalidates its cache entry
func (r *CachedVenueRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	_ = r.redis.Del(ctx, venueCacheKey(id))
	return nil
}
