package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/repository"
	"github.com/seatforge/seatmap-service/pkg/kafka"
	"github.com/seatforge/seatmap-service/pkg/redis"
	"github.com/seatforge/seatmap-service/pkg/retry"
)

// ManifestTopic is the Kafka topic the merchant system consumes
const ManifestTopic = "manifest-events"

// manifestSyncedEvent is the message published after a snapshot upload
type manifestSyncedEvent struct {
	EventType   string    `json:"event_type"`
	ManifestID  string    `json:"manifest_id"`
	VenueID     string    `json:"venue_id"`
	Version     int       `json:"version"`
	PlaceCount  int       `json:"place_count"`
	SnapshotKey string    `json:"snapshot_key"`
	SyncedAt    time.Time `json:"synced_at"`
}

// snapshotStore is the subset of the redis client the syncer uses
type snapshotStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// eventPublisher is the subset of the kafka producer the syncer uses
type eventPublisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

// manifestSyncer implements ManifestSyncer. The snapshot goes to the
// object store first so the published message always points at an
// uploaded document. Both steps are outside the local transaction: a
// failure is reported as ErrSyncFailed and never rolls anything back.
type manifestSyncer struct {
	manifestRepo repository.ManifestRepository
	store        snapshotStore
	producer     eventPublisher
	retryCfg     *retry.Config
}

// NewManifestSyncer creates a new ManifestSyncer. Either dependency may
// be nil when the backing service is down; sync then fails cleanly.
func NewManifestSyncer(manifestRepo repository.ManifestRepository, redisClient *redis.Client, producer *kafka.Producer) ManifestSyncer {
	s := &manifestSyncer{
		manifestRepo: manifestRepo,
		retryCfg: &retry.Config{
			MaxRetries:      2,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			Multiplier:      2.0,
			JitterFactor:    0.1,
		},
	}
	// typed nils must not become non-nil interfaces
	if redisClient != nil {
		s.store = redisClient
	}
	if producer != nil {
		s.producer = producer
	}
	return s
}

// SnapshotKey returns the object-store key for a manifest snapshot
func SnapshotKey(manifestID string) string {
	return fmt.Sprintf("manifest:snapshot:%s", manifestID)
}

// SyncManifest uploads the manifest snapshot and publishes the synced
// event downstream.
func (s *manifestSyncer) SyncManifest(ctx context.Context, manifestID string) error {
	manifest, err := s.manifestRepo.GetByID(ctx, manifestID)
	if err != nil {
		return err
	}
	if manifest == nil {
		return domain.ErrManifestNotFound
	}

	snapshot, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("%w: marshal snapshot: %v", domain.ErrSyncFailed, err)
	}

	key := SnapshotKey(manifestID)
	if s.store == nil {
		return fmt.Errorf("%w: snapshot store unavailable", domain.ErrSyncFailed)
	}
	if err := s.store.Set(ctx, key, string(snapshot), 0); err != nil {
		return fmt.Errorf("%w: upload snapshot: %v", domain.ErrSyncFailed, err)
	}

	event := manifestSyncedEvent{
		EventType:   "manifest.synced",
		ManifestID:  manifest.ID,
		VenueID:     manifest.VenueID,
		Version:     manifest.Version,
		PlaceCount:  len(manifest.Places),
		SnapshotKey: key,
		SyncedAt:    time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", domain.ErrSyncFailed, err)
	}

	if s.producer == nil {
		return fmt.Errorf("%w: message broker unavailable", domain.ErrSyncFailed)
	}
	result := retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		return retry.Retryable(s.producer.Publish(ctx, ManifestTopic, manifest.ID, payload))
	})
	if result.Err != nil {
		return fmt.Errorf("%w: publish after %d attempts: %v", domain.ErrSyncFailed, result.Attempts, result.LastError)
	}
	return nil
}
