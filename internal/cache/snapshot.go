package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

const (
	relationshipSnapshotKey = "practice:relationships:snapshot"
	defaultSnapshotTTL      = 10 * time.Minute
)

// SnapshotCache keeps the full relationship map in redis so that each
// scoring batch reads one consistent snapshot instead of hitting the store
// per candidate. Rebuilds and learner upserts invalidate it. Every failure
// degrades to a store read; the cache is never load-bearing.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(addr, password string, db int) *SnapshotCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &SnapshotCache{client: client, ttl: defaultSnapshotTTL}
}

func (c *SnapshotCache) GetRelationships(ctx context.Context) ([]models.ProblemRelationship, bool) {
	data, err := c.client.Get(ctx, relationshipSnapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("relationship snapshot read failed: %v", err)
		}
		return nil, false
	}
	var rels []models.ProblemRelationship
	if err := json.Unmarshal(data, &rels); err != nil {
		log.Printf("relationship snapshot decode failed: %v", err)
		return nil, false
	}
	return rels, true
}

func (c *SnapshotCache) SetRelationships(ctx context.Context, rels []models.ProblemRelationship) {
	data, err := json.Marshal(rels)
	if err != nil {
		log.Printf("relationship snapshot encode failed: %v", err)
		return
	}
	if err := c.client.Set(ctx, relationshipSnapshotKey, data, c.ttl).Err(); err != nil {
		log.Printf("relationship snapshot write failed: %v", err)
	}
}

func (c *SnapshotCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, relationshipSnapshotKey).Err(); err != nil {
		log.Printf("relationship snapshot invalidation failed: %v", err)
	}
}

func (c *SnapshotCache) Close() error {
	return c.client.Close()
}
