package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/ports"
)

const DefaultLedgerKey = "contentqa:completed"

// hashClient is the part of redis.Cmdable the ledger uses.
type hashClient interface {
	HSetNX(ctx context.Context, key, field string, value interface{}) *redis.BoolCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisLedger stores one hash field per unit of work. HSETNX makes appends
// from parallel workers atomic.
type RedisLedger struct {
	client hashClient
	key    string
}

var _ ports.CompletionLedger = (*RedisLedger)(nil)

// NewRedisLedger uses the hash at key.
func NewRedisLedger(client redis.Cmdable, key string) *RedisLedger {
	if key == "" {
		key = DefaultLedgerKey
	}
	return &RedisLedger{client: client, key: key}
}

// Load returns every record ordered by completion time.
func (l *RedisLedger) Load(ctx context.Context) ([]domain.CompletionRecord, error) {
	fields, err := l.client.HGetAll(ctx, l.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", l.key, err)
	}
	records := make([]domain.CompletionRecord, 0, len(fields))
	for field, raw := range fields {
		var r domain.CompletionRecord
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decode ledger field %s: %w", field, err)
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CompletedAt.Equal(records[j].CompletedAt) {
			return records[i].Key() < records[j].Key()
		}
		return records[i].CompletedAt.Before(records[j].CompletedAt)
	})
	return records, nil
}

// Append sets the unit's field unless it already exists.
func (l *RedisLedger) Append(ctx context.Context, record domain.CompletionRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal ledger record: %w", err)
	}
	created, err := l.client.HSetNX(ctx, l.key, record.Key(), string(raw)).Result()
	if err != nil {
		return fmt.Errorf("redis hsetnx %s: %w", record.Key(), err)
	}
	if !created {
		return fmt.Errorf("%s: %w", record.Key(), domain.ErrAlreadyCompleted)
	}
	return nil
}
