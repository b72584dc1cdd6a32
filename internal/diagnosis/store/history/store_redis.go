package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dirok/internal/inference/models"
	"dirok/pkg/platform/sentinel"
)

const (
	indexKey   = "history:index"
	recordsKey = "history:records"
)

// RedisStore keeps history in Redis so several server instances share it.
// A list holds IDs newest first; a hash maps ID to the JSON record.
type RedisStore struct {
	client *redis.Client
	prefix string
	limit  int
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces every key, e.g. "dirok:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedis constructs a Redis-backed store. The client lifecycle is managed by the caller.
func NewRedis(client *redis.Client, limit int, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, limit: normalizeLimit(limit)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) index() string   { return s.prefix + indexKey }
func (s *RedisStore) records() string { return s.prefix + recordsKey }

// Save stores rec and trims the index to the limit, dropping evicted payloads.
func (s *RedisStore) Save(ctx context.Context, rec *models.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal diagnosis %s: %w", rec.ID, err)
	}
	id := rec.ID.String()

	var evicted *redis.StringSliceCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.records(), id, payload)
		pipe.LPush(ctx, s.index(), id)
		evicted = pipe.LRange(ctx, s.index(), int64(s.limit), -1)
		pipe.LTrim(ctx, s.index(), 0, int64(s.limit-1))
		return nil
	})
	if err != nil {
		return unavailable("save diagnosis", err)
	}

	if ids := evicted.Val(); len(ids) > 0 {
		if err := s.client.HDel(ctx, s.records(), ids...).Err(); err != nil {
			return unavailable("evict diagnoses", err)
		}
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, id models.DiagnosisID) (*models.Record, error) {
	payload, err := s.client.HGet(ctx, s.records(), id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("diagnosis %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("find diagnosis", err)
	}
	return decode(payload)
}

// List returns entries newest first. Index entries whose payload vanished are skipped.
func (s *RedisStore) List(ctx context.Context) ([]*models.Record, error) {
	ids, err := s.client.LRange(ctx, s.index(), 0, -1).Result()
	if err != nil {
		return nil, unavailable("list diagnoses", err)
	}
	if len(ids) == 0 {
		return []*models.Record{}, nil
	}

	payloads, err := s.client.HMGet(ctx, s.records(), ids...).Result()
	if err != nil {
		return nil, unavailable("list diagnoses", err)
	}

	out := make([]*models.Record, 0, len(payloads))
	for _, p := range payloads {
		str, ok := p.(string)
		if !ok {
			continue
		}
		rec, err := decode([]byte(str))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id models.DiagnosisID) error {
	key := id.String()
	var removed *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.HDel(ctx, s.records(), key)
		pipe.LRem(ctx, s.index(), 0, key)
		return nil
	})
	if err != nil {
		return unavailable("delete diagnosis", err)
	}
	if removed.Val() == 0 {
		return fmt.Errorf("diagnosis %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.index(), s.records()).Err(); err != nil {
		return unavailable("clear diagnoses", err)
	}
	return nil
}

func decode(payload []byte) (*models.Record, error) {
	var rec models.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode diagnosis: %w", err)
	}
	return &rec, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
