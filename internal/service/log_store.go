package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hiennv/logbin/internal/model"
	"github.com/hiennv/logbin/internal/pkg/logger"
	"github.com/hiennv/logbin/internal/pkg/metrics"
)

// Defaults used when no option overrides them.
const (
	DefaultCapacity = 50
	DefaultInstance = "default"
	DefaultKey      = "default:logs"
)

// ErrMissingTime is returned by Delete when no identifier is given.
var ErrMissingTime = errors.New("time parameter is required")

// Capture is the request data the record operation persists.
type Capture struct {
	Method  string
	URL     string
	Headers map[string]string
	Data    json.RawMessage
}

// LogStore owns the bounded collection persisted under a single key.
// Every operation runs its read-modify-write under one mutex, so the
// collection is never written by two callers at once.
type LogStore struct {
	mu       sync.Mutex
	kv       KVStore
	key      string
	instance string
	capacity int
	now      func() time.Time
}

// Option configures a LogStore at construction.
type Option func(*LogStore)

// WithCapacity bounds the collection. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(s *LogStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithKey sets the persisted key.
func WithKey(key string) Option {
	return func(s *LogStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithInstance names the store in logs and metrics.
func WithInstance(name string) Option {
	return func(s *LogStore) {
		if name != "" {
			s.instance = name
		}
	}
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *LogStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLogStore builds a store persisting through kv. Closing kv stays with the caller.
func NewLogStore(kv KVStore, opts ...Option) *LogStore {
	s := &LogStore{
		kv:       kv,
		key:      DefaultKey,
		instance: DefaultInstance,
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Instance returns the store's instance name.
func (s *LogStore) Instance() string {
	return s.instance
}

// Capacity returns the maximum number of records kept.
func (s *LogStore) Capacity() int {
	return s.capacity
}

// Record prepends a new record, trims the collection to capacity and
// persists it with a single write. Nothing is written if any step fails.
func (s *LogStore) Record(ctx context.Context, in Capture) (model.SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.load(ctx)
	if err != nil {
		return model.SaveResult{}, err
	}

	rec := model.LogRecord{
		Time:    s.nextTime(logs),
		Method:  in.Method,
		URL:     in.URL,
		Headers: in.Headers,
		Data:    in.Data,
	}
	if rec.Headers == nil {
		rec.Headers = map[string]string{}
	}

	logs, evicted := logs.PushFront(rec).Truncate(s.capacity)
	if err := s.save(ctx, logs); err != nil {
		return model.SaveResult{}, err
	}

	metrics.RecordsSaved.WithLabelValues(metrics.MethodLabel(rec.Method)).Inc()
	if evicted > 0 {
		metrics.RecordsEvicted.Add(float64(evicted))
	}
	metrics.CollectionSize.WithLabelValues(s.instance).Set(float64(len(logs)))
	logger.Debug("record saved", "instance", s.instance, "time", rec.Time, "method", rec.Method, "total", len(logs), "evicted", evicted, "has_data", rec.HasData())

	return model.SaveResult{Message: "Saved", Total: len(logs), Time: rec.Time}, nil
}

// List returns the collection newest first. Stored order is not trusted.
func (s *LogStore) List(ctx context.Context) (model.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return logs.SortedByTimeDesc(), nil
}

// Delete removes every record whose time equals ts and persists the rest.
func (s *LogStore) Delete(ctx context.Context, ts string) (model.DeleteResult, error) {
	if ts == "" {
		return model.DeleteResult{}, ErrMissingTime
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.load(ctx)
	if err != nil {
		return model.DeleteResult{}, err
	}
	logs, removed := logs.RemoveByTime(ts)
	if err := s.save(ctx, logs); err != nil {
		return model.DeleteResult{}, err
	}

	metrics.RecordsDeleted.Add(float64(removed))
	metrics.CollectionSize.WithLabelValues(s.instance).Set(float64(len(logs)))
	logger.Info("records deleted", "instance", s.instance, "time", ts, "removed", removed, "total", len(logs))

	return model.DeleteResult{Message: "Deleted", Total: len(logs)}, nil
}

func (s *LogStore) load(ctx context.Context) (model.Collection, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return model.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	logs, err := model.DecodeCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return logs, nil
}

func (s *LogStore) save(ctx context.Context, logs model.Collection) error {
	raw, err := logs.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// nextTime issues a timestamp strictly later than the current head so
// the deletion key stays unique within the collection.
func (s *LogStore) nextTime(logs model.Collection) string {
	now := s.now().UTC().Truncate(time.Microsecond)
	if len(logs) > 0 {
		if head, ok := logs[0].ParsedTime(); ok && !now.After(head) {
			now = head.Add(time.Microsecond)
		}
	}
	return model.FormatTime(now)
}
