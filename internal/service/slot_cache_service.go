package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisSlotKeyPrefix namespaces cached bookable slots: slots:<doctor_id>:<YYYY-MM-DD>
	RedisSlotKeyPrefix = "slots:"

	slotDateLayout = "2006-01-02"
	scanBatchSize  = 100
)

// SlotCacheEntry is one doctor's bookable slots for one clinic calendar date.
// Version is the SlotVersion of the doctor row the slots were computed from.
type SlotCacheEntry struct {
	DoctorID uuid.UUID
	Date     time.Time
	Version  int64
	Slots    []string
}

type slotCachePayload struct {
	Version int64    `json:"version"`
	Slots   []string `json:"slots"`
}

// SlotVersion identifies the doctor row a cache entry was computed from.
// Every update bumps UpdatedAt, so an entry written from an older read never matches.
func SlotVersion(doctor *entity.Doctor) int64 {
	return doctor.UpdatedAt.UnixMicro()
}

// SlotCacheService caches bookable slots per doctor and date in Redis.
type SlotCacheService interface {
	// Get returns the cached entry, or nil when the key is absent or unreadable.
	// Callers compare Version against the doctor they loaded before serving it.
	Get(ctx context.Context, doctorID uuid.UUID, date time.Time) (*SlotCacheEntry, error)
	Set(ctx context.Context, entry SlotCacheEntry) error
	// SetMany writes all entries in a single transaction pipeline.
	SetMany(ctx context.Context, entries []SlotCacheEntry) error
	// Invalidate drops every cached date of the doctor.
	Invalidate(ctx context.Context, doctorID uuid.UUID) error
}

type slotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	now         func() time.Time
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger) SlotCacheService {
	return &slotCacheService{
		redisClient: redisClient,
		log:         log,
		now:         time.Now,
	}
}

// SlotKey returns the Redis key for a doctor's slots on a calendar date.
func SlotKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", RedisSlotKeyPrefix, doctorID.String(), date.Format(slotDateLayout))
}

func (s *slotCacheService) Get(ctx context.Context, doctorID uuid.UUID, date time.Time) (*SlotCacheEntry, error) {
	raw, err := s.redisClient.Get(ctx, SlotKey(doctorID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slots for doctor %s: %w", doctorID, err)
	}

	entry, err := decodeSlotEntry(doctorID, date, raw)
	if err != nil {
		// Corrupt or pre-versioning entry: treat as a miss so it gets recomputed.
		s.log.Warnf("Discarding unreadable slot cache entry for doctor %s: %+v", doctorID, err)
		return nil, nil
	}
	return entry, nil
}

func (s *slotCacheService) Set(ctx context.Context, entry SlotCacheEntry) error {
	return s.SetMany(ctx, []SlotCacheEntry{entry})
}

func (s *slotCacheService) SetMany(ctx context.Context, entries []SlotCacheEntry) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := s.redisClient.TxPipeline()
	for _, entry := range entries {
		payload, err := encodeSlotEntry(entry)
		if err != nil {
			return fmt.Errorf("encode slots for doctor %s: %w", entry.DoctorID, err)
		}
		pipe.Set(ctx, SlotKey(entry.DoctorID, entry.Date), payload, calculateTTL(entry.Date, s.now()))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to write %d slot cache entries: %+v", len(entries), err)
		return fmt.Errorf("pipeline exec: %w", err)
	}

	s.log.Debugf("Cached slots for %d doctor/date pairs", len(entries))
	return nil
}

func (s *slotCacheService) Invalidate(ctx context.Context, doctorID uuid.UUID) error {
	pattern := fmt.Sprintf("%s%s:*", RedisSlotKeyPrefix, doctorID.String())

	var cursor uint64
	for {
		keys, next, err := s.redisClient.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			s.log.Warnf("Failed to scan slot cache for doctor %s: %+v", doctorID, err)
			return fmt.Errorf("scan slot keys for doctor %s: %w", doctorID, err)
		}
		if len(keys) > 0 {
			if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
				s.log.Warnf("Failed to delete slot cache for doctor %s: %+v", doctorID, err)
				return fmt.Errorf("delete slot keys for doctor %s: %w", doctorID, err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	s.log.Debugf("Invalidated slot cache for doctor %s", doctorID)
	return nil
}

func encodeSlotEntry(entry SlotCacheEntry) ([]byte, error) {
	slots := entry.Slots
	if slots == nil {
		slots = []string{}
	}
	return json.Marshal(slotCachePayload{Version: entry.Version, Slots: slots})
}

func decodeSlotEntry(doctorID uuid.UUID, date time.Time, raw []byte) (*SlotCacheEntry, error) {
	var payload slotCachePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Slots == nil {
		return nil, errors.New("slot cache entry has no slots field")
	}
	return &SlotCacheEntry{DoctorID: doctorID, Date: date, Version: payload.Version, Slots: payload.Slots}, nil
}

// calculateTTL returns TTL: 24 hours after the start of date
func calculateTTL(date time.Time, now time.Time) time.Duration {
	y, m, d := date.Date()
	expireAt := time.Date(y, m, d, 0, 0, 0, 0, date.Location()).AddDate(0, 0, 1)
	ttl := expireAt.Sub(now)

	if ttl <= 0 {
		// Past date - short TTL for cleanup
		return 1 * time.Minute
	}

	return ttl
}
