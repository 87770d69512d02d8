package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/availability"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/testutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// batchDoctorRepo serves FindBatch from a fixed slice and records the offsets asked for.
type batchDoctorRepo struct {
	doctors []entity.Doctor
	offsets []int
	err     error
}

func (r *batchDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error { return nil }

func (r *batchDoctorRepo) FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Doctor, error) {
	return nil, nil
}

func (r *batchDoctorRepo) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.Doctor, error) {
	return nil, nil
}

func (r *batchDoctorRepo) FindBatch(db *gorm.DB, limit, offset int) ([]entity.Doctor, error) {
	r.offsets = append(r.offsets, offset)
	if r.err != nil {
		return nil, r.err
	}
	if offset >= len(r.doctors) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.doctors) {
		end = len(r.doctors)
	}
	return r.doctors[offset:end], nil
}

func (r *batchDoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) error { return nil }

func (r *batchDoctorRepo) Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error) {
	return 0, nil
}

// recordingSlotCache keeps every SetMany batch.
type recordingSlotCache struct {
	batches [][]SlotCacheEntry
}

func (c *recordingSlotCache) Get(ctx context.Context, doctorID uuid.UUID, date time.Time) (*SlotCacheEntry, error) {
	return nil, nil
}

func (c *recordingSlotCache) Set(ctx context.Context, entry SlotCacheEntry) error {
	return c.SetMany(ctx, []SlotCacheEntry{entry})
}

func (c *recordingSlotCache) SetMany(ctx context.Context, entries []SlotCacheEntry) error {
	c.batches = append(c.batches, entries)
	return nil
}

func (c *recordingSlotCache) Invalidate(ctx context.Context, doctorID uuid.UUID) error { return nil }

func warmerDoctors(n int) []entity.Doctor {
	doctors := make([]entity.Doctor, n)
	for i := range doctors {
		doctors[i] = entity.Doctor{
			ID:                      uuid.New(),
			AvailabilityFromWeekDay: 0,
			AvailabilityToWeekDay:   6,
			AvailabilityFromTime:    "11:00:00",
			AvailabilityToTime:      "13:00:00",
			UpdatedAt:               time.Date(2025, 1, 10, 8, 0, i, 0, time.UTC),
		}
	}
	return doctors
}

func newTestWarmer(t *testing.T, repo *batchDoctorRepo, cache SlotCacheService, batchSize int) *SlotCacheWarmer {
	t.Helper()
	db, _ := testutil.NewGormDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	engine := availability.NewEngine(-3*time.Hour, availability.WithClock(func() time.Time {
		return time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	}))
	return NewSlotCacheWarmer(db, log, repo, cache, engine, "0 0 * * *", batchSize)
}

func TestWarmToday_Batches(t *testing.T) {
	tests := []struct {
		name        string
		doctors     int
		wantOffsets []int
		wantBatches []int
	}{
		{"short last batch stops the loop", 5, []int{0, 2, 4}, []int{2, 2, 1}},
		{"full last batch needs an empty read", 4, []int{0, 2, 4}, []int{2, 2}},
		{"no doctors", 0, []int{0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &batchDoctorRepo{doctors: warmerDoctors(tt.doctors)}
			cache := &recordingSlotCache{}
			w := newTestWarmer(t, repo, cache, 2)

			if err := w.WarmToday(context.Background()); err != nil {
				t.Fatalf("WarmToday: %v", err)
			}

			if len(repo.offsets) != len(tt.wantOffsets) {
				t.Fatalf("offsets = %v, want %v", repo.offsets, tt.wantOffsets)
			}
			for i := range tt.wantOffsets {
				if repo.offsets[i] != tt.wantOffsets[i] {
					t.Errorf("offsets = %v, want %v", repo.offsets, tt.wantOffsets)
					break
				}
			}

			if len(cache.batches) != len(tt.wantBatches) {
				t.Fatalf("wrote %d batches, want %d", len(cache.batches), len(tt.wantBatches))
			}
			written := 0
			for i, batch := range cache.batches {
				if len(batch) != tt.wantBatches[i] {
					t.Errorf("batch %d has %d entries, want %d", i, len(batch), tt.wantBatches[i])
				}
				for _, entry := range batch {
					doctor := repo.doctors[written]
					if entry.DoctorID != doctor.ID {
						t.Errorf("entry %d doctor = %s, want %s", written, entry.DoctorID, doctor.ID)
					}
					if entry.Version != SlotVersion(&doctor) {
						t.Errorf("entry %d version = %d, want %d", written, entry.Version, SlotVersion(&doctor))
					}
					if entry.Date.Format(slotDateLayout) != "2025-01-15" {
						t.Errorf("entry %d date = %s", written, entry.Date.Format(slotDateLayout))
					}
					written++
				}
			}
		})
	}
}

func TestWarmToday_SkipsDoctorWithBrokenWindow(t *testing.T) {
	doctors := warmerDoctors(3)
	doctors[1].AvailabilityFromTime = "garbage"
	repo := &batchDoctorRepo{doctors: doctors}
	cache := &recordingSlotCache{}

	if err := newTestWarmer(t, repo, cache, 10).WarmToday(context.Background()); err != nil {
		t.Fatalf("WarmToday: %v", err)
	}
	if len(cache.batches) != 1 || len(cache.batches[0]) != 2 {
		t.Fatalf("batches = %v, want one batch of 2", cache.batches)
	}
	for _, entry := range cache.batches[0] {
		if entry.DoctorID == doctors[1].ID {
			t.Error("doctor with a broken window was cached")
		}
	}
}

func TestWarmToday_QueryError(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &batchDoctorRepo{err: boom}

	err := newTestWarmer(t, repo, &recordingSlotCache{}, 2).WarmToday(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestWarmToday_StopsWhenCancelled(t *testing.T) {
	repo := &batchDoctorRepo{doctors: warmerDoctors(6)}
	cache := &recordingSlotCache{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestWarmer(t, repo, cache, 2).WarmToday(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want %v", err, context.Canceled)
	}
	if len(repo.offsets) != 1 {
		t.Errorf("offsets = %v, want a single batch before the cancellation check", repo.offsets)
	}
}
