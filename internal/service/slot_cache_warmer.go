package service

import (
	"context"
	"fmt"
	"time"

	"clinic-scheduler/internal/domain/availability"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultWarmBatchSize = 500
	warmTimeout          = 5 * time.Minute
)

// DoctorSlots lists the doctor's bookable times on a clinic calendar date as HH:MM.
func DoctorSlots(engine *availability.Engine, doctor *entity.Doctor, date time.Time) ([]string, error) {
	window, err := doctor.Window()
	if err != nil {
		return nil, fmt.Errorf("doctor %s has an invalid availability window: %w", doctor.ID, err)
	}

	slots := engine.BookableSlots(window, date)
	out := make([]string, len(slots))
	for i, slot := range slots {
		out[i] = slot.HHMM()
	}
	return out, nil
}

// SlotCacheWarmer precomputes today's bookable slots for every doctor on a cron schedule.
type SlotCacheWarmer struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	cache      SlotCacheService
	engine     *availability.Engine
	spec       string
	batchSize  int
	cron       *cron.Cron
}

func NewSlotCacheWarmer(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	cache SlotCacheService,
	engine *availability.Engine,
	spec string,
	batchSize int,
) *SlotCacheWarmer {
	if batchSize <= 0 {
		batchSize = defaultWarmBatchSize
	}
	return &SlotCacheWarmer{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
		cache:      cache,
		engine:     engine,
		spec:       spec,
		batchSize:  batchSize,
		cron: cron.New(
			cron.WithLocation(engine.Location()),
			cron.WithLogger(cron.PrintfLogger(log)),
		),
	}
}

// Start registers the warm job and starts the scheduler.
func (w *SlotCacheWarmer) Start() error {
	_, err := w.cron.AddFunc(w.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()
		if err := w.WarmToday(ctx); err != nil {
			w.log.Errorf("Slot cache warm failed: %+v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid slot cache cron spec %q: %w", w.spec, err)
	}

	w.cron.Start()
	w.log.Infof("Slot cache warmer scheduled with spec %q", w.spec)
	return nil
}

// Stop waits for a running job to finish.
func (w *SlotCacheWarmer) Stop() {
	<-w.cron.Stop().Done()
	w.log.Info("Slot cache warmer stopped")
}

// WarmToday caches the current clinic day's slots for all doctors, one pipeline per batch.
func (w *SlotCacheWarmer) WarmToday(ctx context.Context) error {
	startTime := time.Now()
	today := w.engine.Today()
	offset := 0
	total := 0

	for {
		doctors, err := w.doctorRepo.FindBatch(w.db.WithContext(ctx), w.batchSize, offset)
		if err != nil {
			return fmt.Errorf("query doctors at offset %d: %w", offset, err)
		}
		if len(doctors) == 0 {
			break
		}

		entries := make([]SlotCacheEntry, 0, len(doctors))
		for i := range doctors {
			slots, err := DoctorSlots(w.engine, &doctors[i], today)
			if err != nil {
				w.log.Warnf("Skipping slot cache for doctor: %+v", err)
				continue
			}
			entries = append(entries, SlotCacheEntry{
				DoctorID: doctors[i].ID,
				Date:     today,
				Version:  SlotVersion(&doctors[i]),
				Slots:    slots,
			})
		}

		if err := w.cache.SetMany(ctx, entries); err != nil {
			return fmt.Errorf("cache batch at offset %d: %w", offset, err)
		}
		total += len(entries)

		if len(doctors) < w.batchSize {
			break
		}
		offset += w.batchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	w.log.Infof("Slot cache warmed: %d doctors for %s in %v", total, today.Format(slotDateLayout), time.Since(startTime))
	return nil
}
