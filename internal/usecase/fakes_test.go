package usecase

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeDoctorRepo keeps doctors in memory and bumps UpdatedAt on Update like autoUpdateTime.
type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]entity.Doctor
	clock   time.Time
}

func newFakeDoctorRepo(doctors ...entity.Doctor) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: map[uuid.UUID]entity.Doctor{}, clock: testNow}
	for _, d := range doctors {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Second)
	doctor.CreatedAt, doctor.UpdatedAt = r.clock, r.clock
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok || d.ClinicID != clinicID {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDoctorRepo) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Doctor
	for _, d := range r.doctors {
		if d.ClinicID == clinicID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) FindBatch(db *gorm.DB, limit, offset int) ([]entity.Doctor, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	doctor.UpdatedAt = r.clock
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok || d.ClinicID != clinicID {
		return 0, nil
	}
	delete(r.doctors, id)
	return 1, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]entity.Patient
}

func newFakePatientRepo(patients ...entity.Patient) *fakePatientRepo {
	r := &fakePatientRepo{patients: map[uuid.UUID]entity.Patient{}}
	for _, p := range patients {
		r.patients[p.ID] = p
	}
	return r
}

func (r *fakePatientRepo) Create(db *gorm.DB, patient *entity.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Patient, error) {
	p, ok := r.patients[id]
	if !ok || p.ClinicID != clinicID {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePatientRepo) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) Update(db *gorm.DB, patient *entity.Patient) error {
	r.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeAppointmentRepo struct {
	created []entity.Appointment
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	r.created = append(r.created, *appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeAuditService struct {
	actions []string
}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, actor service.Actor, action, entityName, entityID string, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor service.Actor, action, entityName, entityID string, oldValue, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, actor service.Actor, action, entityName, entityID string, oldValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

// fakeSlotCache is an in-memory SlotCacheService. onGet runs after a lookup, before it returns.
type fakeSlotCache struct {
	mu          sync.Mutex
	entries     map[string]service.SlotCacheEntry
	gets        int
	sets        int
	invalidated []uuid.UUID
	onGet       func()
}

func newFakeSlotCache() *fakeSlotCache {
	return &fakeSlotCache{entries: map[string]service.SlotCacheEntry{}}
}

func (c *fakeSlotCache) Get(ctx context.Context, doctorID uuid.UUID, date time.Time) (*service.SlotCacheEntry, error) {
	c.mu.Lock()
	c.gets++
	entry, ok := c.entries[service.SlotKey(doctorID, date)]
	hook := c.onGet
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (c *fakeSlotCache) Set(ctx context.Context, entry service.SlotCacheEntry) error {
	return c.SetMany(ctx, []service.SlotCacheEntry{entry})
}

func (c *fakeSlotCache) SetMany(ctx context.Context, entries []service.SlotCacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		c.sets++
		c.entries[service.SlotKey(e.DoctorID, e.Date)] = e
	}
	return nil
}

func (c *fakeSlotCache) Invalidate(ctx context.Context, doctorID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, doctorID)
	prefix := service.RedisSlotKeyPrefix + doctorID.String() + ":"
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *fakeSlotCache) entry(doctorID uuid.UUID, date time.Time) (service.SlotCacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[service.SlotKey(doctorID, date)]
	return e, ok
}
