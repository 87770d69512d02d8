package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/testutil"

	"github.com/google/uuid"
)

type appointmentFixture struct {
	usecase      AppointmentUsecase
	appointments *fakeAppointmentRepo
	audit        *fakeAuditService
	txLog        *testutil.TxLog
}

func newAppointmentFixture(t *testing.T, doctors []entity.Doctor, patients []entity.Patient) *appointmentFixture {
	t.Helper()
	db, txLog := testutil.NewGormDB(t)
	f := &appointmentFixture{
		appointments: &fakeAppointmentRepo{},
		audit:        &fakeAuditService{},
		txLog:        txLog,
	}
	f.usecase = NewAppointmentUsecase(db, quietLogger(), f.appointments, newFakeDoctorRepo(doctors...), newFakePatientRepo(patients...), f.audit, testEngine())
	return f
}

func testPatient(clinicID uuid.UUID) entity.Patient {
	return entity.Patient{
		ID:          uuid.New(),
		ClinicID:    clinicID,
		Name:        "João Lima",
		Email:       "joao@example.com",
		PhoneNumber: "+5511999990000",
		Gender:      entity.GenderMale,
	}
}

func appointmentRequest(doctorID, patientID uuid.UUID, price int) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		DoctorID:                doctorID.String(),
		PatientID:               patientID.String(),
		AppointmentPriceInCents: price,
		AppointmentDate:         slotDate,
		AppointmentTime:         "10:00",
	}
}

func TestCreateAppointment_SnapshotsDoctorPrice(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	patient := testPatient(clinicID)
	f := newAppointmentFixture(t, []entity.Doctor{doctor}, []entity.Patient{patient})

	resp, err := f.usecase.CreateAppointment(context.Background(), clinicID, appointmentRequest(doctor.ID, patient.ID, 0))
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	if len(f.appointments.created) != 1 {
		t.Fatalf("created %d appointments, want 1", len(f.appointments.created))
	}
	stored := f.appointments.created[0]
	if stored.AppointmentPriceInCents != doctor.AppointmentPriceInCents {
		t.Errorf("stored price = %d, want doctor price %d", stored.AppointmentPriceInCents, doctor.AppointmentPriceInCents)
	}
	if resp.AppointmentPriceInCents != doctor.AppointmentPriceInCents {
		t.Errorf("response price = %d, want %d", resp.AppointmentPriceInCents, doctor.AppointmentPriceInCents)
	}
	// 10:00 at UTC-03:00.
	wantAt := time.Date(2025, 1, 15, 13, 0, 0, 0, time.UTC)
	if !stored.AppointmentDateTime.Equal(wantAt) || stored.AppointmentDateTime.Location() != time.UTC {
		t.Errorf("stored instant = %v, want %v in UTC", stored.AppointmentDateTime, wantAt)
	}
	if stored.ClinicID != clinicID || stored.DoctorID != doctor.ID || stored.PatientID != patient.ID {
		t.Errorf("stored ids = %+v", stored)
	}
	if f.txLog.Commits() != 1 {
		t.Errorf("commits = %d, want 1", f.txLog.Commits())
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != entity.AuditActionAppointmentCreate {
		t.Errorf("audit actions = %v", f.audit.actions)
	}
}

func TestCreateAppointment_RequestedPriceWins(t *testing.T) {
	clinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	patient := testPatient(clinicID)
	f := newAppointmentFixture(t, []entity.Doctor{doctor}, []entity.Patient{patient})

	if _, err := f.usecase.CreateAppointment(context.Background(), clinicID, appointmentRequest(doctor.ID, patient.ID, 9900)); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if got := f.appointments.created[0].AppointmentPriceInCents; got != 9900 {
		t.Errorf("stored price = %d, want 9900", got)
	}
}

func TestCreateAppointment_Rejections(t *testing.T) {
	clinicID := uuid.New()
	otherClinicID := uuid.New()
	doctor := weekdayDoctor(clinicID)
	patient := testPatient(clinicID)
	foreignDoctor := weekdayDoctor(otherClinicID)
	foreignPatient := testPatient(otherClinicID)

	tests := []struct {
		name    string
		req     *dto.CreateAppointmentRequest
		wantErr error
	}{
		{"doctor of another clinic", appointmentRequest(foreignDoctor.ID, patient.ID, 0), ErrDoctorNotFound},
		{"patient of another clinic", appointmentRequest(doctor.ID, foreignPatient.ID, 0), ErrPatientNotFound},
		{"unknown doctor", appointmentRequest(uuid.New(), patient.ID, 0), ErrDoctorNotFound},
		{"malformed doctor id", &dto.CreateAppointmentRequest{DoctorID: "nope", PatientID: patient.ID.String(), AppointmentDate: slotDate, AppointmentTime: "10:00"}, ErrDoctorNotFound},
		{"outside availability", &dto.CreateAppointmentRequest{DoctorID: doctor.ID.String(), PatientID: patient.ID.String(), AppointmentDate: "2025-01-18", AppointmentTime: "10:00"}, ErrOutsideAvailability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t,
				[]entity.Doctor{doctor, foreignDoctor},
				[]entity.Patient{patient, foreignPatient},
			)

			_, err := f.usecase.CreateAppointment(context.Background(), clinicID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(f.appointments.created) != 0 {
				t.Errorf("created %d appointments, want none", len(f.appointments.created))
			}
			if f.txLog.Commits() != 0 {
				t.Errorf("commits = %d, want 0", f.txLog.Commits())
			}
		})
	}
}
