package entity

import (
	"time"

	"clinic-scheduler/internal/domain/availability"

	"github.com/google/uuid"
)

// Doctor holds a doctor's profile and weekly availability.
// AvailabilityFromTime and AvailabilityToTime are HH:MM:SS in UTC.
type Doctor struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID                uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name                    string    `gorm:"type:varchar(255);not null;index" json:"name"`
	AvatarImageURL          *string   `gorm:"column:avatar_image_url;type:text" json:"avatar_image_url,omitempty"`
	Specialty               string    `gorm:"type:varchar(100);not null" json:"specialty"`
	Gender                  string    `gorm:"type:varchar(10);not null" json:"gender"`
	AvailabilityFromWeekDay int       `gorm:"type:smallint;not null" json:"availability_from_week_day"`
	AvailabilityToWeekDay   int       `gorm:"type:smallint;not null" json:"availability_to_week_day"`
	AvailabilityFromTime    string    `gorm:"type:varchar(8);not null" json:"availability_from_time"`
	AvailabilityToTime      string    `gorm:"type:varchar(8);not null" json:"availability_to_time"`
	AppointmentPriceInCents int       `gorm:"not null" json:"appointment_price_in_cents"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Window parses the stored availability columns.
func (d *Doctor) Window() (availability.Window, error) {
	from, err := availability.ParseTimeOfDay(d.AvailabilityFromTime)
	if err != nil {
		return availability.Window{}, err
	}
	to, err := availability.ParseTimeOfDay(d.AvailabilityToTime)
	if err != nil {
		return availability.Window{}, err
	}
	return availability.NewWindow(d.AvailabilityFromWeekDay, d.AvailabilityToWeekDay, from, to)
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// MedicalSpecialties is the catalogue a doctor's specialty is chosen from.
var MedicalSpecialties = []string{
	"Alergologia",
	"Anestesiologia",
	"Angiologia",
	"Cancerologia",
	"Cardiologia",
	"Cirurgia Cardiovascular",
	"Cirurgia de Cabeça e Pescoço",
	"Cirurgia do Aparelho Digestivo",
	"Cirurgia Geral",
	"Cirurgia Pediátrica",
	"Cirurgia Plástica",
	"Cirurgia Torácica",
	"Cirurgia Vascular",
	"Clínica Médica",
	"Dermatologia",
	"Endocrinologia e Metabologia",
	"Endoscopia",
	"Gastroenterologia",
	"Geriatria",
	"Ginecologia e Obstetrícia",
	"Hematologia e Hemoterapia",
	"Hepatologia",
	"Homeopatia",
	"Infectologia",
	"Mastologia",
	"Medicina de Emergência",
	"Medicina do Esporte",
	"Medicina do Trabalho",
	"Medicina de Família e Comunidade",
	"Medicina Física e Reabilitação",
	"Medicina Intensiva",
	"Medicina Legal e Perícia Médica",
	"Nefrologia",
	"Neurocirurgia",
	"Neurologia",
	"Nutrologia",
	"Oftalmologia",
	"Oncologia Clínica",
	"Ortopedia e Traumatologia",
	"Otorrinolaringologia",
	"Patologia",
	"Patologia Clínica/Medicina Laboratorial",
	"Pediatria",
	"Pneumologia",
	"Psiquiatria",
	"Radiologia e Diagnóstico por Imagem",
	"Radioterapia",
	"Reumatologia",
	"Urologia",
}

// IsMedicalSpecialty reports whether s is in the catalogue.
func IsMedicalSpecialty(s string) bool {
	for _, specialty := range MedicalSpecialties {
		if specialty == s {
			return true
		}
	}
	return false
}
