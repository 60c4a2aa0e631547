package models

import "time"

const (
	ModalityInPerson = "in-person"
	ModalityVirtual  = "virtual"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConfirmationCode string `gorm:"size:36;uniqueIndex" json:"confirmation_code"`

	PatientID uint `gorm:"index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint   `gorm:"index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Modality  string `gorm:"size:20;default:'in-person'" json:"modality"`
	VisitType string `gorm:"size:40" json:"visit_type"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	// Fee snapshot at booking time, so later fee changes do not
	// rewrite history.
	FeeCents int `json:"fee_cents"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CancelledBy string     `gorm:"size:20" json:"cancelled_by"`
	CompletedAt *time.Time `json:"completed_at"`
	MissedAt    *time.Time `json:"missed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
