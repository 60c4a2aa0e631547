package models

import "time"

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name string `gorm:"size:100;not null" json:"name"`

	Specialties []Specialty `json:"specialties"`

	// Slot granularity in minutes; every bookable slot starts on a
	// multiple of this within a window.
	SlotMinutes int `gorm:"default:30" json:"slot_minutes"`

	VirtualCapable bool `gorm:"default:false" json:"virtual_capable"`

	ConsultationFeeCents int `gorm:"default:0" json:"consultation_fee_cents"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Specialty struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	DoctorID uint   `gorm:"index" json:"doctor_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
}
