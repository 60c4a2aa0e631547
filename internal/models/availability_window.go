package models

import "time"

// AvailabilityWindow is a doctor-declared interval of bookable time.
// Either a recurring weekday rule or, when Date is set ("2006-01-02"),
// an override for that single calendar date. Times are "15:04" strings
// interpreted in the clinic timezone. A day may carry several windows
// (morning and afternoon shifts).
type AvailabilityWindow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`

	Weekday int    `json:"weekday"`
	Date    string `gorm:"size:10" json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
