package models

import (
	"time"
)

type AdmissionStatus string

const (
	AdmissionPending   AdmissionStatus = "pending"
	AdmissionContacted AdmissionStatus = "contacted"
	AdmissionAdmitted  AdmissionStatus = "admitted"
	AdmissionRejected  AdmissionStatus = "rejected"
)

// Admission is a public enquiry tracked through a status funnel
// (pending → contacted → admitted/rejected).
type Admission struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	StudentName   string          `json:"studentName" gorm:"not null;size:100"`
	ClassApplying string          `json:"classApplying" gorm:"not null;size:50"`
	ParentMobile  string          `json:"parentMobile" gorm:"not null;size:15"`
	Message       *string         `json:"message" gorm:"type:text"`
	Status        AdmissionStatus `json:"status" gorm:"not null;default:pending;index;size:10"`
	Notes         *string         `json:"notes" gorm:"type:text"`

	// Set once, on the first transition into "contacted".
	ContactedAt *time.Time `json:"contactedAt"`

	SubmittedAt time.Time `json:"submittedAt" gorm:"not null;index"`
	UpdatedAt   time.Time `json:"-"`
}

func (Admission) TableName() string {
	return "admissions"
}
