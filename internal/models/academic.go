package models

import (
	"time"

	"gorm.io/datatypes"
)

type PassFail string

const (
	ResultPass PassFail = "pass"
	ResultFail PassFail = "fail"
)

// SubjectMark is one row of the optional per-subject breakdown on a result.
// Order is preserved as entered.
type SubjectMark struct {
	Name          string   `json:"name"`
	ObtainedMarks *float64 `json:"obtainedMarks"`
	MaxMarks      *float64 `json:"maxMarks"`
}

// StudentResult is append-only: results are never edited, only removed as a
// side effect of deleting the owning student.
type StudentResult struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"studentId" gorm:"not null;index"`
	ExamName  string `json:"examName" gorm:"not null;size:200"`
	Session   string `json:"session" gorm:"size:50"`

	TotalMarks    *float64 `json:"totalMarks"`
	ObtainedMarks *float64 `json:"obtainedMarks"`

	// Derived at write time by the derivation functions and persisted as
	// authoritative; never recomputed on read.
	Percentage *float64  `json:"percentage"`
	Grade      *string   `json:"grade" gorm:"size:2"`
	PassFail   *PassFail `json:"passFail" gorm:"size:4"`

	Remarks  *string                          `json:"remarks" gorm:"type:text"`
	Subjects datatypes.JSONSlice[SubjectMark] `json:"subjects" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
}

func (StudentResult) TableName() string {
	return "student_results"
}

type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePartial FeeStatus = "partial"
	FeePaid    FeeStatus = "paid"
)

type StudentFee struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	StudentID uint    `json:"studentId" gorm:"not null;index"`
	Amount    float64 `json:"amount" gorm:"not null"`
	Paid      float64 `json:"paid" gorm:"not null;default:0"`

	// Derived at write time.
	Balance float64   `json:"balance" gorm:"not null"`
	Status  FeeStatus `json:"status" gorm:"not null;size:10"`

	Session     string     `json:"session" gorm:"size:50"`
	Description string     `json:"description" gorm:"size:200"`
	DueDate     *time.Time `json:"dueDate"`

	CreatedAt time.Time `json:"createdAt"`
}

func (StudentFee) TableName() string {
	return "student_fees"
}
