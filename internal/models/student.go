package models

import (
	"time"
)

// Classes is the fixed set of grade levels students can be registered under.
// Senior classes are split by stream the way the school runs its sections.
var Classes = []string{
	"Nursery", "LKG", "UKG", "1", "2", "3", "4", "5", "6", "7", "8",
	"9", "9-Arts", "9-Home Science", "9-Science",
	"10",
	"11-Arts", "11-Commerce", "11-Science",
	"12-Arts", "12-Commerce", "12-Science",
}

// IsValidClass reports whether class is one of the enumerated grade levels.
// Comparison is exact: class labels are case-sensitive.
func IsValidClass(class string) bool {
	for _, c := range Classes {
		if c == class {
			return true
		}
	}
	return false
}

type Student struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"not null;size:100"`
	Class  string `json:"class" gorm:"not null;size:20;uniqueIndex:idx_class_roll"`
	RollNo string `json:"rollNo" gorm:"not null;size:20;uniqueIndex:idx_class_roll"`

	// Credential is optional: a teacher-registered student has none until
	// self-registration, and a reset overwrites it unconditionally.
	PasswordHash *string `json:"-" gorm:"size:100"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	Results []StudentResult `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Fees    []StudentFee    `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// HasAccount reports whether the student has completed self-registration.
func (s *Student) HasAccount() bool {
	return s.PasswordHash != nil && *s.PasswordHash != ""
}

func (Student) TableName() string {
	return "students"
}
