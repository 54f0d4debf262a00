package models

import (
	"time"

	"gorm.io/datatypes"
)

type Student struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	RegNo        string         `json:"reg_no" gorm:"uniqueIndex;not null;size:50"`
	Name         string         `json:"name" gorm:"not null;size:200;index"`
	DateOfBirth  datatypes.Date `json:"date_of_birth"`
	Class        string         `json:"class" gorm:"not null;size:50;index"`
	Term         string         `json:"term" gorm:"not null;size:50"`
	AcademicYear string         `json:"academic_year" gorm:"not null;size:20"`

	GuardianName  string `json:"guardian_name" gorm:"size:200"`
	GuardianPhone string `json:"guardian_phone" gorm:"size:50"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated" gorm:"autoUpdateTime"`

	// Relations
	FeePeriods []FeePeriod `json:"fee_periods,omitempty" gorm:"foreignKey:StudentID"`
	Payments   []Payment   `json:"payments,omitempty" gorm:"foreignKey:StudentID"`
}

func (Student) TableName() string {
	return "students"
}
