package employee

import (
	"time"
)

// Gender values stored on the employee record. Leave types with a
// gender restriction compare against these.
const (
	GenderFemale int16 = 0
	GenderMale   int16 = 1
)

type Employee struct {
	ID              int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string     `json:"name" gorm:"column:name;not null"`
	Email           string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	CountryCode     string     `json:"country_code" gorm:"column:country_code"`
	Mobile          string     `json:"mobile" gorm:"column:mobile"`
	JobTitle        string     `json:"job_title" gorm:"column:job_title;not null"`
	Gender          int16      `json:"gender" gorm:"column:gender;not null"`
	JoiningDate     time.Time  `json:"joining_date" gorm:"column:joining_date;not null"`
	LastWorkingDate *time.Time `json:"last_working_date,omitempty" gorm:"column:last_working_date"`
	DepartmentID    int64      `json:"department_id" gorm:"column:department_id;not null;index"`
	ReportingTo     *int64     `json:"reporting_to,omitempty" gorm:"column:reporting_to;index"`
	Salary          int64      `json:"salary" gorm:"column:salary;not null"`
	Avatar          *string    `json:"avatar,omitempty" gorm:"column:avatar"`
	SelfService     bool       `json:"self_service" gorm:"column:self_service;default:false"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

// IsActive reports whether the employee is still in service. A set
// last_working_date marks the employee as terminated.
func (e *Employee) IsActive() bool {
	return e.LastWorkingDate == nil
}

// ServiceEndsAt returns the end of the employee's service window: the
// last working date when terminated, otherwise the given reference time.
func (e *Employee) ServiceEndsAt(ref time.Time) time.Time {
	if e.LastWorkingDate != nil {
		return *e.LastWorkingDate
	}
	return ref
}

// ServiceDays returns whole days of service as of ref, never negative.
func (e *Employee) ServiceDays(ref time.Time) int64 {
	days := int64(e.ServiceEndsAt(ref).Sub(e.JoiningDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ReportsTo reports whether managerEmployeeID is the employee's direct
// reporting manager.
func (e *Employee) ReportsTo(managerEmployeeID int64) bool {
	return e.ReportingTo != nil && *e.ReportingTo == managerEmployeeID
}
