package employee

import (
	"time"

	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/core/common/validation"
)

const dateLayout = "2006-01-02"

type CreateEmployeeDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	CountryCode  string `json:"country_code"`
	Mobile       string `json:"mobile"`
	JobTitle     string `json:"job_title"`
	Gender       int16  `json:"gender"`
	JoiningDate  string `json:"joining_date"`
	DepartmentID int64  `json:"department_id"`
	ReportingTo  *int64 `json:"reporting_to,omitempty"`
	Salary       int64  `json:"salary"`
	SelfService  bool   `json:"self_service"`
	Password     string `json:"password,omitempty"`
}

func (d CreateEmployeeDTO) Validate() error {
	if err := validation.NewValidator().
		Field("name", d.Name).Required().MinLength(2).MaxLength(255).
		Field("email", d.Email).Required().MaxLength(255).
		Field("job_title", d.JobTitle).Required().MaxLength(255).
		Field("joining_date", d.JoiningDate).Required().
		Validate(); err != nil {
		return err
	}
	if d.Gender != GenderFemale && d.Gender != GenderMale {
		return errors.NewValidationFieldError("gender", "gender must be 0 or 1", errors.ErrCodeValidationFailed)
	}
	if d.DepartmentID <= 0 {
		return errors.NewValidationFieldError("department_id", "department_id is required", errors.ErrCodeValidationFailed)
	}
	if d.Salary < 0 {
		return errors.NewValidationFieldError("salary", "salary cannot be negative", errors.ErrCodeValidationFailed)
	}
	if _, err := time.Parse(dateLayout, d.JoiningDate); err != nil {
		return errors.NewValidationFieldError("joining_date", "joining_date must be YYYY-MM-DD", errors.ErrCodeValidationFailed)
	}
	if d.SelfService && len(d.Password) < 8 {
		return errors.NewValidationFieldError("password", "password must be at least 8 characters for self service accounts", errors.ErrCodeValidationFailed)
	}
	return nil
}

func (d CreateEmployeeDTO) JoiningDateTime() time.Time {
	t, _ := time.Parse(dateLayout, d.JoiningDate)
	return t
}

type UpdateEmployeeDTO struct {
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
	Mobile      string  `json:"mobile"`
	ReportingTo *int64  `json:"reporting_to,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

func (d UpdateEmployeeDTO) Validate() error {
	if err := validation.NewValidator().
		Field("name", d.Name).Required().MinLength(2).MaxLength(255).
		Validate(); err != nil {
		return err
	}
	return nil
}

type TerminateEmployeeDTO struct {
	LastWorkingDate string `json:"last_working_date"`
}

func (d TerminateEmployeeDTO) Validate() error {
	if _, err := time.Parse(dateLayout, d.LastWorkingDate); err != nil {
		return errors.NewValidationFieldError("last_working_date", "last_working_date must be YYYY-MM-DD", errors.ErrCodeValidationFailed)
	}
	return nil
}

func (d TerminateEmployeeDTO) LastWorkingDateTime() time.Time {
	t, _ := time.Parse(dateLayout, d.LastWorkingDate)
	return t
}

type MoveDepartmentDTO struct {
	DepartmentID int64 `json:"department_id"`
}

func (d MoveDepartmentDTO) Validate() error {
	if d.DepartmentID <= 0 {
		return errors.NewValidationFieldError("department_id", "department_id is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

type IncrementSalaryDTO struct {
	Amount int64 `json:"amount"`
}

func (d IncrementSalaryDTO) Validate() error {
	if d.Amount <= 0 {
		return errors.NewValidationFieldError("amount", "amount must be positive", errors.ErrCodeValidationFailed)
	}
	return nil
}

type ChangeJobTitleDTO struct {
	JobTitle string `json:"job_title"`
}

func (d ChangeJobTitleDTO) Validate() error {
	if err := validation.NewValidator().
		Field("job_title", d.JobTitle).Required().MaxLength(255).
		Validate(); err != nil {
		return err
	}
	return nil
}
