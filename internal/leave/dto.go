package leave

import (
	"time"

	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/core/common/validation"
)

const dateLayout = "2006-01-02"

type ApplyLeaveDTO struct {
	EmployeeID   int64  `json:"employee_id"`
	LeaveTypeID  int64  `json:"leave_type_id"`
	StartingDate string `json:"starting_date"`
	EndingDate   string `json:"ending_date"`
	Duration     int    `json:"duration"`
}

func (d ApplyLeaveDTO) Validate() error {
	if d.EmployeeID <= 0 {
		return errors.NewValidationFieldError("employee_id", "employee_id is required", errors.ErrCodeValidationFailed)
	}
	if d.LeaveTypeID <= 0 {
		return errors.NewValidationFieldError("leave_type_id", "leave_type_id is required", errors.ErrCodeValidationFailed)
	}
	if err := validation.ValidateLeaveDuration(d.Duration); err != nil {
		return err
	}

	start, err := time.Parse(dateLayout, d.StartingDate)
	if err != nil {
		return errors.NewValidationFieldError("starting_date", "starting_date must be YYYY-MM-DD", errors.ErrCodeValidationFailed)
	}
	end, err := time.Parse(dateLayout, d.EndingDate)
	if err != nil {
		return errors.NewValidationFieldError("ending_date", "ending_date must be YYYY-MM-DD", errors.ErrCodeValidationFailed)
	}
	if validationErr := validation.ValidateLeaveDates(start, end); validationErr != nil {
		return validationErr
	}
	return nil
}

func (d ApplyLeaveDTO) StartingDateTime() time.Time {
	t, _ := time.Parse(dateLayout, d.StartingDate)
	return t
}

func (d ApplyLeaveDTO) EndingDateTime() time.Time {
	t, _ := time.Parse(dateLayout, d.EndingDate)
	return t
}

const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

type ActionLeaveDTO struct {
	Decision string `json:"decision"`
}

func (d ActionLeaveDTO) Validate() error {
	if d.Decision != DecisionApproved && d.Decision != DecisionRejected {
		return errors.NewValidationFieldError("decision", "decision must be approved or rejected", errors.ErrCodeValidationFailed)
	}
	return nil
}
