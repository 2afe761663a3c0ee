package leave

import (
	"time"
)

// Status is the closed set of leave request states. All writes go through
// the transition table; free-form status strings are never persisted.
type Status string

const (
	StatusRequested    Status = "requested"
	StatusSelfApproved Status = "self_approved"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
	StatusConsumed     Status = "consumed"
)

var validTransitions = map[Status][]Status{
	StatusRequested:    {StatusApproved, StatusRejected, StatusWithdrawn},
	StatusApproved:     {StatusWithdrawn, StatusConsumed},
	StatusSelfApproved: {StatusConsumed},
}

// CanTransition reports whether moving a request from one status to
// another is permitted. Rejected, withdrawn, and consumed are terminal.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusRequested, StatusSelfApproved, StatusApproved,
		StatusRejected, StatusWithdrawn, StatusConsumed:
		return true
	}
	return false
}

// LeaveRequest is a single application for leave. Pay percentage is
// snapshotted from the leave type at creation time so later policy edits
// do not rewrite history.
type LeaveRequest struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID    int64     `json:"employee_id" gorm:"column:employee_id;not null;index"`
	LeaveTypeID   int64     `json:"leave_type_id" gorm:"column:leave_id;not null;index"`
	Duration      int       `json:"duration" gorm:"column:duration;not null"`
	StartingDate  time.Time `json:"starting_date" gorm:"column:starting_date;not null"`
	EndingDate    time.Time `json:"ending_date" gorm:"column:ending_date;not null"`
	PayPercentage int       `json:"pay_percentage" gorm:"column:pay_percentage;not null"`
	Status        Status    `json:"status" gorm:"column:status;not null;index"`
	RequestedBy   int64     `json:"requested_by" gorm:"column:requested_by;not null"`
	ActionedBy    *int64    `json:"actioned_by,omitempty" gorm:"column:actioned_by"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRequest) TableName() string {
	return "employee_leaves"
}
