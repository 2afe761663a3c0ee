package translog

import (
	"time"
)

// log types written alongside employee and leave mutations
const (
	LogTypeEmployeeCreated   = "employee_created"
	LogTypeEmployeeUpdated   = "employee_updated"
	LogTypeTerminated        = "employee_terminated"
	LogTypeDepartmentMoved   = "department_moved"
	LogTypeSalaryIncremented = "salary_incremented"
	LogTypeJobTitleChanged   = "job_title_changed"
	LogTypeLeaveRequested    = "leave_requested"
	LogTypeLeaveActioned     = "leave_actioned"
	LogTypeLeaveWithdrawn    = "leave_withdrawn"
)

type TransactionLog struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID int64     `json:"employee_id" gorm:"column:employee_id;not null;index"`
	ByUserID   int64     `json:"by_user_id" gorm:"column:by_user_id;not null"`
	LogType    string    `json:"log_type" gorm:"column:log_type;not null"`
	Details    string    `json:"details" gorm:"column:details;type:jsonb"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (TransactionLog) TableName() string {
	return "employee_transaction_logs"
}
