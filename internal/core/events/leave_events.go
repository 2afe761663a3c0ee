package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveRequested = "leave.requested"
	EventTypeLeaveActioned  = "leave.actioned"
	EventTypeLeaveWithdrawn = "leave.withdrawn"
	EventTypeLeaveConsumed  = "leave.consumed"
)

type LeaveRequestedEvent struct {
	BaseEvent
	LeaveRequestID int64  `json:"leave_request_id"`
	EmployeeID     int64  `json:"employee_id"`
	LeaveTypeID    int64  `json:"leave_type_id"`
	Duration       int    `json:"duration"`
	Status         string `json:"status"`
}

func NewLeaveRequestedEvent(leaveRequestID, employeeID, leaveTypeID int64, duration int, status string) *LeaveRequestedEvent {
	return &LeaveRequestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveRequested,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_request_id": leaveRequestID,
				"employee_id":      employeeID,
				"leave_type_id":    leaveTypeID,
				"duration":         duration,
				"status":           status,
			},
		},
		LeaveRequestID: leaveRequestID,
		EmployeeID:     employeeID,
		LeaveTypeID:    leaveTypeID,
		Duration:       duration,
		Status:         status,
	}
}

type LeaveActionedEvent struct {
	BaseEvent
	LeaveRequestID int64  `json:"leave_request_id"`
	EmployeeID     int64  `json:"employee_id"`
	ActionedBy     int64  `json:"actioned_by"`
	Decision       string `json:"decision"`
}

func NewLeaveActionedEvent(leaveRequestID, employeeID, actionedBy int64, decision string) *LeaveActionedEvent {
	return &LeaveActionedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveActioned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_request_id": leaveRequestID,
				"employee_id":      employeeID,
				"actioned_by":      actionedBy,
				"decision":         decision,
			},
		},
		LeaveRequestID: leaveRequestID,
		EmployeeID:     employeeID,
		ActionedBy:     actionedBy,
		Decision:       decision,
	}
}

type LeaveWithdrawnEvent struct {
	BaseEvent
	LeaveRequestID int64 `json:"leave_request_id"`
	WithdrawnBy    int64 `json:"withdrawn_by"`
}

func NewLeaveWithdrawnEvent(leaveRequestID, withdrawnBy int64) *LeaveWithdrawnEvent {
	return &LeaveWithdrawnEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveWithdrawn,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_request_id": leaveRequestID,
				"withdrawn_by":     withdrawnBy,
			},
		},
		LeaveRequestID: leaveRequestID,
		WithdrawnBy:    withdrawnBy,
	}
}

type LeaveConsumedEvent struct {
	BaseEvent
	AffectedCount int64     `json:"affected_count"`
	SweptAt       time.Time `json:"swept_at"`
}

func NewLeaveConsumedEvent(affectedCount int64, sweptAt time.Time) *LeaveConsumedEvent {
	return &LeaveConsumedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveConsumed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"affected_count": affectedCount,
				"swept_at":       sweptAt,
			},
		},
		AffectedCount: affectedCount,
		SweptAt:       sweptAt,
	}
}
