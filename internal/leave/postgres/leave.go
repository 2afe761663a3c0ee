package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/hr-leave-management/internal/leave"
	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(req *leave.LeaveRequest) error {
	return r.db.Create(req).Error
}

func (r *LeaveRepository) GetByID(id int64) (*leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := r.db.First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *LeaveRepository) GetForEmployee(employeeID int64, status leave.Status) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	query := r.db.Where("employee_id = ?", employeeID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("starting_date DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetForManager returns the requests of every employee reporting
// directly to the given manager.
func (r *LeaveRepository) GetForManager(managerEmployeeID int64, status leave.Status) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	query := r.db.
		Joins("JOIN employees ON employees.id = employee_leaves.employee_id").
		Where("employees.reporting_to = ?", managerEmployeeID)
	if status != "" {
		query = query.Where("employee_leaves.status = ?", status)
	}
	if err := query.Order("employee_leaves.starting_date DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *LeaveRepository) GetConsumedInWindow(employeeID, leaveTypeID int64, start, end time.Time) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	err := r.db.
		Where("employee_id = ? AND leave_id = ?", employeeID, leaveTypeID).
		Where("starting_date >= ? AND ending_date <= ?", start, end).
		Where("status IN ?", []leave.Status{leave.StatusApproved, leave.StatusConsumed}).
		Order("starting_date ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Withdraw transitions a requested or approved leave to withdrawn. The
// status filter makes the update conditional: zero affected rows means
// the record was not in a withdrawable state.
func (r *LeaveRepository) Withdraw(id int64, actionedBy int64) (int64, error) {
	result := r.db.Model(&leave.LeaveRequest{}).
		Where("id = ? AND status IN ?", id, []leave.Status{leave.StatusRequested, leave.StatusApproved}).
		Updates(map[string]interface{}{
			"status":      leave.StatusWithdrawn,
			"actioned_by": actionedBy,
			"updated_at":  time.Now(),
		})
	return result.RowsAffected, result.Error
}

// Action transitions a requested leave to the manager's decision. Zero
// affected rows means the record was concurrently actioned or withdrawn.
func (r *LeaveRepository) Action(id int64, to leave.Status, actionedBy int64) (int64, error) {
	result := r.db.Model(&leave.LeaveRequest{}).
		Where("id = ? AND status = ?", id, leave.StatusRequested).
		Updates(map[string]interface{}{
			"status":      to,
			"actioned_by": actionedBy,
			"updated_at":  time.Now(),
		})
	return result.RowsAffected, result.Error
}

// SweepConsumed bulk-moves approved and self_approved leaves whose start
// date has passed to consumed, as one update.
func (r *LeaveRepository) SweepConsumed(asOf time.Time) (int64, error) {
	result := r.db.Model(&leave.LeaveRequest{}).
		Where("status IN ? AND starting_date <= ?",
			[]leave.Status{leave.StatusApproved, leave.StatusSelfApproved}, asOf).
		Updates(map[string]interface{}{
			"status":     leave.StatusConsumed,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
