package leave

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/auth"
	"github.com/frahmantamala/hr-leave-management/internal/core/events"
	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
	"github.com/frahmantamala/hr-leave-management/internal/translog"
)

type RepositoryAPI interface {
	Create(req *LeaveRequest) error
	GetByID(id int64) (*LeaveRequest, error)
	GetForEmployee(employeeID int64, status Status) ([]*LeaveRequest, error)
	GetForManager(managerEmployeeID int64, status Status) ([]*LeaveRequest, error)
	GetConsumedInWindow(employeeID, leaveTypeID int64, start, end time.Time) ([]*LeaveRequest, error)
	Withdraw(id int64, actionedBy int64) (int64, error)
	Action(id int64, to Status, actionedBy int64) (int64, error)
	SweepConsumed(asOf time.Time) (int64, error)
}

// EmployeeGetter resolves employees with nil meaning not found.
type EmployeeGetter interface {
	GetByID(id int64) (*employee.Employee, error)
}

type AuditLogger interface {
	Record(employeeID, byUserID int64, logType string, details map[string]interface{})
}

// Service owns the leave request lifecycle: apply, withdraw, manager
// action, and the scheduled consumption sweep.
type Service struct {
	repo      RepositoryAPI
	employees EmployeeGetter
	types     TypeGetter
	engine    *BalanceEngine
	checker   *EligibilityChecker
	eventBus  *events.EventBus
	audit     AuditLogger
	clock     Clock
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeGetter, types TypeGetter, eventBus *events.EventBus, audit AuditLogger, clock Clock, logger *slog.Logger) *Service {
	engine := NewBalanceEngine(repo, clock)
	return &Service{
		repo:      repo,
		employees: employees,
		types:     types,
		engine:    engine,
		checker:   NewEligibilityChecker(engine, types),
		eventBus:  eventBus,
		audit:     audit,
		clock:     clock,
		logger:    logger,
	}
}

// ComputeBalance returns the balance report of one employee for one
// leave type. Read-only.
func (s *Service) ComputeBalance(employeeID, leaveTypeID int64) (*BalanceReport, error) {
	emp, err := s.getEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	lt, err := s.getLeaveType(leaveTypeID)
	if err != nil {
		return nil, err
	}
	return s.engine.Compute(emp, lt)
}

// CheckEligibility runs the eligibility rules without creating anything.
func (s *Service) CheckEligibility(employeeID, leaveTypeID int64, duration int) error {
	emp, err := s.getEmployee(employeeID)
	if err != nil {
		return err
	}
	lt, err := s.getLeaveType(leaveTypeID)
	if err != nil {
		return err
	}
	return s.checker.Check(emp, lt, duration)
}

// RequestLeave applies for leave on behalf of an employee. The actor
// must be that employee's own user or an admin. A passing eligibility
// check creates the record in requested state, or self_approved when
// the employee has no reporting manager.
func (s *Service) RequestLeave(dto ApplyLeaveDTO, actor *auth.User) (*LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if !actor.ActsForEmployee(dto.EmployeeID) {
		return nil, errors.NewForbiddenError("user has no permissions to apply for a leave for the selected employee", errors.ErrCodeUnauthorizedAccess)
	}

	emp, err := s.getEmployee(dto.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !emp.IsActive() {
		return nil, errors.NewEligibilityError("employee is terminated", errors.ErrCodeEmployeeTerminated)
	}

	lt, err := s.getLeaveType(dto.LeaveTypeID)
	if err != nil {
		return nil, err
	}
	if !lt.IsActive {
		return nil, errors.ErrLeaveTypeInactive
	}

	if err := s.checker.Check(emp, lt, dto.Duration); err != nil {
		return nil, err
	}

	status := StatusRequested
	if emp.ReportingTo == nil {
		status = StatusSelfApproved
	}

	req := &LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		Duration:      dto.Duration,
		StartingDate:  dto.StartingDateTime(),
		EndingDate:    dto.EndingDateTime(),
		PayPercentage: lt.PayPercentage,
		Status:        status,
		RequestedBy:   actor.ID,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("RequestLeave: repository error",
			"employee_id", emp.ID, "leave_type_id", lt.ID, "error", err)
		return nil, errors.NewDatabaseError("failed to create leave request", err)
	}

	s.audit.Record(emp.ID, actor.ID, translog.LogTypeLeaveRequested, map[string]interface{}{
		"leave_request_id": req.ID,
		"leave_type":       lt.Name,
		"duration":         req.Duration,
		"status":           string(req.Status),
	})

	if err := s.eventBus.Publish(context.Background(),
		events.NewLeaveRequestedEvent(req.ID, emp.ID, lt.ID, req.Duration, string(req.Status))); err != nil {
		s.logger.Error("RequestLeave: publish event failed", "leave_request_id", req.ID, "error", err)
	}

	return req, nil
}

// Withdraw moves a requested or approved leave to withdrawn. Only the
// owning employee's user or an admin may withdraw. The transition is a
// conditional update so a concurrent state change surfaces as
// no-leave-to-withdraw instead of a lost write.
func (s *Service) Withdraw(leaveRequestID int64, actor *auth.User) error {
	req, err := s.repo.GetByID(leaveRequestID)
	if err != nil {
		return errors.NewDatabaseError("failed to load leave request", err)
	}
	if req == nil {
		return errors.ErrNoLeaveToWithdraw
	}

	if !actor.ActsForEmployee(req.EmployeeID) {
		return errors.ErrNoLeaveToWithdraw
	}
	if !CanTransition(req.Status, StatusWithdrawn) {
		return errors.ErrNoLeaveToWithdraw
	}

	affected, err := s.repo.Withdraw(leaveRequestID, actor.ID)
	if err != nil {
		s.logger.Error("Withdraw: repository error", "leave_request_id", leaveRequestID, "error", err)
		return errors.NewDatabaseError("failed to withdraw leave", err)
	}
	if affected == 0 {
		return errors.ErrNoLeaveToWithdraw
	}

	s.audit.Record(req.EmployeeID, actor.ID, translog.LogTypeLeaveWithdrawn, map[string]interface{}{
		"leave_request_id": leaveRequestID,
	})

	if err := s.eventBus.Publish(context.Background(),
		events.NewLeaveWithdrawnEvent(leaveRequestID, actor.ID)); err != nil {
		s.logger.Error("Withdraw: publish event failed", "leave_request_id", leaveRequestID, "error", err)
	}

	return nil
}

// Action records a manager's decision on a requested leave. Only the
// employee's direct reporting manager may action it.
func (s *Service) Action(leaveRequestID int64, dto ActionLeaveDTO, actor *auth.User) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	req, err := s.repo.GetByID(leaveRequestID)
	if err != nil {
		return errors.NewDatabaseError("failed to load leave request", err)
	}
	if req == nil || req.Status != StatusRequested {
		return errors.ErrLeaveRequestNotFound
	}

	emp, err := s.getEmployee(req.EmployeeID)
	if err != nil {
		return err
	}
	if actor.EmployeeID == nil || !emp.ReportsTo(*actor.EmployeeID) {
		return errors.ErrNotReportingManager
	}

	to := StatusApproved
	if dto.Decision == DecisionRejected {
		to = StatusRejected
	}
	if !CanTransition(req.Status, to) {
		return errors.ErrLeaveRequestNotFound
	}

	affected, err := s.repo.Action(leaveRequestID, to, actor.ID)
	if err != nil {
		s.logger.Error("Action: repository error", "leave_request_id", leaveRequestID, "error", err)
		return errors.NewDatabaseError("failed to action leave", err)
	}
	if affected == 0 {
		return errors.ErrLeaveRequestNotFound
	}

	s.audit.Record(req.EmployeeID, actor.ID, translog.LogTypeLeaveActioned, map[string]interface{}{
		"leave_request_id": leaveRequestID,
		"decision":         dto.Decision,
	})

	if err := s.eventBus.Publish(context.Background(),
		events.NewLeaveActionedEvent(leaveRequestID, req.EmployeeID, actor.ID, dto.Decision)); err != nil {
		s.logger.Error("Action: publish event failed", "leave_request_id", leaveRequestID, "error", err)
	}

	return nil
}

// SweepConsumption bulk-moves approved and self_approved leaves whose
// start date has passed to consumed. Idempotent: already consumed rows
// fall out of the status filter.
func (s *Service) SweepConsumption(asOf time.Time) (int64, error) {
	affected, err := s.repo.SweepConsumed(asOf)
	if err != nil {
		s.logger.Error("SweepConsumption: repository error", "error", err)
		return 0, errors.NewDatabaseError("failed to sweep consumed leaves", err)
	}

	s.logger.Info("consumption sweep complete", "affected", affected, "as_of", asOf)

	if affected > 0 {
		if err := s.eventBus.Publish(context.Background(),
			events.NewLeaveConsumedEvent(affected, asOf)); err != nil {
			s.logger.Error("SweepConsumption: publish event failed", "error", err)
		}
	}

	return affected, nil
}

// GetForEmployee lists an employee's leave requests, newest first. The
// actor must own the employee record or be an admin.
func (s *Service) GetForEmployee(employeeID int64, status Status, actor *auth.User) ([]*LeaveRequest, error) {
	if !actor.ActsForEmployee(employeeID) {
		return nil, errors.ErrUnauthorizedAccess
	}
	if status != "" && status != "all" && !ValidStatus(status) {
		return nil, errors.NewValidationError("unknown leave status filter", errors.ErrCodeInvalidStatus)
	}
	requests, err := s.repo.GetForEmployee(employeeID, normalizeFilter(status))
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get leave requests", err)
	}
	return requests, nil
}

// GetManagerLeaveRequests lists the requests of everyone reporting
// directly to the actor's employee record.
func (s *Service) GetManagerLeaveRequests(actor *auth.User, status Status) ([]*LeaveRequest, error) {
	if actor.EmployeeID == nil {
		return nil, errors.ErrUnauthorizedAccess
	}
	if status != "" && status != "all" && !ValidStatus(status) {
		return nil, errors.NewValidationError("unknown leave status filter", errors.ErrCodeInvalidStatus)
	}
	requests, err := s.repo.GetForManager(*actor.EmployeeID, normalizeFilter(status))
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get manager leave requests", err)
	}
	return requests, nil
}

func normalizeFilter(status Status) Status {
	if status == "all" {
		return ""
	}
	return status
}

func (s *Service) getEmployee(id int64) (*employee.Employee, error) {
	emp, err := s.employees.GetByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get employee", err)
	}
	if emp == nil {
		return nil, errors.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) getLeaveType(id int64) (*leavetype.LeaveType, error) {
	lt, err := s.types.GetByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get leave type", err)
	}
	if lt == nil {
		return nil, errors.ErrLeaveTypeNotFound
	}
	return lt, nil
}
