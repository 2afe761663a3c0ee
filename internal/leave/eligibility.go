package leave

import (
	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
)

// TypeGetter resolves prerequisite leave types.
type TypeGetter interface {
	GetByID(id int64) (*leavetype.LeaveType, error)
}

// EligibilityChecker decides whether a proposed leave may be requested.
// It is pure: a passing check creates nothing, callers persist.
type EligibilityChecker struct {
	engine *BalanceEngine
	types  TypeGetter
}

func NewEligibilityChecker(engine *BalanceEngine, types TypeGetter) *EligibilityChecker {
	return &EligibilityChecker{engine: engine, types: types}
}

// Check evaluates the eligibility rules in order; the first failure
// wins. Fallback types bypass every rule.
func (c *EligibilityChecker) Check(emp *employee.Employee, lt *leavetype.LeaveType, duration int) error {
	if lt.IsFallback() {
		return nil
	}

	if !lt.AllowsGender(emp.Gender) {
		return errors.ErrGenderRestricted
	}

	report, err := c.engine.Compute(emp, lt)
	if err != nil {
		return err
	}

	if report.ServiceDays < lt.DaysAllowedAfter {
		return errors.ErrMinServiceNotMet
	}

	if lt.HasPrerequisite() {
		if err := c.checkPrerequisite(emp, lt); err != nil {
			return err
		}
	}

	if lt.Accumulatable() || lt.IsDividable() {
		if report.Available <= 0 || report.Available < duration {
			return errors.ErrInsufficientBalance
		}
		return nil
	}

	if lt.HasBlockLimit() && len(report.PriorRecords) >= *lt.AllowedBlocksPerPeriod {
		return errors.ErrBlocksExhausted
	}

	return nil
}

// checkPrerequisite requires the direct prerequisite type's available
// balance to be fully consumed. The chain is walked with a visited set
// first so a misconfigured prerequisite cycle fails loudly instead of
// recursing forever.
func (c *EligibilityChecker) checkPrerequisite(emp *employee.Employee, lt *leavetype.LeaveType) error {
	visited := map[int64]bool{lt.ID: true}
	current := lt
	for current.HasPrerequisite() {
		nextID := *current.LeaveAllowedAfter
		if visited[nextID] {
			return errors.NewValidationError("prerequisite leave types form a cycle", errors.ErrCodePrerequisiteLoop)
		}
		visited[nextID] = true

		next, err := c.types.GetByID(nextID)
		if err != nil {
			return errors.NewDatabaseError("failed to load prerequisite leave type", err)
		}
		if next == nil {
			return errors.ErrLeaveTypeNotFound
		}
		current = next
	}

	prereq, err := c.types.GetByID(*lt.LeaveAllowedAfter)
	if err != nil {
		return errors.NewDatabaseError("failed to load prerequisite leave type", err)
	}
	if prereq == nil {
		return errors.ErrLeaveTypeNotFound
	}

	prereqReport, err := c.engine.Compute(emp, prereq)
	if err != nil {
		return err
	}
	if prereqReport.Available > 0 {
		return errors.ErrPrerequisiteNotUsed
	}
	return nil
}
