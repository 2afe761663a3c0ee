package leave

import (
	"time"

	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
)

// ConsumedReader looks up the leave requests that count against a
// balance within an accrual window.
type ConsumedReader interface {
	GetConsumedInWindow(employeeID, leaveTypeID int64, start, end time.Time) ([]*LeaveRequest, error)
}

// BalanceReport is the derived balance of one employee for one leave
// type. It is never persisted.
type BalanceReport struct {
	EmployeeID    int64           `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	LeaveTypeID   int64           `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name"`
	ServiceDays   int64           `json:"service_days"`
	WindowStart   time.Time       `json:"window_start"`
	WindowEnd     time.Time       `json:"window_end"`
	Earned        int             `json:"earned"`
	Consumed      int             `json:"consumed"`
	Available     int             `json:"available"`
	PriorRecords  []*LeaveRequest `json:"prior_records"`
}

// BalanceEngine computes BalanceReports. Read-only; it never writes.
type BalanceEngine struct {
	periods  *PeriodCalculator
	consumed ConsumedReader
	clock    Clock
}

func NewBalanceEngine(consumed ConsumedReader, clock Clock) *BalanceEngine {
	return &BalanceEngine{
		periods:  NewPeriodCalculator(clock),
		consumed: consumed,
		clock:    clock,
	}
}

// Compute derives the balance of emp for lt in the current accrual
// window. Gender-restricted types reject a mismatched employee before
// any balance math.
func (e *BalanceEngine) Compute(emp *employee.Employee, lt *leavetype.LeaveType) (*BalanceReport, error) {
	if !lt.AllowsGender(emp.Gender) {
		return nil, errors.ErrGenderRestricted
	}

	window := e.periods.Window(emp, lt)
	serviceDays := emp.ServiceDays(e.clock.Now())

	records, err := e.consumed.GetConsumedInWindow(emp.ID, lt.ID, window.Start, window.End)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to load consumed leave records", err)
	}

	consumed := 0
	for _, rec := range records {
		consumed += rec.Duration
	}

	earned := earnedBalance(lt, serviceDays, window)

	available := earned - consumed
	if available < 0 {
		available = 0
	}

	return &BalanceReport{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.Name,
		LeaveTypeID:   lt.ID,
		LeaveTypeName: lt.Name,
		ServiceDays:   serviceDays,
		WindowStart:   window.Start,
		WindowEnd:     window.End,
		Earned:        earned,
		Consumed:      consumed,
		Available:     available,
		PriorRecords:  records,
	}, nil
}

// earnedBalance applies the accrual model. Below the tenure gate nothing
// is earned. Accumulated types prorate the block over elapsed window
// days, topping out at the full block once a whole calculation period
// has passed. Fixed types grant the whole block per window.
func earnedBalance(lt *leavetype.LeaveType, serviceDays int64, window Window) int {
	if serviceDays < lt.DaysAllowedAfter {
		return 0
	}

	if lt.Accumulatable() && lt.HasCalculationPeriod() {
		periodDays := int64(*lt.CalculationPeriod)
		elapsed := window.LengthDays
		if elapsed > periodDays {
			elapsed = periodDays
		}
		return int(int64(lt.DefaultBlockDurationInDays) * elapsed / periodDays)
	}

	return lt.DefaultBlockDurationInDays
}
