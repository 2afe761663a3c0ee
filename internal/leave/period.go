package leave

import (
	"time"

	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
)

// Clock abstracts the current time so balance math is deterministic
// under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Window is the accrual period a balance is computed over.
type Window struct {
	Start      time.Time
	End        time.Time
	LengthDays int64
}

// PeriodCalculator derives the current accrual window for an
// employee/leave-type pair.
type PeriodCalculator struct {
	clock Clock
}

func NewPeriodCalculator(clock Clock) *PeriodCalculator {
	return &PeriodCalculator{clock: clock}
}

// Window computes the accrual window. Accumulated types and types
// without a calculation period accrue over the whole service span.
// Periodic types accrue over the current N-day cycle, anchored at the
// joining date.
func (p *PeriodCalculator) Window(emp *employee.Employee, lt *leavetype.LeaveType) Window {
	now := p.clock.Now()

	if lt.Accumulatable() || !lt.HasCalculationPeriod() {
		end := emp.ServiceEndsAt(now)
		return Window{
			Start:      emp.JoiningDate,
			End:        end,
			LengthDays: wholeDays(emp.JoiningDate, end),
		}
	}

	periodDays := int64(*lt.CalculationPeriod)
	elapsed := wholeDays(emp.JoiningDate, now)
	completed := elapsed / periodDays

	start := emp.JoiningDate.AddDate(0, 0, int(completed*periodDays))
	return Window{
		Start:      start,
		End:        start.AddDate(0, 0, int(periodDays)),
		LengthDays: periodDays,
	}
}

func wholeDays(from, to time.Time) int64 {
	days := int64(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
