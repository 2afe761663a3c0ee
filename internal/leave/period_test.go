package leave_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"github.com/frahmantamala/hr-leave-management/internal/leave"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func intPtr(v int) *int       { return &v }
func int16Ptr(v int16) *int16 { return &v }
func int64Ptr(v int64) *int64 { return &v }

var _ = Describe("PeriodCalculator", func() {
	var (
		now  time.Time
		calc *leave.PeriodCalculator
	)

	BeforeEach(func() {
		now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		calc = leave.NewPeriodCalculator(fixedClock{now: now})
	})

	Context("for an accumulated leave type", func() {
		It("should span the whole service period", func() {
			joined := now.AddDate(0, 0, -400)
			emp := &employee.Employee{ID: 1, JoiningDate: joined}
			lt := &leavetype.LeaveType{
				DefaultBlockDurationInDays: 30,
				CalculationPeriod:          intPtr(365),
				BalanceIsAccumulated:       true,
			}

			window := calc.Window(emp, lt)

			Expect(window.Start).To(Equal(joined))
			Expect(window.End).To(Equal(now))
			Expect(window.LengthDays).To(Equal(int64(400)))
		})

		It("should end at the last working date for a terminated employee", func() {
			joined := now.AddDate(0, 0, -400)
			left := now.AddDate(0, 0, -100)
			emp := &employee.Employee{ID: 1, JoiningDate: joined, LastWorkingDate: &left}
			lt := &leavetype.LeaveType{
				DefaultBlockDurationInDays: 30,
				CalculationPeriod:          intPtr(365),
				BalanceIsAccumulated:       true,
			}

			window := calc.Window(emp, lt)

			Expect(window.End).To(Equal(left))
			Expect(window.LengthDays).To(Equal(int64(300)))
		})
	})

	Context("for a leave type without a calculation period", func() {
		It("should span the whole service period", func() {
			joined := now.AddDate(0, 0, -200)
			emp := &employee.Employee{ID: 1, JoiningDate: joined}
			lt := &leavetype.LeaveType{DefaultBlockDurationInDays: 90}

			window := calc.Window(emp, lt)

			Expect(window.Start).To(Equal(joined))
			Expect(window.End).To(Equal(now))
			Expect(window.LengthDays).To(Equal(int64(200)))
		})
	})

	Context("for a periodic leave type", func() {
		It("should anchor the current cycle at the joining date", func() {
			joined := now.AddDate(0, 0, -100)
			emp := &employee.Employee{ID: 1, JoiningDate: joined}
			lt := &leavetype.LeaveType{
				DefaultBlockDurationInDays: 15,
				CalculationPeriod:          intPtr(30),
			}

			window := calc.Window(emp, lt)

			// 100 elapsed days = 3 completed 30-day cycles
			Expect(window.Start).To(Equal(joined.AddDate(0, 0, 90)))
			Expect(window.End).To(Equal(joined.AddDate(0, 0, 120)))
			Expect(window.LengthDays).To(Equal(int64(30)))
		})

		It("should return the first cycle for a fresh hire", func() {
			joined := now.AddDate(0, 0, -5)
			emp := &employee.Employee{ID: 1, JoiningDate: joined}
			lt := &leavetype.LeaveType{
				DefaultBlockDurationInDays: 15,
				CalculationPeriod:          intPtr(30),
			}

			window := calc.Window(emp, lt)

			Expect(window.Start).To(Equal(joined))
			Expect(window.End).To(Equal(joined.AddDate(0, 0, 30)))
		})
	})
})
