package leave_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"github.com/frahmantamala/hr-leave-management/internal/leave"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
)

// mockConsumedReader serves canned prior-records per employee/type pair.
type mockConsumedReader struct {
	records []*leave.LeaveRequest
	err     error
}

func (m *mockConsumedReader) GetConsumedInWindow(employeeID, leaveTypeID int64, start, end time.Time) ([]*leave.LeaveRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

var _ = Describe("BalanceEngine", func() {
	var (
		now      time.Time
		consumed *mockConsumedReader
		engine   *leave.BalanceEngine
	)

	annualType := func() *leavetype.LeaveType {
		return &leavetype.LeaveType{
			ID:                         1,
			Name:                       "Annual Leave",
			DefaultBlockDurationInDays: 30,
			CalculationPeriod:          intPtr(365),
			DaysAllowedAfter:           180,
			Dividable:                  true,
			BalanceIsAccumulated:       true,
		}
	}

	BeforeEach(func() {
		now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		consumed = &mockConsumedReader{}
		engine = leave.NewBalanceEngine(consumed, fixedClock{now: now})
	})

	Context("gender restricted leave", func() {
		It("should reject a mismatched employee before any balance math", func() {
			emp := &employee.Employee{ID: 1, Gender: 1, JoiningDate: now.AddDate(-3, 0, 0)}
			maternity := &leavetype.LeaveType{
				ID:                         5,
				Name:                       "Maternity Leave",
				DefaultBlockDurationInDays: 90,
				GenderStrict:               int16Ptr(0),
			}

			report, err := engine.Compute(emp, maternity)

			Expect(report).To(BeNil())
			Expect(err).To(Equal(errors.ErrGenderRestricted))
		})

		It("should compute normally for a matching employee", func() {
			emp := &employee.Employee{ID: 1, Gender: 0, JoiningDate: now.AddDate(-3, 0, 0)}
			maternity := &leavetype.LeaveType{
				ID:                         5,
				Name:                       "Maternity Leave",
				DefaultBlockDurationInDays: 90,
				GenderStrict:               int16Ptr(0),
			}

			report, err := engine.Compute(emp, maternity)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Earned).To(Equal(90))
		})
	})

	Context("tenure gate", func() {
		It("should earn nothing below the minimum service days", func() {
			emp := &employee.Employee{ID: 1, JoiningDate: now.AddDate(0, 0, -100)}

			report, err := engine.Compute(emp, annualType())

			Expect(err).ToNot(HaveOccurred())
			Expect(report.ServiceDays).To(Equal(int64(100)))
			Expect(report.Earned).To(Equal(0))
			Expect(report.Available).To(Equal(0))
		})
	})

	Context("accumulated balance", func() {
		It("should cap the accrual at the full block after a whole period", func() {
			emp := &employee.Employee{ID: 1, JoiningDate: now.AddDate(0, 0, -400)}

			report, err := engine.Compute(emp, annualType())

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Earned).To(Equal(30))
			Expect(report.Available).To(Equal(30))
		})

		It("should prorate within the first period", func() {
			lt := annualType()
			lt.DaysAllowedAfter = 0
			emp := &employee.Employee{ID: 1, JoiningDate: now.AddDate(0, 0, -73)}

			report, err := engine.Compute(emp, lt)

			Expect(err).ToNot(HaveOccurred())
			// 30/365 of 73 days, floored
			Expect(report.Earned).To(Equal(6))
		})
	})

	Context("fixed block balance", func() {
		It("should grant the whole block once tenure is met", func() {
			lt := &leavetype.LeaveType{
				ID:                         6,
				Name:                       "Condolence Leave",
				DefaultBlockDurationInDays: 3,
				CalculationPeriod:          intPtr(365),
			}
			emp := &employee.Employee{ID: 1, JoiningDate: now.AddDate(0, 0, -10)}

			report, err := engine.Compute(emp, lt)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Earned).To(Equal(3))
		})
	})

	Context("consumed balance", func() {
		It("should subtract prior approved and consumed durations", func() {
			consumed.records = []*leave.LeaveRequest{
				{ID: 1, Duration: 7, Status: leave.StatusApproved},
				{ID: 2, Duration: 3, Status: leave.StatusConsumed},
			}
			emp := &employee.Employee{ID: 1, JoiningDate: now.AddDate(0, 0, -400)}

			report, err := engine.Compute(emp, annualType())

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Consumed).To(Equal(10))
			Expect(report.Available).To(Equal(20))
			Expect(report.PriorRecords).To(HaveLen(2))
		})

		It("should floor the available balance at zero", func() {
			consumed.records = []*leave.LeaveRequest{
				{ID: 1, Duration: 45, Status: leave.StatusConsumed},
			}
			emp := &employee.Employee{ID: 1, JoiningDate: now.AddDate(0, 0, -400)}

			report, err := engine.Compute(emp, annualType())

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Available).To(Equal(0))
		})
	})
})
