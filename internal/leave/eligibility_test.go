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

// mockTypeGetter resolves leave types from an in-memory map.
type mockTypeGetter struct {
	types map[int64]*leavetype.LeaveType
}

func (m *mockTypeGetter) GetByID(id int64) (*leavetype.LeaveType, error) {
	return m.types[id], nil
}

// mockWindowReader serves prior records keyed by leave type.
type mockWindowReader struct {
	recordsByType map[int64][]*leave.LeaveRequest
}

func (m *mockWindowReader) GetConsumedInWindow(employeeID, leaveTypeID int64, start, end time.Time) ([]*leave.LeaveRequest, error) {
	return m.recordsByType[leaveTypeID], nil
}

var _ = Describe("EligibilityChecker", func() {
	var (
		now     time.Time
		reader  *mockWindowReader
		types   *mockTypeGetter
		checker *leave.EligibilityChecker
		emp     *employee.Employee
	)

	BeforeEach(func() {
		now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		reader = &mockWindowReader{recordsByType: map[int64][]*leave.LeaveRequest{}}
		types = &mockTypeGetter{types: map[int64]*leavetype.LeaveType{}}
		engine := leave.NewBalanceEngine(reader, fixedClock{now: now})
		checker = leave.NewEligibilityChecker(engine, types)
		emp = &employee.Employee{ID: 1, Gender: 1, JoiningDate: now.AddDate(0, 0, -400)}
	})

	Context("fallback leave", func() {
		It("should pass without any further checks", func() {
			unpaid := &leavetype.LeaveType{
				ID:            9,
				Name:          "Unpaid Leave",
				FallbackLeave: true,
				GenderStrict:  int16Ptr(0),
			}

			// gender would mismatch, but fallback short-circuits
			Expect(checker.Check(emp, unpaid, 200)).To(Succeed())
		})
	})

	Context("gender restriction", func() {
		It("should fail a mismatched employee regardless of balance", func() {
			maternity := &leavetype.LeaveType{
				ID:                         5,
				DefaultBlockDurationInDays: 90,
				GenderStrict:               int16Ptr(0),
			}

			err := checker.Check(emp, maternity, 1)

			Expect(err).To(Equal(errors.ErrGenderRestricted))
		})
	})

	Context("minimum service period", func() {
		It("should fail before the tenure gate", func() {
			annual := &leavetype.LeaveType{
				ID:                         1,
				DefaultBlockDurationInDays: 30,
				CalculationPeriod:          intPtr(365),
				DaysAllowedAfter:           180,
				Dividable:                  true,
				BalanceIsAccumulated:       true,
			}
			fresh := &employee.Employee{ID: 2, JoiningDate: now.AddDate(0, 0, -100)}

			err := checker.Check(fresh, annual, 1)

			Expect(err).To(Equal(errors.ErrMinServiceNotMet))
		})
	})

	Context("prerequisite leave", func() {
		var tierOne, tierTwo *leavetype.LeaveType

		BeforeEach(func() {
			tierOne = &leavetype.LeaveType{
				ID:                         2,
				Name:                       "Sick Leave Tier 1",
				DefaultBlockDurationInDays: 15,
				Dividable:                  true,
			}
			tierTwo = &leavetype.LeaveType{
				ID:                         3,
				Name:                       "Sick Leave Tier 2",
				DefaultBlockDurationInDays: 15,
				Dividable:                  true,
				LeaveAllowedAfter:          int64Ptr(2),
			}
			types.types[2] = tierOne
			types.types[3] = tierTwo
		})

		It("should fail while the prerequisite balance is not exhausted", func() {
			reader.recordsByType[2] = []*leave.LeaveRequest{
				{Duration: 10, Status: leave.StatusConsumed},
			}

			err := checker.Check(emp, tierTwo, 5)

			Expect(err).To(Equal(errors.ErrPrerequisiteNotUsed))
		})

		It("should pass once the prerequisite is fully consumed", func() {
			reader.recordsByType[2] = []*leave.LeaveRequest{
				{Duration: 15, Status: leave.StatusConsumed},
			}

			Expect(checker.Check(emp, tierTwo, 5)).To(Succeed())
		})

		It("should detect a prerequisite cycle instead of recursing", func() {
			tierOne.LeaveAllowedAfter = int64Ptr(3)

			err := checker.Check(emp, tierTwo, 5)

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodePrerequisiteLoop))
		})
	})

	Context("dividable or accumulated balance", func() {
		var annual *leavetype.LeaveType

		BeforeEach(func() {
			annual = &leavetype.LeaveType{
				ID:                         1,
				DefaultBlockDurationInDays: 30,
				CalculationPeriod:          intPtr(365),
				Dividable:                  true,
				BalanceIsAccumulated:       true,
			}
		})

		It("should pass when the duration fits the available balance", func() {
			Expect(checker.Check(emp, annual, 30)).To(Succeed())
		})

		It("should fail when the duration exceeds the available balance", func() {
			err := checker.Check(emp, annual, 31)

			Expect(err).To(Equal(errors.ErrInsufficientBalance))
		})

		It("should fail a single extra day once the balance is spent", func() {
			reader.recordsByType[1] = []*leave.LeaveRequest{
				{Duration: 30, Status: leave.StatusConsumed},
			}

			err := checker.Check(emp, annual, 1)

			Expect(err).To(Equal(errors.ErrInsufficientBalance))
		})
	})

	Context("fixed block entitlement", func() {
		var haj *leavetype.LeaveType

		BeforeEach(func() {
			haj = &leavetype.LeaveType{
				ID:                         7,
				Name:                       "Haj Leave",
				DefaultBlockDurationInDays: 5,
				CalculationPeriod:          intPtr(365),
				AllowedBlocksPerPeriod:     intPtr(1),
			}
		})

		It("should pass with no prior blocks in the window", func() {
			Expect(checker.Check(emp, haj, 5)).To(Succeed())
		})

		It("should fail once the allowed blocks are taken, regardless of duration", func() {
			reader.recordsByType[7] = []*leave.LeaveRequest{
				{Duration: 5, Status: leave.StatusApproved},
			}

			err := checker.Check(emp, haj, 1)

			Expect(err).To(Equal(errors.ErrBlocksExhausted))
		})
	})
})
