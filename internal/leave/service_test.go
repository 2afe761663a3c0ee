package leave_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/auth"
	"github.com/frahmantamala/hr-leave-management/internal/core/events"
	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"github.com/frahmantamala/hr-leave-management/internal/leave"
	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
)

func TestLeave(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Leave Suite")
}

// mockLeaveRepository keeps requests in memory and implements the
// conditional transitions honestly so state-mismatch paths are real.
type mockLeaveRepository struct {
	requests    map[int64]*leave.LeaveRequest
	nextID      int64
	createError error
}

func newMockLeaveRepository() *mockLeaveRepository {
	return &mockLeaveRepository{
		requests: make(map[int64]*leave.LeaveRequest),
		nextID:   1,
	}
}

func (m *mockLeaveRepository) Create(req *leave.LeaveRequest) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	req.CreatedAt = time.Now()
	m.requests[req.ID] = req
	return nil
}

func (m *mockLeaveRepository) GetByID(id int64) (*leave.LeaveRequest, error) {
	return m.requests[id], nil
}

func (m *mockLeaveRepository) GetForEmployee(employeeID int64, status leave.Status) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (m *mockLeaveRepository) GetForManager(managerEmployeeID int64, status leave.Status) ([]*leave.LeaveRequest, error) {
	return nil, nil
}

func (m *mockLeaveRepository) GetConsumedInWindow(employeeID, leaveTypeID int64, start, end time.Time) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.EmployeeID != employeeID || req.LeaveTypeID != leaveTypeID {
			continue
		}
		if req.Status != leave.StatusApproved && req.Status != leave.StatusConsumed {
			continue
		}
		if req.StartingDate.Before(start) || req.EndingDate.After(end) {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (m *mockLeaveRepository) Withdraw(id int64, actionedBy int64) (int64, error) {
	req, ok := m.requests[id]
	if !ok {
		return 0, nil
	}
	if req.Status != leave.StatusRequested && req.Status != leave.StatusApproved {
		return 0, nil
	}
	req.Status = leave.StatusWithdrawn
	req.ActionedBy = &actionedBy
	return 1, nil
}

func (m *mockLeaveRepository) Action(id int64, to leave.Status, actionedBy int64) (int64, error) {
	req, ok := m.requests[id]
	if !ok || req.Status != leave.StatusRequested {
		return 0, nil
	}
	req.Status = to
	req.ActionedBy = &actionedBy
	return 1, nil
}

func (m *mockLeaveRepository) SweepConsumed(asOf time.Time) (int64, error) {
	var affected int64
	for _, req := range m.requests {
		if req.Status != leave.StatusApproved && req.Status != leave.StatusSelfApproved {
			continue
		}
		if req.StartingDate.After(asOf) {
			continue
		}
		req.Status = leave.StatusConsumed
		affected++
	}
	return affected, nil
}

type mockEmployeeGetter struct {
	employees map[int64]*employee.Employee
}

func (m *mockEmployeeGetter) GetByID(id int64) (*employee.Employee, error) {
	return m.employees[id], nil
}

type mockAuditLogger struct {
	entries []string
}

func (m *mockAuditLogger) Record(employeeID, byUserID int64, logType string, details map[string]interface{}) {
	m.entries = append(m.entries, logType)
}

var _ = Describe("LeaveService", func() {
	var (
		now       time.Time
		repo      *mockLeaveRepository
		employees *mockEmployeeGetter
		types     *mockTypeGetter
		audit     *mockAuditLogger
		eventBus  *events.EventBus
		service   *leave.Service

		managerUser  *auth.User
		employeeUser *auth.User
		adminUser    *auth.User
	)

	BeforeEach(func() {
		now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		repo = newMockLeaveRepository()
		audit = &mockAuditLogger{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		eventBus = events.NewEventBus(logger)

		managerEmp := &employee.Employee{
			ID:          10,
			Name:        "Manager",
			Gender:      1,
			JoiningDate: now.AddDate(-5, 0, 0),
		}
		reportingTo := int64(10)
		staffEmp := &employee.Employee{
			ID:          20,
			Name:        "Staff",
			Gender:      1,
			JoiningDate: now.AddDate(0, 0, -400),
			ReportingTo: &reportingTo,
		}
		employees = &mockEmployeeGetter{employees: map[int64]*employee.Employee{
			10: managerEmp,
			20: staffEmp,
		}}

		types = &mockTypeGetter{types: map[int64]*leavetype.LeaveType{
			1: {
				ID:                         1,
				Name:                       "Annual Leave",
				PayPercentage:              100,
				DefaultBlockDurationInDays: 30,
				CalculationPeriod:          intPtr(365),
				DaysAllowedAfter:           180,
				Dividable:                  true,
				BalanceIsAccumulated:       true,
				IsActive:                   true,
			},
		}}

		service = leave.NewService(repo, employees, types, eventBus, audit, fixedClock{now: now}, logger)

		managerEmpID := int64(10)
		staffEmpID := int64(20)
		managerUser = &auth.User{ID: 1, EmployeeID: &managerEmpID}
		employeeUser = &auth.User{ID: 2, EmployeeID: &staffEmpID}
		adminUser = &auth.User{ID: 3, IsAdmin: true}
	})

	applyDTO := func() leave.ApplyLeaveDTO {
		return leave.ApplyLeaveDTO{
			EmployeeID:   20,
			LeaveTypeID:  1,
			StartingDate: "2025-07-01",
			EndingDate:   "2025-07-10",
			Duration:     10,
		}
	}

	Describe("RequestLeave", func() {
		It("should create a requested leave for an employee with a manager", func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.Status).To(Equal(leave.StatusRequested))
			Expect(req.PayPercentage).To(Equal(100))
			Expect(req.RequestedBy).To(Equal(employeeUser.ID))
		})

		It("should self-approve for an employee without a manager", func() {
			employees.employees[20].ReportingTo = nil

			req, err := service.RequestLeave(applyDTO(), employeeUser)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.Status).To(Equal(leave.StatusSelfApproved))
		})

		It("should let an admin apply on behalf of any employee", func() {
			req, err := service.RequestLeave(applyDTO(), adminUser)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.RequestedBy).To(Equal(adminUser.ID))
		})

		It("should reject an actor who is neither owner nor admin", func() {
			req, err := service.RequestLeave(applyDTO(), managerUser)

			Expect(req).To(BeNil())
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no permissions to apply"))
		})

		It("should reject an inactive leave type", func() {
			types.types[1].IsActive = false

			_, err := service.RequestLeave(applyDTO(), employeeUser)

			Expect(err).To(Equal(errors.ErrLeaveTypeInactive))
		})

		It("should not create a record when eligibility fails", func() {
			dto := applyDTO()
			dto.Duration = 31
			dto.EndingDate = "2025-08-01"

			_, err := service.RequestLeave(dto, employeeUser)

			Expect(err).To(Equal(errors.ErrInsufficientBalance))
			Expect(repo.requests).To(BeEmpty())
		})
	})

	Describe("Withdraw", func() {
		It("should withdraw an owned requested leave", func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Withdraw(req.ID, employeeUser)).To(Succeed())
			Expect(repo.requests[req.ID].Status).To(Equal(leave.StatusWithdrawn))
		})

		It("should fail the second withdraw of the same request", func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Withdraw(req.ID, employeeUser)).To(Succeed())

			err = service.Withdraw(req.ID, employeeUser)
			Expect(err).To(Equal(errors.ErrNoLeaveToWithdraw))
		})

		It("should reject a non-owner non-admin actor", func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)
			Expect(err).ToNot(HaveOccurred())

			err = service.Withdraw(req.ID, managerUser)
			Expect(err).To(Equal(errors.ErrNoLeaveToWithdraw))
		})

		It("should fail for a missing request", func() {
			err := service.Withdraw(999, adminUser)
			Expect(err).To(Equal(errors.ErrNoLeaveToWithdraw))
		})
	})

	Describe("Action", func() {
		var requestID int64

		BeforeEach(func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)
			Expect(err).ToNot(HaveOccurred())
			requestID = req.ID
		})

		It("should let the direct reporting manager approve", func() {
			err := service.Action(requestID, leave.ActionLeaveDTO{Decision: leave.DecisionApproved}, managerUser)

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.requests[requestID].Status).To(Equal(leave.StatusApproved))
			Expect(*repo.requests[requestID].ActionedBy).To(Equal(managerUser.ID))
		})

		It("should let the direct reporting manager reject", func() {
			err := service.Action(requestID, leave.ActionLeaveDTO{Decision: leave.DecisionRejected}, managerUser)

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.requests[requestID].Status).To(Equal(leave.StatusRejected))
		})

		It("should reject anyone who is not the reporting manager", func() {
			otherEmpID := int64(30)
			other := &auth.User{ID: 9, EmployeeID: &otherEmpID}

			err := service.Action(requestID, leave.ActionLeaveDTO{Decision: leave.DecisionApproved}, other)

			Expect(err).To(Equal(errors.ErrNotReportingManager))
		})

		It("should fail once the request is no longer in requested state", func() {
			Expect(service.Action(requestID, leave.ActionLeaveDTO{Decision: leave.DecisionApproved}, managerUser)).To(Succeed())

			err := service.Action(requestID, leave.ActionLeaveDTO{Decision: leave.DecisionApproved}, managerUser)
			Expect(err).To(Equal(errors.ErrLeaveRequestNotFound))
		})

		It("should reject an unknown decision", func() {
			err := service.Action(requestID, leave.ActionLeaveDTO{Decision: "maybe"}, managerUser)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SweepConsumption", func() {
		It("should consume approved leaves whose start date has passed", func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Action(req.ID, leave.ActionLeaveDTO{Decision: leave.DecisionApproved}, managerUser)).To(Succeed())

			affected, err := service.SweepConsumption(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC))

			Expect(err).ToNot(HaveOccurred())
			Expect(affected).To(Equal(int64(1)))
			Expect(repo.requests[req.ID].Status).To(Equal(leave.StatusConsumed))
		})

		It("should not touch leaves that have not started", func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Action(req.ID, leave.ActionLeaveDTO{Decision: leave.DecisionApproved}, managerUser)).To(Succeed())

			affected, err := service.SweepConsumption(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

			Expect(err).ToNot(HaveOccurred())
			Expect(affected).To(Equal(int64(0)))
		})

		It("should be idempotent across consecutive runs", func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Action(req.ID, leave.ActionLeaveDTO{Decision: leave.DecisionApproved}, managerUser)).To(Succeed())

			asOf := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
			first, err := service.SweepConsumption(asOf)
			Expect(err).ToNot(HaveOccurred())
			Expect(first).To(Equal(int64(1)))

			second, err := service.SweepConsumption(asOf)
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(Equal(int64(0)))
		})

		It("should publish a consumed event when rows were swept", func() {
			req, err := service.RequestLeave(applyDTO(), employeeUser)
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Action(req.ID, leave.ActionLeaveDTO{Decision: leave.DecisionApproved}, managerUser)).To(Succeed())

			published := make(chan events.Event, 1)
			eventBus.Subscribe(events.EventTypeLeaveConsumed, func(ctx context.Context, event events.Event) error {
				published <- event
				return nil
			})

			affected, err := service.SweepConsumption(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC))
			Expect(err).ToNot(HaveOccurred())
			Expect(affected).To(Equal(int64(1)))

			var event events.Event
			Eventually(published).Should(Receive(&event))
			Expect(event.EventType()).To(Equal(events.EventTypeLeaveConsumed))
		})

		It("should not publish a consumed event when nothing was swept", func() {
			published := make(chan events.Event, 1)
			eventBus.Subscribe(events.EventTypeLeaveConsumed, func(ctx context.Context, event events.Event) error {
				published <- event
				return nil
			})

			affected, err := service.SweepConsumption(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC))
			Expect(err).ToNot(HaveOccurred())
			Expect(affected).To(Equal(int64(0)))
			Consistently(published).ShouldNot(Receive())
		})
	})

	Describe("ComputeBalance", func() {
		It("should report the annual scenario for a 400-day employee", func() {
			report, err := service.ComputeBalance(20, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.ServiceDays).To(Equal(int64(400)))
			Expect(report.Earned).To(Equal(30))
			Expect(report.Available).To(Equal(30))
		})

		It("should fail for an unknown employee", func() {
			_, err := service.ComputeBalance(999, 1)
			Expect(err).To(Equal(errors.ErrEmployeeNotFound))
		})

		It("should fail for an unknown leave type", func() {
			_, err := service.ComputeBalance(20, 999)
			Expect(err).To(Equal(errors.ErrLeaveTypeNotFound))
		})
	})
})
