package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"

	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/auth"
	"github.com/frahmantamala/hr-leave-management/internal/leave"
	"github.com/frahmantamala/hr-leave-management/internal/transport"
)

// mockLeaveService answers the handler's ServiceAPI from canned fields
// and records the actor it was called with.
type mockLeaveService struct {
	balanceReport  *leave.BalanceReport
	balanceErr     error
	eligibilityErr error
	requestResult  *leave.LeaveRequest
	requestErr     error
	withdrawErr    error
	actionErr      error
	listResult     []*leave.LeaveRequest
	listErr        error
	managerResult  []*leave.LeaveRequest
	managerErr     error

	lastActor *auth.User
}

func (m *mockLeaveService) ComputeBalance(employeeID, leaveTypeID int64) (*leave.BalanceReport, error) {
	if m.balanceErr != nil {
		return nil, m.balanceErr
	}
	return m.balanceReport, nil
}

func (m *mockLeaveService) CheckEligibility(employeeID, leaveTypeID int64, duration int) error {
	return m.eligibilityErr
}

func (m *mockLeaveService) RequestLeave(dto leave.ApplyLeaveDTO, actor *auth.User) (*leave.LeaveRequest, error) {
	m.lastActor = actor
	if m.requestErr != nil {
		return nil, m.requestErr
	}
	return m.requestResult, nil
}

func (m *mockLeaveService) Withdraw(leaveRequestID int64, actor *auth.User) error {
	m.lastActor = actor
	return m.withdrawErr
}

func (m *mockLeaveService) Action(leaveRequestID int64, dto leave.ActionLeaveDTO, actor *auth.User) error {
	m.lastActor = actor
	return m.actionErr
}

func (m *mockLeaveService) GetForEmployee(employeeID int64, status leave.Status, actor *auth.User) ([]*leave.LeaveRequest, error) {
	m.lastActor = actor
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockLeaveService) GetManagerLeaveRequests(actor *auth.User, status leave.Status) ([]*leave.LeaveRequest, error) {
	m.lastActor = actor
	if m.managerErr != nil {
		return nil, m.managerErr
	}
	return m.managerResult, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func requestWithActor(method, target string, body []byte, actor *auth.User) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewBuffer(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req = req.WithContext(auth.ContextWithUser(req.Context(), actor))
	}
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeErrorCode(body *bytes.Buffer) string {
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	Expect(json.NewDecoder(body).Decode(&resp)).To(Succeed())
	return resp.Error.Code
}

var _ = Describe("LeaveHandler", func() {
	var (
		service  *mockLeaveService
		handler  *leave.Handler
		recorder *httptest.ResponseRecorder
		actor    *auth.User
	)

	BeforeEach(func() {
		service = &mockLeaveService{}
		handler = leave.NewHandler(transport.NewBaseHandler(testLogger()), service)
		recorder = httptest.NewRecorder()

		employeeID := int64(20)
		actor = &auth.User{ID: 2, Email: "staff@mail.com", EmployeeID: &employeeID}
	})

	applyBody := func() []byte {
		body, err := json.Marshal(leave.ApplyLeaveDTO{
			EmployeeID:   20,
			LeaveTypeID:  1,
			StartingDate: "2025-07-01",
			EndingDate:   "2025-07-10",
			Duration:     10,
		})
		Expect(err).ToNot(HaveOccurred())
		return body
	}

	Describe("Apply", func() {
		It("should create a leave request for the authenticated actor", func() {
			service.requestResult = &leave.LeaveRequest{ID: 7, EmployeeID: 20, Status: leave.StatusRequested}
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests", applyBody(), actor)

			handler.Apply(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(service.lastActor).To(Equal(actor))

			var created leave.LeaveRequest
			Expect(json.NewDecoder(recorder.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(Equal(int64(7)))
			Expect(created.Status).To(Equal(leave.StatusRequested))
		})

		It("should reject a request without an authenticated user", func() {
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests", applyBody(), nil)

			handler.Apply(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should reject an unparseable body", func() {
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests", []byte("not json"), actor)

			handler.Apply(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map eligibility failures to unprocessable entity", func() {
			service.requestErr = errors.ErrInsufficientBalance
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests", applyBody(), actor)

			handler.Apply(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(decodeErrorCode(recorder.Body)).To(Equal(string(errors.ErrCodeInsufficientBalance)))
		})
	})

	Describe("Withdraw", func() {
		It("should withdraw and report the new status", func() {
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests/7/withdraw", nil, actor)
			req = withURLParam(req, "id", "7")

			handler.Withdraw(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp map[string]string
			Expect(json.NewDecoder(recorder.Body).Decode(&resp)).To(Succeed())
			Expect(resp["status"]).To(Equal(string(leave.StatusWithdrawn)))
		})

		It("should reject a non-numeric leave request ID", func() {
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests/abc/withdraw", nil, actor)
			req = withURLParam(req, "id", "abc")

			handler.Withdraw(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map a missing request to not found", func() {
			service.withdrawErr = errors.ErrNoLeaveToWithdraw
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests/7/withdraw", nil, actor)
			req = withURLParam(req, "id", "7")

			handler.Withdraw(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("should reject a request without an authenticated user", func() {
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests/7/withdraw", nil, nil)
			req = withURLParam(req, "id", "7")

			handler.Withdraw(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Action", func() {
		actionBody := func(decision string) []byte {
			body, err := json.Marshal(leave.ActionLeaveDTO{Decision: decision})
			Expect(err).ToNot(HaveOccurred())
			return body
		}

		It("should action a request and echo the decision", func() {
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests/7/action", actionBody(leave.DecisionApproved), actor)
			req = withURLParam(req, "id", "7")

			handler.Action(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp map[string]string
			Expect(json.NewDecoder(recorder.Body).Decode(&resp)).To(Succeed())
			Expect(resp["status"]).To(Equal(leave.DecisionApproved))
		})

		It("should map a non-manager actor to forbidden", func() {
			service.actionErr = errors.ErrNotReportingManager
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests/7/action", actionBody(leave.DecisionRejected), actor)
			req = withURLParam(req, "id", "7")

			handler.Action(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
			Expect(decodeErrorCode(recorder.Body)).To(Equal(string(errors.ErrCodeNotReportingManager)))
		})

		It("should reject an unparseable body", func() {
			req := requestWithActor(http.MethodPost, "/api/v1/leave-requests/7/action", []byte("{"), actor)
			req = withURLParam(req, "id", "7")

			handler.Action(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Balance", func() {
		It("should return the balance report", func() {
			service.balanceReport = &leave.BalanceReport{
				EmployeeID:   20,
				LeaveTypeID:  1,
				ServiceDays:  400,
				WindowStart:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				WindowEnd:    time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
				Earned:       30,
				Consumed:     10,
				Available:    20,
				PriorRecords: []*leave.LeaveRequest{},
			}
			req := requestWithActor(http.MethodGet, "/api/v1/employees/20/leave-balance?leave_type_id=1", nil, actor)
			req = withURLParam(req, "id", "20")

			handler.Balance(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var report leave.BalanceReport
			Expect(json.NewDecoder(recorder.Body).Decode(&report)).To(Succeed())
			Expect(report.EmployeeID).To(Equal(int64(20)))
			Expect(report.Available).To(Equal(20))
		})

		It("should require the leave_type_id query parameter", func() {
			req := requestWithActor(http.MethodGet, "/api/v1/employees/20/leave-balance", nil, actor)
			req = withURLParam(req, "id", "20")

			handler.Balance(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map an unknown employee to not found", func() {
			service.balanceErr = errors.ErrEmployeeNotFound
			req := requestWithActor(http.MethodGet, "/api/v1/employees/99/leave-balance?leave_type_id=1", nil, actor)
			req = withURLParam(req, "id", "99")

			handler.Balance(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(decodeErrorCode(recorder.Body)).To(Equal(string(errors.ErrCodeEmployeeNotFound)))
		})
	})

	Describe("Eligibility", func() {
		It("should confirm an eligible duration", func() {
			req := requestWithActor(http.MethodGet, "/api/v1/employees/20/leave-eligibility?leave_type_id=1&duration=5", nil, actor)
			req = withURLParam(req, "id", "20")

			handler.Eligibility(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp map[string]bool
			Expect(json.NewDecoder(recorder.Body).Decode(&resp)).To(Succeed())
			Expect(resp["eligible"]).To(BeTrue())
		})

		It("should require a positive duration", func() {
			req := requestWithActor(http.MethodGet, "/api/v1/employees/20/leave-eligibility?leave_type_id=1&duration=0", nil, actor)
			req = withURLParam(req, "id", "20")

			handler.Eligibility(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should surface a failed rule with its code", func() {
			service.eligibilityErr = errors.ErrMinServiceNotMet
			req := requestWithActor(http.MethodGet, "/api/v1/employees/20/leave-eligibility?leave_type_id=1&duration=5", nil, actor)
			req = withURLParam(req, "id", "20")

			handler.Eligibility(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(decodeErrorCode(recorder.Body)).To(Equal(string(errors.ErrCodeMinServiceNotMet)))
		})
	})

	Describe("ListForEmployee", func() {
		It("should list the employee's leave requests", func() {
			service.listResult = []*leave.LeaveRequest{
				{ID: 1, EmployeeID: 20, Status: leave.StatusApproved},
				{ID: 2, EmployeeID: 20, Status: leave.StatusRequested},
			}
			req := requestWithActor(http.MethodGet, "/api/v1/employees/20/leave-requests", nil, actor)
			req = withURLParam(req, "id", "20")

			handler.ListForEmployee(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp struct {
				LeaveRequests []*leave.LeaveRequest `json:"leave_requests"`
			}
			Expect(json.NewDecoder(recorder.Body).Decode(&resp)).To(Succeed())
			Expect(resp.LeaveRequests).To(HaveLen(2))
		})

		It("should map foreign-record access to forbidden", func() {
			service.listErr = errors.ErrUnauthorizedAccess
			req := requestWithActor(http.MethodGet, "/api/v1/employees/30/leave-requests", nil, actor)
			req = withURLParam(req, "id", "30")

			handler.ListForEmployee(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("ManagerRequests", func() {
		It("should list the reports' leave requests", func() {
			service.managerResult = []*leave.LeaveRequest{{ID: 3, EmployeeID: 21, Status: leave.StatusRequested}}
			req := requestWithActor(http.MethodGet, "/api/v1/leave-requests/reports", nil, actor)

			handler.ManagerRequests(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(service.lastActor).To(Equal(actor))
		})

		It("should reject a request without an authenticated user", func() {
			req := requestWithActor(http.MethodGet, "/api/v1/leave-requests/reports", nil, nil)

			handler.ManagerRequests(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
