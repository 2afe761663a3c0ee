package employee

import (
	"log/slog"

	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/translog"
)

type RepositoryAPI interface {
	GetAll(activeOnly bool) ([]*Employee, error)
	GetByID(id int64) (*Employee, error)
	GetByEmail(email string) (*Employee, error)
	GetReports(managerEmployeeID int64) ([]*Employee, error)
	Create(emp *Employee) error
	Update(emp *Employee) error
}

// UserProvisioner creates a login account for self service employees.
type UserProvisioner interface {
	CreateForEmployee(employeeID int64, email, name, password string) (userID int64, err error)
}

// DepartmentChecker verifies the target department before assignment.
type DepartmentChecker interface {
	Exists(departmentID int64) (bool, error)
}

// AuditLogger appends an employee transaction log row.
type AuditLogger interface {
	Record(employeeID, byUserID int64, logType string, details map[string]interface{})
}

type Service struct {
	repo        RepositoryAPI
	users       UserProvisioner
	departments DepartmentChecker
	audit       AuditLogger
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, users UserProvisioner, departments DepartmentChecker, audit AuditLogger, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		departments: departments,
		audit:       audit,
		logger:      logger,
	}
}

func (s *Service) GetAll(activeOnly bool) ([]*Employee, error) {
	emps, err := s.repo.GetAll(activeOnly)
	if err != nil {
		s.logger.Error("GetAll: repository error", "error", err)
		return nil, errors.NewDatabaseError("failed to get employees", err)
	}
	return emps, nil
}

func (s *Service) GetByID(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("GetByID: repository error", "employee_id", id, "error", err)
		return nil, errors.NewDatabaseError("failed to get employee", err)
	}
	if emp == nil {
		return nil, errors.ErrEmployeeNotFound
	}
	return emp, nil
}

// Exists satisfies the department package's manager check.
func (s *Service) Exists(employeeID int64) (bool, error) {
	emp, err := s.repo.GetByID(employeeID)
	if err != nil {
		return false, err
	}
	return emp != nil, nil
}

func (s *Service) Create(dto CreateEmployeeDTO, byUserID int64) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.departments.Exists(dto.DepartmentID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check department", err)
	}
	if !ok {
		return nil, errors.ErrDepartmentNotFound
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check email", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("employee with this email already exists", errors.ErrCodeDataConflict)
	}

	if dto.ReportingTo != nil {
		manager, err := s.repo.GetByID(*dto.ReportingTo)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to check reporting manager", err)
		}
		if manager == nil {
			return nil, errors.NewValidationFieldError("reporting_to", "reporting manager does not exist", errors.ErrCodeValidationFailed)
		}
	}

	emp := &Employee{
		Name:         dto.Name,
		Email:        dto.Email,
		CountryCode:  dto.CountryCode,
		Mobile:       dto.Mobile,
		JobTitle:     dto.JobTitle,
		Gender:       dto.Gender,
		JoiningDate:  dto.JoiningDateTime(),
		DepartmentID: dto.DepartmentID,
		ReportingTo:  dto.ReportingTo,
		Salary:       dto.Salary,
		SelfService:  dto.SelfService,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("Create: repository error", "email", dto.Email, "error", err)
		return nil, errors.NewDatabaseError("failed to create employee", err)
	}

	if dto.SelfService {
		if _, err := s.users.CreateForEmployee(emp.ID, emp.Email, emp.Name, dto.Password); err != nil {
			s.logger.Error("Create: self service account provisioning failed",
				"employee_id", emp.ID, "error", err)
			return nil, errors.NewInternalError("employee created but self service account failed", err)
		}
	}

	s.audit.Record(emp.ID, byUserID, translog.LogTypeEmployeeCreated, map[string]interface{}{
		"name":          emp.Name,
		"department_id": emp.DepartmentID,
		"job_title":     emp.JobTitle,
	})

	return emp, nil
}

func (s *Service) Update(id int64, dto UpdateEmployeeDTO, byUserID int64) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.ReportingTo != nil {
		if *dto.ReportingTo == id {
			return nil, errors.NewValidationFieldError("reporting_to", "employee cannot report to themselves", errors.ErrCodeValidationFailed)
		}
		manager, err := s.repo.GetByID(*dto.ReportingTo)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to check reporting manager", err)
		}
		if manager == nil {
			return nil, errors.NewValidationFieldError("reporting_to", "reporting manager does not exist", errors.ErrCodeValidationFailed)
		}
	}

	emp.Name = dto.Name
	emp.CountryCode = dto.CountryCode
	emp.Mobile = dto.Mobile
	emp.ReportingTo = dto.ReportingTo
	emp.Avatar = dto.Avatar

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("Update: repository error", "employee_id", id, "error", err)
		return nil, errors.NewDatabaseError("failed to update employee", err)
	}

	s.audit.Record(emp.ID, byUserID, translog.LogTypeEmployeeUpdated, map[string]interface{}{
		"name": emp.Name,
	})

	return emp, nil
}

// Terminate sets the last working date. A terminated employee cannot be
// terminated again.
func (s *Service) Terminate(id int64, dto TerminateEmployeeDTO, byUserID int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	emp, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !emp.IsActive() {
		return errors.NewConflictError("employee is already terminated", errors.ErrCodeDataConflict)
	}

	lwd := dto.LastWorkingDateTime()
	if lwd.Before(emp.JoiningDate) {
		return errors.NewValidationFieldError("last_working_date", "last working date cannot precede joining date", errors.ErrCodeValidationFailed)
	}

	emp.LastWorkingDate = &lwd
	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("Terminate: repository error", "employee_id", id, "error", err)
		return errors.NewDatabaseError("failed to terminate employee", err)
	}

	s.audit.Record(emp.ID, byUserID, translog.LogTypeTerminated, map[string]interface{}{
		"last_working_date": dto.LastWorkingDate,
	})

	return nil
}

func (s *Service) MoveDepartment(id int64, dto MoveDepartmentDTO, byUserID int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	emp, err := s.GetByID(id)
	if err != nil {
		return err
	}

	ok, err := s.departments.Exists(dto.DepartmentID)
	if err != nil {
		return errors.NewDatabaseError("failed to check department", err)
	}
	if !ok {
		return errors.ErrDepartmentNotFound
	}

	previous := emp.DepartmentID
	emp.DepartmentID = dto.DepartmentID
	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("MoveDepartment: repository error", "employee_id", id, "error", err)
		return errors.NewDatabaseError("failed to move employee", err)
	}

	s.audit.Record(emp.ID, byUserID, translog.LogTypeDepartmentMoved, map[string]interface{}{
		"from_department_id": previous,
		"to_department_id":   dto.DepartmentID,
	})

	return nil
}

func (s *Service) IncrementSalary(id int64, dto IncrementSalaryDTO, byUserID int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	emp, err := s.GetByID(id)
	if err != nil {
		return err
	}

	previous := emp.Salary
	emp.Salary += dto.Amount
	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("IncrementSalary: repository error", "employee_id", id, "error", err)
		return errors.NewDatabaseError("failed to increment salary", err)
	}

	s.audit.Record(emp.ID, byUserID, translog.LogTypeSalaryIncremented, map[string]interface{}{
		"previous_salary": previous,
		"new_salary":      emp.Salary,
	})

	return nil
}

func (s *Service) ChangeJobTitle(id int64, dto ChangeJobTitleDTO, byUserID int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	emp, err := s.GetByID(id)
	if err != nil {
		return err
	}

	previous := emp.JobTitle
	emp.JobTitle = dto.JobTitle
	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("ChangeJobTitle: repository error", "employee_id", id, "error", err)
		return errors.NewDatabaseError("failed to change job title", err)
	}

	s.audit.Record(emp.ID, byUserID, translog.LogTypeJobTitleChanged, map[string]interface{}{
		"previous_job_title": previous,
		"new_job_title":      emp.JobTitle,
	})

	return nil
}
