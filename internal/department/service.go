package department

import (
	"log/slog"

	"github.com/frahmantamala/hr-leave-management/internal"
)

type RepositoryAPI interface {
	GetAll(activeOnly bool) ([]*Department, error)
	GetByID(id int64) (*Department, error)
	GetByName(name string) (*Department, error)
	Create(dept *Department) error
	Update(dept *Department) error
	SetActive(id int64, active bool) error
	AssignManager(id int64, managerID int64) error
}

type EmployeeChecker interface {
	Exists(employeeID int64) (bool, error)
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeChecker
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		logger:    logger,
	}
}

func (s *Service) GetAll(activeOnly bool) ([]*Department, error) {
	depts, err := s.repo.GetAll(activeOnly)
	if err != nil {
		s.logger.Error("failed to get departments", "error", err)
		return nil, err
	}
	return depts, nil
}

func (s *Service) GetByID(id int64) (*Department, error) {
	dept, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, internal.ErrDepartmentNotFound
	}
	return dept, nil
}

func (s *Service) Create(dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("department name already in use", internal.ErrCodeValidationFailed)
	}

	dept := &Department{
		Name:     dto.Name,
		IsActive: true,
	}
	if err := s.repo.Create(dept); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("department created", "department_id", dept.ID, "name", dept.Name)
	return dept, nil
}

func (s *Service) Update(id int64, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dept, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	dept.Name = dto.Name
	if err := s.repo.Update(dept); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, err
	}
	return dept, nil
}

// AssignManager points the department at an existing employee. The employee
// must exist; the relationship is advisory and does not affect reporting
// lines used by leave approval.
func (s *Service) AssignManager(id, managerID int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	exists, err := s.employees.Exists(managerID)
	if err != nil {
		return err
	}
	if !exists {
		return internal.ErrEmployeeNotFound
	}

	if err := s.repo.AssignManager(id, managerID); err != nil {
		s.logger.Error("failed to assign department manager", "error", err,
			"department_id", id, "manager_id", managerID)
		return err
	}

	s.logger.Info("department manager assigned", "department_id", id, "manager_id", managerID)
	return nil
}

func (s *Service) Activate(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.SetActive(id, true)
}

func (s *Service) Deactivate(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.SetActive(id, false)
}
