package leavetype

import (
	"log/slog"

	errors "github.com/frahmantamala/hr-leave-management/internal"
)

type RepositoryAPI interface {
	GetAll(activeOnly bool) ([]*LeaveType, error)
	GetByID(id int64) (*LeaveType, error)
	GetByName(name string) (*LeaveType, error)
	GetFallback() (*LeaveType, error)
	Create(lt *LeaveType) error
	Update(lt *LeaveType) error
	SetActive(id int64, active bool) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll(activeOnly bool) ([]*LeaveType, error) {
	types, err := s.repo.GetAll(activeOnly)
	if err != nil {
		s.logger.Error("GetAll: repository error", "error", err)
		return nil, errors.NewDatabaseError("failed to get leave types", err)
	}
	return types, nil
}

func (s *Service) GetByID(id int64) (*LeaveType, error) {
	lt, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("GetByID: repository error", "leave_type_id", id, "error", err)
		return nil, errors.NewDatabaseError("failed to get leave type", err)
	}
	if lt == nil {
		return nil, errors.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (s *Service) Create(dto CreateLeaveTypeDTO) (*LeaveType, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check leave type name", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("leave type with this name already exists", errors.ErrCodeDataConflict)
	}

	if err := s.validatePrerequisite(0, dto.LeaveAllowedAfter); err != nil {
		return nil, err
	}

	lt := &LeaveType{
		Name:                       dto.Name,
		Description:                dto.Description,
		PayPercentage:              dto.PayPercentage,
		DefaultBlockDurationInDays: dto.DefaultBlockDurationInDays,
		CalculationPeriod:          dto.CalculationPeriod,
		AllowedBlocksPerPeriod:     dto.AllowedBlocksPerPeriod,
		DaysAllowedAfter:           dto.DaysAllowedAfter,
		LeaveAllowedAfter:          dto.LeaveAllowedAfter,
		Dividable:                  dto.Dividable,
		BalanceIsAccumulated:       dto.BalanceIsAccumulated,
		GenderStrict:               dto.GenderStrict,
		FallbackLeave:              dto.FallbackLeave,
		IsActive:                   true,
	}

	if err := s.repo.Create(lt); err != nil {
		s.logger.Error("Create: repository error", "name", dto.Name, "error", err)
		return nil, errors.NewDatabaseError("failed to create leave type", err)
	}

	return lt, nil
}

func (s *Service) Update(id int64, dto UpdateLeaveTypeDTO) (*LeaveType, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	lt, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != lt.Name {
		existing, err := s.repo.GetByName(dto.Name)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to check leave type name", err)
		}
		if existing != nil {
			return nil, errors.NewConflictError("leave type with this name already exists", errors.ErrCodeDataConflict)
		}
	}

	if err := s.validatePrerequisite(id, dto.LeaveAllowedAfter); err != nil {
		return nil, err
	}

	lt.Name = dto.Name
	lt.Description = dto.Description
	lt.PayPercentage = dto.PayPercentage
	lt.DefaultBlockDurationInDays = dto.DefaultBlockDurationInDays
	lt.CalculationPeriod = dto.CalculationPeriod
	lt.AllowedBlocksPerPeriod = dto.AllowedBlocksPerPeriod
	lt.DaysAllowedAfter = dto.DaysAllowedAfter
	lt.LeaveAllowedAfter = dto.LeaveAllowedAfter
	lt.Dividable = dto.Dividable
	lt.BalanceIsAccumulated = dto.BalanceIsAccumulated
	lt.GenderStrict = dto.GenderStrict
	lt.FallbackLeave = dto.FallbackLeave

	if err := s.repo.Update(lt); err != nil {
		s.logger.Error("Update: repository error", "leave_type_id", id, "error", err)
		return nil, errors.NewDatabaseError("failed to update leave type", err)
	}

	return lt, nil
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

// validatePrerequisite rejects a prerequisite that points at the leave
// type itself or at a type that does not exist.
func (s *Service) validatePrerequisite(selfID int64, prerequisiteID *int64) error {
	if prerequisiteID == nil {
		return nil
	}
	if selfID != 0 && *prerequisiteID == selfID {
		return errors.NewValidationFieldError("leave_allowed_after", "leave type cannot be its own prerequisite", errors.ErrCodeValidationFailed)
	}
	prereq, err := s.repo.GetByID(*prerequisiteID)
	if err != nil {
		return errors.NewDatabaseError("failed to check prerequisite leave type", err)
	}
	if prereq == nil {
		return errors.NewValidationFieldError("leave_allowed_after", "prerequisite leave type does not exist", errors.ErrCodeValidationFailed)
	}
	return nil
}
