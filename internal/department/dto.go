package department

import (
	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/core/common/validation"
)

type CreateDepartmentDTO struct {
	Name string `json:"name"`
}

func (d CreateDepartmentDTO) Validate() error {
	if err := validation.NewValidator().
		Field("name", d.Name).Required().MinLength(2).MaxLength(255).
		Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateDepartmentDTO struct {
	Name string `json:"name"`
}

func (d UpdateDepartmentDTO) Validate() error {
	return CreateDepartmentDTO{Name: d.Name}.Validate()
}

type AssignManagerDTO struct {
	ManagerID int64 `json:"manager_id"`
}

func (d AssignManagerDTO) Validate() error {
	if d.ManagerID <= 0 {
		return errors.NewValidationFieldError("manager_id", "manager_id is required", errors.ErrCodeValidationFailed)
	}
	return nil
}
