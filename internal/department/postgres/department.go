package postgres

import (
	"errors"

	"github.com/frahmantamala/hr-leave-management/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll(activeOnly bool) ([]*department.Department, error) {
	var depts []*department.Department
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

func (r *DepartmentRepository) GetByID(id int64) (*department.Department, error) {
	var dept department.Department
	err := r.db.First(&dept, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) GetByName(name string) (*department.Department, error) {
	var dept department.Department
	err := r.db.Where("name = ?", name).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) Create(dept *department.Department) error {
	return r.db.Create(dept).Error
}

func (r *DepartmentRepository) Update(dept *department.Department) error {
	return r.db.Save(dept).Error
}

func (r *DepartmentRepository) SetActive(id int64, active bool) error {
	return r.db.Model(&department.Department{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *DepartmentRepository) AssignManager(id, managerID int64) error {
	return r.db.Model(&department.Department{}).
		Where("id = ?", id).
		Update("manager_id", managerID).Error
}
