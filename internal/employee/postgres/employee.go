package postgres

import (
	"errors"

	"github.com/frahmantamala/hr-leave-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll(activeOnly bool) ([]*employee.Employee, error) {
	var emps []*employee.Employee
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("last_working_date IS NULL")
	}
	if err := query.Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("email = ?", email).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetReports(managerEmployeeID int64) ([]*employee.Employee, error) {
	var emps []*employee.Employee
	err := r.db.Where("reporting_to = ? AND last_working_date IS NULL", managerEmployeeID).
		Order("name ASC").
		Find(&emps).Error
	if err != nil {
		return nil, err
	}
	return emps, nil
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) Update(emp *employee.Employee) error {
	return r.db.Save(emp).Error
}
