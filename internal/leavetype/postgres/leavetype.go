package postgres

import (
	"errors"

	"github.com/frahmantamala/hr-leave-management/internal/leavetype"
	"gorm.io/gorm"
)

type LeaveTypeRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *LeaveTypeRepository {
	return &LeaveTypeRepository{db: db}
}

func (r *LeaveTypeRepository) GetAll(activeOnly bool) ([]*leavetype.LeaveType, error) {
	var types []*leavetype.LeaveType
	query := r.db.Where("deleted_at IS NULL").Order("id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *LeaveTypeRepository) GetByID(id int64) (*leavetype.LeaveType, error) {
	var lt leavetype.LeaveType
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&lt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lt, nil
}

func (r *LeaveTypeRepository) GetByName(name string) (*leavetype.LeaveType, error) {
	var lt leavetype.LeaveType
	err := r.db.Where("name = ? AND deleted_at IS NULL", name).First(&lt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lt, nil
}

func (r *LeaveTypeRepository) GetFallback() (*leavetype.LeaveType, error) {
	var lt leavetype.LeaveType
	err := r.db.Where("fallback_leave = ? AND is_active = ? AND deleted_at IS NULL", true, true).
		First(&lt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lt, nil
}

func (r *LeaveTypeRepository) Create(lt *leavetype.LeaveType) error {
	return r.db.Create(lt).Error
}

func (r *LeaveTypeRepository) Update(lt *leavetype.LeaveType) error {
	return r.db.Save(lt).Error
}

func (r *LeaveTypeRepository) SetActive(id int64, active bool) error {
	return r.db.Model(&leavetype.LeaveType{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
