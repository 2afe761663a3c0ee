package postgres

import (
	"github.com/frahmantamala/hr-leave-management/internal/translog"
	"gorm.io/gorm"
)

type TransactionLogRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *TransactionLogRepository {
	return &TransactionLogRepository{db: db}
}

func (r *TransactionLogRepository) Create(entry *translog.TransactionLog) error {
	return r.db.Create(entry).Error
}

func (r *TransactionLogRepository) GetForEmployee(employeeID int64, limit int) ([]*translog.TransactionLog, error) {
	var logs []*translog.TransactionLog
	err := r.db.Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
