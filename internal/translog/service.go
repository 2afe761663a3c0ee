package translog

import (
	"encoding/json"
	"log/slog"
)

type RepositoryAPI interface {
	Create(log *TransactionLog) error
	GetForEmployee(employeeID int64, limit int) ([]*TransactionLog, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends an audit row. Failures are logged and swallowed so the
// originating mutation is never rolled back by audit trouble.
func (s *Service) Record(employeeID, byUserID int64, logType string, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		s.logger.Error("Record: marshal details failed", "log_type", logType, "error", err)
		payload = []byte("{}")
	}

	entry := &TransactionLog{
		EmployeeID: employeeID,
		ByUserID:   byUserID,
		LogType:    logType,
		Details:    string(payload),
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("Record: persist transaction log failed",
			"employee_id", employeeID,
			"log_type", logType,
			"error", err)
	}
}

func (s *Service) GetForEmployee(employeeID int64, limit int) ([]*TransactionLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.GetForEmployee(employeeID, limit)
}
