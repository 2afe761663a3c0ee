package user

import (
	"fmt"

	"github.com/frahmantamala/hr-leave-management/internal/auth"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
	UpdatePassword(userID int64, passwordHash string) error
	Create(u *User) error
}

type Service struct {
	repo       Repository
	bcryptCost int
}

func NewService(repo Repository, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// CreateForEmployee provisions a self-service login account bound to an
// employee record.
func (s *Service) CreateForEmployee(employeeID int64, email, name, password string) (int64, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		EmployeeID:   &employeeID,
		IsActive:     true,
	}
	if err := s.repo.Create(u); err != nil {
		return 0, fmt.Errorf("failed to create user account: %w", err)
	}
	return u.ID, nil
}

func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return ErrNotFound
	}

	if err := auth.VerifyPassword(u.PasswordHash, dto.CurrentPassword); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(userID, hash)
}
