package user

import "errors"

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (d ChangePasswordDTO) Validate() error {
	if d.CurrentPassword == "" {
		return errors.New("current_password is required")
	}
	if len(d.NewPassword) < 8 {
		return errors.New("new_password must be at least 8 characters")
	}
	return nil
}
