package leavetype

import (
	errors "github.com/frahmantamala/hr-leave-management/internal"
	"github.com/frahmantamala/hr-leave-management/internal/core/common/validation"
)

type CreateLeaveTypeDTO struct {
	Name                       string `json:"name"`
	Description                string `json:"description"`
	PayPercentage              int    `json:"pay_percentage"`
	DefaultBlockDurationInDays int    `json:"default_block_duration_in_days"`
	CalculationPeriod          *int   `json:"calculation_period,omitempty"`
	AllowedBlocksPerPeriod     *int   `json:"allowed_blocks_per_period,omitempty"`
	DaysAllowedAfter           int64  `json:"days_allowed_after"`
	LeaveAllowedAfter          *int64 `json:"leave_allowed_after,omitempty"`
	Dividable                  bool   `json:"dividable"`
	BalanceIsAccumulated       bool   `json:"balance_is_accumulated"`
	GenderStrict               *int16 `json:"gender_strict,omitempty"`
	FallbackLeave              bool   `json:"fallback_leave"`
}

func (d CreateLeaveTypeDTO) Validate() error {
	if err := validation.NewValidator().
		Field("name", d.Name).Required().MinLength(2).MaxLength(255).
		Validate(); err != nil {
		return err
	}
	if d.PayPercentage < 0 || d.PayPercentage > 100 {
		return errors.NewValidationFieldError("pay_percentage", "pay_percentage must be between 0 and 100", errors.ErrCodeValidationFailed)
	}
	if d.DefaultBlockDurationInDays <= 0 {
		return errors.NewValidationFieldError("default_block_duration_in_days", "block duration must be positive", errors.ErrCodeValidationFailed)
	}
	if d.CalculationPeriod != nil && *d.CalculationPeriod <= 0 {
		return errors.NewValidationFieldError("calculation_period", "calculation_period must be positive when set", errors.ErrCodeValidationFailed)
	}
	if d.AllowedBlocksPerPeriod != nil && *d.AllowedBlocksPerPeriod <= 0 {
		return errors.NewValidationFieldError("allowed_blocks_per_period", "allowed_blocks_per_period must be positive when set", errors.ErrCodeValidationFailed)
	}
	if d.DaysAllowedAfter < 0 {
		return errors.NewValidationFieldError("days_allowed_after", "days_allowed_after cannot be negative", errors.ErrCodeValidationFailed)
	}
	if d.GenderStrict != nil && *d.GenderStrict != 0 && *d.GenderStrict != 1 {
		return errors.NewValidationFieldError("gender_strict", "gender_strict must be 0 or 1 when set", errors.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateLeaveTypeDTO struct {
	Name                       string `json:"name"`
	Description                string `json:"description"`
	PayPercentage              int    `json:"pay_percentage"`
	DefaultBlockDurationInDays int    `json:"default_block_duration_in_days"`
	CalculationPeriod          *int   `json:"calculation_period,omitempty"`
	AllowedBlocksPerPeriod     *int   `json:"allowed_blocks_per_period,omitempty"`
	DaysAllowedAfter           int64  `json:"days_allowed_after"`
	LeaveAllowedAfter          *int64 `json:"leave_allowed_after,omitempty"`
	Dividable                  bool   `json:"dividable"`
	BalanceIsAccumulated       bool   `json:"balance_is_accumulated"`
	GenderStrict               *int16 `json:"gender_strict,omitempty"`
	FallbackLeave              bool   `json:"fallback_leave"`
}

func (d UpdateLeaveTypeDTO) Validate() error {
	return CreateLeaveTypeDTO{
		Name:                       d.Name,
		Description:                d.Description,
		PayPercentage:              d.PayPercentage,
		DefaultBlockDurationInDays: d.DefaultBlockDurationInDays,
		CalculationPeriod:          d.CalculationPeriod,
		AllowedBlocksPerPeriod:     d.AllowedBlocksPerPeriod,
		DaysAllowedAfter:           d.DaysAllowedAfter,
		LeaveAllowedAfter:          d.LeaveAllowedAfter,
		GenderStrict:               d.GenderStrict,
	}.Validate()
}
