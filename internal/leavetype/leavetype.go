package leavetype

import (
	"time"
)

// LeaveType is the policy record a leave balance is computed against.
// Nullable columns carry tri-state policy switches: a nil
// calculation_period means the whole service period is one window, a
// nil gender_strict means no gender restriction, a nil
// allowed_blocks_per_period means unlimited blocks.
type LeaveType struct {
	ID                         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                       string     `json:"name" gorm:"column:name;uniqueIndex;not null"`
	Description                string     `json:"description" gorm:"column:description"`
	PayPercentage              int        `json:"pay_percentage" gorm:"column:pay_percentage;not null;default:100"`
	DefaultBlockDurationInDays int        `json:"default_block_duration_in_days" gorm:"column:default_block_duration_in_days;not null"`
	CalculationPeriod          *int       `json:"calculation_period,omitempty" gorm:"column:calculation_period"`
	AllowedBlocksPerPeriod     *int       `json:"allowed_blocks_per_period,omitempty" gorm:"column:allowed_blocks_per_period"`
	DaysAllowedAfter           int64      `json:"days_allowed_after" gorm:"column:days_allowed_after;not null;default:0"`
	LeaveAllowedAfter          *int64     `json:"leave_allowed_after,omitempty" gorm:"column:leave_allowed_after"`
	Dividable                  bool       `json:"dividable" gorm:"column:dividable;default:true"`
	BalanceIsAccumulated       bool       `json:"balance_is_accumulated" gorm:"column:balance_is_accumulated;default:false"`
	GenderStrict               *int16     `json:"gender_strict,omitempty" gorm:"column:gender_strict"`
	FallbackLeave              bool       `json:"fallback_leave" gorm:"column:fallback_leave;default:false"`
	IsActive                   bool       `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt                  time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                  time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt                  *time.Time `json:"-" gorm:"column:deleted_at;index"`
}

func (LeaveType) TableName() string {
	return "leaves"
}

// Accumulatable types earn balance proportionally to elapsed window days
// instead of granting the whole block up front.
func (t *LeaveType) Accumulatable() bool {
	return t.BalanceIsAccumulated
}

func (t *LeaveType) IsDividable() bool {
	return t.Dividable
}

// IsFallback marks the catch-all type (typically unpaid leave) that is
// always grantable and never balance-checked.
func (t *LeaveType) IsFallback() bool {
	return t.FallbackLeave
}

// HasCalculationPeriod reports whether balance windows repeat every N
// days. Without one the whole service period is a single window.
func (t *LeaveType) HasCalculationPeriod() bool {
	return t.CalculationPeriod != nil && *t.CalculationPeriod > 0
}

// HasBlockLimit reports whether the number of leave blocks per window is
// capped.
func (t *LeaveType) HasBlockLimit() bool {
	return t.AllowedBlocksPerPeriod != nil
}

// HasPrerequisite reports whether another leave type must be exhausted
// before this one becomes available.
func (t *LeaveType) HasPrerequisite() bool {
	return t.LeaveAllowedAfter != nil
}

// AllowsGender reports whether an employee of the given gender may take
// this leave. An unset gender_strict allows everyone.
func (t *LeaveType) AllowsGender(gender int16) bool {
	return t.GenderStrict == nil || *t.GenderStrict == gender
}
