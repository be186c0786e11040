package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role is the authorization role of a user.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAgent      Role = "AGENT"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsAdmin reports whether the role belongs to the administrative tier.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// ApprovalStatus only applies to agents.
type ApprovalStatus string

const (
	ApprovalNone      ApprovalStatus = ""
	ApprovalPending   ApprovalStatus = "PENDING"
	ApprovalApproved  ApprovalStatus = "APPROVED"
	ApprovalSuspended ApprovalStatus = "SUSPENDED"
)

type User struct {
	gorm.Model
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Role           Role           `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Wallet         *Wallet        `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20)" json:"approvalStatus,omitempty"`

	// CommissionRate is a percentage and is only set on approved agents.
	CommissionRate decimal.NullDecimal `gorm:"type:numeric(8,4)" json:"commissionRate"`

	DailyTransactionTotal   decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"dailyTransactionTotal"`
	MonthlyTransactionTotal decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"monthlyTransactionTotal"`
	LastDailyReset          *time.Time      `json:"-"`
	LastMonthlyReset        *time.Time      `json:"-"`

	TokenVersion int `gorm:"default:1" json:"-"`
}

// IsApprovedAgent reports whether the user may perform agent-mediated operations.
func (u *User) IsApprovedAgent() bool {
	return u.Role == RoleAgent && u.ApprovalStatus == ApprovalApproved
}
