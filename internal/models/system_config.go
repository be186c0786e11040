package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemConfigID is the fixed key of the singleton configuration row.
const SystemConfigID uint = 1

// SystemConfig holds the fees and limits applied to every money movement.
// SendMoneyFee is flat; CashInFee, WithdrawFee and AgentCommissionRate are
// percentages.
type SystemConfig struct {
	ID                  uint            `gorm:"primarykey;autoIncrement:false" json:"id"`
	SendMoneyFee        decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"sendMoneyFee"`
	CashInFee           decimal.Decimal `gorm:"type:numeric(8,4);not null" json:"cashInFee"`
	WithdrawFee         decimal.Decimal `gorm:"type:numeric(8,4);not null" json:"withdrawFee"`
	AgentCommissionRate decimal.Decimal `gorm:"type:numeric(8,4);not null" json:"agentCommissionRate"`
	DailyLimit          decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"dailyLimit"`
	MonthlyLimit        decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"monthlyLimit"`
	MinBalance          decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"minBalance"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		ID:                  SystemConfigID,
		SendMoneyFee:        decimal.NewFromInt(5),
		CashInFee:           decimal.Zero,
		WithdrawFee:         decimal.NewFromFloat(1.5),
		AgentCommissionRate: decimal.NewFromInt(2),
		DailyLimit:          decimal.NewFromInt(25000),
		MonthlyLimit:        decimal.NewFromInt(100000),
		MinBalance:          decimal.Zero,
	}
}
