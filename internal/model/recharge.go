package model

import (
	"time"
)

// Recharge 会员充值记录
//
// MemberName 只是展示用的自由文本，不关联 Member 表。
// 充值记录的每一次写入都必须经过 LedgerService，否则日汇总（Collection）会失真。
type Recharge struct {
	ID         string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	MemberName string    `gorm:"type:varchar(128)" json:"memberName"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Date       time.Time `gorm:"index;not null" json:"date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Recharge) TableName() string {
	return "recharge"
}

// Day 充值所属的自然日（YYYY-MM-DD）
func (r *Recharge) Day() string {
	return DateOf(r.Date)
}
