package model

import (
	"time"
)

// Collection 按自然日汇总的充值总额
//
// 【不变量】TotalRecharges(d) == 所有日期为 d 的充值记录金额之和
// 由 LedgerService 增量维护，其他任何地方都不允许直接写这张表。
// 某天第一次充值时懒创建（初始为 0），之后不会被删除。
type Collection struct {
	ID             string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Date           string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	TotalRecharges float64   `gorm:"not null;default:0" json:"totalRecharges"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Collection) TableName() string {
	return "collection"
}
