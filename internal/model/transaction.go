package model

import (
	"time"
)

// Transaction 游戏消费记录
//
// MemberName / GameName 是 Member、Game 名称的冗余副本，只为列表展示免去关联查询。
// 它们可能过期，以 Member / Game 表为准。
type Transaction struct {
	ID         string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	MemberID   string    `gorm:"type:varchar(64);index" json:"memberId"`
	MemberName string    `gorm:"type:varchar(128)" json:"memberName"`
	GameID     string    `gorm:"type:varchar(64);index" json:"gameId"`
	GameName   string    `gorm:"type:varchar(128)" json:"gameName"`
	Date       time.Time `gorm:"index" json:"date"`
	Amount     float64   `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "game_transaction"
}
