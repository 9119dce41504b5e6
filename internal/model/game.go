package model

import (
	"time"
)

// Game 游戏目录
// Status / Duration 为前端自由填写的文本，不做校验
type Game struct {
	ID             string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(128);not null" json:"name"`
	Price          float64   `gorm:"not null;default:0" json:"price"`
	Description    string    `gorm:"type:text" json:"description"`
	MinPlayers     int       `gorm:"not null;default:0" json:"minPlayers"`
	MaxPlayers     int       `gorm:"not null;default:0" json:"maxPlayers"`
	PlayerMultiple int       `gorm:"not null;default:0" json:"playerMultiple"`
	Status         string    `gorm:"type:varchar(32)" json:"status"`
	Duration       string    `gorm:"type:varchar(32)" json:"duration"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Game) TableName() string {
	return "game"
}
