package model

import (
	"time"
)

// Member 会员
type Member struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Email     string    `gorm:"type:varchar(128)" json:"email"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "member"
}
