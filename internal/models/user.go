package models

import "time"

// User is the only persisted entity. Password always holds a bcrypt hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Mail      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_mail" json:"mail"`
	Password  string    `gorm:"type:varchar(255);not null" json:"password"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
