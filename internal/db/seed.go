package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"usersapi/internal/models"
	"usersapi/internal/utils"
)

// SeedUser creates the bootstrap user unless one with the same mail exists.
// It reports whether a user was created.
func SeedUser(ctx context.Context, db *gorm.DB, name, mail, password string, cost int) (bool, error) {
	if name == "" || mail == "" || password == "" {
		return false, errors.New("seed user needs name, mail and password")
	}
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("mail = ?", mail).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return false, err
	}
	user := models.User{Name: name, Mail: mail, Password: hash, Active: true}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}
