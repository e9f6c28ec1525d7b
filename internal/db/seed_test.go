package db

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"usersapi/internal/models"
	"usersapi/internal/utils"
)

func TestSeedUser(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	if err := Migrate(ctx, gdb, DialectSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	created, err := SeedUser(ctx, gdb, "Admin", "admin@x.com", "secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !created {
		t.Fatalf("expected user to be created")
	}

	var u models.User
	if err := gdb.Where("mail = ?", "admin@x.com").First(&u).Error; err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !u.Active || !utils.CheckPassword(u.Password, "secret") {
		t.Fatalf("unexpected seeded user %+v", u)
	}

	created, err = SeedUser(ctx, gdb, "Admin", "admin@x.com", "other", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if created {
		t.Fatalf("expected no duplicate on reseed")
	}
	var count int64
	gdb.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestSeedUserRequiresFields(t *testing.T) {
	gdb := openTestDB(t)
	if _, err := SeedUser(context.Background(), gdb, "", "a@x.com", "p", bcrypt.MinCost); err == nil {
		t.Fatalf("expected error for missing name")
	}
}
