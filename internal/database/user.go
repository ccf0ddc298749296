package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a registered account.
// Users are never updated or deleted once created.
type User struct {
	Username     string    `gorm:"primaryKey;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUser stores a new user with a bcrypt hash of password.
// It returns ErrDuplicateUsername if the username is taken.
func (c *Client) CreateUser(ctx context.Context, username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Username:     username,
		PasswordHash: string(hash),
	}
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetUser returns the user with the given username.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to get user by username", "error", err)
		return nil, err
	}
	return &user, nil
}

// Authenticate returns the user if password matches the stored hash.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := c.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidPassword
		}
		log.Error("failed to compare password hash", "user", username, "error", err)
		return nil, err
	}
	return user, nil
}

// CountUsers returns the number of registered users.
func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		log.Error("failed to count users", "error", err)
		return 0, err
	}
	return count, nil
}
