// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User
// roster, which also serves as the global-chat recipient directory.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/iman0037/PotyBot/internal/domain"
)

// EnsureUser fetches the user for chatID, creating it with the given
// starting wallet on first contact.
func EnsureUser(ctx context.Context, db *gorm.DB, chatID, initialWallet int64) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where(&domain.User{ChatID: chatID}).
		Attrs(&domain.User{Wallet: initialWallet}).
		FirstOrCreate(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a user by chat id.
func GetUser(ctx context.Context, db *gorm.DB, chatID int64) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("chat_id = ?", chatID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UserExists reports whether chatID has started the bot before.
func UserExists(ctx context.Context, db *gorm.DB, chatID int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("chat_id = ?", chatID).Count(&n).Error
	return n > 0, err
}

// SaveUser persists all mutable fields of a user row.
func SaveUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return db.WithContext(ctx).Save(u).Error
}

// ListUserIDs returns every registered chat id. Iteration order is the
// store's native order and carries no meaning.
func ListUserIDs(ctx context.Context, db *gorm.DB) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).Model(&domain.User{}).Pluck("chat_id", &ids).Error
	return ids, err
}

// CountUsers returns the roster size.
func CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error
	return n, err
}

// TopWallets returns the limit richest users, excluding the given chat ids
// (admin accounts are kept off the leaderboard).
func TopWallets(ctx context.Context, db *gorm.DB, limit int, exclude []int64) ([]domain.User, error) {
	var out []domain.User
	q := db.WithContext(ctx).Model(&domain.User{}).Order("wallet DESC").Limit(limit)
	if len(exclude) > 0 {
		q = q.Where("chat_id NOT IN ?", exclude)
	}
	err := q.Find(&out).Error
	return out, err
}
