// Package services – WalletService
//
// This file implements the coin ledger: balance lookups, gift transfers
// between users, the public leaderboard, and the admin balance override.
// Transfers run inside a single transaction so the two wallet mutations
// commit or roll back together.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iman0037/PotyBot/internal/domain"
	"github.com/iman0037/PotyBot/internal/repo"
)

// WalletService provides wallet-level operations.
type WalletService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// InitialWallet seeds first-contact accounts.
	InitialWallet int64

	// Admins are kept off the leaderboard.
	Admins []int64
}

// Balance returns the wallet of chatID, creating the account on first use.
func (s *WalletService) Balance(ctx context.Context, chatID int64) (int64, error) {
	u, err := repo.EnsureUser(ctx, s.DB, chatID, s.InitialWallet)
	if err != nil {
		return 0, err
	}
	return u.Wallet, nil
}

// GiftResult reports both wallets after a completed transfer.
type GiftResult struct {
	Amount          int64
	SenderWallet    int64
	RecipientWallet int64
}

// Gift transfers amount coins from one user to another. The recipient must
// already be registered; self-gifts and overdrafts are rejected.
func (s *WalletService) Gift(ctx context.Context, from, to, amount int64) (*GiftResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if from == to {
		return nil, ErrSelfGift
	}

	var out GiftResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sender, err := repo.GetUser(ctx, tx, from)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownUser
			}
			return err
		}
		recipient, err := repo.GetUser(ctx, tx, to)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownRecipient
			}
			return err
		}
		if sender.Wallet < amount {
			return ErrInsufficientFunds
		}

		sender.Wallet -= amount
		recipient.Wallet += amount
		if err := repo.SaveUser(ctx, tx, sender); err != nil {
			return err
		}
		if err := repo.SaveUser(ctx, tx, recipient); err != nil {
			return err
		}
		out = GiftResult{Amount: amount, SenderWallet: sender.Wallet, RecipientWallet: recipient.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Top returns the n richest non-admin users.
func (s *WalletService) Top(ctx context.Context, n int) ([]domain.User, error) {
	if n <= 0 {
		n = 5
	}
	return repo.TopWallets(ctx, s.DB, n, s.Admins)
}

// SetWallet overwrites a user's balance (admin operation) and returns the
// previous value.
func (s *WalletService) SetWallet(ctx context.Context, chatID, amount int64) (int64, error) {
	u, err := repo.GetUser(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnknownRecipient
		}
		return 0, err
	}
	prev := u.Wallet
	u.Wallet = amount
	if err := repo.SaveUser(ctx, s.DB, u); err != nil {
		return 0, err
	}
	return prev, nil
}
