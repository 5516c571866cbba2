// Package services – GameService
//
// This file implements the two wagering games: the dice (parity pays 1:1,
// exact face pays 6:1) and the pick-a-hand guess (1:1). Both are plain
// read-modify-write sequences on a single wallet; losses never push a
// wallet below the configured floor.
package services

import (
	"context"
	"errors"
	"math/rand"

	"gorm.io/gorm"

	"github.com/iman0037/PotyBot/internal/repo"
)

// GameService resolves wagers against the wallet ledger.
type GameService struct {
	DB *gorm.DB

	// Floor is the minimum wallet a loss can leave behind.
	Floor int64

	// Intn is a randomness seam for deterministic tests; nil uses math/rand.
	Intn func(n int) int
}

// GameOutcome reports a settled wager.
type GameOutcome struct {
	Won      bool
	Roll     int   // die face for dice games, 0 for pick-a-hand
	Delta    int64 // signed wallet change
	Previous int64
	Wallet   int64
}

func (s *GameService) intn(n int) int {
	if s.Intn != nil {
		return s.Intn(n)
	}
	return rand.Intn(n)
}

// settle applies a win/loss of the given payout to the user's wallet.
func (s *GameService) settle(ctx context.Context, chatID int64, won bool, payout int64, roll int) (*GameOutcome, error) {
	u, err := repo.GetUser(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	out := &GameOutcome{Won: won, Roll: roll, Previous: u.Wallet}
	if won {
		u.Wallet += payout
		out.Delta = payout
	} else {
		u.Wallet -= payout
		if u.Wallet < s.Floor {
			u.Wallet = s.Floor
		}
		out.Delta = -payout
	}
	if err := repo.SaveUser(ctx, s.DB, u); err != nil {
		return nil, err
	}
	out.Wallet = u.Wallet
	return out, nil
}

// checkBet validates a wager against the user's wallet.
func (s *GameService) checkBet(ctx context.Context, chatID, bet int64) error {
	if bet <= 0 {
		return ErrInvalidAmount
	}
	u, err := repo.GetUser(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownUser
		}
		return err
	}
	if bet > u.Wallet {
		return ErrInsufficientFunds
	}
	return nil
}

// PlayDiceParity rolls a die against an even/odd wager paying 1:1.
func (s *GameService) PlayDiceParity(ctx context.Context, chatID, bet int64, even bool) (*GameOutcome, error) {
	if err := s.checkBet(ctx, chatID, bet); err != nil {
		return nil, err
	}
	roll := s.intn(6) + 1
	won := (roll%2 == 0) == even
	return s.settle(ctx, chatID, won, bet, roll)
}

// PlayDiceExact rolls a die against an exact-face wager paying 6:1.
func (s *GameService) PlayDiceExact(ctx context.Context, chatID, bet int64, face int) (*GameOutcome, error) {
	if face < 1 || face > 6 {
		return nil, ErrInvalidChoice
	}
	if err := s.checkBet(ctx, chatID, bet); err != nil {
		return nil, err
	}
	roll := s.intn(6) + 1
	won := roll == face
	payout := bet
	if won {
		payout = bet * 6
	}
	return s.settle(ctx, chatID, won, payout, roll)
}

// PlayPickHand settles the left/right guessing game paying 1:1.
func (s *GameService) PlayPickHand(ctx context.Context, chatID, bet int64, left bool) (*GameOutcome, error) {
	if err := s.checkBet(ctx, chatID, bet); err != nil {
		return nil, err
	}
	botLeft := s.intn(2) == 0
	won := botLeft == left
	return s.settle(ctx, chatID, won, bet, 0)
}
