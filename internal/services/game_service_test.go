package services

import (
	"context"
	"errors"
	"testing"

	"github.com/iman0037/PotyBot/internal/repo"
)

// fixedIntn returns a randomness seam producing the given values in order.
func fixedIntn(t *testing.T, vals ...int) func(int) int {
	t.Helper()
	i := 0
	return func(n int) int {
		if i >= len(vals) {
			t.Fatalf("intn called %d times, only %d values staged", i+1, len(vals))
		}
		v := vals[i]
		i++
		return v
	}
}

func TestGame_DiceParity_Win(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1000)
	// intn(6)=3 -> roll 4, even
	svc := &GameService{DB: db, Intn: fixedIntn(t, 3)}

	out, err := svc.PlayDiceParity(context.Background(), 1, 200, true)
	if err != nil {
		t.Fatalf("PlayDiceParity: %v", err)
	}
	if !out.Won || out.Roll != 4 || out.Delta != 200 {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if out.Previous != 1000 || out.Wallet != 1200 {
		t.Fatalf("wallets = %d -> %d", out.Previous, out.Wallet)
	}
}

func TestGame_DiceParity_Loss(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1000)
	// intn(6)=2 -> roll 3, odd
	svc := &GameService{DB: db, Intn: fixedIntn(t, 2)}

	out, err := svc.PlayDiceParity(context.Background(), 1, 200, true)
	if err != nil {
		t.Fatalf("PlayDiceParity: %v", err)
	}
	if out.Won || out.Delta != -200 || out.Wallet != 800 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestGame_DiceExact_PaysSixfold(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1000)
	// intn(6)=4 -> roll 5
	svc := &GameService{DB: db, Intn: fixedIntn(t, 4)}

	out, err := svc.PlayDiceExact(context.Background(), 1, 100, 5)
	if err != nil {
		t.Fatalf("PlayDiceExact: %v", err)
	}
	if !out.Won || out.Delta != 600 || out.Wallet != 1600 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestGame_DiceExact_LossCostsBetOnly(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1000)
	// intn(6)=0 -> roll 1, guessed 5
	svc := &GameService{DB: db, Intn: fixedIntn(t, 0)}

	out, err := svc.PlayDiceExact(context.Background(), 1, 100, 5)
	if err != nil {
		t.Fatalf("PlayDiceExact: %v", err)
	}
	if out.Won || out.Delta != -100 || out.Wallet != 900 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestGame_DiceExact_InvalidFace(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1000)
	svc := &GameService{DB: db}

	if _, err := svc.PlayDiceExact(context.Background(), 1, 100, 7); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("face 7: %v", err)
	}
	if _, err := svc.PlayDiceExact(context.Background(), 1, 100, 0); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("face 0: %v", err)
	}
}

func TestGame_PickHand(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1000)

	// intn(2)=0 -> bot holds left; guessing left wins.
	svc := &GameService{DB: db, Intn: fixedIntn(t, 0)}
	out, err := svc.PlayPickHand(context.Background(), 1, 100, true)
	if err != nil || !out.Won || out.Wallet != 1100 {
		t.Fatalf("left guess: %+v, %v", out, err)
	}

	// intn(2)=1 -> bot holds right; guessing left loses.
	svc.Intn = fixedIntn(t, 1)
	out, err = svc.PlayPickHand(context.Background(), 1, 100, true)
	if err != nil || out.Won || out.Wallet != 1000 {
		t.Fatalf("wrong guess: %+v, %v", out, err)
	}
}

func TestGame_LossFloorsWallet(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1050)
	// Guaranteed loss: bot holds right, guess left.
	svc := &GameService{DB: db, Floor: 1000, Intn: fixedIntn(t, 1)}

	out, err := svc.PlayPickHand(context.Background(), 1, 1050, true)
	if err != nil {
		t.Fatalf("PlayPickHand: %v", err)
	}
	if out.Wallet != 1000 {
		t.Fatalf("wallet = %d, want floor 1000", out.Wallet)
	}
	u, _ := repo.GetUser(context.Background(), db, 1)
	if u.Wallet != 1000 {
		t.Fatalf("persisted wallet = %d, want 1000", u.Wallet)
	}
}

func TestGame_BetValidation(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 100)
	svc := &GameService{DB: db}

	if _, err := svc.PlayDiceParity(context.Background(), 1, 0, true); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero bet: %v", err)
	}
	if _, err := svc.PlayDiceParity(context.Background(), 1, 500, true); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overdraft bet: %v", err)
	}
	if _, err := svc.PlayDiceParity(context.Background(), 99, 10, true); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("unknown user: %v", err)
	}
}
