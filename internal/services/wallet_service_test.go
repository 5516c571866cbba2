package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iman0037/PotyBot/internal/domain"
	"github.com/iman0037/PotyBot/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:walletsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.User{}, &domain.ProcessedUpdate{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, chatID, wallet int64) {
	t.Helper()
	if err := db.Create(&domain.User{ChatID: chatID, Wallet: wallet}).Error; err != nil {
		t.Fatalf("seed user %d: %v", chatID, err)
	}
}

func TestWallet_Balance_CreatesAccountOnFirstUse(t *testing.T) {
	db := newTestDB(t)
	svc := &WalletService{DB: db, InitialWallet: 50000}

	bal, err := svc.Balance(context.Background(), 42)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if bal != 50000 {
		t.Fatalf("new account wallet = %d, want 50000", bal)
	}

	// Second call must not reseed.
	seedUserWallet := int64(12345)
	if err := db.Model(&domain.User{}).Where("chat_id = ?", 42).Update("wallet", seedUserWallet).Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	bal, err = svc.Balance(context.Background(), 42)
	if err != nil || bal != seedUserWallet {
		t.Fatalf("Balance = %d,%v; want %d", bal, err, seedUserWallet)
	}
}

func TestWallet_Gift_Success(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1000)
	seedUser(t, db, 2, 100)
	svc := &WalletService{DB: db}

	res, err := svc.Gift(context.Background(), 1, 2, 400)
	if err != nil {
		t.Fatalf("Gift: %v", err)
	}
	if res.SenderWallet != 600 || res.RecipientWallet != 500 || res.Amount != 400 {
		t.Fatalf("unexpected result %+v", res)
	}

	sender, _ := repo.GetUser(context.Background(), db, 1)
	recipient, _ := repo.GetUser(context.Background(), db, 2)
	if sender.Wallet != 600 || recipient.Wallet != 500 {
		t.Fatalf("persisted wallets = %d/%d", sender.Wallet, recipient.Wallet)
	}
}

func TestWallet_Gift_Validation(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 1000)
	seedUser(t, db, 2, 100)
	svc := &WalletService{DB: db}

	if _, err := svc.Gift(context.Background(), 1, 2, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: %v", err)
	}
	if _, err := svc.Gift(context.Background(), 1, 1, 10); !errors.Is(err, ErrSelfGift) {
		t.Fatalf("self gift: %v", err)
	}
	if _, err := svc.Gift(context.Background(), 1, 99, 10); !errors.Is(err, ErrUnknownRecipient) {
		t.Fatalf("unknown recipient: %v", err)
	}
	if _, err := svc.Gift(context.Background(), 1, 2, 5000); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overdraft: %v", err)
	}

	// Failed transfers must not move coins.
	sender, _ := repo.GetUser(context.Background(), db, 1)
	if sender.Wallet != 1000 {
		t.Fatalf("sender wallet changed to %d after rejected gifts", sender.Wallet)
	}
}

func TestWallet_Top_ExcludesAdmins(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 100)
	seedUser(t, db, 2, 300)
	seedUser(t, db, 3, 200)
	seedUser(t, db, 9, 9999) // admin
	svc := &WalletService{DB: db, Admins: []int64{9}}

	top, err := svc.Top(context.Background(), 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 || top[0].ChatID != 2 || top[1].ChatID != 3 {
		t.Fatalf("unexpected leaderboard %+v", top)
	}
}

func TestWallet_SetWallet(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, 1, 700)
	svc := &WalletService{DB: db}

	prev, err := svc.SetWallet(context.Background(), 1, 5000)
	if err != nil || prev != 700 {
		t.Fatalf("SetWallet = %d,%v; want 700,nil", prev, err)
	}
	u, _ := repo.GetUser(context.Background(), db, 1)
	if u.Wallet != 5000 {
		t.Fatalf("wallet = %d, want 5000", u.Wallet)
	}

	if _, err := svc.SetWallet(context.Background(), 42, 1); !errors.Is(err, ErrUnknownRecipient) {
		t.Fatalf("unknown user: %v", err)
	}
}
