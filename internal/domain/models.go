// Package domain defines the persistence models for the bot: the user
// roster (which doubles as the global-chat recipient directory and the coin
// ledger) and the processed-update journal used to deduplicate webhook
// deliveries. These types are mapped with GORM.
package domain

import "time"

// Conversational states for the per-user input state machine. The zero
// value means the user is at the main menu.
const (
	StateNone             = ""
	StateAwaitBetAmount   = "await_bet_amount"
	StateAwaitDiceChoice  = "await_dice_choice"
	StateAwaitPickAmount  = "await_pick_amount"
	StateAwaitPickChoice  = "await_pick_choice"
	StateAwaitGiftTarget  = "await_gift_target"
	StateAwaitGiftAmount  = "await_gift_amount"
	StateAwaitAdminShow   = "await_admin_show_target"
	StateAwaitAdminTarget = "await_admin_change_target"
	StateAwaitAdminAmount = "await_admin_change_amount"
)

// User is one participant of the global chat.
//
// Fields:
//   - ChatID: the Telegram chat id, primary key (assigned by the platform,
//     never auto-incremented locally).
//   - Wallet: coin balance used by the games and the gift ledger.
//   - State: current conversational state (menu flows).
//   - BetAmount: pending wager while a game flow is in progress.
//   - PendingMsgID: bot message edited in place during game flows.
//   - GiftTarget / AdminTarget: counterpart chat ids captured mid-flow.
type User struct {
	ChatID       int64  `json:"chat_id"  gorm:"primaryKey;autoIncrement:false"`
	Wallet       int64  `json:"wallet"   gorm:"not null"`
	State        string `json:"state"    gorm:"type:varchar(32);not null;default:''"`
	BetAmount    int64  `json:"bet_amount"`
	PendingMsgID int    `json:"pending_msg_id"`
	GiftTarget   int64  `json:"gift_target"`
	AdminTarget  int64  `json:"admin_target"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// ProcessedUpdate journals a webhook update id so redelivered updates are
// handled at most once. Rows are purged after the dedup TTL.
type ProcessedUpdate struct {
	UpdateID int       `gorm:"primaryKey;autoIncrement:false"`
	SeenAt   time.Time `gorm:"index"`
}

// TableName returns the database table name for ProcessedUpdate.
func (ProcessedUpdate) TableName() string { return "processed_updates" }
