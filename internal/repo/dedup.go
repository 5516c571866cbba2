// Package repo – webhook update deduplication
//
// Telegram redelivers webhook updates until they are acknowledged, so a
// slow handler can see the same update twice. MarkUpdateProcessed journals
// update ids with an insert-if-absent so each update is handled at most
// once per dedup window.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iman0037/PotyBot/internal/domain"
)

// MarkUpdateProcessed records updateID and reports whether this call was
// the first to see it. A false return means the update is a redelivery and
// must be dropped.
func MarkUpdateProcessed(ctx context.Context, db *gorm.DB, updateID int, now time.Time) (bool, error) {
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.ProcessedUpdate{UpdateID: updateID, SeenAt: now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// PurgeProcessedBefore drops journal rows older than cutoff and returns the
// number removed.
func PurgeProcessedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("seen_at < ?", cutoff).
		Delete(&domain.ProcessedUpdate{})
	return res.RowsAffected, res.Error
}
