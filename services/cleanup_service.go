// file: services/cleanup_service.go
package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"hyperion/models"
)

// ExpireStaleCheckouts deletes pending checkout rows older than maxAge that
// never received a payment. Abandoned provider sessions would otherwise
// accumulate forever.
func ExpireStaleCheckouts(db *gorm.DB, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	res := db.Where("created_at < ?", cutoff).Delete(&models.CompetitionCheckout{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("cleanup: expired %d stale checkouts", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
