// file: models/payment.go
package models

import (
	"time"
)

// CompetitionPayment is the append-only ledger of money received for a
// user and edition. ExternalPaymentID is set for webhook-settled payments
// and carries the at-most-once guarantee; admin-recorded payments leave it
// nil.
type CompetitionPayment struct {
	ID                uint32    `gorm:"primarykey" json:"id"`
	UserID            uint32    `gorm:"not null;index" json:"user_id"`
	EditionID         uint32    `gorm:"not null;index" json:"edition_id"`
	Total             int       `gorm:"not null" json:"total"`
	ExternalPaymentID *string   `gorm:"size:64;uniqueIndex" json:"external_payment_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func (CompetitionPayment) TableName() string {
	return "competition_payment"
}
