// file: models/checkout.go
package models

import (
	"time"
)

// CompetitionCheckout tracks one pending payment attempt against the
// external provider. The shared secret embedded in the session metadata is
// stored bcrypt-hashed; the webhook must present the clear secret.
type CompetitionCheckout struct {
	ID         uint32    `gorm:"primarykey" json:"id"`
	UserID     uint32    `gorm:"not null;index" json:"user_id"`
	EditionID  uint32    `gorm:"not null;index" json:"edition_id"`
	CheckoutID string    `gorm:"size:36;uniqueIndex;not null" json:"checkout_id"`
	ProviderCheckoutID string `gorm:"size:64;not null" json:"provider_checkout_id"`
	SecretHash string    `gorm:"size:60;not null" json:"-"`
	Amount     int       `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CompetitionCheckout) TableName() string {
	return "competition_checkout"
}
