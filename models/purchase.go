// file: models/purchase.go
package models

import (
	"time"
)

// CompetitionPurchase links a user to a product variant. While unvalidated
// it can be replaced or deleted; once money has been allocated against it
// (Validated) only the payment paths may touch it.
type CompetitionPurchase struct {
	UserID           uint32    `gorm:"primarykey;autoIncrement:false" json:"user_id"`
	ProductVariantID uint32    `gorm:"primarykey;autoIncrement:false" json:"product_variant_id"`
	EditionID        uint32    `gorm:"not null;index" json:"edition_id"`
	Quantity         int       `gorm:"not null;default:1" json:"quantity"`
	Validated        bool      `gorm:"default:false" json:"validated"`
	PurchasedOn      time.Time `gorm:"not null" json:"purchased_on"`
	UpdatedAt        time.Time `json:"updated_at"`

	ProductVariant *CompetitionProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant,omitempty"`
}

func (CompetitionPurchase) TableName() string {
	return "competition_purchase"
}

// Cost is the amount this purchase claims from incoming payments.
func (p *CompetitionPurchase) Cost() int {
	if p.ProductVariant == nil {
		return 0
	}
	return p.ProductVariant.Price * p.Quantity
}
