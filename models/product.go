// file: models/product.go
package models

import (
	"time"
)

// CompetitionProduct groups purchasable variants. Required products must
// have at least one purchased variant before a user can be validated.
type CompetitionProduct struct {
	ID          uint32                      `gorm:"primarykey" json:"id"`
	EditionID   uint32                      `gorm:"not null;index" json:"edition_id"`
	Name        string                      `gorm:"size:100;not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Required    bool                        `gorm:"default:false" json:"required"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	Variants    []CompetitionProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

func (CompetitionProduct) TableName() string {
	return "competition_product"
}

// CompetitionProductVariant is a purchasable SKU. Price is in the smallest
// currency unit. Eligibility is the conjunction of SchoolType and
// PublicType against the purchasing user, checked at purchase time.
type CompetitionProductVariant struct {
	ID          uint32             `gorm:"primarykey" json:"id"`
	ProductID   uint32             `gorm:"not null;index" json:"product_id"`
	EditionID   uint32             `gorm:"not null;index" json:"edition_id"`
	Name        string             `gorm:"size:100;not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	Price       int                `gorm:"not null" json:"price"`
	Enabled     bool               `gorm:"default:true" json:"enabled"`
	Unique      bool               `gorm:"default:false" json:"unique"`
	SchoolType  *ProductSchoolType `gorm:"type:varchar(20)" json:"school_type"`
	PublicType  *ProductPublicType `gorm:"type:varchar(20)" json:"public_type"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (CompetitionProductVariant) TableName() string {
	return "competition_product_variant"
}
