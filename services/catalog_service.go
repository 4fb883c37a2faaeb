// file: services/catalog_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"hyperion/models"
)

// AvailableVariants lists the enabled variants of the edition that the user
// may purchase: the variant's school type must match the user's school
// classification and its public type must be nil or one of the user's
// roles.
func AvailableVariants(
	db *gorm.DB,
	user *models.CompetitionUser,
	school *models.SchoolExtension,
	editionID uint32,
) ([]models.CompetitionProductVariant, error) {
	var variants []models.CompetitionProductVariant
	err := db.Where("edition_id = ? AND enabled = ?", editionID, true).
		Where("school_type IS NULL OR school_type = ?", string(school.SchoolType())).
		Order("product_id, id").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	eligible := make([]models.CompetitionProductVariant, 0, len(variants))
	for _, variant := range variants {
		if variant.PublicType != nil && !user.HasRole(*variant.PublicType) {
			continue
		}
		eligible = append(eligible, variant)
	}
	return eligible, nil
}

// CheckVariantPurchasable enforces the purchase-time eligibility rules of a
// variant for a user: enabled flag, quantity, uniqueness, school type and
// public type.
func CheckVariantPurchasable(
	variant *models.CompetitionProductVariant,
	user *models.CompetitionUser,
	school *models.SchoolExtension,
	quantity int,
) error {
	if quantity < 1 {
		return BadRequest("Quantity must be at least 1")
	}
	if !variant.Enabled {
		return Forbidden("Product variant is not enabled")
	}
	if variant.Unique && quantity > 1 {
		return BadRequest("Product variant can only be purchased once")
	}
	if variant.SchoolType != nil && *variant.SchoolType != school.SchoolType() {
		return Forbidden("Product variant is not available for your school")
	}
	if variant.PublicType != nil && !user.HasRole(*variant.PublicType) {
		return Forbidden("Product variant is not available for your role")
	}
	return nil
}

// VariantHasPurchases reports whether any purchase references the variant.
// Price edits and deletions are refused once money may be tied to the
// variant, so paid totals never desynchronize.
func VariantHasPurchases(db *gorm.DB, variantID uint32) (bool, error) {
	var count int64
	err := db.Model(&models.CompetitionPurchase{}).
		Where("product_variant_id = ?", variantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ProductHasPurchases reports whether any purchase references any variant
// of the product.
func ProductHasPurchases(db *gorm.DB, productID uint32) (bool, error) {
	var count int64
	err := db.Model(&models.CompetitionPurchase{}).
		Joins("JOIN competition_product_variant v ON v.id = competition_purchase.product_variant_id").
		Where("v.product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LoadVariant fetches a variant scoped to an edition.
func LoadVariant(db *gorm.DB, variantID, editionID uint32) (*models.CompetitionProductVariant, error) {
	var variant models.CompetitionProductVariant
	if err := db.First(&variant, variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Product variant not found")
		}
		return nil, err
	}
	if variant.EditionID != editionID {
		return nil, NotFound("Product variant not found")
	}
	return &variant, nil
}
