// file: services/ledger_service.go
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hyperion/models"
)

// LoadPurchases returns a user's purchases for an edition, oldest first,
// with their variants materialized.
func LoadPurchases(db *gorm.DB, userID, editionID uint32) ([]models.CompetitionPurchase, error) {
	var purchases []models.CompetitionPurchase
	err := db.Preload("ProductVariant").
		Where("user_id = ? AND edition_id = ?", userID, editionID).
		Order("purchased_on asc").
		Find(&purchases).Error
	return purchases, err
}

// PurchasesTotal sums price × quantity over all purchases, validated or not.
func PurchasesTotal(purchases []models.CompetitionPurchase) int {
	total := 0
	for i := range purchases {
		total += purchases[i].Cost()
	}
	return total
}

// PaymentsTotal sums the recorded payments of a user for an edition.
func PaymentsTotal(db *gorm.DB, userID, editionID uint32) (int, error) {
	var total int64
	err := db.Model(&models.CompetitionPayment{}).
		Where("user_id = ? AND edition_id = ?", userID, editionID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return int(total), err
}

// CreatePurchase records a purchase after eligibility, uniqueness and
// edition checks. A second purchase of the same (user, variant) row is an
// upsert of the quantity while the row is unvalidated; once validated the
// row can no longer be replaced. Any purchase mutation resets the user's
// validated flag, since the basis for the validation changed.
func CreatePurchase(
	db *gorm.DB,
	user *models.CompetitionUser,
	school *models.SchoolExtension,
	variant *models.CompetitionProductVariant,
	quantity int,
) (*models.CompetitionPurchase, error) {
	if err := CheckVariantPurchasable(variant, user, school, quantity); err != nil {
		return nil, err
	}

	var purchase *models.CompetitionPurchase
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.CompetitionPurchase
		err := tx.Where("user_id = ? AND product_variant_id = ?", user.UserID, variant.ID).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.Validated {
				return Conflict("Purchase is already validated and can no longer be replaced")
			}
			if variant.Unique {
				return Conflict("Product variant can only be purchased once")
			}
			if err := tx.Model(&existing).Update("quantity", quantity).Error; err != nil {
				return err
			}
			existing.Quantity = quantity
			purchase = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			purchase = &models.CompetitionPurchase{
				UserID:           user.UserID,
				ProductVariantID: variant.ID,
				EditionID:        user.EditionID,
				Quantity:         quantity,
				Validated:        false,
				PurchasedOn:      time.Now().UTC(),
			}
			if err := tx.Create(purchase).Error; err != nil {
				return Conflict("Purchase already exists")
			}
		default:
			return err
		}

		return invalidateUser(tx, user.UserID, user.EditionID)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// DeletePurchase removes an unvalidated purchase. Validated purchases only
// go away through payment deletion, which reruns the allocator.
func DeletePurchase(db *gorm.DB, userID, variantID, editionID uint32) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var purchase models.CompetitionPurchase
		err := tx.Where("user_id = ? AND product_variant_id = ?", userID, variantID).
			First(&purchase).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Purchase not found")
			}
			return err
		}
		if purchase.EditionID != editionID {
			return NotFound("Purchase not found")
		}
		if purchase.Validated {
			return Forbidden("You can't remove a validated purchase")
		}
		if err := tx.Delete(&purchase).Error; err != nil {
			return err
		}
		return invalidateUser(tx, userID, editionID)
	})
}

// ApplyPayment records a payment and allocates it to purchases: exact full
// settlement validates everything; otherwise a strict greedy oldest-first
// walk validates purchases until it reaches one it cannot afford, where it
// stops. Runs inside one transaction so money is never recorded without the
// matching validations, or the reverse.
func ApplyPayment(db *gorm.DB, userID, editionID uint32, amount int, externalPaymentID *string) (*models.CompetitionPayment, error) {
	if amount <= 0 {
		return nil, BadRequest("Payment amount must be positive")
	}
	var payment *models.CompetitionPayment
	err := db.Transaction(func(tx *gorm.DB) error {
		paymentsTotal, err := PaymentsTotal(tx, userID, editionID)
		if err != nil {
			return err
		}
		if err := allocate(tx, userID, editionID, paymentsTotal+amount); err != nil {
			return err
		}
		payment = &models.CompetitionPayment{
			UserID:            userID,
			EditionID:         editionID,
			Total:             amount,
			ExternalPaymentID: externalPaymentID,
		}
		if err := tx.Create(payment).Error; err != nil {
			return Conflict("Payment already recorded")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePayment removes a payment and re-derives every purchase's
// validation from the reduced payments total, using the same allocator.
// Validity is never left to caller discipline.
func DeletePayment(db *gorm.DB, paymentID, userID, editionID uint32) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var payment models.CompetitionPayment
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Payment not found")
			}
			return err
		}
		if payment.UserID != userID {
			return Forbidden("user_id and payment are not related")
		}
		if payment.EditionID != editionID {
			// A payment from a past edition backs that edition's
			// validations; removing it here would strand them.
			return Forbidden("payment does not belong to this edition")
		}
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CompetitionPurchase{}).
			Where("user_id = ? AND edition_id = ?", userID, editionID).
			Update("validated", false).Error; err != nil {
			return err
		}
		paymentsTotal, err := PaymentsTotal(tx, userID, editionID)
		if err != nil {
			return err
		}
		if paymentsTotal == 0 {
			return nil
		}
		return allocate(tx, userID, editionID, paymentsTotal)
	})
}

// allocate walks the user's purchases oldest first with totalPaid as the
// remaining claimable funds. An exact match with the purchases total
// validates every purchase without ordering concerns. The partial walk
// never validates a later purchase past an earlier one it cannot afford.
func allocate(tx *gorm.DB, userID, editionID uint32, totalPaid int) error {
	purchases, err := LoadPurchases(tx, userID, editionID)
	if err != nil {
		return err
	}

	if totalPaid == PurchasesTotal(purchases) {
		for i := range purchases {
			if err := markValidated(tx, &purchases[i], true); err != nil {
				return err
			}
		}
		return nil
	}

	remaining := totalPaid
	for i := range purchases {
		if remaining <= 0 {
			break
		}
		p := &purchases[i]
		if p.Validated {
			remaining -= p.Cost()
			continue
		}
		if p.Cost() > remaining {
			break
		}
		if err := markValidated(tx, p, true); err != nil {
			return err
		}
		remaining -= p.Cost()
	}
	return nil
}

func markValidated(tx *gorm.DB, purchase *models.CompetitionPurchase, validated bool) error {
	if purchase.Validated == validated {
		return nil
	}
	err := tx.Model(&models.CompetitionPurchase{}).
		Where("user_id = ? AND product_variant_id = ?", purchase.UserID, purchase.ProductVariantID).
		Update("validated", validated).Error
	if err != nil {
		return err
	}
	purchase.Validated = validated
	return nil
}

func invalidateUser(tx *gorm.DB, userID, editionID uint32) error {
	return tx.Model(&models.CompetitionUser{}).
		Where("user_id = ? AND edition_id = ? AND validated = ?", userID, editionID, true).
		Update("validated", false).Error
}
