// file: services/validation_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hyperion/models"
)

// CheckValidationConsistency cross-checks a user's participation, purchases
// and the school's quotas before the user may be marked validated. Every
// check is all-or-nothing: the first failure aborts the call and nothing is
// mutated.
func CheckValidationConsistency(db *gorm.DB, user *models.CompetitionUser, editionID uint32) error {
	var participants []models.CompetitionParticipant
	err := db.Where("user_id = ? AND edition_id = ?", user.UserID, editionID).
		Find(&participants).Error
	if err != nil {
		return err
	}

	if len(participants) > 0 && !user.IsAthlete {
		return BadRequest("User is not an athlete but is registered as a participant")
	}
	if len(participants) == 0 && user.IsAthlete {
		return BadRequest("User is an athlete but is not registered as a participant")
	}
	for i := range participants {
		if !participants[i].IsLicenseValid {
			return BadRequest("Participant license is not valid")
		}
	}

	purchases, err := LoadPurchases(db, user.UserID, editionID)
	if err != nil {
		return err
	}
	if err := checkRequiredProducts(db, purchases, editionID); err != nil {
		return err
	}

	for i := range participants {
		remaining, err := RemainingSportQuota(db, participants[i].SchoolID, participants[i].SportID, editionID, true)
		if err != nil {
			return err
		}
		if remaining != nil && *remaining <= 0 {
			return BadRequest("Participant quota reached")
		}
	}

	var generalQuota models.SchoolGeneralQuota
	err = db.Where("school_id = ? AND edition_id = ?", user.SchoolID, editionID).
		First(&generalQuota).Error
	switch {
	case err == nil:
		if err := CheckGeneralQuotas(db, user, &generalQuota); err != nil {
			return err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	return checkProductQuotas(db, user, purchases, editionID)
}

func checkRequiredProducts(db *gorm.DB, purchases []models.CompetitionPurchase, editionID uint32) error {
	var required []models.CompetitionProduct
	err := db.Where("edition_id = ? AND required = ?", editionID, true).Find(&required).Error
	if err != nil {
		return err
	}
	if len(required) == 0 {
		return nil
	}
	requiredIDs := make(map[uint32]bool, len(required))
	for i := range required {
		requiredIDs[required[i].ID] = true
	}
	for i := range purchases {
		if purchases[i].ProductVariant != nil && requiredIDs[purchases[i].ProductVariant.ProductID] {
			return nil
		}
	}
	return BadRequest("User has not purchased the required products")
}

func checkProductQuotas(db *gorm.DB, user *models.CompetitionUser, purchases []models.CompetitionPurchase, editionID uint32) error {
	seen := make(map[uint32]bool)
	for i := range purchases {
		if purchases[i].ProductVariant == nil {
			continue
		}
		productID := purchases[i].ProductVariant.ProductID
		if seen[productID] {
			continue
		}
		seen[productID] = true
		remaining, err := RemainingProductQuota(db, user.SchoolID, productID, editionID)
		if err != nil {
			return err
		}
		if remaining != nil && *remaining <= 0 {
			return BadRequest(fmt.Sprintf("Product %d quota reached", productID))
		}
	}
	return nil
}

// ValidateCompetitionUser runs the consistency check and flips the flag,
// holding the school's general quota row lock across the check so two
// concurrent validations cannot both pass a one-slot bucket.
func ValidateCompetitionUser(db *gorm.DB, userID, editionID uint32) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.CompetitionUser
		err := tx.Where("user_id = ? AND edition_id = ?", userID, editionID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Competition user not found")
			}
			return err
		}
		if _, err := LockGeneralQuota(tx, user.SchoolID, editionID); err != nil {
			return err
		}
		if err := CheckValidationConsistency(tx, &user, editionID); err != nil {
			return err
		}
		return tx.Model(&user).Update("validated", true).Error
	})
}
