// file: services/quota_service.go
package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hyperion/models"
)

// Quota checks are advisory gates recomputed from current rows at the
// moment of a state change, never maintained as running counters. Callers
// that follow a check with an insert must hold the quota row lock (see
// LockSportQuota / LockGeneralQuota) inside one transaction.

// RoleFilter narrows a competition-user count to users holding (or not
// holding) specific role flags. Nil fields are not filtered on.
type RoleFilter struct {
	IsAthlete   *bool
	IsCameraman *bool
	IsPompom    *bool
	IsFanfare   *bool
	IsVolunteer *bool
}

func boolPtr(b bool) *bool { return &b }

// CountValidatedUsers counts validated competition users of a school
// matching the role filter.
func CountValidatedUsers(db *gorm.DB, schoolID, editionID uint32, filter RoleFilter) (int64, error) {
	q := db.Model(&models.CompetitionUser{}).
		Where("school_id = ? AND edition_id = ? AND validated = ?", schoolID, editionID, true)
	if filter.IsAthlete != nil {
		q = q.Where("is_athlete = ?", *filter.IsAthlete)
	}
	if filter.IsCameraman != nil {
		q = q.Where("is_cameraman = ?", *filter.IsCameraman)
	}
	if filter.IsPompom != nil {
		q = q.Where("is_pompom = ?", *filter.IsPompom)
	}
	if filter.IsFanfare != nil {
		q = q.Where("is_fanfare = ?", *filter.IsFanfare)
	}
	if filter.IsVolunteer != nil {
		q = q.Where("is_volunteer = ?", *filter.IsVolunteer)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// RemainingSportQuota returns participant_quota minus the participant count
// for the school, sport and edition, or nil when the quota is absent or
// unlimited. With validatedOnly the count is restricted to participants of
// validated competition users, which is the definition the validation
// orchestrator uses; the join gate counts every participant row.
func RemainingSportQuota(db *gorm.DB, schoolID, sportID, editionID uint32, validatedOnly bool) (*int, error) {
	var quota models.SchoolSportQuota
	err := db.Where("school_id = ? AND sport_id = ? AND edition_id = ?", schoolID, sportID, editionID).
		First(&quota).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if quota.ParticipantQuota == nil {
		return nil, nil
	}

	count, err := CountParticipants(db, schoolID, sportID, editionID, validatedOnly)
	if err != nil {
		return nil, err
	}
	remaining := *quota.ParticipantQuota - int(count)
	return &remaining, nil
}

// CountParticipants counts a school's participants in a sport for an
// edition, optionally restricted to validated competition users.
func CountParticipants(db *gorm.DB, schoolID, sportID, editionID uint32, validatedOnly bool) (int64, error) {
	q := db.Model(&models.CompetitionParticipant{}).
		Where("competition_participant.school_id = ? AND competition_participant.sport_id = ? AND competition_participant.edition_id = ?",
			schoolID, sportID, editionID)
	if validatedOnly {
		q = q.Joins("JOIN competition_user cu ON cu.user_id = competition_participant.user_id AND cu.edition_id = competition_participant.edition_id").
			Where("cu.validated = ?", true)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// CountTeams counts a school's teams in a sport for an edition. The quota
// row must already be locked when the result gates an insert.
func CountTeams(db *gorm.DB, schoolID, sportID, editionID uint32) (int64, error) {
	var count int64
	err := db.Model(&models.CompetitionTeam{}).
		Where("school_id = ? AND sport_id = ? AND edition_id = ?", schoolID, sportID, editionID).
		Count(&count).Error
	return count, err
}

// RemainingProductQuota returns the product quota minus validated purchases
// of the product's variants by the school's users, or nil when unlimited.
func RemainingProductQuota(db *gorm.DB, schoolID, productID, editionID uint32) (*int, error) {
	var quota models.SchoolProductQuota
	err := db.Where("school_id = ? AND product_id = ? AND edition_id = ?", schoolID, productID, editionID).
		First(&quota).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if quota.Quota == nil {
		return nil, nil
	}
	count, err := CountValidatedProductPurchases(db, schoolID, productID, editionID)
	if err != nil {
		return nil, err
	}
	remaining := *quota.Quota - int(count)
	return &remaining, nil
}

// CountValidatedProductPurchases counts validated purchases of any variant
// of a product made by users of a school.
func CountValidatedProductPurchases(db *gorm.DB, schoolID, productID, editionID uint32) (int64, error) {
	var count int64
	err := db.Model(&models.CompetitionPurchase{}).
		Joins("JOIN competition_product_variant v ON v.id = competition_purchase.product_variant_id").
		Joins("JOIN competition_user cu ON cu.user_id = competition_purchase.user_id AND cu.edition_id = competition_purchase.edition_id").
		Where("v.product_id = ? AND cu.school_id = ? AND competition_purchase.edition_id = ? AND competition_purchase.validated = ?",
			productID, schoolID, editionID, true).
		Count(&count).Error
	return count, err
}

// withUpdateLock adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite, used in development and tests, locks the whole database per
// write transaction anyway.
func withUpdateLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// LockSportQuota loads the sport quota row with a row lock so that a
// check-then-insert sequence cannot race another request past the ceiling.
// Returns nil without error when no quota row exists.
func LockSportQuota(tx *gorm.DB, schoolID, sportID, editionID uint32) (*models.SchoolSportQuota, error) {
	var quota models.SchoolSportQuota
	err := withUpdateLock(tx).
		Where("school_id = ? AND sport_id = ? AND edition_id = ?", schoolID, sportID, editionID).
		First(&quota).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quota, nil
}

// LockGeneralQuota locks a school's general quota row, if present.
func LockGeneralQuota(tx *gorm.DB, schoolID, editionID uint32) (*models.SchoolGeneralQuota, error) {
	var quota models.SchoolGeneralQuota
	err := withUpdateLock(tx).
		Where("school_id = ? AND edition_id = ?", schoolID, editionID).
		First(&quota).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quota, nil
}

// CheckGeneralQuotas verifies every bucket of the school's general quota
// that applies to the user's role flags. Combination buckets (athlete+X,
// non-athlete+X) are checked on top of the single-role buckets, so a
// combination holder is rejected as soon as the most specific applicable
// bucket is exhausted.
func CheckGeneralQuotas(db *gorm.DB, user *models.CompetitionUser, quota *models.SchoolGeneralQuota) error {
	if quota == nil {
		return nil
	}
	type bucket struct {
		applies bool
		limit   *int
		filter  RoleFilter
		msg     string
	}
	buckets := []bucket{
		{user.IsAthlete, quota.AthleteQuota, RoleFilter{IsAthlete: boolPtr(true)}, "Athlete quota reached"},
		{user.IsCameraman, quota.CameramanQuota, RoleFilter{IsCameraman: boolPtr(true)}, "Cameraman quota reached"},
		{user.IsPompom, quota.PompomQuota, RoleFilter{IsPompom: boolPtr(true)}, "Pompom quota reached"},
		{user.IsFanfare, quota.FanfareQuota, RoleFilter{IsFanfare: boolPtr(true)}, "Fanfare quota reached"},
		{user.IsVolunteer, quota.VolunteerQuota, RoleFilter{IsVolunteer: boolPtr(true)}, "Volunteer quota reached"},
	}
	if user.IsAthlete {
		buckets = append(buckets,
			bucket{user.IsCameraman, quota.AthleteCameramanQuota, RoleFilter{IsAthlete: boolPtr(true), IsCameraman: boolPtr(true)}, "Athlete cameraman quota reached"},
			bucket{user.IsPompom, quota.AthletePompomQuota, RoleFilter{IsAthlete: boolPtr(true), IsPompom: boolPtr(true)}, "Athlete pompom quota reached"},
			bucket{user.IsFanfare, quota.AthleteFanfareQuota, RoleFilter{IsAthlete: boolPtr(true), IsFanfare: boolPtr(true)}, "Athlete fanfare quota reached"},
		)
	} else {
		buckets = append(buckets,
			bucket{user.IsCameraman, quota.NonAthleteCameramanQuota, RoleFilter{IsAthlete: boolPtr(false), IsCameraman: boolPtr(true)}, "Non athlete cameraman quota reached"},
			bucket{user.IsPompom, quota.NonAthletePompomQuota, RoleFilter{IsAthlete: boolPtr(false), IsPompom: boolPtr(true)}, "Non athlete pompom quota reached"},
			bucket{user.IsFanfare, quota.NonAthleteFanfareQuota, RoleFilter{IsAthlete: boolPtr(false), IsFanfare: boolPtr(true)}, "Non athlete fanfare quota reached"},
		)
	}

	for _, b := range buckets {
		if !b.applies || b.limit == nil {
			continue
		}
		count, err := CountValidatedUsers(db, user.SchoolID, user.EditionID, b.filter)
		if err != nil {
			return err
		}
		if count >= int64(*b.limit) {
			return BadRequest(b.msg)
		}
	}
	return nil
}
