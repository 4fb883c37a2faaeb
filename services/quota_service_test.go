// file: services/quota_service_test.go
package services

import (
	"testing"

	"hyperion/models"
)

func TestRemainingSportQuotaCountsAllParticipants(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	sport := seedSport(t, db, "Basketball", 5, nil)

	quota := models.SchoolSportQuota{
		SchoolID:         2,
		SportID:          sport.ID,
		EditionID:        edition.ID,
		ParticipantQuota: intPtr(2),
	}
	if err := db.Create(&quota).Error; err != nil {
		t.Fatalf("Failed to seed sport quota: %v", err)
	}
	for _, userID := range []uint32{10, 11} {
		seedUser(t, db, userID, 2, edition.ID, nil)
		participant := models.CompetitionParticipant{
			UserID: userID, SportID: sport.ID, EditionID: edition.ID, SchoolID: 2,
		}
		if err := db.Create(&participant).Error; err != nil {
			t.Fatalf("Failed to seed participant: %v", err)
		}
	}

	remaining, err := RemainingSportQuota(db, 2, sport.ID, edition.ID, false)
	if err != nil {
		t.Fatalf("RemainingSportQuota failed: %v", err)
	}
	if remaining == nil || *remaining != 0 {
		t.Errorf("Expected 0 remaining slots, got %v", remaining)
	}

	// Neither user is validated, so the validated-only view is untouched.
	remaining, err = RemainingSportQuota(db, 2, sport.ID, edition.ID, true)
	if err != nil {
		t.Fatalf("RemainingSportQuota (validated) failed: %v", err)
	}
	if remaining == nil || *remaining != 2 {
		t.Errorf("Expected 2 remaining validated slots, got %v", remaining)
	}
}

func TestRemainingSportQuotaNilWhenUnlimited(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	sport := seedSport(t, db, "Basketball", 5, nil)

	remaining, err := RemainingSportQuota(db, 2, sport.ID, edition.ID, false)
	if err != nil {
		t.Fatalf("RemainingSportQuota failed: %v", err)
	}
	if remaining != nil {
		t.Errorf("Expected nil for absent quota, got %d", *remaining)
	}
}

func TestCheckGeneralQuotasSingleRoleBucket(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)

	// One validated athlete exhausts the single slot.
	seedUser(t, db, 10, 2, edition.ID, func(u *models.CompetitionUser) {
		u.Validated = true
	})
	quota := &models.SchoolGeneralQuota{
		SchoolID:     2,
		EditionID:    edition.ID,
		AthleteQuota: intPtr(1),
	}
	candidate := &models.CompetitionUser{
		UserID: 11, EditionID: edition.ID, SchoolID: 2, IsAthlete: true,
	}
	err := CheckGeneralQuotas(db, candidate, quota)
	if err == nil {
		t.Fatal("Exhausted athlete quota should reject the candidate")
	}
	if HTTPStatus(err) != 400 {
		t.Errorf("Expected 400, got %d", HTTPStatus(err))
	}
}

func TestCheckGeneralQuotasCombinationBucket(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)

	// A validated non-athlete cameraman fills the non_athlete_cameraman
	// bucket while the plain cameraman bucket stays open.
	seedUser(t, db, 10, 2, edition.ID, func(u *models.CompetitionUser) {
		u.IsAthlete = false
		u.IsCameraman = true
		u.Validated = true
	})
	quota := &models.SchoolGeneralQuota{
		SchoolID:                 2,
		EditionID:                edition.ID,
		CameramanQuota:           intPtr(5),
		NonAthleteCameramanQuota: intPtr(1),
	}

	nonAthlete := &models.CompetitionUser{
		UserID: 11, EditionID: edition.ID, SchoolID: 2, IsCameraman: true,
	}
	if err := CheckGeneralQuotas(db, nonAthlete, quota); err == nil {
		t.Error("Non-athlete cameraman bucket is full and should reject")
	}

	athlete := &models.CompetitionUser{
		UserID: 12, EditionID: edition.ID, SchoolID: 2, IsAthlete: true, IsCameraman: true,
	}
	if err := CheckGeneralQuotas(db, athlete, quota); err != nil {
		t.Errorf("Athlete cameraman is governed by other buckets, got %v", err)
	}
}

func TestCheckGeneralQuotasNilQuotaUnlimited(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	user := &models.CompetitionUser{
		UserID: 11, EditionID: edition.ID, SchoolID: 2, IsAthlete: true,
	}
	if err := CheckGeneralQuotas(db, user, nil); err != nil {
		t.Errorf("Absent quota row means unlimited, got %v", err)
	}
}

func TestRemainingProductQuotaCountsOnlyValidatedPurchases(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	user := seedUser(t, db, 10, 2, edition.ID, func(u *models.CompetitionUser) {
		u.Validated = true
	})
	variant := seedVariant(t, db, edition.ID, "Pack", 5000, nil)

	quota := models.SchoolProductQuota{
		SchoolID:  2,
		ProductID: variant.ProductID,
		EditionID: edition.ID,
		Quota:     intPtr(2),
	}
	if err := db.Create(&quota).Error; err != nil {
		t.Fatalf("Failed to seed product quota: %v", err)
	}
	purchase := seedPurchase(t, db, user, variant, 1, 0)

	remaining, err := RemainingProductQuota(db, 2, variant.ProductID, edition.ID)
	if err != nil {
		t.Fatalf("RemainingProductQuota failed: %v", err)
	}
	if remaining == nil || *remaining != 2 {
		t.Errorf("Unvalidated purchases must not consume the quota, got %v", remaining)
	}

	if err := db.Model(purchase).Update("validated", true).Error; err != nil {
		t.Fatalf("Failed to validate purchase: %v", err)
	}
	remaining, err = RemainingProductQuota(db, 2, variant.ProductID, edition.ID)
	if err != nil {
		t.Fatalf("RemainingProductQuota failed: %v", err)
	}
	if remaining == nil || *remaining != 1 {
		t.Errorf("Expected 1 remaining after a validated purchase, got %v", remaining)
	}
}
