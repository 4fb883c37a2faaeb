// file: services/edition_service_test.go
package services

import (
	"testing"
	"time"

	"hyperion/models"
)

func TestActivateEditionKeepsSingleActive(t *testing.T) {
	db := newTestDB(t)
	first := seedEdition(t, db)
	second := models.CompetitionEdition{
		Name:      "Challenge 2027",
		Year:      2027,
		StartDate: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 3, 3, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("Failed to seed second edition: %v", err)
	}

	if err := ActivateEdition(db, nil, second.ID); err != nil {
		t.Fatalf("ActivateEdition failed: %v", err)
	}
	active, err := ActiveEdition(db, nil)
	if err != nil {
		t.Fatalf("ActiveEdition failed: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("Expected edition %d active, got %d", second.ID, active.ID)
	}
	var reloaded models.CompetitionEdition
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("Failed to reload first edition: %v", err)
	}
	if reloaded.Active {
		t.Error("Previously active edition should be deactivated")
	}
}

func TestActiveEditionMissingIs404(t *testing.T) {
	db := newTestDB(t)

	_, err := ActiveEdition(db, nil)
	if err == nil {
		t.Fatal("No active edition should be an error")
	}
	if HTTPStatus(err) != 404 {
		t.Errorf("Expected 404, got %d", HTTPStatus(err))
	}
}

func TestExpireStaleCheckouts(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	user := seedUser(t, db, 10, 2, edition.ID, nil)

	stale := models.CompetitionCheckout{
		UserID:             user.UserID,
		EditionID:          edition.ID,
		CheckoutID:         "chk-old",
		ProviderCheckoutID: "prov-old",
		SecretHash:         "x",
		Amount:             1000,
		CreatedAt:          time.Now().Add(-48 * time.Hour),
	}
	fresh := models.CompetitionCheckout{
		UserID:             user.UserID,
		EditionID:          edition.ID,
		CheckoutID:         "chk-new",
		ProviderCheckoutID: "prov-new",
		SecretHash:         "x",
		Amount:             1000,
	}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("Failed to seed stale checkout: %v", err)
	}
	if err := db.Create(&fresh).Error; err != nil {
		t.Fatalf("Failed to seed fresh checkout: %v", err)
	}

	deleted, err := ExpireStaleCheckouts(db, 24*time.Hour)
	if err != nil {
		t.Fatalf("ExpireStaleCheckouts failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 expired checkout, got %d", deleted)
	}
	var remaining []models.CompetitionCheckout
	db.Find(&remaining)
	if len(remaining) != 1 || remaining[0].CheckoutID != "chk-new" {
		t.Errorf("Only the fresh checkout should remain, got %+v", remaining)
	}
}
