// file: services/checkout_service_test.go
package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hyperion/dto"
	"hyperion/models"
)

// stubProvider records the session it was asked to open.
type stubProvider struct {
	lastAmount   int
	lastMetadata dto.CheckoutMetadata
	fail         bool
}

func (s *stubProvider) InitCheckout(_ context.Context, amount int, _ string, metadata dto.CheckoutMetadata) (*CheckoutSession, error) {
	if s.fail {
		return nil, context.DeadlineExceeded
	}
	s.lastAmount = amount
	s.lastMetadata = metadata
	return &CheckoutSession{ID: "prov-1", PaymentURL: "https://pay.example/prov-1"}, nil
}

func TestCreateCheckoutOpensSessionForUnpaidRemainder(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	user := seedUser(t, db, 10, 2, edition.ID, nil)
	variant := seedVariant(t, db, edition.ID, "Pack", 5000, nil)
	seedPurchase(t, db, user, variant, 1, 0)
	if _, err := ApplyPayment(db, user.UserID, edition.ID, 1500, nil); err != nil {
		t.Fatalf("Seed payment failed: %v", err)
	}

	provider := &stubProvider{}
	resp, err := CreateCheckout(db, provider, user.UserID, edition.ID, edition.Name)
	if err != nil {
		t.Fatalf("CreateCheckout failed: %v", err)
	}
	if resp.URL != "https://pay.example/prov-1" {
		t.Errorf("Unexpected payment URL %q", resp.URL)
	}
	if provider.lastAmount != 3500 {
		t.Errorf("Expected a 3500 cents session, got %d", provider.lastAmount)
	}

	var checkout models.CompetitionCheckout
	if err := db.Where("user_id = ?", user.UserID).First(&checkout).Error; err != nil {
		t.Fatalf("Checkout row missing: %v", err)
	}
	if checkout.CheckoutID != provider.lastMetadata.HyperionCheckoutID {
		t.Error("Checkout row and session metadata disagree on the checkout id")
	}
	if bcrypt.CompareHashAndPassword([]byte(checkout.SecretHash), []byte(provider.lastMetadata.Secret)) != nil {
		t.Error("Stored hash does not match the secret sent to the provider")
	}
}

func TestCreateCheckoutRejectsTinyRemainder(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	user := seedUser(t, db, 10, 2, edition.ID, nil)
	variant := seedVariant(t, db, edition.ID, "Sticker", 50, nil)
	seedPurchase(t, db, user, variant, 1, 0)

	_, err := CreateCheckout(db, &stubProvider{}, user.UserID, edition.ID, edition.Name)
	if err == nil {
		t.Fatal("Remainder below 1€ should be refused")
	}
	if HTTPStatus(err) != 403 {
		t.Errorf("Expected 403, got %d", HTTPStatus(err))
	}
}

func TestCreateCheckoutProviderFailureLeavesNoRow(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	user := seedUser(t, db, 10, 2, edition.ID, nil)
	variant := seedVariant(t, db, edition.ID, "Pack", 5000, nil)
	seedPurchase(t, db, user, variant, 1, 0)

	_, err := CreateCheckout(db, &stubProvider{fail: true}, user.UserID, edition.ID, edition.Name)
	if err == nil {
		t.Fatal("Provider failure should surface")
	}
	var count int64
	db.Model(&models.CompetitionCheckout{}).Count(&count)
	if count != 0 {
		t.Error("A failed provider call must not leave a checkout row behind")
	}
}

func seedCheckout(t *testing.T, db *gorm.DB, user *models.CompetitionUser, amount int) (*models.CompetitionCheckout, string) {
	t.Helper()
	secret := "test-secret"
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash secret: %v", err)
	}
	checkout := &models.CompetitionCheckout{
		UserID:             user.UserID,
		EditionID:          user.EditionID,
		CheckoutID:         "chk-1",
		ProviderCheckoutID: "prov-1",
		SecretHash:         string(hash),
		Amount:             amount,
	}
	if err := db.Create(checkout).Error; err != nil {
		t.Fatalf("Failed to seed checkout: %v", err)
	}
	return checkout, secret
}

func TestHandleNotificationSettlesPayment(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	user := seedUser(t, db, 10, 2, edition.ID, nil)
	variant := seedVariant(t, db, edition.ID, "Pack", 5000, nil)
	seedPurchase(t, db, user, variant, 1, 0)
	_, secret := seedCheckout(t, db, user, 5000)

	notification := &dto.PaymentNotification{
		EventType: dto.EventTypePayment,
		Data:      dto.NotificationData{ID: "pay-1", Amount: 5000},
		Metadata:  &dto.CheckoutMetadata{HyperionCheckoutID: "chk-1", Secret: secret},
	}
	if err := HandleNotification(db, nil, notification); err != nil {
		t.Fatalf("HandleNotification failed: %v", err)
	}
	if !purchaseValidated(t, db, user.UserID, variant.ID) {
		t.Error("The settled payment should validate the purchase")
	}

	// Redelivery of the same payment id is a silent no-op.
	if err := HandleNotification(db, nil, notification); err != nil {
		t.Fatalf("Redelivery should be a no-op, got %v", err)
	}
	var count int64
	db.Model(&models.CompetitionPayment{}).Where("user_id = ?", user.UserID).Count(&count)
	if count != 1 {
		t.Errorf("Expected a single payment row after redelivery, got %d", count)
	}
}

func TestHandleNotificationFailedApplicationStaysReplayable(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	user := seedUser(t, db, 10, 2, edition.ID, nil)
	variant := seedVariant(t, db, edition.ID, "Pack", 5000, nil)
	seedPurchase(t, db, user, variant, 1, 0)
	_, secret := seedCheckout(t, db, user, 5000)

	// A zero amount fails the application before any payment row exists.
	bad := &dto.PaymentNotification{
		EventType: dto.EventTypePayment,
		Data:      dto.NotificationData{ID: "pay-1", Amount: 0},
		Metadata:  &dto.CheckoutMetadata{HyperionCheckoutID: "chk-1", Secret: secret},
	}
	if err := HandleNotification(db, nil, bad); err == nil {
		t.Fatal("A failed application should surface to the provider")
	}
	var count int64
	db.Model(&models.CompetitionPayment{}).Where("user_id = ?", user.UserID).Count(&count)
	if count != 0 {
		t.Fatalf("No payment row expected after the failed application, got %d", count)
	}

	// The provider redelivers the same payment id; with no row recorded
	// it must be applied, not dropped as a duplicate.
	good := &dto.PaymentNotification{
		EventType: dto.EventTypePayment,
		Data:      dto.NotificationData{ID: "pay-1", Amount: 5000},
		Metadata:  &dto.CheckoutMetadata{HyperionCheckoutID: "chk-1", Secret: secret},
	}
	if err := HandleNotification(db, nil, good); err != nil {
		t.Fatalf("Redelivery after a failed application should settle, got %v", err)
	}
	if !purchaseValidated(t, db, user.UserID, variant.ID) {
		t.Error("The redelivered payment should validate the purchase")
	}
}

func TestHandleNotificationSecretMismatch(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	seedSchool(t, db, 2, "ECL", false)
	user := seedUser(t, db, 10, 2, edition.ID, nil)
	seedCheckout(t, db, user, 5000)

	err := HandleNotification(db, nil, &dto.PaymentNotification{
		EventType: dto.EventTypePayment,
		Data:      dto.NotificationData{ID: "pay-1", Amount: 5000},
		Metadata:  &dto.CheckoutMetadata{HyperionCheckoutID: "chk-1", Secret: "wrong"},
	})
	if err == nil {
		t.Fatal("Secret mismatch should be rejected")
	}
	if HTTPStatus(err) != 400 {
		t.Errorf("Expected 400, got %d", HTTPStatus(err))
	}
}

func TestHandleNotificationUnknownCheckout(t *testing.T) {
	db := newTestDB(t)
	seedEdition(t, db)

	err := HandleNotification(db, nil, &dto.PaymentNotification{
		EventType: dto.EventTypePayment,
		Data:      dto.NotificationData{ID: "pay-1", Amount: 5000},
		Metadata:  &dto.CheckoutMetadata{HyperionCheckoutID: "nope", Secret: "x"},
	})
	if err == nil {
		t.Fatal("Unknown checkout id should be rejected")
	}
	if HTTPStatus(err) != 400 {
		t.Errorf("Expected 400, got %d", HTTPStatus(err))
	}
}

func TestHandleNotificationIgnoresNonPaymentAndMissingMetadata(t *testing.T) {
	db := newTestDB(t)
	seedEdition(t, db)

	if err := HandleNotification(db, nil, &dto.PaymentNotification{
		EventType: dto.EventTypeOrder,
	}); err != nil {
		t.Errorf("Non-payment events should be ignored, got %v", err)
	}
	if err := HandleNotification(db, nil, &dto.PaymentNotification{
		EventType: dto.EventTypePayment,
		Data:      dto.NotificationData{ID: "pay-1", Amount: 5000},
	}); err != nil {
		t.Errorf("Missing metadata should be ignored, got %v", err)
	}
}
