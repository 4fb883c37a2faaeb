// file: controllers/webhook_controller_test.go
package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/models"
)

func setupWebhookTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.CompetitionEdition{},
		&models.SchoolExtension{},
		&models.CompetitionUser{},
		&models.CompetitionProduct{},
		&models.CompetitionProductVariant{},
		&models.CompetitionPurchase{},
		&models.CompetitionPayment{},
		&models.CompetitionCheckout{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	database.DB = db
	database.RDB = nil

	r := gin.New()
	r.POST("/api/v1/payment/webhook", PaymentWebhook)
	return r
}

func postWebhook(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentWebhookRejectsMalformedBody(t *testing.T) {
	r := setupWebhookTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/webhook", bytes.NewReader([]byte("{nope")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", w.Code)
	}
}

func TestPaymentWebhookIgnoresOrderEvents(t *testing.T) {
	r := setupWebhookTest(t)

	w := postWebhook(t, r, dto.PaymentNotification{EventType: dto.EventTypeOrder})
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for order events, got %d", w.Code)
	}
}

func TestPaymentWebhookSettlesAndDeduplicates(t *testing.T) {
	r := setupWebhookTest(t)
	db := database.DB

	edition := models.CompetitionEdition{Name: "Challenge 2026", Year: 2026, Active: true}
	if err := db.Create(&edition).Error; err != nil {
		t.Fatalf("Failed to seed edition: %v", err)
	}
	user := models.CompetitionUser{UserID: 10, EditionID: edition.ID, SchoolID: 2, IsAthlete: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	product := models.CompetitionProduct{EditionID: edition.ID, Name: "Pack"}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	variant := models.CompetitionProductVariant{
		ProductID: product.ID, EditionID: edition.ID, Name: "Pack", Price: 5000, Enabled: true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("Failed to seed variant: %v", err)
	}
	purchase := models.CompetitionPurchase{
		UserID: user.UserID, ProductVariantID: variant.ID, EditionID: edition.ID,
		Quantity: 1, PurchasedOn: time.Now().UTC(),
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("Failed to seed purchase: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash secret: %v", err)
	}
	checkout := models.CompetitionCheckout{
		UserID: user.UserID, EditionID: edition.ID, CheckoutID: "chk-1",
		ProviderCheckoutID: "prov-1", SecretHash: string(hash), Amount: 5000,
	}
	if err := db.Create(&checkout).Error; err != nil {
		t.Fatalf("Failed to seed checkout: %v", err)
	}

	notification := dto.PaymentNotification{
		EventType: dto.EventTypePayment,
		Data:      dto.NotificationData{ID: "pay-1", Amount: 5000},
		Metadata:  &dto.CheckoutMetadata{HyperionCheckoutID: "chk-1", Secret: "s3cret"},
	}
	if w := postWebhook(t, r, notification); w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
	}
	var reloaded models.CompetitionPurchase
	if err := db.Where("user_id = ?", user.UserID).First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload purchase: %v", err)
	}
	if !reloaded.Validated {
		t.Error("Settled payment should validate the purchase")
	}

	if w := postWebhook(t, r, notification); w.Code != http.StatusNoContent {
		t.Errorf("Redelivery should be a 204 no-op, got %d", w.Code)
	}
	var payments int64
	db.Model(&models.CompetitionPayment{}).Count(&payments)
	if payments != 1 {
		t.Errorf("Expected one payment row after redelivery, got %d", payments)
	}

	wrongSecret := notification
	wrongSecret.Data.ID = "pay-2"
	wrongSecret.Metadata = &dto.CheckoutMetadata{HyperionCheckoutID: "chk-1", Secret: "wrong"}
	if w := postWebhook(t, r, wrongSecret); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for secret mismatch, got %d", w.Code)
	}
}
