// file: services/checkout_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hyperion/dto"
	"hyperion/models"
	"hyperion/utils"
)

// CheckoutSession is what the external provider returns for a created
// checkout: its own session id and the page the payer is redirected to.
type CheckoutSession struct {
	ID         string
	PaymentURL string
}

// CheckoutProvider opens payment sessions with the external provider. The
// HTTP implementation below talks to HelloAsso; tests substitute a fake.
type CheckoutProvider interface {
	InitCheckout(ctx context.Context, amount int, name string, metadata dto.CheckoutMetadata) (*CheckoutSession, error)
}

// HelloAssoProvider drives the HelloAsso checkout-intent API.
type HelloAssoProvider struct {
	BaseURL string
	Slug    string
	Token   string
	Client  *http.Client
}

func NewHelloAssoProvider() *HelloAssoProvider {
	return &HelloAssoProvider{
		BaseURL: os.Getenv("HYPERION_HELLOASSO_API_BASE"),
		Slug:    os.Getenv("HYPERION_HELLOASSO_SLUG"),
		Token:   os.Getenv("HYPERION_HELLOASSO_TOKEN"),
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *HelloAssoProvider) InitCheckout(ctx context.Context, amount int, name string, metadata dto.CheckoutMetadata) (*CheckoutSession, error) {
	body, err := json.Marshal(map[string]interface{}{
		"totalAmount":      amount,
		"initialAmount":    amount,
		"itemName":         name,
		"containsDonation": false,
		"metadata":         metadata,
	})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v5/organizations/%s/checkout-intents", p.BaseURL, p.Slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.Token)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("checkout provider returned status %d", resp.StatusCode)
	}

	var parsed struct {
		ID          json.Number `json:"id"`
		RedirectURL string      `json:"redirectUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: parsed.ID.String(), PaymentURL: parsed.RedirectURL}, nil
}

// CreateCheckout opens a provider session for the user's unpaid remainder
// and records the checkout row. The provider call happens first: a failed
// external call leaves no local row behind.
func CreateCheckout(
	db *gorm.DB,
	provider CheckoutProvider,
	userID, editionID uint32,
	editionName string,
) (*dto.PaymentURLResp, error) {
	purchases, err := LoadPurchases(db, userID, editionID)
	if err != nil {
		return nil, err
	}
	paymentsTotal, err := PaymentsTotal(db, userID, editionID)
	if err != nil {
		return nil, err
	}
	amount := PurchasesTotal(purchases) - paymentsTotal
	if amount < 100 {
		return nil, Forbidden("Please give an amount in cents, greater than 1€")
	}

	checkoutID := uuid.New().String()
	secret := utils.GenerateCheckoutSecret()
	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	session, err := provider.InitCheckout(
		context.Background(),
		amount,
		fmt.Sprintf("Challenge %s", editionName),
		dto.CheckoutMetadata{HyperionCheckoutID: checkoutID, Secret: secret},
	)
	if err != nil {
		log.Printf("checkout: failed to init a provider session for user %d: %v", userID, err)
		return nil, err
	}

	checkout := models.CompetitionCheckout{
		UserID:             userID,
		EditionID:          editionID,
		CheckoutID:         checkoutID,
		ProviderCheckoutID: session.ID,
		SecretHash:         string(secretHash),
		Amount:             amount,
	}
	if err := db.Create(&checkout).Error; err != nil {
		return nil, err
	}
	log.Printf("checkout: created checkout %s for user %d (%d cents)", checkoutID, userID, amount)

	return &dto.PaymentURLResp{URL: session.PaymentURL}, nil
}

// HandleNotification settles a provider payment notification. Unknown
// checkout ids and secret mismatches are client errors; notifications
// without metadata and redelivered payment ids are silent no-ops.
func HandleNotification(db *gorm.DB, rdb *redis.Client, notification *dto.PaymentNotification) error {
	if notification.EventType != dto.EventTypePayment {
		return nil
	}
	if notification.Metadata == nil {
		// Not every provider notification correlates to one of our
		// checkouts.
		return nil
	}

	var checkout models.CompetitionCheckout
	err := db.Where("checkout_id = ?", notification.Metadata.HyperionCheckoutID).
		First(&checkout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("webhook: unknown checkout id %s", notification.Metadata.HyperionCheckoutID)
			return BadRequest("Unknown checkout")
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(checkout.SecretHash), []byte(notification.Metadata.Secret)) != nil {
		log.Printf("webhook: secret mismatch for checkout %s", checkout.CheckoutID)
		return BadRequest("Invalid notification")
	}

	if alreadyProcessed(db, rdb, notification.Data.ID) {
		return nil
	}

	externalID := notification.Data.ID
	_, err = ApplyPayment(db, checkout.UserID, checkout.EditionID, notification.Data.Amount, &externalID)
	if err != nil {
		var apiErr *APIError
		// A concurrent redelivery can race past the check and hit the
		// unique index; that is the silent no-op path too.
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
			markProcessed(rdb, externalID)
			return nil
		}
		return err
	}
	markProcessed(rdb, externalID)
	return nil
}

func paymentKey(externalPaymentID string) string {
	return "competition:payment:" + externalPaymentID
}

// alreadyProcessed reports whether the external payment id was applied
// before. Redis only pre-filters redeliveries; the unique index on the
// payment row stays the source of truth, so a cache hit without a matching
// row is applied again.
func alreadyProcessed(db *gorm.DB, rdb *redis.Client, externalPaymentID string) bool {
	if externalPaymentID == "" {
		return false
	}
	if rdb != nil {
		n, err := rdb.Exists(context.Background(), paymentKey(externalPaymentID)).Result()
		if err == nil && n == 0 {
			return false
		}
	}
	var count int64
	db.Model(&models.CompetitionPayment{}).
		Where("external_payment_id = ?", externalPaymentID).
		Count(&count)
	return count > 0
}

// markProcessed caches the external payment id once its payment row is
// committed, so redeliveries skip the lookup for a day.
func markProcessed(rdb *redis.Client, externalPaymentID string) {
	if rdb == nil || externalPaymentID == "" {
		return
	}
	rdb.Set(context.Background(), paymentKey(externalPaymentID), 1, 24*time.Hour)
}
