// file: services/testutil_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hyperion/models"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.CompetitionEdition{},
		&models.SchoolExtension{},
		&models.CompetitionUser{},
		&models.Sport{},
		&models.CompetitionTeam{},
		&models.CompetitionParticipant{},
		&models.SchoolGeneralQuota{},
		&models.SchoolSportQuota{},
		&models.SchoolProductQuota{},
		&models.CompetitionProduct{},
		&models.CompetitionProductVariant{},
		&models.CompetitionPurchase{},
		&models.CompetitionPayment{},
		&models.CompetitionCheckout{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	return db
}

func seedEdition(t *testing.T, db *gorm.DB) *models.CompetitionEdition {
	t.Helper()
	edition := &models.CompetitionEdition{
		Name:               "Challenge 2026",
		Year:               2026,
		StartDate:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Active:             true,
		InscriptionEnabled: true,
	}
	if err := db.Create(edition).Error; err != nil {
		t.Fatalf("Failed to seed edition: %v", err)
	}
	return edition
}

func seedSchool(t *testing.T, db *gorm.DB, schoolID uint32, name string, fromLyon bool) *models.SchoolExtension {
	t.Helper()
	school := &models.SchoolExtension{
		SchoolID:           schoolID,
		Name:               name,
		FromLyon:           fromLyon,
		Active:             true,
		InscriptionEnabled: true,
	}
	if err := db.Create(school).Error; err != nil {
		t.Fatalf("Failed to seed school: %v", err)
	}
	return school
}

func seedUser(t *testing.T, db *gorm.DB, userID, schoolID, editionID uint32, mutate func(*models.CompetitionUser)) *models.CompetitionUser {
	t.Helper()
	user := &models.CompetitionUser{
		UserID:    userID,
		EditionID: editionID,
		SchoolID:  schoolID,
		IsAthlete: true,
	}
	if mutate != nil {
		mutate(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed competition user: %v", err)
	}
	return user
}

func seedSport(t *testing.T, db *gorm.DB, name string, teamSize int, category *models.SportCategory) *models.Sport {
	t.Helper()
	sport := &models.Sport{
		Name:          name,
		TeamSize:      teamSize,
		SportCategory: category,
		Active:        true,
	}
	if err := db.Create(sport).Error; err != nil {
		t.Fatalf("Failed to seed sport: %v", err)
	}
	return sport
}

// seedVariant creates a product with a single variant and returns the
// variant with its preloadable product id set.
func seedVariant(t *testing.T, db *gorm.DB, editionID uint32, name string, price int, mutate func(*models.CompetitionProductVariant)) *models.CompetitionProductVariant {
	t.Helper()
	product := &models.CompetitionProduct{
		EditionID: editionID,
		Name:      name,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	variant := &models.CompetitionProductVariant{
		ProductID: product.ID,
		EditionID: editionID,
		Name:      name + " standard",
		Price:     price,
		Enabled:   true,
	}
	if mutate != nil {
		mutate(variant)
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("Failed to seed variant: %v", err)
	}
	return variant
}

// seedPurchase inserts a purchase row directly, bypassing eligibility.
// purchasedOn spaces rows a minute apart so allocation order is stable.
func seedPurchase(t *testing.T, db *gorm.DB, user *models.CompetitionUser, variant *models.CompetitionProductVariant, quantity int, order int) *models.CompetitionPurchase {
	t.Helper()
	purchase := &models.CompetitionPurchase{
		UserID:           user.UserID,
		ProductVariantID: variant.ID,
		EditionID:        user.EditionID,
		Quantity:         quantity,
		PurchasedOn:      time.Date(2026, 1, 1, 10, order, 0, 0, time.UTC),
	}
	if err := db.Create(purchase).Error; err != nil {
		t.Fatalf("Failed to seed purchase: %v", err)
	}
	return purchase
}

func intPtr(v int) *int { return &v }

// purchaseValidated reloads one purchase row and reports its flag.
func purchaseValidated(t *testing.T, db *gorm.DB, userID, variantID uint32) bool {
	t.Helper()
	var purchase models.CompetitionPurchase
	err := db.Where("user_id = ? AND product_variant_id = ?", userID, variantID).
		First(&purchase).Error
	if err != nil {
		t.Fatalf("Failed to reload purchase: %v", err)
	}
	return purchase.Validated
}
