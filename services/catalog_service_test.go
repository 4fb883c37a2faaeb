// file: services/catalog_service_test.go
package services

import (
	"testing"

	"hyperion/models"
)

func TestAvailableVariantsFiltersSchoolAndPublicType(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	school := seedSchool(t, db, 2, "Mines", false)
	user := seedUser(t, db, 10, 2, edition.ID, nil)

	centrale := models.SchoolTypeCentrale
	others := models.SchoolTypeOthers
	pompom := models.PublicTypePompom
	athlete := models.PublicTypeAthlete

	open := seedVariant(t, db, edition.ID, "Pack", 5000, nil)
	seedVariant(t, db, edition.ID, "Centrale pack", 3000, func(v *models.CompetitionProductVariant) {
		v.SchoolType = &centrale
	})
	forOthers := seedVariant(t, db, edition.ID, "Visitor pack", 6000, func(v *models.CompetitionProductVariant) {
		v.SchoolType = &others
	})
	seedVariant(t, db, edition.ID, "Pompom outfit", 2000, func(v *models.CompetitionProductVariant) {
		v.PublicType = &pompom
	})
	forAthletes := seedVariant(t, db, edition.ID, "Athlete bib", 500, func(v *models.CompetitionProductVariant) {
		v.PublicType = &athlete
	})
	seedVariant(t, db, edition.ID, "Disabled", 100, func(v *models.CompetitionProductVariant) {
		v.Enabled = false
	})

	variants, err := AvailableVariants(db, user, school, edition.ID)
	if err != nil {
		t.Fatalf("AvailableVariants failed: %v", err)
	}
	got := make(map[uint32]bool, len(variants))
	for _, v := range variants {
		got[v.ID] = true
	}
	for _, want := range []uint32{open.ID, forOthers.ID, forAthletes.ID} {
		if !got[want] {
			t.Errorf("Variant %d should be available", want)
		}
	}
	if len(variants) != 3 {
		t.Errorf("Expected 3 eligible variants, got %d", len(variants))
	}
}

func TestCheckVariantPurchasable(t *testing.T) {
	fromLyon := models.SchoolTypeFromLyon
	pompom := models.PublicTypePompom

	school := &models.SchoolExtension{SchoolID: 2, Name: "Mines", FromLyon: false}
	user := &models.CompetitionUser{UserID: 10, SchoolID: 2, IsAthlete: true}

	cases := []struct {
		name    string
		variant models.CompetitionProductVariant
		qty     int
		wantErr bool
	}{
		{"plain variant", models.CompetitionProductVariant{Enabled: true, Price: 100}, 1, false},
		{"zero quantity", models.CompetitionProductVariant{Enabled: true}, 0, true},
		{"disabled", models.CompetitionProductVariant{Enabled: false}, 1, true},
		{"unique above one", models.CompetitionProductVariant{Enabled: true, Unique: true}, 2, true},
		{"wrong school type", models.CompetitionProductVariant{Enabled: true, SchoolType: &fromLyon}, 1, true},
		{"wrong public type", models.CompetitionProductVariant{Enabled: true, PublicType: &pompom}, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckVariantPurchasable(&tc.variant, user, school, tc.qty)
			if tc.wantErr && err == nil {
				t.Error("Expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestLoadVariantScopedToEdition(t *testing.T) {
	db := newTestDB(t)
	edition := seedEdition(t, db)
	variant := seedVariant(t, db, edition.ID, "Pack", 5000, nil)

	if _, err := LoadVariant(db, variant.ID, edition.ID); err != nil {
		t.Fatalf("LoadVariant failed: %v", err)
	}
	_, err := LoadVariant(db, variant.ID, edition.ID+1)
	if err == nil {
		t.Fatal("Variant of another edition should be a 404")
	}
	if HTTPStatus(err) != 404 {
		t.Errorf("Expected 404, got %d", HTTPStatus(err))
	}
}
