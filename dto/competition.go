// file: dto/competition.go
package dto

import "time"

// ========== Editions ==========

type CreateEditionReq struct {
	Name      string    `json:"name" binding:"required"`
	Year      int       `json:"year" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

type EditEditionReq struct {
	Name      *string    `json:"name"`
	Year      *int       `json:"year"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ========== Competition users ==========

type CreateCompetitionUserReq struct {
	IsAthlete     bool    `json:"is_athlete"`
	IsCameraman   bool    `json:"is_cameraman"`
	IsPompom      bool    `json:"is_pompom"`
	IsFanfare     bool    `json:"is_fanfare"`
	IsVolunteer   bool    `json:"is_volunteer"`
	SportCategory *string `json:"sport_category"`
}

type EditCompetitionUserReq struct {
	IsAthlete     *bool   `json:"is_athlete"`
	IsCameraman   *bool   `json:"is_cameraman"`
	IsPompom      *bool   `json:"is_pompom"`
	IsFanfare     *bool   `json:"is_fanfare"`
	IsVolunteer   *bool   `json:"is_volunteer"`
	SportCategory *string `json:"sport_category"`
}

// ========== Schools ==========

type SchoolExtensionReq struct {
	SchoolID           uint32 `json:"school_id" binding:"required"`
	Name               string `json:"name" binding:"required"`
	FromLyon           bool   `json:"from_lyon"`
	Active             bool   `json:"active"`
	InscriptionEnabled bool   `json:"inscription_enabled"`
}

type SchoolExtensionEditReq struct {
	FromLyon           *bool `json:"from_lyon"`
	Active             *bool `json:"active"`
	InscriptionEnabled *bool `json:"inscription_enabled"`
}

// ========== Quotas ==========

type GeneralQuotaReq struct {
	AthleteQuota             *int `json:"athlete_quota"`
	CameramanQuota           *int `json:"cameraman_quota"`
	PompomQuota              *int `json:"pompom_quota"`
	FanfareQuota             *int `json:"fanfare_quota"`
	VolunteerQuota           *int `json:"volunteer_quota"`
	AthleteCameramanQuota    *int `json:"athlete_cameraman_quota"`
	AthletePompomQuota       *int `json:"athlete_pompom_quota"`
	AthleteFanfareQuota      *int `json:"athlete_fanfare_quota"`
	NonAthleteCameramanQuota *int `json:"non_athlete_cameraman_quota"`
	NonAthletePompomQuota    *int `json:"non_athlete_pompom_quota"`
	NonAthleteFanfareQuota   *int `json:"non_athlete_fanfare_quota"`
}

type SportQuotaReq struct {
	ParticipantQuota *int `json:"participant_quota"`
	TeamQuota        *int `json:"team_quota"`
}

type ProductQuotaReq struct {
	Quota *int `json:"quota"`
}

// ========== Sports ==========

type SportReq struct {
	Name          string  `json:"name" binding:"required"`
	TeamSize      int     `json:"team_size" binding:"required,min=1"`
	SubstituteMax *int    `json:"substitute_max"`
	SportCategory *string `json:"sport_category"`
	Active        *bool   `json:"active"`
}

// ========== Teams / participants ==========

type CreateTeamReq struct {
	Name      string `json:"name" binding:"required"`
	SportID   uint32 `json:"sport_id" binding:"required"`
	SchoolID  uint32 `json:"school_id" binding:"required"`
	CaptainID uint32 `json:"captain_id" binding:"required"`
}

type EditTeamReq struct {
	Name      *string `json:"name"`
	CaptainID *uint32 `json:"captain_id"`
}

type JoinSportReq struct {
	TeamID     *uint32 `json:"team_id"`
	Substitute bool    `json:"substitute"`
	License    string  `json:"license"`
}

// ========== Catalog ==========

type ProductReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

type VariantReq struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       int     `json:"price" binding:"min=0"`
	Enabled     bool    `json:"enabled"`
	Unique      bool    `json:"unique"`
	SchoolType  *string `json:"school_type"`
	PublicType  *string `json:"public_type"`
}

type VariantEditReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Enabled     *bool   `json:"enabled"`
	Unique      *bool   `json:"unique"`
	SchoolType  *string `json:"school_type"`
	PublicType  *string `json:"public_type"`
}

// ========== Purchases ==========

type PurchaseReq struct {
	ProductVariantID uint32 `json:"product_variant_id" binding:"required"`
	Quantity         int    `json:"quantity" binding:"required,min=1"`
}
