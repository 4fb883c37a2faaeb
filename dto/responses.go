// file: dto/responses.go
package dto

import "time"

// Response DTOs are built from persisted rows by explicit mapping functions
// (see mappers); rows are never serialized directly.

type CompetitionUserResp struct {
	UserID        uint32  `json:"user_id"`
	EditionID     uint32  `json:"edition_id"`
	SchoolID      uint32  `json:"school_id"`
	IsAthlete     bool    `json:"is_athlete"`
	IsCameraman   bool    `json:"is_cameraman"`
	IsPompom      bool    `json:"is_pompom"`
	IsFanfare     bool    `json:"is_fanfare"`
	IsVolunteer   bool    `json:"is_volunteer"`
	SportCategory *string `json:"sport_category"`
	Validated     bool    `json:"validated"`
}

type ParticipantResp struct {
	UserID         uint32  `json:"user_id"`
	SportID        uint32  `json:"sport_id"`
	EditionID      uint32  `json:"edition_id"`
	SchoolID       uint32  `json:"school_id"`
	TeamID         *uint32 `json:"team_id"`
	Substitute     bool    `json:"substitute"`
	License        string  `json:"license"`
	IsLicenseValid bool    `json:"is_license_valid"`
}

type TeamResp struct {
	ID           uint32            `json:"id"`
	Name         string            `json:"name"`
	EditionID    uint32            `json:"edition_id"`
	SchoolID     uint32            `json:"school_id"`
	SportID      uint32            `json:"sport_id"`
	CaptainID    uint32            `json:"captain_id"`
	CreatedAt    time.Time         `json:"created_at"`
	Participants []ParticipantResp `json:"participants"`
}

type VariantResp struct {
	ID          uint32  `json:"id"`
	ProductID   uint32  `json:"product_id"`
	EditionID   uint32  `json:"edition_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	Enabled     bool    `json:"enabled"`
	Unique      bool    `json:"unique"`
	SchoolType  *string `json:"school_type"`
	PublicType  *string `json:"public_type"`
}

type ProductResp struct {
	ID          uint32        `json:"id"`
	EditionID   uint32        `json:"edition_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Required    bool          `json:"required"`
	Variants    []VariantResp `json:"variants"`
}

type PurchaseResp struct {
	UserID           uint32       `json:"user_id"`
	ProductVariantID uint32       `json:"product_variant_id"`
	EditionID        uint32       `json:"edition_id"`
	Quantity         int          `json:"quantity"`
	Validated        bool         `json:"validated"`
	PurchasedOn      time.Time    `json:"purchased_on"`
	ProductVariant   *VariantResp `json:"product_variant,omitempty"`
}

type PaymentResp struct {
	ID        uint32    `json:"id"`
	UserID    uint32    `json:"user_id"`
	EditionID uint32    `json:"edition_id"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type GeneralQuotaResp struct {
	SchoolID  uint32 `json:"school_id"`
	EditionID uint32 `json:"edition_id"`

	AthleteQuota   *int `json:"athlete_quota"`
	CameramanQuota *int `json:"cameraman_quota"`
	PompomQuota    *int `json:"pompom_quota"`
	FanfareQuota   *int `json:"fanfare_quota"`
	VolunteerQuota *int `json:"volunteer_quota"`

	AthleteCameramanQuota *int `json:"athlete_cameraman_quota"`
	AthletePompomQuota    *int `json:"athlete_pompom_quota"`
	AthleteFanfareQuota   *int `json:"athlete_fanfare_quota"`

	NonAthleteCameramanQuota *int `json:"non_athlete_cameraman_quota"`
	NonAthletePompomQuota    *int `json:"non_athlete_pompom_quota"`
	NonAthleteFanfareQuota   *int `json:"non_athlete_fanfare_quota"`
}

type SportQuotaResp struct {
	SchoolID         uint32 `json:"school_id"`
	SportID          uint32 `json:"sport_id"`
	EditionID        uint32 `json:"edition_id"`
	ParticipantQuota *int   `json:"participant_quota"`
	TeamQuota        *int   `json:"team_quota"`
}

type ProductQuotaResp struct {
	SchoolID  uint32 `json:"school_id"`
	ProductID uint32 `json:"product_id"`
	EditionID uint32 `json:"edition_id"`
	Quota     *int   `json:"quota"`
}
