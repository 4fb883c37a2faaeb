// file: models/quota.go
package models

import (
	"time"
)

// SchoolGeneralQuota holds the per-role ceilings of one school for one
// edition. A nil ceiling means unlimited. Combination buckets
// (athlete+X / non-athlete+X) take precedence over single-role buckets for
// users holding the combination.
type SchoolGeneralQuota struct {
	SchoolID  uint32 `gorm:"primarykey;autoIncrement:false" json:"school_id"`
	EditionID uint32 `gorm:"primarykey;autoIncrement:false" json:"edition_id"`

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

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SchoolGeneralQuota) TableName() string {
	return "competition_school_general_quota"
}

// SchoolSportQuota bounds one school's presence in one sport for an edition.
type SchoolSportQuota struct {
	SchoolID         uint32    `gorm:"primarykey;autoIncrement:false" json:"school_id"`
	SportID          uint32    `gorm:"primarykey;autoIncrement:false" json:"sport_id"`
	EditionID        uint32    `gorm:"primarykey;autoIncrement:false" json:"edition_id"`
	ParticipantQuota *int      `json:"participant_quota"`
	TeamQuota        *int      `json:"team_quota"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (SchoolSportQuota) TableName() string {
	return "competition_school_sport_quota"
}

// SchoolProductQuota bounds validated purchases of a product's variants by
// one school's users for an edition.
type SchoolProductQuota struct {
	SchoolID  uint32    `gorm:"primarykey;autoIncrement:false" json:"school_id"`
	ProductID uint32    `gorm:"primarykey;autoIncrement:false" json:"product_id"`
	EditionID uint32    `gorm:"primarykey;autoIncrement:false" json:"edition_id"`
	Quota     *int      `json:"quota"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SchoolProductQuota) TableName() string {
	return "competition_school_product_quota"
}
