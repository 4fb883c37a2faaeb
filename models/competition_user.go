// file: models/competition_user.go
package models

import (
	"time"
)

// ProductPublicType is the role-based eligibility tag on a variant.
type ProductPublicType string

const (
	PublicTypeAthlete   ProductPublicType = "athlete"
	PublicTypeCameraman ProductPublicType = "cameraman"
	PublicTypePompom    ProductPublicType = "pompom"
	PublicTypeFanfare   ProductPublicType = "fanfare"
	PublicTypeVolunteer ProductPublicType = "volunteer"
)

// CompetitionUser is a user's registration for one edition. Role flags are
// independently settable; Validated is only ever set through the validation
// consistency check and reset whenever the basis for it changes.
type CompetitionUser struct {
	UserID        uint32         `gorm:"primarykey;autoIncrement:false" json:"user_id"`
	EditionID     uint32         `gorm:"primarykey;autoIncrement:false" json:"edition_id"`
	SchoolID      uint32         `gorm:"not null;index" json:"school_id"`
	IsAthlete     bool           `gorm:"default:false" json:"is_athlete"`
	IsCameraman   bool           `gorm:"default:false" json:"is_cameraman"`
	IsPompom      bool           `gorm:"default:false" json:"is_pompom"`
	IsFanfare     bool           `gorm:"default:false" json:"is_fanfare"`
	IsVolunteer   bool           `gorm:"default:false" json:"is_volunteer"`
	SportCategory *SportCategory `gorm:"type:varchar(20)" json:"sport_category"`
	Validated     bool           `gorm:"default:false" json:"validated"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (CompetitionUser) TableName() string {
	return "competition_user"
}

// HasRole reports whether the user holds the role a public type names.
func (u *CompetitionUser) HasRole(t ProductPublicType) bool {
	switch t {
	case PublicTypeAthlete:
		return u.IsAthlete
	case PublicTypeCameraman:
		return u.IsCameraman
	case PublicTypePompom:
		return u.IsPompom
	case PublicTypeFanfare:
		return u.IsFanfare
	case PublicTypeVolunteer:
		return u.IsVolunteer
	}
	return false
}
