// file: models/school.go
package models

import (
	"time"
)

// CentraleLyonSchoolID is the school whose students always match the
// "centrale" school type on product variants.
const CentraleLyonSchoolID uint32 = 1

// ProductSchoolType classifies a purchasing user's school against a variant.
type ProductSchoolType string

const (
	SchoolTypeCentrale ProductSchoolType = "centrale"
	SchoolTypeFromLyon ProductSchoolType = "from_lyon"
	SchoolTypeOthers   ProductSchoolType = "others"
)

// SchoolExtension is the competition-side record of a school. One row per
// school; FromLyon drives the school-type eligibility of catalog variants.
type SchoolExtension struct {
	SchoolID           uint32    `gorm:"primarykey;autoIncrement:false" json:"school_id"`
	Name               string    `gorm:"size:100;unique;not null" json:"name"`
	FromLyon           bool      `gorm:"default:false" json:"from_lyon"`
	Active             bool      `gorm:"default:true" json:"active"`
	InscriptionEnabled bool      `gorm:"default:false" json:"inscription_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (SchoolExtension) TableName() string {
	return "competition_school_extension"
}

// SchoolType returns the variant school-type bucket this school falls into.
func (s *SchoolExtension) SchoolType() ProductSchoolType {
	if s.SchoolID == CentraleLyonSchoolID {
		return SchoolTypeCentrale
	}
	if s.FromLyon {
		return SchoolTypeFromLyon
	}
	return SchoolTypeOthers
}
