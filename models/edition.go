// file: models/edition.go
package models

import (
	"time"
)

// CompetitionEdition is one yearly run of the competition. Exactly one
// edition may be active at a time; InscriptionEnabled gates registrations
// and purchases for that edition.
type CompetitionEdition struct {
	ID                 uint32    `gorm:"primarykey" json:"id"`
	Name               string    `gorm:"size:100;unique;not null" json:"name"`
	Year               int       `gorm:"not null" json:"year"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	Active             bool      `gorm:"default:false;index" json:"active"`
	InscriptionEnabled bool      `gorm:"default:false" json:"inscription_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (CompetitionEdition) TableName() string {
	return "competition_edition"
}
