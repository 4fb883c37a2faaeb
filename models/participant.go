// file: models/participant.go
package models

import (
	"time"
)

// CompetitionParticipant is one user's entry into one sport for an edition.
// A user may participate in several sports but at most once per sport.
type CompetitionParticipant struct {
	UserID            uint32    `gorm:"primarykey;autoIncrement:false" json:"user_id"`
	SportID           uint32    `gorm:"primarykey;autoIncrement:false" json:"sport_id"`
	EditionID         uint32    `gorm:"primarykey;autoIncrement:false" json:"edition_id"`
	SchoolID          uint32    `gorm:"not null;index" json:"school_id"`
	TeamID            *uint32   `gorm:"index" json:"team_id"`
	Substitute        bool      `gorm:"default:false" json:"substitute"`
	License           string    `gorm:"size:50" json:"license"`
	CertificateFileID *string   `gorm:"size:36" json:"certificate_file_id"`
	IsLicenseValid    bool      `gorm:"default:false" json:"is_license_valid"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (CompetitionParticipant) TableName() string {
	return "competition_participant"
}
