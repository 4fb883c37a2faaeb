// file: models/team.go
package models

import (
	"time"
)

// CompetitionTeam is owned by its school; the captain and admins may edit
// it. Name is unique per edition.
type CompetitionTeam struct {
	ID        uint32                   `gorm:"primarykey" json:"id"`
	Name      string                   `gorm:"size:100;not null;uniqueIndex:uniq_team_name_edition" json:"name"`
	EditionID uint32                   `gorm:"not null;uniqueIndex:uniq_team_name_edition" json:"edition_id"`
	SchoolID  uint32                   `gorm:"not null;index" json:"school_id"`
	SportID   uint32                   `gorm:"not null;index" json:"sport_id"`
	CaptainID uint32                   `gorm:"not null" json:"captain_id"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
	Members   []CompetitionParticipant `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (CompetitionTeam) TableName() string {
	return "competition_team"
}
