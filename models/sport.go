// file: models/sport.go
package models

import (
	"time"
)

// SportCategory restricts a sport to one category of participants.
type SportCategory string

const (
	CategoryMasculine SportCategory = "masculine"
	CategoryFeminine  SportCategory = "feminine"
)

type Sport struct {
	ID            uint32         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"size:100;unique;not null" json:"name"`
	TeamSize      int            `gorm:"not null;default:1" json:"team_size"`
	SubstituteMax *int           `json:"substitute_max"`
	SportCategory *SportCategory `gorm:"type:varchar(20)" json:"sport_category"`
	Active        bool           `gorm:"default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Sport) TableName() string {
	return "competition_sport"
}

// CategoriesCompatible reports whether two sport categories can be mixed.
// A nil category on either side matches anything.
func CategoriesCompatible(a, b *SportCategory) bool {
	if a == nil || b == nil {
		return true
	}
	return *a == *b
}
