// file: services/registry_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hyperion/models"
)

// JoinInfo is the self-service payload for entering a sport.
type JoinInfo struct {
	TeamID     *uint32
	Substitute bool
	License    string
}

// TeamInfo is the payload for creating a team.
type TeamInfo struct {
	Name      string
	SportID   uint32
	SchoolID  uint32
	CaptainID uint32
}

// JoinSport moves a (user, sport, edition) from "not participating" to
// "participant (unvalidated)". All checks and the insert run in one
// transaction with the school's sport quota row locked, so two concurrent
// joins cannot both squeeze through one remaining slot.
func JoinSport(
	db *gorm.DB,
	user *models.CompetitionUser,
	school *models.SchoolExtension,
	sport *models.Sport,
	info JoinInfo,
) (*models.CompetitionParticipant, error) {
	var participant *models.CompetitionParticipant
	err := db.Transaction(func(tx *gorm.DB) error {
		if !models.CategoriesCompatible(user.SportCategory, sport.SportCategory) {
			return Forbidden("Sport category does not match user sport category")
		}

		var existing models.CompetitionParticipant
		err := tx.Where("user_id = ? AND sport_id = ? AND edition_id = ?",
			user.UserID, sport.ID, user.EditionID).First(&existing).Error
		if err == nil {
			return Conflict("User already registered for this sport")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		quota, err := LockSportQuota(tx, school.SchoolID, sport.ID, user.EditionID)
		if err != nil {
			return err
		}
		if quota != nil && quota.ParticipantQuota != nil {
			count, err := CountParticipants(tx, school.SchoolID, sport.ID, user.EditionID, false)
			if err != nil {
				return err
			}
			if count >= int64(*quota.ParticipantQuota) {
				return BadRequest("Participant quota reached")
			}
		}

		teamID := info.TeamID
		if sport.TeamSize > 1 {
			if teamID == nil {
				return BadRequest("Sport declared needs to be played in a team")
			}
			var team models.CompetitionTeam
			if err := tx.Preload("Members").First(&team, *teamID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NotFound("Team not found")
				}
				return err
			}
			if team.SportID != sport.ID {
				return BadRequest("Team does not belong to the sport")
			}
			if team.SchoolID != school.SchoolID {
				return Forbidden("Team does not belong to user school")
			}
			var players, substitutes int
			for _, member := range team.Members {
				if member.Substitute {
					substitutes++
				} else {
					players++
				}
			}
			if !info.Substitute && players >= sport.TeamSize {
				return BadRequest("Maximum number of players in the team reached")
			}
			if info.Substitute && sport.SubstituteMax != nil && substitutes >= *sport.SubstituteMax {
				return BadRequest("Maximum number of substitutes in the team reached")
			}
		} else if teamID != nil {
			return BadRequest("Sport declared needs to be played individually")
		} else {
			// Individual sports still get a one-member team so results and
			// podiums have a uniform shape.
			team := models.CompetitionTeam{
				Name:      fmt.Sprintf("user-%d - %s", user.UserID, school.Name),
				EditionID: user.EditionID,
				SchoolID:  school.SchoolID,
				SportID:   sport.ID,
				CaptainID: user.UserID,
			}
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
			teamID = &team.ID
		}

		participant = &models.CompetitionParticipant{
			UserID:     user.UserID,
			SportID:    sport.ID,
			EditionID:  user.EditionID,
			SchoolID:   school.SchoolID,
			TeamID:     teamID,
			Substitute: info.Substitute,
			License:    info.License,
		}
		if err := tx.Create(participant).Error; err != nil {
			return Conflict("User already registered for this sport")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// CreateTeam creates a team for a sport that supports teams, bounded by the
// school's team quota. The caller must be the captain of their own school
// unless admin.
func CreateTeam(db *gorm.DB, editionID uint32, info TeamInfo, callerID uint32, callerSchoolID uint32, callerIsAdmin bool) (*models.CompetitionTeam, error) {
	if !callerIsAdmin && (callerID != info.CaptainID || callerSchoolID != info.SchoolID) {
		return nil, Forbidden("You can only create a team for your own school with yourself as captain")
	}

	var team *models.CompetitionTeam
	err := db.Transaction(func(tx *gorm.DB) error {
		var sport models.Sport
		if err := tx.First(&sport, info.SportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Sport not found")
			}
			return err
		}
		if sport.TeamSize == 1 {
			return BadRequest("Sport does not support teams, only individual participants")
		}

		var existing models.CompetitionTeam
		err := tx.Where("name = ? AND edition_id = ?", info.Name, editionID).First(&existing).Error
		if err == nil {
			return Conflict("Team name already taken")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var captain models.CompetitionUser
		err = tx.Where("user_id = ? AND edition_id = ?", info.CaptainID, editionID).First(&captain).Error
		if err != nil || captain.SchoolID != info.SchoolID {
			return NotFound("Captain user not found")
		}
		if !models.CategoriesCompatible(captain.SportCategory, sport.SportCategory) {
			return BadRequest("Captain sport category is not compatible with this sport")
		}

		quota, err := LockSportQuota(tx, info.SchoolID, info.SportID, editionID)
		if err != nil {
			return err
		}
		if quota != nil && quota.TeamQuota != nil {
			count, err := CountTeams(tx, info.SchoolID, info.SportID, editionID)
			if err != nil {
				return err
			}
			if count >= int64(*quota.TeamQuota) {
				return BadRequest("Team quota reached")
			}
		}

		team = &models.CompetitionTeam{
			Name:      info.Name,
			EditionID: editionID,
			SchoolID:  info.SchoolID,
			SportID:   info.SportID,
			CaptainID: info.CaptainID,
		}
		return tx.Create(team).Error
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// WithdrawFromSport removes the caller's participation. A validated
// competition user is invalidated first: withdrawing removes the basis the
// validation was granted on. Validated purchases are left untouched; money
// already allocated is only released through payment deletion.
func WithdrawFromSport(db *gorm.DB, userID, sportID, editionID uint32) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var participant models.CompetitionParticipant
		err := tx.Where("user_id = ? AND sport_id = ? AND edition_id = ?", userID, sportID, editionID).
			First(&participant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Participant not found")
			}
			return err
		}
		if err := tx.Model(&models.CompetitionUser{}).
			Where("user_id = ? AND edition_id = ? AND validated = ?", userID, editionID, true).
			Update("validated", false).Error; err != nil {
			return err
		}
		return tx.Delete(&participant).Error
	})
}

// DeleteParticipant removes a participant on behalf of an admin or the
// school's BDS. A validated competition user blocks the deletion.
func DeleteParticipant(db *gorm.DB, userID, sportID, editionID uint32, callerSchoolID uint32, callerIsAdmin bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var participant models.CompetitionParticipant
		err := tx.Where("user_id = ? AND sport_id = ? AND edition_id = ?", userID, sportID, editionID).
			First(&participant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Participant not found")
			}
			return err
		}
		if !callerIsAdmin && callerSchoolID != participant.SchoolID {
			return Forbidden("Unauthorized action")
		}
		var user models.CompetitionUser
		if err := tx.Where("user_id = ? AND edition_id = ?", userID, editionID).First(&user).Error; err == nil {
			if user.Validated {
				return BadRequest("Cannot delete a validated participant")
			}
		}
		// Deleting the last member of a team does not remove the team.
		return tx.Delete(&participant).Error
	})
}
