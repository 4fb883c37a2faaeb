// file: controllers/team_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/mappers"
	"hyperion/middlewares"
	"hyperion/models"
	"hyperion/services"
	"hyperion/utils"
)

func GetTeams(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	query := database.DB.Preload("Members").Where("edition_id = ?", edition.ID)
	if sport := c.Query("sport_id"); sport != "" {
		query = query.Where("sport_id = ?", sport)
	}
	if school := c.Query("school_id"); school != "" {
		query = query.Where("school_id = ?", school)
	}
	var teams []models.CompetitionTeam
	if err := query.Find(&teams).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	resp := make([]dto.TeamResp, 0, len(teams))
	for _, t := range teams {
		resp = append(resp, mappers.MapTeamToResp(t))
	}
	utils.Success(c, "success", resp)
}

func GetTeam(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var team models.CompetitionTeam
	err := database.DB.Preload("Members").
		Where("id = ? AND edition_id = ?", teamID, edition.ID).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Team not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Success(c, "success", mappers.MapTeamToResp(team))
}

func CreateTeam(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	claims := middlewares.GetClaims(c)
	if claims == nil {
		utils.Error(c, http.StatusUnauthorized, "Missing auth context")
		return
	}
	var req dto.CreateTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	team, err := services.CreateTeam(database.DB, edition.ID, services.TeamInfo{
		Name:      req.Name,
		SportID:   req.SportID,
		SchoolID:  req.SchoolID,
		CaptainID: req.CaptainID,
	}, claims.UserID, claims.SchoolID, middlewares.IsAdmin(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Created(c, "Team created", mappers.MapTeamToResp(*team))
}

func EditTeam(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middlewares.GetClaims(c)
	if claims == nil {
		utils.Error(c, http.StatusUnauthorized, "Missing auth context")
		return
	}
	var team models.CompetitionTeam
	err := database.DB.Where("id = ? AND edition_id = ?", teamID, edition.ID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Team not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if claims.UserID != team.CaptainID && !middlewares.IsAdmin(c) {
		utils.Error(c, http.StatusForbidden, "Only the captain can edit the team")
		return
	}
	var req dto.EditTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.CaptainID != nil {
		// The new captain must already be a member of the team.
		var member models.CompetitionParticipant
		err := database.DB.Where("user_id = ? AND sport_id = ? AND edition_id = ? AND team_id = ?",
			*req.CaptainID, team.SportID, edition.ID, team.ID).First(&member).Error
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "New captain is not a member of the team")
			return
		}
		updates["captain_id"] = *req.CaptainID
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&team).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusConflict, "Team name already exists")
			return
		}
	}
	utils.NoContent(c)
}

// DeleteTeam removes an empty team. Teams with members must shed them
// through withdrawals first.
func DeleteTeam(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middlewares.GetClaims(c)
	if claims == nil {
		utils.Error(c, http.StatusUnauthorized, "Missing auth context")
		return
	}
	var team models.CompetitionTeam
	err := database.DB.Where("id = ? AND edition_id = ?", teamID, edition.ID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Team not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if claims.UserID != team.CaptainID && !middlewares.IsAdmin(c) {
		utils.Error(c, http.StatusForbidden, "Only the captain can delete the team")
		return
	}
	var members int64
	if err := database.DB.Model(&models.CompetitionParticipant{}).
		Where("team_id = ?", team.ID).Count(&members).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if members > 0 {
		utils.Error(c, http.StatusConflict, "Team still has members")
		return
	}
	if err := database.DB.Delete(&team).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.NoContent(c)
}
