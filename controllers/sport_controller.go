// file: controllers/sport_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/models"
	"hyperion/utils"
)

func GetSports(c *gin.Context) {
	var sports []models.Sport
	if err := database.DB.Order("name").Find(&sports).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Success(c, "success", sports)
}

func CreateSport(c *gin.Context) {
	var req dto.SportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	sport := models.Sport{
		Name:          req.Name,
		TeamSize:      req.TeamSize,
		SubstituteMax: req.SubstituteMax,
		Active:        true,
	}
	if req.SportCategory != nil {
		category := models.SportCategory(*req.SportCategory)
		if category != models.CategoryMasculine && category != models.CategoryFeminine {
			utils.Error(c, http.StatusBadRequest, "Invalid sport category")
			return
		}
		sport.SportCategory = &category
	}
	if req.Active != nil {
		sport.Active = *req.Active
	}
	if err := database.DB.Create(&sport).Error; err != nil {
		utils.Error(c, http.StatusConflict, "Sport name already exists")
		return
	}
	utils.Created(c, "Sport created", sport)
}

func EditSport(c *gin.Context) {
	sportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid sport id")
		return
	}
	var req dto.SportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	var sport models.Sport
	if err := database.DB.First(&sport, sportID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Sport not found")
		return
	}
	updates := map[string]interface{}{
		"name":           req.Name,
		"team_size":      req.TeamSize,
		"substitute_max": req.SubstituteMax,
	}
	if req.SportCategory != nil {
		updates["sport_category"] = *req.SportCategory
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if err := database.DB.Model(&sport).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusConflict, "Sport name already exists")
		return
	}
	utils.NoContent(c)
}

func DeleteSport(c *gin.Context) {
	sportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid sport id")
		return
	}
	var participants int64
	if err := database.DB.Model(&models.CompetitionParticipant{}).
		Where("sport_id = ?", sportID).Count(&participants).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	var teams int64
	if err := database.DB.Model(&models.CompetitionTeam{}).
		Where("sport_id = ?", sportID).Count(&teams).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if participants > 0 || teams > 0 {
		utils.Error(c, http.StatusConflict, "Sport still has participants or teams")
		return
	}
	res := database.DB.Delete(&models.Sport{}, sportID)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Sport not found")
		return
	}
	utils.NoContent(c)
}
