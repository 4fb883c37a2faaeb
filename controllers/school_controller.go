// file: controllers/school_controller.go
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

func GetSchoolExtensions(c *gin.Context) {
	var schools []models.SchoolExtension
	if err := database.DB.Order("name").Find(&schools).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Success(c, "success", schools)
}

func GetSchoolExtension(c *gin.Context) {
	schoolID, err := strconv.Atoi(c.Param("school_id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid school id")
		return
	}
	var school models.SchoolExtension
	if err := database.DB.First(&school, schoolID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "School not found")
		return
	}
	utils.Success(c, "success", school)
}

func CreateSchoolExtension(c *gin.Context) {
	var req dto.SchoolExtensionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	school := models.SchoolExtension{
		SchoolID:           req.SchoolID,
		Name:               req.Name,
		FromLyon:           req.FromLyon,
		Active:             req.Active,
		InscriptionEnabled: req.InscriptionEnabled,
	}
	if err := database.DB.Create(&school).Error; err != nil {
		utils.Error(c, http.StatusConflict, "School already registered")
		return
	}
	utils.Created(c, "School extension created", school)
}

func EditSchoolExtension(c *gin.Context) {
	schoolID, err := strconv.Atoi(c.Param("school_id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid school id")
		return
	}
	var req dto.SchoolExtensionEditReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	var school models.SchoolExtension
	if err := database.DB.First(&school, schoolID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "School not found")
		return
	}
	updates := map[string]interface{}{}
	if req.FromLyon != nil {
		updates["from_lyon"] = *req.FromLyon
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.InscriptionEnabled != nil {
		updates["inscription_enabled"] = *req.InscriptionEnabled
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&school).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Database error")
			return
		}
	}
	utils.NoContent(c)
}

func DeleteSchoolExtension(c *gin.Context) {
	schoolID, err := strconv.Atoi(c.Param("school_id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid school id")
		return
	}
	var count int64
	if err := database.DB.Model(&models.CompetitionUser{}).
		Where("school_id = ?", schoolID).Count(&count).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.Error(c, http.StatusConflict, "School still has registered competition users")
		return
	}
	res := database.DB.Delete(&models.SchoolExtension{}, schoolID)
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "School not found")
		return
	}
	utils.NoContent(c)
}
