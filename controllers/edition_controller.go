// file: controllers/edition_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/models"
	"hyperion/services"
	"hyperion/utils"
)

func GetEditions(c *gin.Context) {
	var editions []models.CompetitionEdition
	if err := database.DB.Order("year desc").Find(&editions).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Success(c, "success", editions)
}

func GetActiveEdition(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	utils.Success(c, "success", edition)
}

func CreateEdition(c *gin.Context) {
	var req dto.CreateEditionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	edition := models.CompetitionEdition{
		Name:      req.Name,
		Year:      req.Year,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := database.DB.Create(&edition).Error; err != nil {
		utils.Error(c, http.StatusConflict, "Edition name already exists")
		return
	}
	utils.Created(c, "Edition created", edition)
}

func ActivateEdition(c *gin.Context) {
	editionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid edition id")
		return
	}
	if err := services.ActivateEdition(database.DB, database.RDB, uint32(editionID)); err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}

func SetEditionInscription(c *gin.Context) {
	editionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid edition id")
		return
	}
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	if err := services.SetEditionInscription(database.DB, database.RDB, uint32(editionID), *req.Enabled); err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}

func EditEdition(c *gin.Context) {
	editionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid edition id")
		return
	}
	var req dto.EditEditionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	var edition models.CompetitionEdition
	if err := database.DB.First(&edition, editionID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Edition not found")
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&edition).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusConflict, "Edition name already exists")
			return
		}
		services.InvalidateEditionCache(database.RDB)
	}
	utils.NoContent(c)
}
