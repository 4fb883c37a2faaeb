// file: controllers/helpers.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hyperion/database"
	"hyperion/middlewares"
	"hyperion/models"
	"hyperion/services"
	"hyperion/utils"
)

// currentEdition resolves the active edition or writes a 404 and returns
// nil.
func currentEdition(c *gin.Context) *models.CompetitionEdition {
	edition, err := services.ActiveEdition(database.DB, database.RDB)
	if err != nil {
		utils.Error(c, services.HTTPStatus(err), err.Error())
		return nil
	}
	return edition
}

// currentCompetitionUser loads the caller's registration for the edition or
// writes a 403 and returns nil.
func currentCompetitionUser(c *gin.Context, editionID uint32) *models.CompetitionUser {
	claims := middlewares.GetClaims(c)
	if claims == nil {
		utils.Error(c, http.StatusUnauthorized, "Missing auth context")
		return nil
	}
	var user models.CompetitionUser
	err := database.DB.Where("user_id = ? AND edition_id = ?", claims.UserID, editionID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusForbidden, "You must be registered for the competition")
			return nil
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return nil
	}
	return &user
}

// loadSchoolExtension fetches a school row or writes the error response.
func loadSchoolExtension(c *gin.Context, schoolID uint32) *models.SchoolExtension {
	var school models.SchoolExtension
	if err := database.DB.First(&school, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusForbidden, "Your school is not registered for the competition")
			return nil
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return nil
	}
	return &school
}

// serviceError writes a service failure using its mapped status.
func serviceError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal error"
	}
	utils.Error(c, status, msg)
}
