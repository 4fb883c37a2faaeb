// file: controllers/purchase_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/mappers"
	"hyperion/services"
	"hyperion/utils"
)

func listPurchases(c *gin.Context, userID, editionID uint32) {
	purchases, err := services.LoadPurchases(database.DB, userID, editionID)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp := make([]dto.PurchaseResp, 0, len(purchases))
	for _, p := range purchases {
		resp = append(resp, mappers.MapPurchaseToResp(p))
	}
	utils.Success(c, "success", resp)
}

func GetMyPurchases(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	listPurchases(c, user.UserID, edition.ID)
}

func GetUserPurchases(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	listPurchases(c, userID, edition.ID)
}

func CreatePurchase(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	if !edition.InscriptionEnabled {
		utils.Error(c, http.StatusForbidden, "Inscriptions are closed")
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	school := loadSchoolExtension(c, user.SchoolID)
	if school == nil {
		return
	}
	var req dto.PurchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	variant, err := services.LoadVariant(database.DB, req.ProductVariantID, edition.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	purchase, err := services.CreatePurchase(database.DB, user, school, variant, req.Quantity)
	if err != nil {
		serviceError(c, err)
		return
	}
	purchase.ProductVariant = variant
	utils.Created(c, "Purchase recorded", mappers.MapPurchaseToResp(*purchase))
}

func DeletePurchase(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	user := currentCompetitionUser(c, edition.ID)
	if user == nil {
		return
	}
	variantID, ok := pathID(c, "variant_id")
	if !ok {
		return
	}
	if err := services.DeletePurchase(database.DB, user.UserID, variantID, edition.ID); err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}

// DeleteUserPurchase is the admin path for removing another user's
// unvalidated purchase.
func DeleteUserPurchase(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	variantID, ok := pathID(c, "variant_id")
	if !ok {
		return
	}
	if err := services.DeletePurchase(database.DB, userID, variantID, edition.ID); err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}
