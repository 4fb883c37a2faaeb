// file: controllers/product_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hyperion/database"
	"hyperion/dto"
	"hyperion/mappers"
	"hyperion/models"
	"hyperion/services"
	"hyperion/utils"
)

func GetProducts(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	var products []models.CompetitionProduct
	err := database.DB.Preload("Variants").Where("edition_id = ?", edition.ID).
		Order("id").Find(&products).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	resp := make([]dto.ProductResp, 0, len(products))
	for _, p := range products {
		resp = append(resp, mappers.MapProductToResp(p))
	}
	utils.Success(c, "success", resp)
}

// GetAvailableVariants lists the enabled variants the caller is eligible
// to purchase.
func GetAvailableVariants(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
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
	variants, err := services.AvailableVariants(database.DB, user, school, edition.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp := make([]dto.VariantResp, 0, len(variants))
	for _, v := range variants {
		resp = append(resp, mappers.MapVariantToResp(v))
	}
	utils.Success(c, "success", resp)
}

func CreateProduct(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	product := models.CompetitionProduct{
		EditionID:   edition.ID,
		Name:        req.Name,
		Description: req.Description,
		Required:    req.Required,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Created(c, "Product created", mappers.MapProductToResp(product))
}

func EditProduct(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	res := database.DB.Model(&models.CompetitionProduct{}).
		Where("id = ? AND edition_id = ?", productID, edition.ID).
		Updates(map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"required":    req.Required,
		})
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "Product not found")
		return
	}
	utils.NoContent(c)
}

func DeleteProduct(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	hasPurchases, err := services.ProductHasPurchases(database.DB, productID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if hasPurchases {
		utils.Error(c, http.StatusConflict, "Product has purchases")
		return
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).
			Delete(&models.CompetitionProductVariant{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND edition_id = ?", productID, edition.ID).
			Delete(&models.CompetitionProduct{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return services.NotFound("Product not found")
		}
		return nil
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.NoContent(c)
}

func parseVariantTypes(c *gin.Context, schoolType, publicType *string) (*models.ProductSchoolType, *models.ProductPublicType, bool) {
	var st *models.ProductSchoolType
	var pt *models.ProductPublicType
	if schoolType != nil {
		v := models.ProductSchoolType(*schoolType)
		switch v {
		case models.SchoolTypeCentrale, models.SchoolTypeFromLyon, models.SchoolTypeOthers:
			st = &v
		default:
			utils.Error(c, http.StatusBadRequest, "Invalid school type")
			return nil, nil, false
		}
	}
	if publicType != nil {
		v := models.ProductPublicType(*publicType)
		switch v {
		case models.PublicTypeAthlete, models.PublicTypeCameraman, models.PublicTypePompom,
			models.PublicTypeFanfare, models.PublicTypeVolunteer:
			pt = &v
		default:
			utils.Error(c, http.StatusBadRequest, "Invalid public type")
			return nil, nil, false
		}
	}
	return st, pt, true
}

func CreateVariant(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var product models.CompetitionProduct
	err := database.DB.Where("id = ? AND edition_id = ?", productID, edition.ID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	var req dto.VariantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}
	schoolType, publicType, ok := parseVariantTypes(c, req.SchoolType, req.PublicType)
	if !ok {
		return
	}
	variant := models.CompetitionProductVariant{
		ProductID:   product.ID,
		EditionID:   edition.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Enabled:     req.Enabled,
		Unique:      req.Unique,
		SchoolType:  schoolType,
		PublicType:  publicType,
	}
	if err := database.DB.Create(&variant).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.Created(c, "Variant created", mappers.MapVariantToResp(variant))
}

func EditVariant(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	variantID, ok := pathID(c, "variant_id")
	if !ok {
		return
	}
	variant, err := services.LoadVariant(database.DB, variantID, edition.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	var req dto.VariantEditReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid parameters")
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil && *req.Price != variant.Price {
		hasPurchases, err := services.VariantHasPurchases(database.DB, variant.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Database error")
			return
		}
		if hasPurchases {
			utils.Error(c, http.StatusConflict, "Variant has purchases, price cannot change")
			return
		}
		updates["price"] = *req.Price
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.Unique != nil {
		updates["unique"] = *req.Unique
	}
	if req.SchoolType != nil || req.PublicType != nil {
		schoolType, publicType, ok := parseVariantTypes(c, req.SchoolType, req.PublicType)
		if !ok {
			return
		}
		if req.SchoolType != nil {
			updates["school_type"] = schoolType
		}
		if req.PublicType != nil {
			updates["public_type"] = publicType
		}
	}
	if len(updates) > 0 {
		if err := database.DB.Model(variant).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Database error")
			return
		}
	}
	utils.NoContent(c)
}

func DeleteVariant(c *gin.Context) {
	edition := currentEdition(c)
	if edition == nil {
		return
	}
	variantID, ok := pathID(c, "variant_id")
	if !ok {
		return
	}
	variant, err := services.LoadVariant(database.DB, variantID, edition.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	hasPurchases, err := services.VariantHasPurchases(database.DB, variant.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	if hasPurchases {
		utils.Error(c, http.StatusConflict, "Variant has purchases")
		return
	}
	if err := database.DB.Delete(variant).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.NoContent(c)
}
