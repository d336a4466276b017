package controllers

import (
	"path/filepath"
	"strconv"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
)

// UploadMarketingMaterial stores a new material file and record
func UploadMarketingMaterial(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		utils.BadRequest(c, "Name is required", nil)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "No file uploaded", err.Error())
		return
	}

	if err := utils.ValidateMaterialFile(file); err != nil {
		utils.BadRequest(c, "Invalid file", err.Error())
		return
	}

	path, err := utils.SaveUploadedFile(file, "uploads/materials")
	if err != nil {
		utils.LogError("Failed to save marketing material: %v", err)
		utils.InternalServerError(c, "Failed to save file", err.Error())
		return
	}

	material := models.MarketingMaterial{
		Name:         name,
		Description:  c.PostForm("description"),
		FileURL:      path,
		FileType:     utils.FileTypeForExt(filepath.Ext(file.Filename)),
		MaterialType: c.PostForm("material_type"),
		IsActive:     true,
	}
	if err := config.DB.Create(&material).Error; err != nil {
		utils.InternalServerError(c, "Failed to create material", err.Error())
		return
	}

	utils.LogInfo("Marketing material %d uploaded", material.ID)
	utils.Created(c, "Marketing material uploaded", material)
}

// DeactivateMarketingMaterial hides a material from ambassadors
func DeactivateMarketingMaterial(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid material ID", err.Error())
		return
	}

	var material models.MarketingMaterial
	if err := config.DB.First(&material, id).Error; err != nil {
		utils.NotFound(c, "Marketing material not found")
		return
	}

	if err := config.DB.Model(&material).Update("is_active", false).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate material", err.Error())
		return
	}

	utils.Success(c, "Marketing material deactivated", nil)
}
