package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/promemo/models"
	"go.uber.org/zap"
)

// SaveCompany creates or replaces the company profile wholesale.
func (h *MemoHandler) SaveCompany(c *gin.Context) {
	var profile models.CompanyProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.WriteProfile(profile); err != nil {
		h.logger.Error("failed to write company profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save company profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetCompany returns the stored company profile.
func (h *MemoHandler) GetCompany(c *gin.Context) {
	profile := h.store.ReadProfile()
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company profile is not set up"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
