package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"progress-service/internal/service"
)

type AchievementHandler struct {
	Service *service.ProgressService
}

func NewAchievementHandler(s *service.ProgressService) *AchievementHandler {
	return &AchievementHandler{Service: s}
}

// ListDefinitions returns the badge catalogue from the rule table.
func (h *AchievementHandler) ListDefinitions(c *gin.Context) {
	var defs []gin.H
	for _, rule := range h.Service.BadgeRules() {
		defs = append(defs, gin.H{
			"badge_code":  rule.Code,
			"badge_name":  rule.Name,
			"description": rule.Description,
		})
	}
	c.JSON(http.StatusOK, defs)
}

// GetBadgesByLearner lists the badges a learner has earned.
func (h *AchievementHandler) GetBadgesByLearner(c *gin.Context) {
	learnerID := c.Param("id")

	badges, err := h.Service.ListBadges(context.Background(), learnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badges)
}
