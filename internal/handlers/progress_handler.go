package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"progress-service/internal/service"
)

type ProgressHandler struct {
	Service    *service.ProgressService
	Evaluation *service.EvaluationService
}

func NewProgressHandler(s *service.ProgressService, es *service.EvaluationService) *ProgressHandler {
	return &ProgressHandler{Service: s, Evaluation: es}
}

// StartLesson marks the learner as having entered a lesson.
func (h *ProgressHandler) StartLesson(c *gin.Context) {
	learnerID := c.GetHeader("X-User-ID")
	lessonID := c.Param("lessonId")

	record, err := h.Service.StartLesson(context.Background(), learnerID, lessonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// CompleteLesson processes a completion event. The caller supplies either a
// final score or a typed answer to be evaluated into one.
func (h *ProgressHandler) CompleteLesson(c *gin.Context) {
	learnerID := c.GetHeader("X-User-ID")
	lessonID := c.Param("lessonId")

	var req struct {
		Score           *int   `json:"score"`
		Answer          string `json:"answer"`
		Expected        string `json:"expected"`
		DurationSeconds int    `json:"duration_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "VALIDATION_ERROR",
		})
		return
	}

	score := 0
	switch {
	case req.Score != nil:
		score = *req.Score
	case req.Expected != "":
		verdict, err := h.Evaluation.EvaluateAnswer(context.Background(), learnerID, req.Answer, req.Expected, nil)
		if err != nil {
			respondError(c, err)
			return
		}
		score = int(verdict.Similarity * 100)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Either score or an answer with its expected value is required",
			"code":  "VALIDATION_ERROR",
		})
		return
	}

	result, err := h.Service.CompleteLesson(context.Background(), learnerID, lessonID, score, req.DurationSeconds)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(result.NewAchievements) > 0 {
		c.Set("new_achievements", result.NewAchievements)
	}
	c.JSON(http.StatusOK, result)
}

// ResetLesson is the explicit request to start a lesson over.
func (h *ProgressHandler) ResetLesson(c *gin.Context) {
	learnerID := c.GetHeader("X-User-ID")
	lessonID := c.Param("lessonId")

	record, err := h.Service.ResetLesson(context.Background(), learnerID, lessonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetProgressByLearner lists all progress records for a learner.
func (h *ProgressHandler) GetProgressByLearner(c *gin.Context) {
	learnerID := c.Param("id")

	records, err := h.Service.ListProgress(context.Background(), learnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetStats returns the learner's totals and current streak.
func (h *ProgressHandler) GetStats(c *gin.Context) {
	learnerID := c.Param("id")

	stats, err := h.Service.Stats(context.Background(), learnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
