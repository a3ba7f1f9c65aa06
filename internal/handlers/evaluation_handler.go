package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"progress-service/internal/service"
)

type EvaluationHandler struct {
	Service  *service.EvaluationService
	Progress *service.ProgressService
}

func NewEvaluationHandler(s *service.EvaluationService, ps *service.ProgressService) *EvaluationHandler {
	return &EvaluationHandler{Service: s, Progress: ps}
}

// EvaluateAnswer judges a typed answer under the learner's accessibility
// profile. Wrong answers come back as 200s with is_correct=false.
func (h *EvaluationHandler) EvaluateAnswer(c *gin.Context) {
	learnerID := c.GetHeader("X-User-ID")

	var req struct {
		Typed     string `json:"typed"`
		Expected  string `json:"expected" binding:"required"`
		Tolerance *bool  `json:"tolerance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "VALIDATION_ERROR",
		})
		return
	}

	verdict, err := h.Service.EvaluateAnswer(context.Background(), learnerID, req.Typed, req.Expected, req.Tolerance)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// EvaluatePronunciation scores a spoken attempt from a transcript or raw
// audio. With a lesson_id the score is also recorded as a completion event
// and the full completion result is returned.
func (h *EvaluationHandler) EvaluatePronunciation(c *gin.Context) {
	learnerID := c.GetHeader("X-User-ID")

	var req struct {
		Transcript      string `json:"transcript"`
		AudioBase64     string `json:"audio_base64"`
		Language        string `json:"language"`
		Expected        string `json:"expected" binding:"required"`
		LessonID        string `json:"lesson_id"`
		DurationSeconds int    `json:"duration_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "VALIDATION_ERROR",
		})
		return
	}

	verdict, err := h.Service.EvaluatePronunciation(context.Background(),
		req.Transcript, req.AudioBase64, req.Language, req.Expected)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.LessonID == "" {
		c.JSON(http.StatusOK, verdict)
		return
	}

	completion, err := h.Progress.CompleteLesson(context.Background(), learnerID, req.LessonID, verdict.Score, req.DurationSeconds)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(completion.NewAchievements) > 0 {
		c.Set("new_achievements", completion.NewAchievements)
	}
	c.JSON(http.StatusOK, gin.H{
		"pronunciation": verdict,
		"completion":    completion,
	})
}
