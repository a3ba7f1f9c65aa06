package service

import (
	"context"
	"errors"
	"fmt"

	"progress-service/internal/evaluation"
	"progress-service/internal/pronunciation"
	"progress-service/internal/stt"
)

// Transcriber is the speech-to-text collaborator. Only the caller of the
// scorer talks to it; the scorer itself receives transcripts.
type Transcriber interface {
	Transcribe(ctx context.Context, audioBase64, language string) (string, error)
}

// EvaluationService wraps the two pure verdict components behind the
// learner's tolerance preference and the transcription collaborator.
type EvaluationService struct {
	Learners    LearnerStore
	transcriber Transcriber
	evaluator   *evaluation.Evaluator
}

func NewEvaluationService(learners LearnerStore, transcriber Transcriber) *EvaluationService {
	return &EvaluationService{
		Learners:    learners,
		transcriber: transcriber,
		evaluator:   evaluation.NewEvaluator(nil),
	}
}

// EvaluateAnswer judges a typed answer under the learner's accessibility
// profile. The tolerance argument, when non-nil, overrides the stored
// profile for this one attempt. A wrong answer is a normal verdict, never
// an error.
func (s *EvaluationService) EvaluateAnswer(ctx context.Context, learnerID, typed, expected string, tolerance *bool) (*evaluation.AnswerEvaluation, error) {
	if expected == "" {
		return nil, fmt.Errorf("%w: expected answer is required", ErrValidation)
	}
	learner, err := s.Learners.FindByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, fmt.Errorf("%w: learner %s", ErrNotFound, learnerID)
	}

	toleranceEnabled := learner.ToleranceEnabled
	if tolerance != nil {
		toleranceEnabled = *tolerance
	}

	result := s.evaluator.Evaluate(typed, expected, toleranceEnabled)
	return &result, nil
}

// EvaluatePronunciation scores a spoken attempt. When a transcript is
// supplied it is used as-is; otherwise the audio goes through the upstream
// speech-to-text collaborator first. A transcription failure surfaces as
// ErrUpstreamTimeout so the caller prompts a re-record instead of storing
// a zero score.
func (s *EvaluationService) EvaluatePronunciation(ctx context.Context, transcript, audioBase64, language, expected string) (*pronunciation.PronunciationResult, error) {
	if expected == "" {
		return nil, fmt.Errorf("%w: expected phrase is required", ErrValidation)
	}
	if transcript == "" && audioBase64 == "" {
		return nil, fmt.Errorf("%w: transcript or audio is required", ErrValidation)
	}

	if transcript == "" {
		if s.transcriber == nil {
			return nil, fmt.Errorf("%w: no transcription service configured", ErrUpstreamTimeout)
		}
		var err error
		transcript, err = s.transcriber.Transcribe(ctx, audioBase64, language)
		if err != nil {
			if errors.Is(err, stt.ErrUnavailable) {
				return nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
			}
			return nil, err
		}
	}

	result := pronunciation.Score(transcript, expected)
	return &result, nil
}

var _ Transcriber = (*stt.Client)(nil)
