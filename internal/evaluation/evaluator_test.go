package evaluation

import (
	"math"
	"testing"
)

func TestEvaluateExactMatch(t *testing.T) {
	e := NewEvaluator(nil)

	inputs := []string{"cat", "Hello, world!", "  spaced out  ", "Número"}
	for _, s := range inputs {
		got := e.Evaluate(s, s, false)
		if got.Classification != ClassExact {
			t.Errorf("Evaluate(%q, %q, false) classification = %s, want exact", s, s, got.Classification)
		}
		if got.Similarity != 1.0 {
			t.Errorf("Evaluate(%q, %q, false) similarity = %.2f, want 1.0", s, s, got.Similarity)
		}
		if !got.IsCorrect {
			t.Errorf("Evaluate(%q, %q, false) should be correct", s, s)
		}
	}
}

func TestEvaluateNormalization(t *testing.T) {
	e := NewEvaluator(nil)

	// Case, punctuation and whitespace differences still count as exact.
	got := e.Evaluate("  The CAT. ", "the cat", false)
	if got.Classification != ClassExact || got.Similarity != 1.0 {
		t.Errorf("normalized comparison = (%s, %.2f), want (exact, 1.00)", got.Classification, got.Similarity)
	}
}

func TestEvaluateToleranceDisabledNeverTolerant(t *testing.T) {
	e := NewEvaluator(nil)

	cases := []struct {
		typed    string
		expected string
	}{
		{"dog", "bog"},
		{"was", "saw"},
		{"mat", "wat"},
		{"completely", "different"},
	}

	for _, tc := range cases {
		got := e.Evaluate(tc.typed, tc.expected, false)
		if got.Classification == ClassTolerant {
			t.Errorf("Evaluate(%q, %q, false) = tolerant_match, tolerance is disabled", tc.typed, tc.expected)
		}
	}
}

func TestEvaluateLetterPairTolerance(t *testing.T) {
	e := NewEvaluator(nil)

	cases := []struct {
		name     string
		typed    string
		expected string
		wantSim  float64
		wantCls  Classification
	}{
		// One confusable letter out of three: (1 + 0.8 + 1) / 3.
		{"b for d", "dog", "bog", 0.9333, ClassTolerant},
		{"u for n", "unt", "ant", 0.6666, ClassIncorrect},
		{"two confusions", "bad", "dab", 0.8666, ClassTolerant},
		{"no relation", "xyz", "cat", 0.0, ClassIncorrect},
	}

	epsilon := 0.01
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Evaluate(tc.typed, tc.expected, true)
			if math.Abs(got.Similarity-tc.wantSim) > epsilon {
				t.Errorf("similarity = %.4f, want %.4f", got.Similarity, tc.wantSim)
			}
			if got.Classification != tc.wantCls {
				t.Errorf("classification = %s, want %s", got.Classification, tc.wantCls)
			}
		})
	}
}

func TestEvaluateWholeWordReversal(t *testing.T) {
	e := NewEvaluator(nil)

	got := e.Evaluate("saw", "was", true)
	if got.Classification != ClassTolerant {
		t.Fatalf("reversal classification = %s, want tolerant_match", got.Classification)
	}
	if !got.IsCorrect {
		t.Error("configured reversal should count as correct")
	}

	// The same pair without tolerance falls back to the strict walk.
	strict := e.Evaluate("saw", "was", false)
	if strict.IsCorrect {
		t.Error("reversal must not be accepted with tolerance disabled")
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	e := NewEvaluator(nil)

	// Credit is divided by the longer string, so a truncated answer
	// cannot reach the exact threshold.
	got := e.Evaluate("cat", "caterpillar", true)
	if got.Classification != ClassIncorrect {
		t.Errorf("truncated answer classification = %s, want incorrect", got.Classification)
	}

	empty := e.Evaluate("", "cat", true)
	if empty.Similarity != 0 || empty.IsCorrect {
		t.Errorf("empty answer = (%.2f, %v), want (0, false)", empty.Similarity, empty.IsCorrect)
	}
}

func TestEvaluateTolerantFeedbackNamesExpected(t *testing.T) {
	e := NewEvaluator(nil)

	got := e.Evaluate("bog", "dog", true)
	if got.Classification != ClassTolerant {
		t.Fatalf("classification = %s, want tolerant_match", got.Classification)
	}
	if got.Feedback == "" || got.Feedback == "Correct!" {
		t.Errorf("tolerant feedback should explain the accepted variant, got %q", got.Feedback)
	}
}
