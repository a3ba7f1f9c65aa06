package evaluation

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	exactThreshold    = 0.95
	tolerantThreshold = 0.70
	classCredit       = 0.8
)

// Evaluator compares typed answers against expected answers using an
// accessibility-tolerant similarity function.
type Evaluator struct {
	equivalence *Equivalence
}

// NewEvaluator creates an evaluator. A nil equivalence table falls back to
// the default configuration.
func NewEvaluator(eq *Equivalence) *Evaluator {
	if eq == nil {
		eq = DefaultEquivalence()
	}
	return &Evaluator{equivalence: eq}
}

// Evaluate scores one typed response against the expected answer. It is a
// pure function: a wrong answer is a normal return value, never an error.
func (e *Evaluator) Evaluate(typed, expected string, toleranceEnabled bool) AnswerEvaluation {
	normTyped := Normalize(typed)
	normExpected := Normalize(expected)

	if normTyped == normExpected {
		return AnswerEvaluation{
			Similarity:     1.0,
			Classification: ClassExact,
			IsCorrect:      true,
			Feedback:       "Correct!",
		}
	}

	var score float64
	if toleranceEnabled {
		if e.equivalence.IsReversal(normExpected, normTyped) {
			score = classCredit
		} else {
			score = e.walk(normTyped, normExpected, true)
		}
	} else {
		score = e.walk(normTyped, normExpected, false)
	}

	return e.classify(score, toleranceEnabled, expected)
}

// walk compares the strings position by position up to the shorter length
// and divides the earned credit by the longer length. Equivalence-class
// credit is only awarded when tolerance is on.
func (e *Evaluator) walk(typed, expected string, tolerant bool) float64 {
	tr := []rune(typed)
	er := []rune(expected)

	longer := len(er)
	if len(tr) > longer {
		longer = len(tr)
	}
	if longer == 0 {
		return 0
	}

	shorter := len(er)
	if len(tr) < shorter {
		shorter = len(tr)
	}

	var credit float64
	for i := 0; i < shorter; i++ {
		switch {
		case tr[i] == er[i]:
			credit += 1.0
		case tolerant && e.equivalence.Matches(er[i], tr[i]):
			credit += classCredit
		}
	}
	return credit / float64(longer)
}

func (e *Evaluator) classify(score float64, toleranceEnabled bool, expected string) AnswerEvaluation {
	switch {
	case score >= exactThreshold:
		return AnswerEvaluation{
			Similarity:     score,
			Classification: ClassExact,
			IsCorrect:      true,
			Feedback:       "Correct!",
		}
	case toleranceEnabled && score >= tolerantThreshold:
		return AnswerEvaluation{
			Similarity:     score,
			Classification: ClassTolerant,
			IsCorrect:      true,
			Feedback:       fmt.Sprintf("Accepted! The standard spelling is %q.", expected),
		}
	default:
		return AnswerEvaluation{
			Similarity:     score,
			Classification: ClassIncorrect,
			IsCorrect:      false,
			Feedback:       fmt.Sprintf("Not quite. The expected answer is %q.", expected),
		}
	}
}

// Normalize lowercases the input and strips whitespace and punctuation so
// comparisons only see letters and digits.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
