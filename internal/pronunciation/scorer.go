package pronunciation

import (
	"math"
	"strings"
	"unicode"
)

type WordOutcome string

const (
	WordMatch       WordOutcome = "match"
	WordSubstituted WordOutcome = "substituted"
	WordMissing     WordOutcome = "missing"
	WordExtra       WordOutcome = "extra"
)

// WordResult is the per-word verdict of one alignment position.
type WordResult struct {
	Expected string      `json:"expected,omitempty"`
	Spoken   string      `json:"spoken,omitempty"`
	Position int         `json:"position"`
	Outcome  WordOutcome `json:"outcome"`
}

// PronunciationResult is the transient verdict for one spoken attempt.
type PronunciationResult struct {
	Score    int          `json:"score"`
	Words    []WordResult `json:"words"`
	Tier     string       `json:"tier"`
	Feedback string       `json:"feedback"`
}

// Score aligns a transcript against the expected phrase word by word.
// The transcript comes from the upstream speech-to-text collaborator;
// this package never sees audio. An empty transcript scores 0 with every
// expected word marked missing, which is a normal result, not an error.
func Score(spoken, expected string) PronunciationResult {
	spokenWords := tokenize(spoken)
	expectedWords := tokenize(expected)

	var words []WordResult
	matches := 0

	for i, ew := range expectedWords {
		if i >= len(spokenWords) {
			words = append(words, WordResult{Expected: ew, Position: i, Outcome: WordMissing})
			continue
		}
		sw := spokenWords[i]
		if strings.EqualFold(ew, sw) {
			matches++
			words = append(words, WordResult{Expected: ew, Spoken: sw, Position: i, Outcome: WordMatch})
		} else {
			words = append(words, WordResult{Expected: ew, Spoken: sw, Position: i, Outcome: WordSubstituted})
		}
	}

	for i := len(expectedWords); i < len(spokenWords); i++ {
		words = append(words, WordResult{Spoken: spokenWords[i], Position: i, Outcome: WordExtra})
	}

	score := 0
	if len(expectedWords) > 0 {
		score = int(math.Round(float64(matches) / float64(len(expectedWords)) * 100))
	}

	tier, feedback := feedbackFor(score)
	return PronunciationResult{
		Score:    score,
		Words:    words,
		Tier:     tier,
		Feedback: feedback,
	}
}

func feedbackFor(score int) (string, string) {
	switch {
	case score >= 90:
		return "excellent", "Excellent pronunciation! You sound very natural."
	case score >= 70:
		return "good", "Great job! Just a few words to polish, keep practising."
	case score >= 50:
		return "needs_practice", "Good effort! Try listening to the phrase again and repeating slowly."
	default:
		return "try_again", "Keep going! Listen to the correct pronunciation and try once more."
	}
}

// tokenize lowercases the phrase, strips punctuation and splits on spaces.
func tokenize(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	return strings.Fields(cleaned)
}
