package evaluation

type Classification string

const (
	ClassExact     Classification = "exact"
	ClassTolerant  Classification = "tolerant_match"
	ClassIncorrect Classification = "incorrect"
)

// AnswerEvaluation is the transient verdict for one typed answer. It is
// returned to the caller and never persisted.
type AnswerEvaluation struct {
	Similarity     float64        `json:"similarity"`
	Classification Classification `json:"classification"`
	IsCorrect      bool           `json:"is_correct"`
	Feedback       string         `json:"feedback"`
}

// Equivalence configures the accessibility tolerance: letter pairs that are
// visually confusable and whole words commonly typed reversed. The table is
// fixed configuration, not learned.
type Equivalence struct {
	LetterPairs   map[rune][]rune
	WordReversals map[string]string
}

// DefaultEquivalence returns the standard tolerance table. Letter pairs
// cover the mirror and rotation confusions most common in dyslexic writing.
func DefaultEquivalence() *Equivalence {
	return &Equivalence{
		LetterPairs: map[rune][]rune{
			'b': {'d', 'p'},
			'd': {'b', 'q'},
			'p': {'q', 'b'},
			'q': {'p', 'd'},
			'm': {'w'},
			'w': {'m'},
			'n': {'u'},
			'u': {'n'},
			'g': {'q'},
			's': {'z'},
			'z': {'s'},
		},
		WordReversals: map[string]string{
			"was": "saw",
			"saw": "was",
			"on":  "no",
			"no":  "on",
			"who": "how",
			"how": "who",
			"top": "pot",
			"pot": "top",
			"net": "ten",
			"ten": "net",
		},
	}
}

// Matches reports whether typed is an accepted stand-in for expected.
func (e *Equivalence) Matches(expected, typed rune) bool {
	for _, r := range e.LetterPairs[expected] {
		if r == typed {
			return true
		}
	}
	return false
}

// IsReversal reports whether typed is a configured whole-word reversal of
// expected. Both arguments must already be normalized.
func (e *Equivalence) IsReversal(expected, typed string) bool {
	return e.WordReversals[expected] == typed
}
