package pronunciation

import "testing"

func TestScorePerfectMatch(t *testing.T) {
	result := Score("Hello how are you", "hello HOW are YOU")

	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
	if result.Tier != "excellent" {
		t.Errorf("tier = %s, want excellent", result.Tier)
	}
	for _, w := range result.Words {
		if w.Outcome != WordMatch {
			t.Errorf("word %d (%s) outcome = %s, want match", w.Position, w.Expected, w.Outcome)
		}
	}
}

func TestScoreEmptySpoken(t *testing.T) {
	result := Score("", "good morning teacher")

	if result.Score != 0 {
		t.Errorf("score = %d, want 0", result.Score)
	}
	if len(result.Words) != 3 {
		t.Fatalf("word results = %d, want 3", len(result.Words))
	}
	for _, w := range result.Words {
		if w.Outcome != WordMissing {
			t.Errorf("word %q outcome = %s, want missing", w.Expected, w.Outcome)
		}
	}
	if result.Tier != "try_again" {
		t.Errorf("tier = %s, want try_again", result.Tier)
	}
}

func TestScoreAlignment(t *testing.T) {
	cases := []struct {
		name      string
		spoken    string
		expected  string
		wantScore int
		wantTier  string
	}{
		{"one substitution", "good evening teacher", "good morning teacher", 67, "needs_practice"},
		{"trailing missing", "good morning", "good morning teacher", 67, "needs_practice"},
		{"extra words ignored in score", "good morning teacher sir", "good morning teacher", 100, "excellent"},
		{"three of four", "one two three oops", "one two three four", 75, "good"},
		{"nothing right", "completely different words", "good morning teacher", 0, "try_again"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.spoken, tc.expected)
			if got.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tc.wantScore)
			}
			if got.Tier != tc.wantTier {
				t.Errorf("tier = %s, want %s", got.Tier, tc.wantTier)
			}
		})
	}
}

func TestScoreWordOutcomes(t *testing.T) {
	result := Score("good evening", "good morning teacher")

	want := []WordOutcome{WordMatch, WordSubstituted, WordMissing}
	if len(result.Words) != len(want) {
		t.Fatalf("word results = %d, want %d", len(result.Words), len(want))
	}
	for i, outcome := range want {
		if result.Words[i].Outcome != outcome {
			t.Errorf("word %d outcome = %s, want %s", i, result.Words[i].Outcome, outcome)
		}
	}
}

func TestScoreExtraWordsListed(t *testing.T) {
	result := Score("hello there my friend", "hello there")

	extras := 0
	for _, w := range result.Words {
		if w.Outcome == WordExtra {
			extras++
		}
	}
	if extras != 2 {
		t.Errorf("extra words = %d, want 2", extras)
	}
	if result.Score != 100 {
		t.Errorf("score = %d, want 100 (extras do not reduce the match ratio)", result.Score)
	}
}

func TestScorePunctuationIgnored(t *testing.T) {
	result := Score("hello, world!", "Hello world")
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
}
