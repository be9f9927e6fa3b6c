package intent

import "testing"

func TestTokenSortSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"savings forecast", "forecast savings", 100},
		{"net wurth", "net worth", 89},
		{"", "net worth", 0},
		{"abc", "xyz", 0},
	}
	for _, tt := range tests {
		if got := TokenSortSimilarity(tt.a, tt.b); got != tt.want {
			t.Errorf("TokenSortSimilarity(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWindowScorerFindsTriggerInsideLongQuery(t *testing.T) {
	whole := TokenSortSimilarity("wut iz my net wurth", "net worth")
	windowed := WindowScorer{}.Score("wut iz my net wurth", "net worth")

	if whole > FuzzyThreshold {
		t.Fatalf("whole-query similarity unexpectedly high: %d", whole)
	}
	if windowed <= FuzzyThreshold {
		t.Fatalf("windowed score %d should clear the threshold", windowed)
	}
}

func TestWindowScorerNeedsEveryTokenToResemble(t *testing.T) {
	tests := []struct {
		query, trigger string
	}{
		{"send money to mom", "money out"},
		{"send money to mom", "spend"},
		{"please pay my net fee", "net worth"},
	}
	for _, tt := range tests {
		if got := (WindowScorer{}).Score(tt.query, tt.trigger); got > FuzzyThreshold {
			t.Errorf("Score(%q, %q) = %d, want at most %d", tt.query, tt.trigger, got, FuzzyThreshold)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("  Hello, world!  what's up? ")
	want := []string{"Hello", "world", "what's", "up"}
	if len(got) != len(want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokens = %v, want %v", got, want)
		}
	}
}
