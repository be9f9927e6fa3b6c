package intent

import "strings"

// Classifier resolves queries against an immutable rule table.
// It is safe for concurrent use.
type Classifier struct {
	rules     []Rule
	scorer    Scorer
	threshold int
}

// Option customizes a Classifier
type Option func(*Classifier)

// WithScorer replaces the fuzzy scorer
func WithScorer(s Scorer) Option {
	return func(c *Classifier) {
		c.scorer = s
	}
}

// NewClassifier builds a classifier over rules, which are tried in the given
// priority order. The rules are copied; later changes to the slice are not seen.
func NewClassifier(rules []Rule, opts ...Option) *Classifier {
	c := &Classifier{
		rules:     make([]Rule, 0, len(rules)),
		scorer:    WindowScorer{},
		threshold: FuzzyThreshold,
	}
	for _, r := range rules {
		triggers := make([]string, 0, len(r.Triggers))
		for _, t := range r.Triggers {
			if t = Normalize(t); t != "" {
				triggers = append(triggers, t)
			}
		}
		c.rules = append(c.rules, Rule{ID: r.ID, Triggers: triggers})
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify maps a raw query to an intent
func (c *Classifier) Classify(raw string) Match {
	query := Normalize(raw)
	if query == "" {
		return Match{Intent: Unknown, Method: MethodNone}
	}

	tokens := Tokens(query)
	for _, set := range conversational {
		for _, phrase := range set.phrases {
			if containsSequence(tokens, phrase) {
				return Match{Intent: set.id, Method: MethodConversational, Score: 100, Trigger: strings.Join(phrase, " ")}
			}
		}
	}

	for _, r := range c.rules {
		for _, t := range r.Triggers {
			if strings.Contains(query, t) {
				return Match{Intent: r.ID, Method: MethodContainment, Score: 100, Trigger: t}
			}
		}
	}

	return c.fuzzy(query)
}

// fuzzy keeps the first rule reaching the best score, so ties go to the
// higher-priority rule.
func (c *Classifier) fuzzy(query string) Match {
	best := Match{Intent: Unknown, Method: MethodNone}
	for _, r := range c.rules {
		for _, t := range r.Triggers {
			if s := c.scorer.Score(query, t); s > best.Score {
				best = Match{Intent: r.ID, Method: MethodFuzzy, Score: s, Trigger: t}
			}
		}
	}
	if best.Score > c.threshold {
		return best
	}
	return Match{Intent: Unknown, Method: MethodNone, Score: best.Score}
}
