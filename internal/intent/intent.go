// Package intent maps free-text questions to operation identifiers.
//
// Classification is a fixed pipeline: normalize, conversational token
// matches, trigger containment in rule priority order, then fuzzy similarity
// against every trigger with a strict threshold.
package intent

import (
	"strings"
	"unicode"
)

// ID identifies an operation or a conversational category
type ID string

// Conversational and fallback identifiers
const (
	Greeting ID = "greeting"
	Thanks   ID = "thanks"
	Farewell ID = "farewell"
	Unknown  ID = "unknown"
)

// Method records which pipeline stage produced a match
type Method string

const (
	MethodConversational Method = "conversational"
	MethodContainment    Method = "containment"
	MethodFuzzy          Method = "fuzzy"
	MethodNone           Method = "none"
)

// FuzzyThreshold is the score a fuzzy match must strictly exceed
const FuzzyThreshold = 60

// Rule binds an operation to its trigger phrases
type Rule struct {
	ID       ID
	Triggers []string
}

// Match is the outcome of classifying one query
type Match struct {
	Intent  ID
	Method  Method
	Score   int
	Trigger string
}

type phraseSet struct {
	id      ID
	phrases [][]string
}

var conversational = []phraseSet{
	newPhraseSet(Greeting, "hello", "hi", "hey", "greetings", "namaste"),
	newPhraseSet(Thanks, "thanks", "thank you", "thx", "appreciate it"),
	newPhraseSet(Farewell, "bye", "goodbye"),
}

func newPhraseSet(id ID, phrases ...string) phraseSet {
	set := phraseSet{id: id}
	for _, p := range phrases {
		set.phrases = append(set.phrases, strings.Fields(p))
	}
	return set
}

// Normalize lower-cases and trims a raw query
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Tokens splits on whitespace and trims surrounding punctuation from each token
func Tokens(s string) []string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if t := strings.TrimFunc(f, unicode.IsPunct); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// containsSequence reports whether phrase occurs as contiguous tokens
func containsSequence(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j, p := range phrase {
			if tokens[i+j] != p {
				continue outer
			}
		}
		return true
	}
	return false
}
