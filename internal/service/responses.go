package service

import (
	"math/rand"

	"github.com/Dan9191/finance-insights/internal/intent"
)

var responsePools = map[intent.ID][]string{
	intent.Greeting: {
		"Hello! How can I help with your finances today?",
		"Hi there! What financial questions do you have?",
		"Hey! Ready to look at your finances?",
	},
	intent.Thanks: {
		"You're welcome!",
		"No problem!",
		"Happy to help!",
	},
	intent.Farewell: {
		"Bye! If you have any more questions, feel free to ask.",
	},
}

// ResponsePool returns a copy of the canned replies for a conversational intent
func ResponsePool(id intent.ID) []string {
	return append([]string(nil), responsePools[id]...)
}

// Selector picks an index in [0, n)
type Selector interface {
	Pick(n int) int
}

// SelectorFunc adapts a function to Selector
type SelectorFunc func(n int) int

// Pick calls f
func (f SelectorFunc) Pick(n int) int {
	return f(n)
}

// RandomSelector picks uniformly at random
type RandomSelector struct{}

// Pick implements Selector
func (RandomSelector) Pick(n int) int {
	return rand.Intn(n)
}
