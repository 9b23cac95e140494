package service

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectFeedback(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 20; i++ {
		ok := SelectFeedback(true, rng)
		assert.Equal(t, FeedbackSuccess, ok.Type)
		assert.Contains(t, encouragingMessages, ok.Message)
		assert.Equal(t, successSuggestion, ok.Suggestion)

		miss := SelectFeedback(false, rng)
		assert.Equal(t, FeedbackHelpful, miss.Type)
		assert.Contains(t, helpfulMessages, miss.Message)
		assert.Equal(t, helpfulSuggestion, miss.Suggestion)
	}
}

func TestSelectFeedback_SameSeedSameMessages(t *testing.T) {
	a := rand.New(rand.NewPCG(42, 7))
	b := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 10; i++ {
		assert.Equal(t, SelectFeedback(i%2 == 0, a), SelectFeedback(i%2 == 0, b))
	}
}
