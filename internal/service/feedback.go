package service

import (
	"math/rand/v2"

	"github.com/lshigami/k12tutor/internal/dto"
)

const (
	FeedbackSuccess = "success"
	FeedbackHelpful = "helpful"
)

var encouragingMessages = []string{
	"Fantastic! You completely understood this concept!",
	"Perfect! Your reasoning is crystal clear!",
	"Well done! Keep up this great learning streak!",
	"Excellent! You've mastered this one!",
}

var helpfulMessages = []string{
	"Don't give up! Let's look at what can be improved.",
	"That's okay, mistakes are part of learning. Let's break it down.",
	"Nice try! Let me help you see the right approach.",
	"This is a common mistake. Let's solve it step by step.",
}

const (
	successSuggestion = "Take on the next question, your study pet will be proud of you!"
	helpfulSuggestion = "Read the explanation carefully, then try a similar question to lock it in."
)

// SelectFeedback picks a canned message for the outcome. It does not look at the question.
func SelectFeedback(correct bool, rng *rand.Rand) dto.Feedback {
	if correct {
		return dto.Feedback{
			Type:       FeedbackSuccess,
			Message:    encouragingMessages[rng.IntN(len(encouragingMessages))],
			Suggestion: successSuggestion,
		}
	}
	return dto.Feedback{
		Type:       FeedbackHelpful,
		Message:    helpfulMessages[rng.IntN(len(helpfulMessages))],
		Suggestion: helpfulSuggestion,
	}
}
