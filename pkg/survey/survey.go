// Package survey scores the five-question reflection check-in.
package survey

import (
	"errors"
	"fmt"
)

// ErrUnanswered is returned when a required question has no answer.
var ErrUnanswered = errors.New("survey: please answer all required questions before submitting")

// Question is one prompt with its scored choices.
type Question struct {
	ID      string
	Prompt  string
	Choices []Choice
}

// Choice is an answer and the points it contributes.
type Choice struct {
	Label  string
	Points int
}

// Questions returns the check-in in order.
func Questions() []Question {
	yesNo := func(yes, no int) []Choice {
		return []Choice{{Label: "Yes", Points: yes}, {Label: "Sometimes", Points: 1}, {Label: "No", Points: no}}
	}
	return []Question{
		{ID: "q1", Prompt: "Have you been able to notice and name your feelings this week?", Choices: yesNo(2, 0)},
		{ID: "q2", Prompt: "Do you find time to rest without feeling guilty?", Choices: yesNo(2, 0)},
		{ID: "q3", Prompt: "Do worries about the past or future keep you awake?", Choices: yesNo(0, 2)},
		{ID: "q4", Prompt: "Have you talked with someone you trust recently?", Choices: yesNo(2, 0)},
		{ID: "q5", Prompt: "Do you feel overwhelmed by everyday tasks?", Choices: yesNo(0, 2)},
	}
}

// Result is the scored feedback.
type Result struct {
	Score   int    `json:"score"`
	Rating  string `json:"rating"`
	Message string `json:"message"`
}

// Score totals answers, keyed by question id with the chosen points. Every
// question must be answered.
func Score(answers map[string]int) (Result, error) {
	total := 0
	for _, q := range Questions() {
		v, ok := answers[q.ID]
		if !ok {
			return Result{}, fmt.Errorf("%w (missing %s)", ErrUnanswered, q.ID)
		}
		total += v
	}
	r := Rate(total)
	return r, nil
}

// Rate maps a total onto its rating band.
func Rate(total int) Result {
	r := Result{Score: total}
	switch {
	case total <= 3:
		r.Rating = "Good"
		r.Message = "You appear to be feeling emotionally burdened. Please take gentle care of yourself and consider reaching out for support."
	case total <= 7:
		r.Rating = "Very Good"
		r.Message = "You might be carrying moderate stress or worry about your past or future. Consider journaling or talking with someone you trust."
	case total <= 10:
		r.Rating = "Excellent"
		r.Message = "You seem emotionally balanced and in tune with your feelings. Keep nurturing this awareness!"
	default:
		r.Rating = "Good"
		r.Message = "You seem emotionally unbalanced, with good awareness of your feelings."
	}
	return r
}

// Markdown renders the result card.
func (r Result) Markdown() string {
	return fmt.Sprintf("# Your Reflection Rating: %s\n\nScore: **%d**\n\n%s\n", r.Rating, r.Score, r.Message)
}
