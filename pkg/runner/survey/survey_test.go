package survey

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tableflip.dev/mindease/pkg/survey"
)

type scripted []int

func (s *scripted) Choose(_ string, _ []string) (int, error) {
	i := (*s)[0]
	*s = (*s)[1:]
	return i, nil
}

func TestSurveyAsksMissing(t *testing.T) {
	// q1 given; the rest answered with the first choice ("Yes").
	answers := scripted{0, 0, 0, 0}
	var buf bytes.Buffer
	s := Survey{Answers: map[string]int{"q1": 2}, Chooser: &answers, JSON: true, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got survey.Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// q1 2, q2 Yes 2, q3 Yes 0, q4 Yes 2, q5 Yes 0.
	if got.Score != 6 || got.Rating != "Very Good" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestSurveyRequiresEveryAnswer(t *testing.T) {
	s := Survey{Answers: map[string]int{"q1": 2}, Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); !errors.Is(err, survey.ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered, got %v", err)
	}
}

func TestSurveyRendersCard(t *testing.T) {
	var buf bytes.Buffer
	s := Survey{Answers: map[string]int{"q1": 2, "q2": 2, "q3": 2, "q4": 2, "q5": 2}, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Excellent")) {
		t.Fatalf("card missing rating:\n%s", buf.String())
	}
}
