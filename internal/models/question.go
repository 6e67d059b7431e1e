package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Option is one of the four answer letters.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// ParseOption normalizes a submitted letter and rejects anything outside A-D.
func ParseOption(s string) (Option, error) {
	o := Option(strings.ToUpper(strings.TrimSpace(s)))
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return o, nil
	}
	return "", fmt.Errorf("invalid option %q", s)
}

// Question is a row in the questions table. Seq is the 1-based position in the bank and
// lines up with the round the question is played in.
type Question struct {
	ID            uuid.UUID `json:"id"`
	Seq           int       `json:"seq"`
	QuestionText  string    `json:"questionText"`
	OptionA       string    `json:"optionA"`
	OptionB       string    `json:"optionB"`
	OptionC       string    `json:"optionC"`
	OptionD       string    `json:"optionD"`
	CorrectOption Option    `json:"correctOption,omitempty"`
	Explanation   string    `json:"explanation,omitempty"`
}

// Redacted strips the answer key so the question can be shown to teams before scoring.
func (q Question) Redacted() Question {
	q.CorrectOption = ""
	q.Explanation = ""
	return q
}
