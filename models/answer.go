package models

import (
	"bytes"
	"encoding/json"
)

// Answer is a yes/no question that may not have been answered yet.
type Answer int8

const (
	Unanswered Answer = iota
	Yes
	No
	// Malformed is only produced when decoding a JSON value that is
	// neither a boolean nor null. It never comes out of the questionnaire.
	Malformed
)

func AnswerOf(b bool) Answer {
	if b {
		return Yes
	}
	return No
}

func (a Answer) IsTrue() bool     { return a == Yes }
func (a Answer) IsFalse() bool    { return a == No }
func (a Answer) IsAnswered() bool { return a == Yes || a == No }

// Bool returns the answer as a nullable boolean.
func (a Answer) Bool() *bool {
	if !a.IsAnswered() {
		return nil
	}
	b := a == Yes
	return &b
}

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	case Malformed:
		return "malformed"
	default:
		return "unanswered"
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON never fails: anything that is not true, false or null
// decodes to Malformed so validation can report it with a proper message.
func (a *Answer) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*a = Yes
	case "false":
		*a = No
	case "null", "":
		*a = Unanswered
	default:
		*a = Malformed
	}
	return nil
}

var _ json.Unmarshaler = (*Answer)(nil)
