package domain

import (
	"strconv"
	"strings"
)

const (
	MinSatisfaction = 1
	MaxSatisfaction = 5
)

// Candidate is the raw submission input before validation.
// Satisfaction and Age stay textual here because clients send either strings or numbers.
type Candidate struct {
	Name         string
	Email        string
	Age          string
	Satisfaction string
	Feedback     string
}

// Normalize trims every field.
func (c Candidate) Normalize() Candidate {
	return Candidate{
		Name:         strings.TrimSpace(c.Name),
		Email:        strings.TrimSpace(c.Email),
		Age:          strings.TrimSpace(c.Age),
		Satisfaction: strings.TrimSpace(c.Satisfaction),
		Feedback:     strings.TrimSpace(c.Feedback),
	}
}

// Validate applies the submission rules in order and reports pass/fail.
//  1. name, email and satisfaction are present after trimming
//  2. satisfaction is an integer within [MinSatisfaction, MaxSatisfaction]
//  3. email contains both '@' and '.'
//
// Age and feedback are optional and never checked.
func Validate(c Candidate) bool {
	c = c.Normalize()

	for _, required := range []string{c.Name, c.Email, c.Satisfaction} {
		if required == "" {
			return false
		}
	}

	if _, ok := ParseSatisfaction(c.Satisfaction); !ok {
		return false
	}

	return strings.Contains(c.Email, "@") && strings.Contains(c.Email, ".")
}

// ParseSatisfaction parses a satisfaction score and checks its range.
func ParseSatisfaction(raw string) (int, bool) {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	if score < MinSatisfaction || score > MaxSatisfaction {
		return 0, false
	}
	return score, true
}
