// Package password implements password strength scoring and random password
// generation for the document encryption flows.
package password

import (
	"unicode"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 6
	// MinAcceptableScore is the threshold at which a password is considered
	// strong enough for custom-mode encryption.
	MinAcceptableScore = 3
)

// Strength is the result of scoring a candidate password.
type Strength struct {
	// Score is an additive strength score between MinScore and MaxScore.
	Score int
	// Acceptable reports whether Score meets MinAcceptableScore.
	Acceptable bool
	// Suggestions lists the unmet criteria, phrased as advice.
	Suggestions []string
}

// Score rates a candidate password. One point each for: at least 8
// characters, an uppercase letter, a lowercase letter, a digit, a symbol, and
// a length of 12 or more. The score is advisory only; any non-empty password
// is usable for encryption regardless of its rating.
func Score(candidate string) Strength {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	length := 0
	for _, r := range candidate {
		length++
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	strength := Strength{}
	var suggestions []string

	if length >= 8 {
		strength.Score++
	} else {
		suggestions = append(suggestions, "use at least 8 characters")
	}
	if hasUpper {
		strength.Score++
	} else {
		suggestions = append(suggestions, "add an uppercase letter")
	}
	if hasLower {
		strength.Score++
	} else {
		suggestions = append(suggestions, "add a lowercase letter")
	}
	if hasDigit {
		strength.Score++
	} else {
		suggestions = append(suggestions, "add a digit")
	}
	if hasSymbol {
		strength.Score++
	} else {
		suggestions = append(suggestions, "add a symbol")
	}
	if length >= 12 {
		strength.Score++
	} else {
		suggestions = append(suggestions, "use 12 or more characters for a bonus point")
	}

	strength.Acceptable = strength.Score >= MinAcceptableScore
	strength.Suggestions = suggestions
	return strength
}
