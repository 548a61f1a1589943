package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/inkvault/inkvault/internal/password"
)

// RunGeneratePassword generates a random password with the given options and
// writes it to writer along with its strength score.
func RunGeneratePassword(writer io.Writer, opts password.Options, format string) error {
	generated, err := password.Generate(opts)
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}

	strength := password.Score(generated)

	if format == "json" {
		return outputPasswordJSON(writer, map[string]interface{}{
			"password": generated,
			"score":    strength.Score,
		})
	}

	fmt.Fprintf(writer, "Password: %s\n", generated)
	fmt.Fprintf(writer, "Score: %d/%d\n", strength.Score, password.MaxScore)
	return nil
}

// RunScorePassword scores a password and writes the result to writer,
// including improvement suggestions when the password is weak.
func RunScorePassword(writer io.Writer, candidate, format string) error {
	if candidate == "" {
		return fmt.Errorf("password is required")
	}

	strength := password.Score(candidate)

	if format == "json" {
		return outputPasswordJSON(writer, map[string]interface{}{
			"score":       strength.Score,
			"acceptable":  strength.Acceptable,
			"suggestions": strength.Suggestions,
		})
	}

	fmt.Fprintf(writer, "Score: %d/%d\n", strength.Score, password.MaxScore)
	fmt.Fprintf(writer, "Acceptable: %t\n", strength.Acceptable)
	for _, suggestion := range strength.Suggestions {
		fmt.Fprintf(writer, "  - %s\n", suggestion)
	}
	return nil
}

// outputPasswordJSON writes the result in JSON format for machine consumption.
func outputPasswordJSON(writer io.Writer, result map[string]interface{}) error {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
