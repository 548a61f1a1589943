package password

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/inkvault/inkvault/internal/errors"
)

// Character classes for generation.
const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?"

	// similarChars are visually ambiguous and excluded on request.
	similarChars = "Il1O0"

	// DefaultLength is used when Options.Length is zero.
	DefaultLength = 16
)

// Generation error definitions.
var (
	ErrInvalidLength  = errors.Wrap(errors.ErrInvalidInput, "password length must be at least 4")
	ErrNoCharacterSet = errors.Wrap(errors.ErrInvalidInput, "at least one character class must be enabled")
)

// Options configures password generation. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	Length         int
	Upper          bool
	Lower          bool
	Digits         bool
	Symbols        bool
	ExcludeSimilar bool
}

// DefaultOptions returns the generation defaults: 16 characters drawing from
// all four classes.
func DefaultOptions() Options {
	return Options{
		Length:  DefaultLength,
		Upper:   true,
		Lower:   true,
		Digits:  true,
		Symbols: true,
	}
}

// Generate produces a random password from the enabled character classes
// using crypto/rand. Every enabled class is guaranteed to appear at least
// once so generated passwords score their maximum under Score.
func Generate(opts Options) (string, error) {
	if opts.Length == 0 {
		opts.Length = DefaultLength
	}
	if opts.Length < 4 {
		return "", ErrInvalidLength
	}

	var classes []string
	if opts.Upper {
		classes = append(classes, filterSimilar(upperChars, opts.ExcludeSimilar))
	}
	if opts.Lower {
		classes = append(classes, filterSimilar(lowerChars, opts.ExcludeSimilar))
	}
	if opts.Digits {
		classes = append(classes, filterSimilar(digitChars, opts.ExcludeSimilar))
	}
	if opts.Symbols {
		classes = append(classes, symbolChars)
	}
	if len(classes) == 0 {
		return "", ErrNoCharacterSet
	}

	full := strings.Join(classes, "")
	result := make([]byte, opts.Length)

	// One character from each enabled class first, the rest from the full
	// set, then shuffle so class positions are not predictable.
	for i, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		result[i] = c
	}
	for i := len(classes); i < opts.Length; i++ {
		c, err := randomChar(full)
		if err != nil {
			return "", err
		}
		result[i] = c
	}
	if err := shuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

func filterSimilar(chars string, exclude bool) string {
	if !exclude {
		return chars
	}
	var b strings.Builder
	for _, r := range chars {
		if !strings.ContainsRune(similarChars, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func randomChar(chars string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
	if err != nil {
		return 0, errors.Wrap(err, "generate random index")
	}
	return chars[n.Int64()], nil
}

// shuffle is a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return errors.Wrap(err, "generate shuffle index")
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
