package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrCodeFormat means the previous code does not look like <prefix><digits>.
	ErrCodeFormat = errors.New("malformed sequential code")
	// ErrCodeOverflow means the next number would exceed the configured maximum.
	ErrCodeOverflow = errors.New("sequential code overflow")
)

type CodeConfig struct {
	Prefix    string
	PadLength int
	// MaxNumber bounds the sequence. Zero or less means unbounded; the loaded
	// configuration never carries such a value (see config.Validate).
	MaxNumber int64
}

// ValidateCode checks a manually entered code. Codes outside the prefix are
// accepted as is. Codes inside it must read exactly as NextCode would write
// them, so they cannot derail the sequence.
func ValidateCode(code string, cfg CodeConfig) error {
	if !strings.HasPrefix(code, cfg.Prefix) {
		return nil
	}
	digits := strings.TrimPrefix(code, cfg.Prefix)
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return fmt.Errorf("%w: %q must be %s followed by digits", ErrCodeFormat, code, cfg.Prefix)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 1 {
		return fmt.Errorf("%w: %q is not a valid sequence number", ErrCodeFormat, code)
	}
	if cfg.MaxNumber > 0 && n > cfg.MaxNumber {
		return fmt.Errorf("%w: %q exceeds %d", ErrCodeOverflow, code, cfg.MaxNumber)
	}
	if want := fmt.Sprintf("%s%0*d", cfg.Prefix, cfg.PadLength, n); want != code {
		return fmt.Errorf("%w: %q should be written %q", ErrCodeFormat, code, want)
	}
	return nil
}

// NextCode returns the code following last. A nil last starts the sequence at 1.
// The sequence never wraps: passing MaxNumber yields ErrCodeOverflow.
func NextCode(last *string, cfg CodeConfig) (string, error) {
	var current int64
	if last != nil {
		if !strings.HasPrefix(*last, cfg.Prefix) {
			return "", fmt.Errorf("%w: %q does not start with %q", ErrCodeFormat, *last, cfg.Prefix)
		}
		digits := strings.TrimPrefix(*last, cfg.Prefix)
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			return "", fmt.Errorf("%w: %q has a non numeric suffix", ErrCodeFormat, *last)
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCodeFormat, err)
		}
		current = n
	}

	next := current + 1
	if cfg.MaxNumber > 0 && next > cfg.MaxNumber {
		return "", fmt.Errorf("%w: %s%d exceeds %d", ErrCodeOverflow, cfg.Prefix, next, cfg.MaxNumber)
	}
	return fmt.Sprintf("%s%0*d", cfg.Prefix, cfg.PadLength, next), nil
}
