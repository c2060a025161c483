package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseQuantity converts user input into a line item quantity.
func ParseQuantity(raw string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", raw, ErrInvalidQuantity)
	}

	if q < 0 {
		return 0, fmt.Errorf("quantity %d: %w", q, ErrInvalidQuantity)
	}

	return q, nil
}
