package utils

import (
	"fmt"
	"math/rand"
	"strconv"
)

// GenerateOrderNumber creates the 4-digit human-facing order token shown on
// confirmations and receipts. It is a display artifact: collisions are
// tolerated and it must never be used as a lookup key.
func GenerateOrderNumber() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
