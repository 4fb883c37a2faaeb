// file: utils/secret.go
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateCheckoutSecret builds the shared secret embedded in a checkout
// session's metadata. Two UUIDs give 256 bits of randomness.
func GenerateCheckoutSecret() string {
	part1 := strings.ReplaceAll(uuid.New().String(), "-", "")
	part2 := strings.ReplaceAll(uuid.New().String(), "-", "")
	return part1 + part2
}
