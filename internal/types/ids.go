package types

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a 32-char hex identifier. Both stores use string keys so the
// same models migrate cleanly on postgres and sqlite.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
