package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrTagNotFound is returned when a tag id doesn't resolve inside the family.
	ErrTagNotFound = fmt.Errorf("%w: tag not found", domain.ErrNotFound)
	// ErrTagNameTaken is returned for a duplicate (family, name).
	ErrTagNameTaken = domain.Validationf("a tag with this name already exists")
)

// Tag labels entries; unique by name inside a family.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	FamilyID  uuid.UUID `json:"familyId"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTag validates and returns a tag.
func NewTag(familyID uuid.UUID, name, color string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("tag name is required")
	}
	if len(name) > 50 {
		return nil, domain.Validationf("tag name must be at most 50 characters")
	}
	return &Tag{
		ID:        uuid.New(),
		FamilyID:  familyID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}, nil
}
