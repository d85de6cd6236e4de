package tag

import (
	"time"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
)

// Tag represents a family tag record.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FamilyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tags_family_name"`
	Name      string    `gorm:"not null;size:50;uniqueIndex:idx_tags_family_name"`
	Color     string    `gorm:"size:20"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Tag model.
func (Tag) TableName() string {
	return "tags"
}

// ToDomain maps the record to a ledger tag.
func ToDomain(m *Tag) ledger.Tag {
	return ledger.Tag{ID: m.ID, FamilyID: m.FamilyID, Name: m.Name, Color: m.Color, CreatedAt: m.CreatedAt}
}
