package family

import (
	"time"

	"github.com/google/uuid"
)

// Family represents a household record.
type Family struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Members   []Member `gorm:"foreignKey:FamilyID"`
}

// TableName specifies the table name for the Family model.
func (Family) TableName() string {
	return "families"
}

// Member links a user to a family with a role.
type Member struct {
	FamilyID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Role      string    `gorm:"not null;size:20"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Member model.
func (Member) TableName() string {
	return "family_members"
}

// memberRow is a membership joined with its user.
type memberRow struct {
	FamilyID  uuid.UUID
	UserID    uuid.UUID
	Role      string
	Name      string
	Email     string
	CreatedAt time.Time
}
