// Package family models the household tenant boundary and its membership.
package family

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/google/uuid"
)

// Role is a member's role inside a family.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ErrFamilyNotFound is returned when a family id doesn't resolve.
var ErrFamilyNotFound = fmt.Errorf("%w: family not found", domain.ErrNotFound)

// ErrNotMember is returned when a user acts on a family they don't belong to.
var ErrNotMember = fmt.Errorf("%w: not a member of this family", domain.ErrForbidden)

// ErrNotAdmin is returned when an admin-only operation is attempted by a member.
var ErrNotAdmin = fmt.Errorf("%w: family admin role required", domain.ErrForbidden)

// Family is a household sharing one ledger.
type Family struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Members   []Member  `json:"members,omitempty"`
}

// Member links a user to a family.
type Member struct {
	FamilyID  uuid.UUID `json:"familyId"`
	UserID    uuid.UUID `json:"userId"`
	Role      Role      `json:"role"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// New creates a family with its creator as the only admin member.
func New(name string, creatorID uuid.UUID) (*Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("family name is required")
	}
	if len(name) > 100 {
		return nil, domain.Validationf("family name must be at most 100 characters")
	}
	now := time.Now().UTC()
	f := &Family{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.Members = []Member{{
		FamilyID:  f.ID,
		UserID:    creatorID,
		Role:      RoleAdmin,
		CreatedAt: now,
	}}
	return f, nil
}

// IsAdmin reports whether the member holds the admin role.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleMember
}
