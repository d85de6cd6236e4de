package dto

// FamilyCreate is the body of POST /families.
type FamilyCreate struct {
	Name string `json:"name" validate:"required,max=100"`
}

// FamilyUpdate is the body of PATCH /families/{familyId}.
type FamilyUpdate struct {
	Name string `json:"name" validate:"required,max=100"`
}

// MemberCreate is the body of POST /families/{familyId}/members.
type MemberCreate struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role,omitempty" validate:"omitempty,oneof=admin member"`
}
