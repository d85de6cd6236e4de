package dto

// TagCreate is the body of POST /families/{familyId}/tags.
type TagCreate struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color,omitempty" validate:"max=20"`
}
