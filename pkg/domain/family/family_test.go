package family_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/family"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatorBecomesAdmin(t *testing.T) {
	creator := uuid.New()
	f, err := family.New("  Silva  ", creator)
	require.NoError(t, err)
	assert.Equal(t, "Silva", f.Name)
	require.Len(t, f.Members, 1)
	assert.Equal(t, creator, f.Members[0].UserID)
	assert.Equal(t, f.ID, f.Members[0].FamilyID)
	assert.True(t, f.Members[0].IsAdmin())
}

func TestNew_Validation(t *testing.T) {
	_, err := family.New("", uuid.New())
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = family.New(strings.Repeat("x", 101), uuid.New())
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestErrors_AreForbidden(t *testing.T) {
	assert.True(t, errors.Is(family.ErrNotMember, domain.ErrForbidden))
	assert.True(t, errors.Is(family.ErrNotAdmin, domain.ErrForbidden))
}
