package family_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/family"
	familysvc "github.com/amirasaad/famledger/pkg/service/family"
	"github.com/amirasaad/famledger/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFamilyMakesCreatorAdmin(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := familysvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "erin")
	ctx := context.Background()

	f, err := svc.CreateFamily(ctx, u.ID, "  Silva  ")
	require.NoError(t, err)
	assert.Equal(t, "Silva", f.Name)
	require.Len(t, f.Members, 1)
	assert.Equal(t, family.RoleAdmin, f.Members[0].Role)
	assert.Equal(t, u.ID, f.Members[0].UserID)

	list, err := svc.ListFamilies(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.ID, list[0].ID)
}

func TestGetFamilyRequiresMembership(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := familysvc.New(uow, testutils.DiscardLogger())
	owner := testutils.CreateUser(t, uow, "owner")
	outsider := testutils.CreateUser(t, uow, "outsider")
	f := testutils.CreateFamily(t, uow, owner.ID)
	ctx := context.Background()

	_, err := svc.GetFamily(ctx, f.ID, outsider.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	// An unknown family looks exactly like one the caller doesn't belong to.
	_, err = svc.GetFamily(ctx, uuid.New(), owner.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	got, err := svc.GetFamily(ctx, f.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
}

func TestRenameFamilyIsAdminOnly(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := familysvc.New(uow, testutils.DiscardLogger())
	admin := testutils.CreateUser(t, uow, "admin")
	member := testutils.CreateUser(t, uow, "member")
	f := testutils.CreateFamily(t, uow, admin.ID)
	testutils.AddMember(t, uow, f.ID, member.ID)
	ctx := context.Background()

	_, err := svc.RenameFamily(ctx, f.ID, member.ID, "Nope")
	assert.True(t, errors.Is(err, family.ErrNotAdmin))

	_, err = svc.RenameFamily(ctx, f.ID, admin.ID, " ")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	got, err := svc.RenameFamily(ctx, f.ID, admin.ID, "Santos")
	require.NoError(t, err)
	assert.Equal(t, "Santos", got.Name)
}

func TestAddMember(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := familysvc.New(uow, testutils.DiscardLogger())
	admin := testutils.CreateUser(t, uow, "admin")
	other := testutils.CreateUser(t, uow, "other")
	f := testutils.CreateFamily(t, uow, admin.ID)
	ctx := context.Background()

	m, err := svc.AddMember(ctx, f.ID, admin.ID, other.Email, "")
	require.NoError(t, err)
	assert.Equal(t, family.RoleMember, m.Role)

	_, err = svc.AddMember(ctx, f.ID, admin.ID, other.Email, family.RoleMember)
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists))

	_, err = svc.AddMember(ctx, f.ID, admin.ID, "nobody@example.com", family.RoleMember)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	got, err := svc.GetFamily(ctx, f.ID, other.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, 2)
}
