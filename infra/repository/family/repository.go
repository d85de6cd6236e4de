package family

import (
	"context"

	"github.com/amirasaad/famledger/infra/repository/common"
	"github.com/amirasaad/famledger/pkg/domain/family"
	repo "github.com/amirasaad/famledger/pkg/repository/family"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed family repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *family.Family) error {
	m := &Family{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt}
	for _, mem := range f.Members {
		m.Members = append(m.Members, Member{
			FamilyID:  f.ID,
			UserID:    mem.UserID,
			Role:      string(mem.Role),
			CreatedAt: mem.CreatedAt,
		})
	}
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	})
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*family.Family, error) {
	var m Family
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, common.NotFoundAs(err, family.ErrFamilyNotFound)
	}
	members, err := r.members(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	f := toDomain(&m)
	f.Members = members[id]
	return f, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*family.Family, error) {
	var rows []Family
	err := r.db.WithContext(ctx).
		Joins("JOIN family_members ON family_members.family_id = families.id").
		Where("family_members.user_id = ?", userID).
		Order("families.name").
		Find(&rows).Error
	if err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, f := range rows {
		ids = append(ids, f.ID)
	}
	members, err := r.members(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*family.Family, 0, len(rows))
	for i := range rows {
		f := toDomain(&rows[i])
		f.Members = members[f.ID]
		out = append(out, f)
	}
	return out, nil
}

func (r *repository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	res := r.db.WithContext(ctx).Model(&Family{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return common.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return family.ErrFamilyNotFound
	}
	return nil
}

func (r *repository) GetMember(ctx context.Context, familyID, userID uuid.UUID) (*family.Member, error) {
	var row memberRow
	res := r.db.WithContext(ctx).
		Table("family_members").
		Select("family_members.family_id, family_members.user_id, family_members.role, family_members.created_at, users.name, users.email").
		Joins("JOIN users ON users.id = family_members.user_id").
		Where("family_members.family_id = ? AND family_members.user_id = ?", familyID, userID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, common.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, family.ErrNotMember
	}
	return memberToDomain(row), nil
}

func (r *repository) AddMember(ctx context.Context, m *family.Member) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Member{
			FamilyID:  m.FamilyID,
			UserID:    m.UserID,
			Role:      string(m.Role),
			CreatedAt: m.CreatedAt,
		}).Error
	})
}

func (r *repository) members(ctx context.Context, familyIDs []uuid.UUID) (map[uuid.UUID][]family.Member, error) {
	out := make(map[uuid.UUID][]family.Member, len(familyIDs))
	if len(familyIDs) == 0 {
		return out, nil
	}
	var rows []memberRow
	err := r.db.WithContext(ctx).
		Table("family_members").
		Select("family_members.family_id, family_members.user_id, family_members.role, family_members.created_at, users.name, users.email").
		Joins("JOIN users ON users.id = family_members.user_id").
		Where("family_members.family_id IN ?", familyIDs).
		Order("family_members.created_at, users.name").
		Scan(&rows).Error
	if err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	for _, row := range rows {
		out[row.FamilyID] = append(out[row.FamilyID], *memberToDomain(row))
	}
	return out, nil
}

func toDomain(m *Family) *family.Family {
	return &family.Family{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func memberToDomain(row memberRow) *family.Member {
	return &family.Member{
		FamilyID:  row.FamilyID,
		UserID:    row.UserID,
		Role:      family.Role(row.Role),
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
