package entry

import (
	"context"
	"sort"

	"github.com/amirasaad/famledger/infra/repository/common"
	"github.com/amirasaad/famledger/infra/repository/tag"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	repo "github.com/amirasaad/famledger/pkg/repository/entry"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed income/expense repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *ledger.Entry) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(model(e)).Error; err != nil {
		return common.MapGormErrorToDomain(err)
	}
	return r.link(db, e)
}

func (r *repository) Get(ctx context.Context, kind ledger.Kind, familyID, id uuid.UUID) (*ledger.Entry, error) {
	var rows []Row
	l := layouts[kind]
	if err := r.db.WithContext(ctx).
		Table(l.table).
		Select(SelectRow(kind)).
		Where(l.table+".family_id = ? AND "+l.table+".id = ?", familyID, id).
		Scan(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	if len(rows) == 0 {
		return nil, ledger.ErrEntryNotFound
	}
	out, err := r.withTags(ctx, kind, rows)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (r *repository) List(ctx context.Context, kind ledger.Kind, familyID uuid.UUID, filter dto.EntryFilter) ([]*ledger.Entry, error) {
	l := layouts[kind]
	q := r.db.WithContext(ctx).
		Table(l.table).
		Select(SelectRow(kind)).
		Where(l.table+".family_id = ?", familyID)
	if filter.AccountID != nil {
		q = q.Where(l.table+".account_id = ?", *filter.AccountID)
	}
	if filter.From != nil {
		q = q.Where(l.table+".date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where(l.table+".date <= ?", filter.To.UTC())
	}
	if filter.Recurring != nil {
		q = q.Where(l.table+".is_recurring = ?", *filter.Recurring)
	}
	if filter.TagID != nil {
		q = q.Where(l.table+".id IN (?)",
			r.db.Table(l.join).Select(l.fk).Where("tag_id = ?", *filter.TagID))
	}
	var rows []Row
	if err := q.Order(l.table + ".date DESC, " + l.table + ".created_at DESC").Scan(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	return r.withTags(ctx, kind, rows)
}

func (r *repository) ListAll(ctx context.Context, familyID uuid.UUID, filter dto.EntryFilter) ([]ledger.Entry, error) {
	var out []ledger.Entry
	for _, kind := range []ledger.Kind{ledger.Income, ledger.Expense} {
		entries, err := r.List(ctx, kind, familyID, filter)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *repository) Update(ctx context.Context, e *ledger.Entry) error {
	db := r.db.WithContext(ctx)
	if err := db.Save(model(e)).Error; err != nil {
		return common.MapGormErrorToDomain(err)
	}
	l := layouts[e.Kind]
	if err := db.Exec("DELETE FROM "+l.join+" WHERE "+l.fk+" = ?", e.ID).Error; err != nil {
		return common.MapGormErrorToDomain(err)
	}
	return r.link(db, e)
}

func (r *repository) Delete(ctx context.Context, kind ledger.Kind, familyID, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	l := layouts[kind]
	res := db.Exec("DELETE FROM "+l.table+" WHERE family_id = ? AND id = ?", familyID, id)
	if res.Error != nil {
		return common.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.ErrEntryNotFound
	}
	if err := db.Exec("DELETE FROM "+l.join+" WHERE "+l.fk+" = ?", id).Error; err != nil {
		return common.MapGormErrorToDomain(err)
	}
	return nil
}

func (r *repository) link(db *gorm.DB, e *ledger.Entry) error {
	if len(e.Tags) == 0 {
		return nil
	}
	l := layouts[e.Kind]
	links := make([]map[string]any, 0, len(e.Tags))
	for _, t := range e.Tags {
		links = append(links, map[string]any{l.fk: e.ID, "tag_id": t.ID})
	}
	return common.WrapError(func() error {
		return db.Table(l.join).Create(links).Error
	})
}

// withTags maps rows to entries and attaches their tags in one query.
func (r *repository) withTags(ctx context.Context, kind ledger.Kind, rows []Row) ([]*ledger.Entry, error) {
	out := make([]*ledger.Entry, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	byID := make(map[uuid.UUID]*ledger.Entry, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		e := ToDomain(kind, &rows[i])
		out = append(out, e)
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	l := layouts[kind]
	var links []tagLink
	if err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.*, j."+l.fk+" AS entry_id").
		Joins("JOIN "+l.join+" j ON j.tag_id = tags.id").
		Where("j."+l.fk+" IN ?", ids).
		Order("tags.name").
		Scan(&links).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	for i := range links {
		if e, ok := byID[links[i].EntryID]; ok {
			e.Tags = append(e.Tags, tag.ToDomain(&links[i].Tag))
		}
	}
	return out, nil
}

var _ repo.Repository = (*repository)(nil)
