// Package report aggregates a family's entries over calendar periods and
// exports them as a spreadsheet.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/period"
	"github.com/amirasaad/famledger/pkg/domain/report"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/service/membership"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// AllTime selects every entry regardless of date.
const AllTime = "all"

const (
	defaultTrendCount = 6
	maxTrendCount     = 36

	entriesSheet = "Lançamentos"
	summarySheet = "Resumo"
)

// Service provides read-only reporting over the ledger.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Selection resolves a period name and reference date into a range. A nil
// range means all-time.
func Selection(name string, ref time.Time) (string, *period.Range, error) {
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	if name == AllTime {
		return AllTime, nil, nil
	}
	t, err := period.Parse(name)
	if err != nil {
		return "", nil, err
	}
	r := period.RangeOf(t, ref)
	return string(t), &r, nil
}

// Summary totals the entries of the period containing ref, grouped by tag
// and by day. Transfers are not counted.
func (s *Service) Summary(
	ctx context.Context,
	familyID, userID uuid.UUID,
	periodName string,
	ref time.Time,
) (*report.Summary, error) {
	name, r, err := Selection(periodName, ref)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries(ctx, familyID, userID, r)
	if err != nil {
		return nil, err
	}
	sum := report.Summarize(name, entries, r)
	return &sum, nil
}

// Trend totals the count trailing periods ending with the one containing
// ref, oldest first.
func (s *Service) Trend(
	ctx context.Context,
	familyID, userID uuid.UUID,
	periodName string,
	ref time.Time,
	count int,
) ([]report.TrendPoint, error) {
	if periodName == AllTime {
		return nil, domain.Validationf("trend needs a calendar period")
	}
	t, err := period.Parse(periodName)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		count = defaultTrendCount
	}
	if count < 1 || count > maxTrendCount {
		return nil, domain.Validationf("count must be between 1 and %d", maxTrendCount)
	}
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	ranges := period.Trailing(t, ref, count)
	span := period.Range{Start: ranges[0].Start, End: ranges[len(ranges)-1].End}
	entries, err := s.entries(ctx, familyID, userID, &span)
	if err != nil {
		return nil, err
	}
	return report.Trend(entries, ranges), nil
}

// Export writes an XLSX workbook with every entry of the period, transfers
// included, and a summary sheet.
func (s *Service) Export(
	ctx context.Context,
	familyID, userID uuid.UUID,
	periodName string,
	ref time.Time,
	w io.Writer,
) error {
	log := s.logger.With("context", "Export", "family_id", familyID, "period", periodName)
	name, r, err := Selection(periodName, ref)
	if err != nil {
		return err
	}
	var entries []ledger.Entry
	accountNames := map[uuid.UUID]string{}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		list, err := accounts.List(ctx, familyID)
		if err != nil {
			return err
		}
		for _, a := range list {
			accountNames[a.ID] = a.Name
		}
		entries, err = listEntries(ctx, uow, familyID, r)
		return err
	})
	if err != nil {
		log.Error("Export failed", "error", err)
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := writeEntries(f, entries, accountNames); err != nil {
		return fmt.Errorf("write entries sheet: %w", err)
	}
	if err := writeSummary(f, report.Summarize(name, entries, r)); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		log.Error("Export failed", "error", err)
		return err
	}
	log.Info("Export successful", "entries", len(entries))
	return nil
}

func (s *Service) entries(ctx context.Context, familyID, userID uuid.UUID, r *period.Range) (es []ledger.Entry, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		es, err = listEntries(ctx, uow, familyID, r)
		return err
	})
	return
}

func listEntries(ctx context.Context, uow repository.UnitOfWork, familyID uuid.UUID, r *period.Range) ([]ledger.Entry, error) {
	repo, err := uow.EntryRepository()
	if err != nil {
		return nil, err
	}
	var filter dto.EntryFilter
	if r != nil {
		filter.From, filter.To = &r.Start, &r.End
	}
	return repo.ListAll(ctx, familyID, filter)
}

func writeEntries(f *excelize.File, entries []ledger.Entry, accounts map[uuid.UUID]string) error {
	// NewFile starts with Sheet1; rename it rather than leave it empty.
	if err := f.SetSheetName("Sheet1", entriesSheet); err != nil {
		return err
	}
	headers := []any{"Data", "Tipo", "Conta", "Descrição", "Fonte/Categoria", "Valor", "Tags"}
	if err := f.SetSheetRow(entriesSheet, "A1", &headers); err != nil {
		return err
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		amount, _ := e.Signed().Float64()
		names := make([]string, 0, len(e.Tags))
		for _, t := range e.Tags {
			names = append(names, t.Name)
		}
		row := []any{
			e.Date.Format("2006-01-02"),
			kindLabel(e.Kind),
			accounts[e.AccountID],
			e.Description,
			e.Label,
			amount,
			strings.Join(names, ", "),
		}
		if err := f.SetSheetRow(entriesSheet, cell, &row); err != nil {
			return err
		}
	}
	for col, width := range map[string]float64{"A": 12, "B": 10, "C": 18, "D": 35, "E": 18, "F": 12, "G": 25} {
		if err := f.SetColWidth(entriesSheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, sum report.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	rows := [][]any{
		{"Período", sum.Period},
		{"Entradas", sum.Income.InexactFloat64()},
		{"Saídas", sum.Expense.InexactFloat64()},
		{"Saldo", sum.Net.InexactFloat64()},
	}
	if sum.Range != nil {
		rows = append(rows,
			[]any{"Início", sum.Range.Start.Format("2006-01-02")},
			[]any{"Fim", sum.Range.End.Format("2006-01-02")},
		)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 14)
}

func kindLabel(k ledger.Kind) string {
	if k == ledger.Income {
		return "Entrada"
	}
	return "Saída"
}
