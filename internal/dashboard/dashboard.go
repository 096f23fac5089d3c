package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/core/common/money"
	"github.com/frahmantamala/expense-tracker/internal/core/common/query"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

const (
	// UnassignedLabel groups expenses that have no responsible.
	UnassignedLabel = "No responsible"
	RecentLimit     = 8
)

type Range struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Summary aggregates the rows of one range query. Total and Count only cover
// the first expense.MaxListRows rows of the range.
type Summary struct {
	Range         Range              `json:"range"`
	Total         money.Amount       `json:"total"`
	Count         int                `json:"count"`
	ByResponsible ResponsibleTotals  `json:"byResponsible"`
	Recent        []*expense.Expense `json:"recent"`
}

type ExpenseLister interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

type Service struct {
	expenses ExpenseLister
	now      func() time.Time
	logger   *slog.Logger
}

// NewService uses time.Now when now is nil.
func NewService(expenses ExpenseLister, now func() time.Time, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		expenses: expenses,
		now:      now,
		logger:   logger,
	}
}

// ResolveRange fills a missing lower bound with the first day of the current
// month and a missing upper bound with today.
func (s *Service) ResolveRange(from, to string) Range {
	now := s.now()
	if from == "" {
		from = query.FirstDayOfMonth(now)
	}
	if to == "" {
		to = query.Today(now)
	}
	return Range{From: from, To: to}
}

func (s *Service) Summary(ctx context.Context, from, to string) (*Summary, error) {
	rng := s.ResolveRange(from, to)

	rows, err := s.expenses.List(ctx, expense.ListFilter{
		From:  rng.From,
		To:    rng.To,
		Limit: expense.MaxListRows,
	})
	if err != nil {
		s.logger.Error("failed to load dashboard expenses", "error", err, "from", rng.From, "to", rng.To)
		return nil, err
	}

	summary := Summarize(rng, rows)
	if summary.Count == expense.MaxListRows {
		s.logger.Warn("dashboard range hit the row cap, totals are partial", "from", rng.From, "to", rng.To)
	}
	return summary, nil
}

// Summarize expects rows already in listing order.
func Summarize(rng Range, rows []*expense.Expense) *Summary {
	total := decimal.Zero
	byResponsible := ResponsibleTotals{}
	for _, e := range rows {
		total = total.Add(e.Amount.Decimal)
		byResponsible.Add(e.ResponsibleName(UnassignedLabel), e.Amount)
	}

	recent := rows
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	if recent == nil {
		recent = []*expense.Expense{}
	}

	return &Summary{
		Range:         rng,
		Total:         money.New(total),
		Count:         len(rows),
		ByResponsible: byResponsible,
		Recent:        recent,
	}
}
