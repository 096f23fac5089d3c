package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal/dashboard"
)

// TopResponsibles is how many groups the dashboard page shows.
const TopResponsibles = 6

type DashboardPage struct {
	api API

	Loading bool
	Err     string
	From    string
	To      string
	Data    *dashboard.Summary
}

func NewDashboardPage(api API) *DashboardPage {
	return &DashboardPage{api: api}
}

// Load fetches the summary. Empty bounds let the server pick the current
// month.
func (p *DashboardPage) Load(ctx context.Context) error {
	p.Loading = true
	p.Err = ""
	defer func() { p.Loading = false }()

	data, err := p.api.Dashboard(ctx, p.From, p.To)
	if err != nil {
		p.Err = ErrorMessage(err, "Failed to load dashboard")
		return err
	}
	p.Data = data
	p.From = data.Range.From
	p.To = data.Range.To
	return nil
}

func (p *DashboardPage) Top() dashboard.ResponsibleTotals {
	if p.Data == nil {
		return nil
	}
	return p.Data.ByResponsible.Top(TopResponsibles)
}

func (p *DashboardPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("\n")

	if p.Err != "" {
		b.WriteString(errorStyle.Render(p.Err))
		b.WriteString("\n")
	}
	if p.Loading {
		b.WriteString(mutedStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	}
	if p.Data == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "Period: %s to %s\n", FormatDateUS(p.Data.Range.From), FormatDateUS(p.Data.Range.To))
	fmt.Fprintf(&b, "Total: %s  Expenses: %d\n\n", FormatUSD(p.Data.Total), p.Data.Count)

	b.WriteString(titleStyle.Render("By responsible"))
	b.WriteString("\n")
	top := p.Top()
	if len(top) == 0 {
		b.WriteString(mutedStyle.Render("No data for this period."))
		b.WriteString("\n")
	} else {
		t := newTable("Responsible", "Amount")
		for _, entry := range top {
			t.Row(entry.Name, FormatUSD(entry.Amount))
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("Recent"))
	b.WriteString("\n")
	if len(p.Data.Recent) == 0 {
		b.WriteString(mutedStyle.Render("No recent expenses."))
	} else {
		t := newTable("Date", "Description", "Responsible", "Amount", "Status")
		for _, e := range p.Data.Recent {
			t.Row(
				FormatDateUS(e.SpentAt),
				e.Description,
				e.ResponsibleName(noResponsible),
				FormatUSD(e.Amount),
				statusCell(e.Status),
			)
		}
		b.WriteString(t.Render())
	}
	b.WriteString("\n")
	return b.String()
}
