package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal/responsible"
)

var ErrNameRequired = errors.New("name is required")

// ResponsiblesPage lists responsibles and holds the create form.
type ResponsiblesPage struct {
	api API

	Loading bool
	Saving  bool
	Err     string
	Name    string
	Items   []responsible.Responsible
}

func NewResponsiblesPage(api API) *ResponsiblesPage {
	return &ResponsiblesPage{api: api}
}

func (p *ResponsiblesPage) Reload(ctx context.Context) error {
	p.Loading = true
	p.Err = ""
	defer func() { p.Loading = false }()

	items, err := p.api.ListResponsibles(ctx)
	if err != nil {
		p.Err = ErrorMessage(err, "Failed to load responsibles")
		return err
	}
	p.Items = items
	return nil
}

// Create submits the form and reloads the list on success.
func (p *ResponsiblesPage) Create(ctx context.Context) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		p.Err = ErrNameRequired.Error()
		return ErrNameRequired
	}

	p.Saving = true
	p.Err = ""
	defer func() { p.Saving = false }()

	if _, err := p.api.CreateResponsible(ctx, name); err != nil {
		p.Err = ErrorMessage(err, "Failed to save")
		return err
	}
	p.Name = ""
	return p.Reload(ctx)
}

func (p *ResponsiblesPage) Rename(ctx context.Context, id, name string) error {
	p.Saving = true
	p.Err = ""
	defer func() { p.Saving = false }()

	if _, err := p.api.UpdateResponsible(ctx, id, name); err != nil {
		p.Err = ErrorMessage(err, "Failed to save")
		return err
	}
	return p.Reload(ctx)
}

func (p *ResponsiblesPage) Delete(ctx context.Context, id string) error {
	p.Err = ""
	if err := p.api.DeleteResponsible(ctx, id); err != nil {
		p.Err = ErrorMessage(err, "Failed to delete")
		return err
	}
	return p.Reload(ctx)
}

func (p *ResponsiblesPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Responsibles"))
	b.WriteString("\n")

	if p.Err != "" {
		b.WriteString(errorStyle.Render(p.Err))
		b.WriteString("\n")
	}

	switch {
	case p.Loading:
		b.WriteString(mutedStyle.Render("Loading..."))
	case len(p.Items) == 0:
		b.WriteString(mutedStyle.Render("No responsibles yet."))
	default:
		t := newTable("Name", "Created", "ID")
		for _, r := range p.Items {
			t.Row(r.Name, r.CreatedAt.Local().Format("01/02/2006 15:04"), r.ID)
		}
		b.WriteString(t.Render())
	}
	b.WriteString("\n")
	return b.String()
}
