package responsible

import (
	"time"

	responsibleDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/responsible"
)

type Responsible struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponsible(name string) *Responsible {
	return &Responsible{Name: name}
}

func ToDataModel(r *Responsible) *responsibleDatamodel.Responsible {
	return &responsibleDatamodel.Responsible{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

func FromDataModel(r *responsibleDatamodel.Responsible) *Responsible {
	return &Responsible{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

func FromDataModelSlice(rows []*responsibleDatamodel.Responsible) []*Responsible {
	result := make([]*Responsible, len(rows))
	for i, r := range rows {
		result[i] = FromDataModel(r)
	}
	return result
}
