package expense

import (
	"time"

	responsibleDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/responsible"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	ID            string          `gorm:"column:id;type:uuid;primaryKey"`
	ResponsibleID *string         `gorm:"column:responsible_id;type:uuid;index"`
	Description   string          `gorm:"column:description;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Status        string          `gorm:"column:status;not null;default:open"`
	SpentAt       Date            `gorm:"column:spent_at;type:date;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`

	Responsible *responsibleDatamodel.Responsible `gorm:"foreignKey:ResponsibleID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

const (
	StatusOpen = "open"
	StatusPaid = "paid"
)
