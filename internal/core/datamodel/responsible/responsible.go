package responsible

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Responsible struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (Responsible) TableName() string {
	return "responsibles"
}

// BeforeCreate assigns an id when the caller did not; the postgres schema
// defaults it as well.
func (r *Responsible) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
