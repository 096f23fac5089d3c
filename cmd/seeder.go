package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/core/common/query"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample responsibles and expenses for development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return seed(cmd.Context(), db, time.Now(), clearData)
	},
}

type seedExpense struct {
	Responsible string
	Description string
	Amount      string
	Status      string
	DaysAgo     int
}

var (
	seedResponsibles = []string{"Ana", "Bruno", "Carla"}
	seedExpenses     = []seedExpense{
		{"Ana", "Groceries", "182.40", "paid", 12},
		{"Bruno", "Electricity bill", "96.15", "open", 9},
		{"Carla", "Internet", "59.90", "paid", 7},
		{"Ana", "Pharmacy", "34.00", "open", 4},
		{"", "Building fee", "420.00", "open", 2},
		{"Bruno", "Gas refill", "110.00", "open", 1},
	}
)

func seed(ctx context.Context, db *sqlx.DB, now time.Time, clear bool) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if clear {
		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
			return fmt.Errorf("failed to clear expenses: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM responsibles"); err != nil {
			return fmt.Errorf("failed to clear responsibles: %w", err)
		}
		fmt.Println("Cleared existing data")
	}

	ids := make(map[string]string, len(seedResponsibles))
	for _, name := range seedResponsibles {
		var id string
		err := tx.GetContext(ctx, &id, "SELECT id FROM responsibles WHERE name = $1 LIMIT 1", name)
		if err != nil {
			if err := tx.GetContext(ctx, &id, "INSERT INTO responsibles (name) VALUES ($1) RETURNING id", name); err != nil {
				return fmt.Errorf("failed to insert responsible %s: %w", name, err)
			}
			fmt.Println("Seeded responsible:", name)
		}
		ids[name] = id
	}

	for _, e := range seedExpenses {
		var responsibleID *string
		if id, ok := ids[e.Responsible]; ok {
			responsibleID = &id
		}
		spentAt := query.Today(now.AddDate(0, 0, -e.DaysAgo))
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (responsible_id, description, amount, status, spent_at) VALUES ($1, $2, $3, $4, $5)",
			responsibleID, e.Description, e.Amount, e.Status, spentAt,
		); err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	fmt.Printf("Seeded %d expenses\n", len(seedExpenses))
	return nil
}
