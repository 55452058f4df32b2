package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"heybanco/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists recurring charges, the monthly spend series,
// savings goals and the reminder log.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FetchCharges implements sources.ChargeSource. Charges come back in
// insertion order so derived expense ids stay stable.
func (r *SQLiteRepository) FetchCharges(ctx context.Context) (core.ChargeList, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT merchant_name, kind, day_of_month, average_amount_cents
		 FROM recurring_charges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query recurring charges: %w", err)
	}
	defer rows.Close()

	var charges core.ChargeList
	for rows.Next() {
		var c core.RecurringCharge
		var kind string
		var cents int64
		if err := rows.Scan(&c.MerchantName, &kind, &c.DayOfMonth, &cents); err != nil {
			return nil, fmt.Errorf("scan recurring charge: %w", err)
		}
		c.Kind = core.ChargeKind(kind)
		c.AverageAmount = core.Money{Cents: cents}.Float()
		charges = append(charges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurring charges: %w", err)
	}

	return charges, nil
}

// AddCharge validates and stores a recurring charge, returning its id.
func (r *SQLiteRepository) AddCharge(ctx context.Context, c core.RecurringCharge) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("validate charge %q: %w", c.MerchantName, err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring_charges (merchant_name, kind, day_of_month, average_amount_cents)
		 VALUES (?, ?, ?, ?)`,
		c.MerchantName, string(c.Kind), c.DayOfMonth, core.MoneyFromFloat(c.AverageAmount).Cents)
	if err != nil {
		return "", fmt.Errorf("insert recurring charge: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Recurring charge saved",
		"id", id,
		"merchant", c.MerchantName,
		"day", c.DayOfMonth,
		"amount_cents", core.MoneyFromFloat(c.AverageAmount).Cents)

	return strconv.FormatInt(id, 10), nil
}

// ReplaceCharges swaps the stored charge set for the given one inside a
// single transaction, preserving the list order.
func (r *SQLiteRepository) ReplaceCharges(ctx context.Context, charges core.ChargeList) error {
	if err := charges.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recurring_charges`); err != nil {
		return fmt.Errorf("clear recurring charges: %w", err)
	}
	for _, c := range charges {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recurring_charges (merchant_name, kind, day_of_month, average_amount_cents)
			 VALUES (?, ?, ?, ?)`,
			c.MerchantName, string(c.Kind), c.DayOfMonth, core.MoneyFromFloat(c.AverageAmount).Cents); err != nil {
			return fmt.Errorf("insert charge %q: %w", c.MerchantName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Recurring charges replaced", "count", len(charges))
	return nil
}

// MonthlySpend implements sources.SpendHistoryReader.
func (r *SQLiteRepository) MonthlySpend(ctx context.Context) ([]core.MonthSpend, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT month, amount_cents FROM monthly_spend ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("query monthly spend: %w", err)
	}
	defer rows.Close()

	var series []core.MonthSpend
	for rows.Next() {
		var month int
		var cents int64
		if err := rows.Scan(&month, &cents); err != nil {
			return nil, fmt.Errorf("scan monthly spend: %w", err)
		}
		series = append(series, core.MonthSpend{
			Month:  month,
			Amount: core.Money{Cents: cents},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly spend: %w", err)
	}

	return series, nil
}

// SetMonthlySpend upserts the spend amount for a calendar month (1-12).
func (r *SQLiteRepository) SetMonthlySpend(ctx context.Context, month int, amount core.Money) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO monthly_spend (month, amount_cents) VALUES (?, ?)
		 ON CONFLICT (month) DO UPDATE SET amount_cents = excluded.amount_cents`,
		month, amount.Cents)
	if err != nil {
		return fmt.Errorf("upsert monthly spend: %w", err)
	}
	return nil
}

// ListGoals implements sources.GoalLister.
func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, description, starting_amount_cents, change_percentage
		 FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		var g core.Goal
		var cents int64
		if err := rows.Scan(&g.Name, &g.Description, &cents, &g.ChangePercentage); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.StartingAmount = core.Money{Cents: cents}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}

	return goals, nil
}

// AddGoal stores a savings goal.
func (r *SQLiteRepository) AddGoal(ctx context.Context, g core.Goal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (name, description, starting_amount_cents, change_percentage)
		 VALUES (?, ?, ?, ?)`,
		g.Name, g.Description, g.StartingAmount.Cents, g.ChangePercentage)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

// RecordReminder logs that a reminder was sent for a merchant on a given
// date (YYYY-MM-DD). Repeat deliveries for the same merchant, due day and
// date are ignored; the second return value reports whether a new row was
// written.
func (r *SQLiteRepository) RecordReminder(ctx context.Context, merchant string, dueDay int, amount int64, remindedOn string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO reminder_log (merchant_name, due_day, amount, reminded_on)
		 VALUES (?, ?, ?, ?)`,
		merchant, dueDay, amount, remindedOn)
	if err != nil {
		return false, fmt.Errorf("insert reminder log: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// RemindersOn returns the merchants already reminded on a given date.
func (r *SQLiteRepository) RemindersOn(ctx context.Context, remindedOn string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT merchant_name FROM reminder_log WHERE reminded_on = ? ORDER BY id`,
		remindedOn)
	if err != nil {
		return nil, fmt.Errorf("query reminder log: %w", err)
	}
	defer rows.Close()

	var merchants []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan reminder log: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminder log: %w", err)
	}

	return merchants, nil
}
