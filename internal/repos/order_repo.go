package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gearrent/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID         string `db:"id"`
	SessionID  string `db:"session_id"`
	RenterName string `db:"renter_name"`
	WhatsApp   string `db:"whatsapp"`
	Campus     string `db:"campus"`
	RentalDate string `db:"rental_date"`
	Duration   int    `db:"duration"`
	Total      int64  `db:"total"`
	Status     string `db:"status"`
	LinesJSON  string `db:"lines_json"`
	CreatedAt  string `db:"created_at"`
}

const orderColumns = `
    id, COALESCE(session_id,'') AS session_id, renter_name, whatsapp,
    COALESCE(campus,'') AS campus, COALESCE(rental_date,'') AS rental_date,
    duration, total, status, lines_json, created_at`

func (o orderRow) toDomain() (domain.Order, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(o.LinesJSON), &lines); err != nil {
		return domain.Order{}, fmt.Errorf("order %s: bad lines: %w", o.ID, err)
	}
	return domain.Order{
		ID:         o.ID,
		SessionID:  o.SessionID,
		CreatedAt:  o.CreatedAt,
		RentalDate: o.RentalDate,
		Duration:   o.Duration,
		TotalPrice: o.Total,
		Lines:      lines,
		Status:     o.Status,
		Renter: domain.UserDetails{
			Name:       o.RenterName,
			WhatsApp:   o.WhatsApp,
			Campus:     o.Campus,
			RentalDate: o.RentalDate,
			Duration:   o.Duration,
		},
	}, nil
}

func toDomainOrders(rows []orderRow) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		o, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Create appends an order to the history.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	  INSERT INTO orders
	    (id, session_id, renter_name, whatsapp, campus, rental_date, duration, total, status, lines_json, created_at)
	  VALUES
	    (?,  ?,          ?,           ?,        ?,      ?,           ?,        ?,     ?,      ?,          ?)
	`, o.ID, o.SessionID, o.Renter.Name, o.Renter.WhatsApp, o.Renter.Campus, o.RentalDate,
		o.Duration, o.TotalPrice, o.Status, string(lines), o.CreatedAt)
	return err
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return row.toDomain()
}

// ListBySession returns the session's history, newest first.
func (r *OrderRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE session_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, sessionID); err != nil {
		return nil, err
	}
	return toDomainOrders(rows)
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit); err != nil {
		return nil, err
	}
	return toDomainOrders(rows)
}
