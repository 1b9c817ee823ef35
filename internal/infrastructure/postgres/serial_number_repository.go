package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.SerialNumberRepository = (*SerialNumberRepo)(nil)

const serialColumns = `id, product_id, serial_number, status, movement_id, created_at, updated_at`

// SerialNumberRepo números de serie sobre PostgreSQL.
type SerialNumberRepo struct {
	q Querier
}

// NewSerialNumberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerialNumberRepository(q Querier) *SerialNumberRepo {
	return &SerialNumberRepo{q: q}
}

// CreateBatch inserta las series en un solo pgx.Batch. Un serial repetido devuelve ConflictError.
func (r *SerialNumberRepo) CreateBatch(ctx context.Context, serials []*entity.SerialNumber) error {
	if len(serials) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, s := range serials {
		batch.Queue(`INSERT INTO serial_numbers (`+serialColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, s.ProductID, s.Serial, string(s.Status), nullable(s.MovementID), s.CreatedAt, s.UpdatedAt)
	}
	br, ok := r.q.(batchSender)
	if !ok {
		for _, s := range serials {
			if err := r.insert(ctx, s); err != nil {
				return err
			}
		}
		return nil
	}
	res := br.SendBatch(ctx, batch)
	defer res.Close()
	for _, s := range serials {
		if _, err := res.Exec(); err != nil {
			if mapped := mapWriteError(err, "número de serie", "serial", s.Serial); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert serial number: %w", err)
		}
	}
	return nil
}

// batchSender lo cumplen *pgxpool.Pool y pgx.Tx.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func (r *SerialNumberRepo) insert(ctx context.Context, s *entity.SerialNumber) error {
	_, err := r.q.Exec(ctx, `INSERT INTO serial_numbers (`+serialColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ProductID, s.Serial, string(s.Status), nullable(s.MovementID), s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if mapped := mapWriteError(err, "número de serie", "serial", s.Serial); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert serial number: %w", err)
	}
	return nil
}

// GetBySerial obtiene una serie por su código.
func (r *SerialNumberRepo) GetBySerial(ctx context.Context, serial string) (*entity.SerialNumber, error) {
	s, err := scanSerial(r.q.QueryRow(ctx, `SELECT `+serialColumns+` FROM serial_numbers WHERE serial_number = $1`, serial))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial number: %w", err)
	}
	return s, nil
}

// ListByProduct series del producto; status vacío = todas.
func (r *SerialNumberRepo) ListByProduct(ctx context.Context, productID string, status entity.SerialStatus) ([]*entity.SerialNumber, error) {
	query := `SELECT ` + serialColumns + ` FROM serial_numbers WHERE product_id = $1`
	args := []any{productID}
	if status != "" {
		args = append(args, string(status))
		query += " AND status = $2"
	}
	query += " ORDER BY created_at, serial_number"
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list serial numbers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SerialNumber, 0)
	for rows.Next() {
		s, err := scanSerial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan serial number: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la serie.
func (r *SerialNumberRepo) UpdateStatus(ctx context.Context, serial string, status entity.SerialStatus, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE serial_numbers SET status = $2, updated_at = $3 WHERE serial_number = $1`,
		serial, string(status), at)
	if err != nil {
		return fmt.Errorf("update serial status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("número de serie", serial)
	}
	return nil
}

func scanSerial(row pgx.Row) (*entity.SerialNumber, error) {
	var s entity.SerialNumber
	var status string
	var movementID *string
	if err := row.Scan(&s.ID, &s.ProductID, &s.Serial, &status, &movementID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.SerialStatus(status)
	s.MovementID = deref(movementID)
	return &s, nil
}
