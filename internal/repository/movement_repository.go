package repository

import (
	"context"

	"billetera-ia/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var movementColumns = []string{"id", "amount", "description", "type", "user_id", "tag_id", "created_at", "updated_at"}

type MovementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMovementRepository(db *pgxpool.Pool, logger *zap.Logger) *MovementRepository {
	return &MovementRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MovementRepository) Create(ctx context.Context, m *models.Movement) error {
	query := squirrel.Insert("movements").
		Columns(movementColumns...).
		Values(m.ID, m.Amount, m.Description, string(m.Type), m.UserID, m.TagID, m.CreatedAt, m.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// ListByUser returns one page of the user's movements, newest first.
func (r *MovementRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Movement, error) {
	query := squirrel.Select(movementColumns...).
		From("movements").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.Movement
	for rows.Next() {
		var m models.Movement
		var movementType string
		if err := rows.Scan(
			&m.ID, &m.Amount, &m.Description, &movementType, &m.UserID, &m.TagID, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.Type = models.MovementType(movementType)
		movements = append(movements, &m)
	}

	return movements, rows.Err()
}

func (r *MovementRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("movements").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *MovementRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("movements").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
