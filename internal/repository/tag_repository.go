package repository

import (
	"context"

	"billetera-ia/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TagRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTagRepository(db *pgxpool.Pool, logger *zap.Logger) *TagRepository {
	return &TagRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a tag. The (user_id, name_tag) unique constraint is the only
// duplicate check; a violation yields ErrDuplicate.
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := squirrel.Insert("tags").
		Columns("id", "name_tag", "user_id", "created_at").
		Values(tag.ID, tag.Name, tag.UserID, tag.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// ListByUser returns the user's tags in creation order.
func (r *TagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Tag, error) {
	query := squirrel.Select("id", "name_tag", "user_id", "created_at").
		From("tags").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
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

	var tags []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.UserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}

	return tags, rows.Err()
}

// ListNamesByUser returns only the tag names, in the same order as ListByUser.
func (r *TagRepository) ListNamesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	tags, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}

func (r *TagRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Tag, error) {
	query := squirrel.Select("id", "name_tag", "user_id", "created_at").
		From("tags").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var t models.Tag
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.Name, &t.UserID, &t.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

// Delete removes a tag owned by userID. Movements referencing it keep
// existing with tag_id set to NULL by the foreign key.
func (r *TagRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("tags").
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
