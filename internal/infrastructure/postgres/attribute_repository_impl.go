package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	"github.com/oksasatya/recipe-share-api/internal/domain/repository"
)

// AttributeRepository serves both tags and ingredients; the table and join
// table names are fixed at construction time, never user input.
type AttributeRepository struct {
	pool       *pgxpool.Pool
	table      string
	joinTable  string
	joinColumn string
}

func NewTagRepository(pool *pgxpool.Pool) *AttributeRepository {
	return &AttributeRepository{pool: pool, table: "tags", joinTable: "recipe_tags", joinColumn: "tag_id"}
}

func NewIngredientRepository(pool *pgxpool.Pool) *AttributeRepository {
	return &AttributeRepository{pool: pool, table: "ingredients", joinTable: "recipe_ingredients", joinColumn: "ingredient_id"}
}

func (r *AttributeRepository) Create(ctx context.Context, a *entity.Attribute) error {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, user_id)
		VALUES ($1, $2)
		RETURNING id
	`, r.table), a.Name, a.UserID)

	return mapError(row.Scan(&a.ID))
}

func (r *AttributeRepository) List(ctx context.Context, userID int64, assignedOnly bool) ([]entity.Attribute, error) {
	// The assigned check matches recipes of any owner; only the outer filter
	// is scoped to the requesting user. EXISTS keeps each row unique no
	// matter how many recipes reference it.
	sql := fmt.Sprintf(`
		SELECT a.id, a.name, a.user_id
		FROM %s a
		WHERE a.user_id = $1
	`, r.table)
	if assignedOnly {
		sql += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s j WHERE j.%s = a.id
		)`, r.joinTable, r.joinColumn)
	}
	sql += ` ORDER BY a.name`

	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attrs := make([]entity.Attribute, 0)
	for rows.Next() {
		a := entity.Attribute{}
		if err := rows.Scan(&a.ID, &a.Name, &a.UserID); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

func (r *AttributeRepository) AllExist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int64
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT count(DISTINCT id) FROM %s WHERE id = ANY($1)
	`, r.table), ids).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == int64(len(uniqueIDs(ids))), nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ repository.AttributeRepository = (*AttributeRepository)(nil)
