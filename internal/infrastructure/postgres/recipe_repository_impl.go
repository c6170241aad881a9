package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	"github.com/oksasatya/recipe-share-api/internal/domain/repository"
)

type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

func (r *RecipeRepository) Create(ctx context.Context, rec *entity.Recipe, tagIDs, ingredientIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO recipes (title, price, instruction, time_minutes, image, user_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id, created_at, updated_at
	`, rec.Title, rec.Price.String(), rec.Instruction, rec.TimeMinutes, rec.Image, rec.UserID)
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return mapError(err)
	}

	if err := insertAssociations(ctx, tx, "recipe_tags", "tag_id", rec.ID, tagIDs); err != nil {
		return err
	}
	if err := insertAssociations(ctx, tx, "recipe_ingredients", "ingredient_id", rec.ID, ingredientIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	loaded, err := r.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	*rec = *loaded
	return nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*entity.Recipe, error) {
	rec := &entity.Recipe{}
	var price string
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, price::text, instruction, time_minutes,
		       COALESCE(image, ''), user_id, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`, id)
	if err := row.Scan(&rec.ID, &rec.Title, &price, &rec.Instruction, &rec.TimeMinutes,
		&rec.Image, &rec.UserID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := scanPrice(price, &rec.Price); err != nil {
		return nil, err
	}

	recipes := []entity.Recipe{*rec}
	if err := r.loadAssociations(ctx, recipes); err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

func (r *RecipeRepository) List(ctx context.Context, userID int64, tagIDs, ingredientIDs []int64) ([]entity.Recipe, error) {
	sql := `
		SELECT id, title, price::text, instruction, time_minutes,
		       COALESCE(image, ''), user_id, created_at, updated_at
		FROM recipes r
		WHERE user_id = $1`
	args := []any{userID}
	// EXISTS keeps a recipe unique even when it matches several ids in the
	// set; each filter is an OR within its set, the two sets AND together.
	if len(tagIDs) > 0 {
		args = append(args, tagIDs)
		sql += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = r.id AND rt.tag_id = ANY($%d)
		)`, len(args))
	}
	if len(ingredientIDs) > 0 {
		args = append(args, ingredientIDs)
		sql += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = r.id AND ri.ingredient_id = ANY($%d)
		)`, len(args))
	}
	sql += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make([]entity.Recipe, 0)
	for rows.Next() {
		rec := entity.Recipe{}
		var price string
		if err := rows.Scan(&rec.ID, &rec.Title, &price, &rec.Instruction, &rec.TimeMinutes,
			&rec.Image, &rec.UserID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		if err := scanPrice(price, &rec.Price); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadAssociations(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepository) Update(ctx context.Context, rec *entity.Recipe) error {
	rec.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE recipes
		SET title = $1, price = $2, instruction = $3, time_minutes = $4, updated_at = $5
		WHERE id = $6
	`, rec.Title, rec.Price.String(), rec.Instruction, rec.TimeMinutes, rec.UpdatedAt, rec.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	return r.replaceAssociations(ctx, "recipe_tags", "tag_id", recipeID, tagIDs)
}

func (r *RecipeRepository) SetIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error {
	return r.replaceAssociations(ctx, "recipe_ingredients", "ingredient_id", recipeID, ingredientIDs)
}

func (r *RecipeRepository) UpdateImage(ctx context.Context, recipeID int64, image string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE recipes SET image = NULLIF($1, ''), updated_at = now() WHERE id = $2
	`, image, recipeID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) replaceAssociations(ctx context.Context, table, column string, recipeID int64, ids []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE recipe_id = $1`, table), recipeID); err != nil {
		return err
	}
	if err := insertAssociations(ctx, tx, table, column, recipeID, ids); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertAssociations(ctx context.Context, tx pgx.Tx, table, column string, recipeID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (recipe_id, %s)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, table, column), recipeID, ids)
	return err
}

// loadAssociations fills Tags and Ingredients for every recipe in one query
// per association table.
func (r *RecipeRepository) loadAssociations(ctx context.Context, recipes []entity.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	index := make(map[int64]*entity.Recipe, len(recipes))
	ids := make([]int64, 0, len(recipes))
	for i := range recipes {
		recipes[i].Tags = make([]entity.Attribute, 0)
		recipes[i].Ingredients = make([]entity.Attribute, 0)
		index[recipes[i].ID] = &recipes[i]
		ids = append(ids, recipes[i].ID)
	}

	load := func(sql string, assign func(rec *entity.Recipe, a entity.Attribute)) error {
		rows, err := r.pool.Query(ctx, sql, ids)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var recipeID int64
			a := entity.Attribute{}
			if err := rows.Scan(&recipeID, &a.ID, &a.Name, &a.UserID); err != nil {
				return err
			}
			if rec, ok := index[recipeID]; ok {
				assign(rec, a)
			}
		}
		return rows.Err()
	}

	if err := load(`
		SELECT rt.recipe_id, t.id, t.name, t.user_id
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY t.id
	`, func(rec *entity.Recipe, a entity.Attribute) { rec.Tags = append(rec.Tags, a) }); err != nil {
		return err
	}
	return load(`
		SELECT ri.recipe_id, i.id, i.name, i.user_id
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY i.id
	`, func(rec *entity.Recipe, a entity.Attribute) { rec.Ingredients = append(rec.Ingredients, a) })
}

func scanPrice(raw string, dst *entity.Price) error {
	p, err := entity.ParsePrice(raw)
	if err != nil {
		return fmt.Errorf("scan price %q: %w", raw, err)
	}
	*dst = p
	return nil
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
