package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"beetlevault-backend/internal/domains/beetle"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - raw SQL over pgxpool
func NewPostgresRepository(pool *pgxpool.Pool) beetle.Repository {
	return &postgresRepository{pool: pool}
}

const selectWithOwner = `
	SELECT
		b.id, b.owner_id, b.species, b.lineage, b.emerged_at, b.notes,
		b.image_url, b.stage, b.larva_stage, b.gender, b.category,
		b.is_published, b.is_for_sale, b.price,
		COALESCE(b.growth_records, '[]'::jsonb) AS growth_records,
		b.created_at, b.updated_at,
		u.id AS owner_uid, u.email AS owner_email, u.name AS owner_name
	FROM beetles b
	JOIN users u ON b.owner_id = u.id
`

func (r *postgresRepository) Create(ctx context.Context, b *beetle.Beetle) error {
	growthJSON, err := json.Marshal(b.GrowthRecords)
	if err != nil {
		return fmt.Errorf("marshal growth records: %w", err)
	}

	query := `
		INSERT INTO beetles (
			id, owner_id, species, lineage, emerged_at, notes, image_url,
			stage, larva_stage, gender, category,
			is_published, is_for_sale, price, growth_records,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17
		)
	`

	_, err = r.pool.Exec(ctx, query,
		b.ID, b.OwnerID, b.Species, b.Lineage, b.EmergedAt, b.Notes, b.ImageURL,
		b.Stage, b.LarvaStage, b.Gender, b.Category,
		b.IsPublished, b.IsForSale, b.Price, growthJSON,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert beetle: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*beetle.WithOwner, error) {
	query := selectWithOwner + `WHERE b.id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	b, err := scanWithOwner(row)
	if err == pgx.ErrNoRows {
		return nil, beetle.ErrBeetleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get beetle: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) FindPublishedByID(ctx context.Context, id uuid.UUID) (*beetle.WithOwner, error) {
	query := selectWithOwner + `WHERE b.id = $1 AND b.is_published = true`

	row := r.pool.QueryRow(ctx, query, id)
	b, err := scanWithOwner(row)
	if err == pgx.ErrNoRows {
		// Absent and unpublished are deliberately the same answer
		return nil, beetle.ErrBeetleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get published beetle: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]beetle.WithOwner, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM beetles WHERE owner_id = $1`, ownerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := selectWithOwner + `
		WHERE b.owner_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list beetles query failed: %w", err)
	}
	defer rows.Close()

	beetles, err := collectWithOwner(rows)
	if err != nil {
		return nil, 0, err
	}
	return beetles, total, nil
}

func (r *postgresRepository) ListPublic(ctx context.Context, q beetle.PublicListQuery) ([]beetle.WithOwner, int, error) {
	whereClause, args := buildPublicWhereClause(q)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM beetles b WHERE %s`, whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		selectWithOwner, whereClause, orderClause(q.Sort), len(args)+1, len(args)+2)
	args = append(args, q.PageSize, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("public list query failed: %w", err)
	}
	defer rows.Close()

	beetles, err := collectWithOwner(rows)
	if err != nil {
		return nil, 0, err
	}
	return beetles, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *beetle.Beetle) error {
	growthJSON, err := json.Marshal(b.GrowthRecords)
	if err != nil {
		return fmt.Errorf("marshal growth records: %w", err)
	}

	query := `
		UPDATE beetles
		SET species = $1, lineage = $2, emerged_at = $3, notes = $4,
		    image_url = $5, stage = $6, larva_stage = $7, gender = $8,
		    category = $9, is_published = $10, is_for_sale = $11,
		    price = $12, growth_records = $13, updated_at = $14
		WHERE id = $15
	`

	result, err := r.pool.Exec(ctx, query,
		b.Species, b.Lineage, b.EmergedAt, b.Notes,
		b.ImageURL, b.Stage, b.LarvaStage, b.Gender,
		b.Category, b.IsPublished, b.IsForSale,
		b.Price, growthJSON, b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update beetle: %w", err)
	}

	if result.RowsAffected() == 0 {
		return beetle.ErrBeetleNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM beetles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete beetle: %w", err)
	}

	if result.RowsAffected() == 0 {
		return beetle.ErrBeetleNotFound
	}
	return nil
}

// buildPublicWhereClause turns the structured query into a WHERE clause and
// its positional args. The is_published conjunct is unconditional.
func buildPublicWhereClause(q beetle.PublicListQuery) (string, []interface{}) {
	conditions := []string{
		"b.is_published = true",
	}
	args := []interface{}{}
	argIndex := 1

	// Free-text search over species, lineage and notes
	if q.Q != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(b.species LIKE '%%' || $%d || '%%' OR b.lineage LIKE '%%' || $%d || '%%' OR b.notes LIKE '%%' || $%d || '%%')",
			argIndex, argIndex, argIndex))
		args = append(args, q.Q)
		argIndex++
	}

	// Species substring, independent of the free-text search
	if q.Species != "" {
		conditions = append(conditions, fmt.Sprintf("b.species LIKE '%%' || $%d || '%%'", argIndex))
		args = append(args, q.Species)
		argIndex++
	}

	if q.ForSale != nil {
		conditions = append(conditions, fmt.Sprintf("b.is_for_sale = $%d", argIndex))
		args = append(args, *q.ForSale)
		argIndex++
	}

	if q.Stage != "" {
		conditions = append(conditions, fmt.Sprintf("b.stage = $%d", argIndex))
		args = append(args, q.Stage)
		argIndex++
	}

	if q.LarvaStage != "" {
		conditions = append(conditions, fmt.Sprintf("b.larva_stage = $%d", argIndex))
		args = append(args, q.LarvaStage)
		argIndex++
	}

	if q.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("b.gender = $%d", argIndex))
		args = append(args, q.Gender)
		argIndex++
	}

	if q.Category != "" {
		conditions = append(conditions, fmt.Sprintf("b.category = $%d", argIndex))
		args = append(args, q.Category)
		argIndex++
	}

	// Inclusive date bounds, each side optional
	if q.EmergedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("b.emerged_at >= $%d", argIndex))
		args = append(args, *q.EmergedFrom)
		argIndex++
	}

	if q.EmergedTo != nil {
		conditions = append(conditions, fmt.Sprintf("b.emerged_at <= $%d", argIndex))
		args = append(args, *q.EmergedTo)
		argIndex++
	}

	return strings.Join(conditions, " AND "), args
}

func orderClause(sort string) string {
	switch sort {
	case beetle.SortCreatedAtAsc:
		return "b.created_at ASC"
	case beetle.SortSpeciesAsc:
		return "b.species ASC"
	default:
		return "b.created_at DESC"
	}
}

// scanWithOwner maps one joined row to a WithOwner.
func scanWithOwner(row pgx.Row) (*beetle.WithOwner, error) {
	var b beetle.WithOwner
	var growthJSON []byte

	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Species, &b.Lineage, &b.EmergedAt, &b.Notes,
		&b.ImageURL, &b.Stage, &b.LarvaStage, &b.Gender, &b.Category,
		&b.IsPublished, &b.IsForSale, &b.Price,
		&growthJSON,
		&b.CreatedAt, &b.UpdatedAt,
		&b.Owner.ID, &b.Owner.Email, &b.Owner.Name,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(growthJSON, &b.GrowthRecords); err != nil {
		return nil, fmt.Errorf("unmarshal growth records: %w", err)
	}
	return &b, nil
}

func collectWithOwner(rows pgx.Rows) ([]beetle.WithOwner, error) {
	beetles := []beetle.WithOwner{}
	for rows.Next() {
		b, err := scanWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan beetle row: %w", err)
		}
		beetles = append(beetles, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return beetles, nil
}
