package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `id, title, kind, genre, year, rating, duration, description, image, director, artist, imdb_id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, in NewItem) (Item, error) {
	query := `
	INSERT INTO content_items (title, kind, genre, year, rating, duration, description, image, director, artist, imdb_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + itemColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	item, err := scanItem(r.db.QueryRow(timeoutCtx, query,
		in.Title, string(in.Kind), in.Genre, in.Year, in.Rating, in.Duration,
		in.Description, in.Image, in.Director, in.Artist, in.IMDbID,
	))
	if err != nil {
		return Item{}, fmt.Errorf("insert content: %w", err)
	}
	return item, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Item, error) {
	query := `SELECT ` + itemColumns + ` FROM content_items WHERE id = $1 LIMIT 1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	item, err := scanItem(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM content_items ORDER BY id`)
}

func (r *PostgresRepo) ListByKind(ctx context.Context, kind Kind) ([]Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM content_items WHERE kind = $1 ORDER BY id`, string(kind))
}

func (r *PostgresRepo) Search(ctx context.Context, query string) ([]Item, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return r.query(ctx, `SELECT `+itemColumns+` FROM content_items
	WHERE title ILIKE $1 OR description ILIKE $1 OR genre ILIKE $1
	ORDER BY id`, pattern)
}

func (r *PostgresRepo) query(ctx context.Context, sql string, args ...any) ([]Item, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (Item, error) {
	var (
		item Item
		kind string
	)
	err := row.Scan(
		&item.ID, &item.Title, &kind, &item.Genre, &item.Year, &item.Rating,
		&item.Duration, &item.Description, &item.Image,
		&item.Director, &item.Artist, &item.IMDbID,
	)
	if err != nil {
		return Item{}, err
	}
	item.Kind = Kind(kind)
	return item, nil
}
