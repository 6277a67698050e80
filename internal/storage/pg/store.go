package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL catalog store. Text search relies on ILIKE over the four text
// columns, backed by trigram indexes.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	row := s.db.QueryRow(ctx, "SELECT "+bookColumns+" FROM books WHERE id = $1", id)

	b, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("book", id.String())
	}
	if err != nil {
		return nil, wrapErr("get book", err)
	}
	return b, nil
}

func (s *Store) Find(ctx context.Context, q catalog.Query) (*catalog.FindResult, error) {
	where, args := buildWhere(q.Filter)

	limit := q.Limit
	if limit <= 0 {
		limit = pagination.PageMaxSize
	}

	slog.Debug("PostgreSQL find components", "where", where, "order", orderBy(q.Sort), "offset", q.Offset, "limit", limit)

	var total int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM books WHERE "+where, args...).Scan(&total); err != nil {
		return nil, wrapErr("count books", err)
	}

	if total == 0 || int64(q.Offset) >= total {
		return &catalog.FindResult{Books: make([]domain.Book, 0), Total: total}, nil
	}

	searchSQL := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, bookColumns, where, orderBy(q.Sort), len(args)+1, len(args)+2)

	rows, err := s.db.Query(ctx, searchSQL, append(args, limit, max(q.Offset, 0))...)
	if err != nil {
		return nil, wrapErr("find books", err)
	}
	defer rows.Close()

	books := make([]domain.Book, 0, min(int64(limit), total))
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate books", err)
	}

	slog.Info("PG find results fetched", "total_matches", total, "returned_count", len(books))

	return &catalog.FindResult{Books: books, Total: total}, nil
}

func (s *Store) Scan(ctx context.Context, f catalog.Filter, fn func(book domain.Book) error) error {
	where, args := buildWhere(f)
	slog.Debug("PostgreSQL scan components", "where", where)

	rows, err := s.db.Query(ctx, "SELECT "+bookColumns+" FROM books WHERE "+where, args...)
	if err != nil {
		return wrapErr("scan books", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return fmt.Errorf("failed to scan book: %w", err)
		}
		if err := fn(*b); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return wrapErr("scan books", err)
	}
	return nil
}

func (s *Store) ScanCategories(ctx context.Context, fn func(categories []string) error) error {
	rows, err := s.db.Query(ctx, "SELECT categories FROM books")
	if err != nil {
		return wrapErr("scan categories", err)
	}
	defer rows.Close()

	for rows.Next() {
		var categories []string
		if err := rows.Scan(&categories); err != nil {
			return fmt.Errorf("failed to scan categories: %w", err)
		}
		if err := fn(categories); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return wrapErr("scan categories", err)
	}
	return nil
}

func (s *Store) Distinct(ctx context.Context, facet catalog.Facet) ([]string, error) {
	column, ok := facetColumns[facet]
	if !ok {
		return nil, fmt.Errorf("unsupported facet %q", facet)
	}

	rows, err := s.db.Query(ctx, fmt.Sprintf("SELECT DISTINCT unnest(%s) FROM books", column))
	if err != nil {
		return nil, wrapErr("distinct "+column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("distinct "+column, err)
	}
	return values, nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	if err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.Description,
		&b.CoverImageURL,
		&b.Categories,
		&b.Tags,
		&b.AverageRating,
		&b.RatingsCount,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	if b.Categories == nil {
		b.Categories = make([]string, 0)
	}
	if b.Tags == nil {
		b.Tags = make([]string, 0)
	}
	return &b, nil
}

var _ catalog.Store = (*Store)(nil)
