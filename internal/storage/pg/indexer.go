package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Indexer struct {
	db *pgxpool.Pool
}

func NewIndexer(pool *ConnectionPool) *Indexer {
	return &Indexer{db: pool.conn}
}

func (s *Indexer) Save(ctx context.Context, book domain.Book) (uuid.UUID, error) {
	book = withDefaults(book, time.Now().UTC())

	cmd := `
        INSERT INTO books (` + bookColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (id) DO UPDATE SET
            title = EXCLUDED.title,
            author = EXCLUDED.author,
            isbn = EXCLUDED.isbn,
            description = EXCLUDED.description,
            cover_image_url = EXCLUDED.cover_image_url,
            categories = EXCLUDED.categories,
            tags = EXCLUDED.tags,
            average_rating = EXCLUDED.average_rating,
            ratings_count = EXCLUDED.ratings_count
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(ctx, cmd, row(book)...).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapErr("insert book", err)
	}

	return id, nil
}

func (s *Indexer) SaveBulk(ctx context.Context, books []domain.Book) error {
	rows := make([][]interface{}, len(books))
	now := time.Now().UTC()

	for i, b := range books {
		rows[i] = row(withDefaults(b, now))
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"books"},
		[]string{"id", "title", "author", "isbn", "description", "cover_image_url", "categories", "tags", "average_rating", "ratings_count", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return wrapErr(fmt.Sprintf("bulk insert %d books", len(books)), err)
	}
	return nil
}

func withDefaults(b domain.Book, now time.Time) domain.Book {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return b
}

func row(b domain.Book) []interface{} {
	return []interface{}{
		b.ID,
		b.Title,
		b.Author,
		b.ISBN,
		b.Description,
		b.CoverImageURL,
		b.Categories,
		b.Tags,
		b.AverageRating,
		b.RatingsCount,
		b.CreatedAt,
	}
}

var _ catalog.Indexer = (*Indexer)(nil)
