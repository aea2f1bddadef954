package archive

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/Vrajesh-Sharma/Blog-Agent/config"
	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

// PostgresArchive implements Archive using PostgreSQL.
type PostgresArchive struct {
	db *sql.DB
}

// NewPostgres opens the database and ensures the blogs table exists.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig) (*PostgresArchive, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	pa := &PostgresArchive{db: db}
	if err := pa.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return pa, nil
}

func (a *PostgresArchive) ensureSchema(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS blogs (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    status TEXT NOT NULL,
    word_count BIGINT,
    created_at TIMESTAMPTZ DEFAULT NOW()
);
`)
	return err
}

func (a *PostgresArchive) SaveBlog(ctx context.Context, blog models.BlogSummary) error {
	_, err := a.db.ExecContext(ctx, `
INSERT INTO blogs (id, topic, status, word_count, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
  topic = EXCLUDED.topic,
  status = EXCLUDED.status,
  word_count = EXCLUDED.word_count;
`, blog.ID, blog.Topic, blog.Status, blog.WordCount, blog.CreatedAt)
	return err
}

func (a *PostgresArchive) ListBlogs(ctx context.Context, limit int) ([]models.BlogSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx, `
SELECT id, topic, status, word_count, created_at
FROM blogs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BlogSummary{}
	for rows.Next() {
		var b models.BlogSummary
		if err := rows.Scan(&b.ID, &b.Topic, &b.Status, &b.WordCount, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (a *PostgresArchive) Close() error { return a.db.Close() }
