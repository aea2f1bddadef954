package archive

import (
	"context"
	"log"

	"github.com/Vrajesh-Sharma/Blog-Agent/config"
	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

// Archive persists finished blog summaries for the history endpoint.
type Archive interface {
	SaveBlog(ctx context.Context, blog models.BlogSummary) error
	ListBlogs(ctx context.Context, limit int) ([]models.BlogSummary, error)
	Close() error
}

var logger = log.New(log.Writer(), "[ARCHIVE] ", log.LstdFlags)

// New picks an archive backend from config: Postgres when reachable, Redis
// as fallback. Returns nil when neither is configured; the service runs
// without history in that case.
func New(ctx context.Context, cfg config.StorageConfig) (Archive, error) {
	if cfg.Postgres.URL != "" || cfg.Postgres.Host != "" {
		pg, err := NewPostgres(ctx, cfg.Postgres)
		if err == nil {
			logger.Printf("using postgres archive")
			return pg, nil
		}
		logger.Printf("postgres unavailable (%v), trying redis", err)
	}
	if cfg.Redis.Host != "" {
		rd, err := NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Printf("using redis archive")
		return rd, nil
	}
	return nil, nil
}
