package archive

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/Vrajesh-Sharma/Blog-Agent/config"
	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

const historyKey = "blogagent:history"

// maximum entries retained in the Redis history list
const historyCap = 500

// RedisArchive implements Archive on a capped Redis list, newest first.
type RedisArchive struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisArchive, error) {
	port := cfg.Port
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisArchive{client: client}, nil
}

func (a *RedisArchive) SaveBlog(ctx context.Context, blog models.BlogSummary) error {
	b, err := json.Marshal(blog)
	if err != nil {
		return err
	}
	pipe := a.client.TxPipeline()
	pipe.LPush(ctx, historyKey, b)
	pipe.LTrim(ctx, historyKey, 0, historyCap-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (a *RedisArchive) ListBlogs(ctx context.Context, limit int) ([]models.BlogSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	items, err := a.client.LRange(ctx, historyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := []models.BlogSummary{}
	for _, item := range items {
		var b models.BlogSummary
		if err := json.Unmarshal([]byte(item), &b); err != nil {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (a *RedisArchive) Close() error { return a.client.Close() }
