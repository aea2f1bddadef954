package archive

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Vrajesh-Sharma/Blog-Agent/config"
	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

func startPostgres(t *testing.T, ctx context.Context) config.PostgresConfig {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "blogagent",
			"POSTGRES_PASSWORD": "blogagent",
			"POSTGRES_DB":       "blogagent",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(1).WithStartupTimeout(60 * time.Second),
	}
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}
	host, err := pg.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get host: %v", err)
	}
	return config.PostgresConfig{
		URL: fmt.Sprintf("postgres://blogagent:blogagent@%s:%s/blogagent?sslmode=disable", host, port.Port()),
	}
}

func TestPostgresArchiveRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	cfg := startPostgres(t, ctx)

	var arch *PostgresArchive
	var err error
	// the container may accept connections slightly after the log line
	for i := 0; i < 6; i++ {
		arch, err = NewPostgres(ctx, cfg)
		if err == nil {
			break
		}
		time.Sleep(300 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer arch.Close()

	now := time.Now().UTC().Truncate(time.Second)
	blogs := []models.BlogSummary{
		{ID: "s1", Topic: "Older Post", Status: "complete", WordCount: 900, CreatedAt: now.Add(-time.Hour)},
		{ID: "s2", Topic: "Newer Post", Status: "complete", WordCount: 1500, CreatedAt: now},
	}
	for _, b := range blogs {
		if err := arch.SaveBlog(ctx, b); err != nil {
			t.Fatalf("save %s: %v", b.ID, err)
		}
	}

	// saving again with the same id updates instead of duplicating
	blogs[1].WordCount = 1600
	if err := arch.SaveBlog(ctx, blogs[1]); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := arch.ListBlogs(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(got))
	}
	if got[0].ID != "s2" || got[1].ID != "s1" {
		t.Fatalf("expected newest first, got %+v", got)
	}
	if got[0].WordCount != 1600 {
		t.Fatalf("upsert not applied: %+v", got[0])
	}
}
