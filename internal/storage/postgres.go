package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"seoengine/internal/domain"
)

// PageArchive keeps a history of crawled pages in PostgreSQL for audit and
// later inspection. It is an optional collaborator: a nil archive means
// crawl results are not archived.
type PageArchive struct {
	db *pgxpool.Pool
}

func NewPageArchive(connStr string) (*PageArchive, error) {
	db, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &PageArchive{db: db}, nil
}

func (a *PageArchive) Ping(ctx context.Context) error {
	return a.db.Ping(ctx)
}

func (a *PageArchive) Close() {
	a.db.Close()
}

// SavePages records one crawl run and its page records within a single
// transaction.
func (a *PageArchive) SavePages(ctx context.Context, seedURL string, pages []domain.PageRecord) error {
	tx, err := a.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var runID int
	err = tx.QueryRow(ctx,
		`INSERT INTO crawl_runs (seed_url, page_count, started_at)
		 VALUES ($1, $2, NOW())
		 RETURNING id`,
		seedURL, len(pages),
	).Scan(&runID)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, p := range pages {
		batch.Queue(
			`INSERT INTO crawled_pages (run_id, url, status, depth, ttfb_ms, load_ms)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			runID, p.URL, p.Status, p.Depth, p.Timing.TTFB, p.Timing.LoadTime)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
