package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var _ RegionRepository = (*SQLRegionRepository)(nil)

// SQLRegionRepository handles database operations for regions and their feeds
type SQLRegionRepository struct {
	db *DB
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(db *DB) *SQLRegionRepository {
	return &SQLRegionRepository{db: db}
}

// UpsertRegion inserts or updates a region and replaces its feed list
func (r *SQLRegionRepository) UpsertRegion(ctx context.Context, region Region) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO regions (id, name, country, lat, lng)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			country = excluded.country,
			lat = excluded.lat,
			lng = excluded.lng,
			updated_at = CURRENT_TIMESTAMP
	`, region.ID, region.Name, region.Country, region.Lat, region.Lng)
	if err != nil {
		return fmt.Errorf("failed to upsert region: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM region_feeds WHERE region_id = ?`, region.ID); err != nil {
		return fmt.Errorf("failed to clear region feeds: %w", err)
	}

	for position, feed := range region.Feeds {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO region_feeds (region_id, position, url, category)
			VALUES (?, ?, ?, ?)
		`, region.ID, position, feed.URL, feed.Category)
		if err != nil {
			return fmt.Errorf("failed to insert region feed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit region: %w", err)
	}

	return nil
}

// GetRegion retrieves a region with its ordered feed list
func (r *SQLRegionRepository) GetRegion(ctx context.Context, regionID string) (*Region, error) {
	var region Region
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, country, lat, lng, created_at, updated_at
		FROM regions
		WHERE id = ?
	`, regionID).Scan(
		&region.ID, &region.Name, &region.Country, &region.Lat, &region.Lng,
		&region.CreatedAt, &region.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get region: %w", err)
	}

	feeds, err := r.getFeeds(ctx, regionID)
	if err != nil {
		return nil, err
	}
	region.Feeds = feeds

	return &region, nil
}

// ListRegions returns all regions ordered by country and name
func (r *SQLRegionRepository) ListRegions(ctx context.Context) ([]Region, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, country, lat, lng, created_at, updated_at
		FROM regions
		ORDER BY country, name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	var regions []Region
	for rows.Next() {
		var region Region
		err := rows.Scan(
			&region.ID, &region.Name, &region.Country, &region.Lat, &region.Lng,
			&region.CreatedAt, &region.UpdatedAt,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan region row: %w", err)
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating region rows: %w", err)
	}
	// The pool holds a single connection, release it before loading feeds.
	rows.Close()

	for i := range regions {
		feeds, err := r.getFeeds(ctx, regions[i].ID)
		if err != nil {
			return nil, err
		}
		regions[i].Feeds = feeds
	}

	return regions, nil
}

// GetRegionCount returns the total number of regions
func (r *SQLRegionRepository) GetRegionCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM regions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get region count: %w", err)
	}
	return count, nil
}

func (r *SQLRegionRepository) getFeeds(ctx context.Context, regionID string) ([]Feed, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT url, category
		FROM region_feeds
		WHERE region_id = ?
		ORDER BY position
	`, regionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get region feeds: %w", err)
	}
	defer rows.Close()

	feeds := []Feed{}
	for rows.Next() {
		var feed Feed
		if err := rows.Scan(&feed.URL, &feed.Category); err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		feeds = append(feeds, feed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return feeds, nil
}
