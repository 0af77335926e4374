package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sitemap-service/internal/core"
	"sitemap-service/internal/features/sitemap/models"
)

// CatalogService stores video records in sqlite and serves them in insertion order
type CatalogService struct {
	db     *core.Database
	logger *core.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *core.Database, logger *core.Logger) *CatalogService {
	return &CatalogService{
		db:     db,
		logger: logger,
	}
}

// FetchAll returns every video in the catalog, oldest first
func (s *CatalogService) FetchAll(ctx context.Context) ([]models.Video, error) {
	query := `
		SELECT video_id, title, description, thumbnail, embed_url, duration,
			date_published, date_modified, tags, category
		FROM videos
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, core.NewDatabaseError("failed to query videos", err)
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var video models.Video
		var duration, tags sql.NullString

		err := rows.Scan(
			&video.ID,
			&video.Title,
			&video.Description,
			&video.Thumbnail,
			&video.EmbedURL,
			&duration,
			&video.DatePublished,
			&video.DateModified,
			&tags,
			&video.Category,
		)
		if err != nil {
			return nil, core.NewDatabaseError("failed to scan video", err)
		}

		if duration.Valid {
			if err := json.Unmarshal([]byte(duration.String), &video.Duration); err != nil {
				return nil, core.NewDatabaseError(fmt.Sprintf("invalid duration stored for video %q", video.ID), err)
			}
		}
		if tags.Valid {
			if err := json.Unmarshal([]byte(tags.String), &video.Tags); err != nil {
				return nil, core.NewDatabaseError(fmt.Sprintf("invalid tags stored for video %q", video.ID), err)
			}
		}

		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, core.NewDatabaseError("failed to iterate videos", err)
	}

	return videos, nil
}

// Upsert inserts a video, or updates it in place when a video with the same id exists.
// Videos without an id are always appended.
func (s *CatalogService) Upsert(ctx context.Context, video models.Video) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		return upsert(ctx, tx, video)
	})
}

// Count returns the number of videos in the catalog
func (s *CatalogService) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&count); err != nil {
		return 0, core.NewDatabaseError("failed to count videos", err)
	}
	return count, nil
}

// Import reads a JSON array of videos and upserts them in a single transaction
func (s *CatalogService) Import(ctx context.Context, r io.Reader) (int, error) {
	videos, err := decodeCatalog(r)
	if err != nil {
		return 0, err
	}

	err = s.db.Transaction(ctx, func(tx *sql.Tx) error {
		return upsertAll(ctx, tx, videos)
	})
	if err != nil {
		return 0, core.NewDatabaseError("failed to import video catalog", err)
	}

	s.logger.Info("Imported video catalog", "videos", len(videos))
	return len(videos), nil
}

// Sync makes the catalog match the JSON array read from r. Videos whose id is
// no longer listed are removed, and videos without an id are replaced.
// Listed videos that already exist keep their position.
func (s *CatalogService) Sync(ctx context.Context, r io.Reader) (int, error) {
	videos, err := decodeCatalog(r)
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(videos))
	for _, video := range videos {
		if video.ID != "" {
			ids = append(ids, video.ID)
		}
	}
	keep, err := json.Marshal(ids)
	if err != nil {
		return 0, core.NewInternalError("failed to encode video ids", err)
	}

	var removed int64
	err = s.db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			DELETE FROM videos
			WHERE video_id = '' OR video_id NOT IN (SELECT value FROM json_each(?))
		`, string(keep))
		if err != nil {
			return fmt.Errorf("failed to remove stale videos: %w", err)
		}
		removed, _ = result.RowsAffected()

		return upsertAll(ctx, tx, videos)
	})
	if err != nil {
		return 0, core.NewDatabaseError("failed to sync video catalog", err)
	}

	s.logger.Info("Synced video catalog", "videos", len(videos), "removed", removed)
	return len(videos), nil
}

// ImportFile imports the JSON catalog stored at path
func (s *CatalogService) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := openSeed(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return s.Import(ctx, f)
}

// SyncFile syncs the catalog with the JSON file stored at path
func (s *CatalogService) SyncFile(ctx context.Context, path string) (int, error) {
	f, err := openSeed(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return s.Sync(ctx, f)
}

func openSeed(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewConfigurationError(fmt.Sprintf("failed to open catalog seed %s", path), err)
	}
	return f, nil
}

func decodeCatalog(r io.Reader) ([]models.Video, error) {
	var videos []models.Video
	if err := json.NewDecoder(r).Decode(&videos); err != nil {
		return nil, core.NewValidationError("failed to decode video catalog", err)
	}
	return videos, nil
}

func upsertAll(ctx context.Context, tx *sql.Tx, videos []models.Video) error {
	for i, video := range videos {
		if err := upsert(ctx, tx, video); err != nil {
			return fmt.Errorf("video %d (%q): %w", i, video.ID, err)
		}
	}
	return nil
}

func upsert(ctx context.Context, tx *sql.Tx, video models.Video) error {
	duration, err := nullableJSON(video.Duration)
	if err != nil {
		return err
	}
	tags, err := nullableJSON(video.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO videos (video_id, title, description, thumbnail, embed_url, duration,
			date_published, date_modified, tags, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) WHERE video_id <> '' DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			thumbnail = excluded.thumbnail,
			embed_url = excluded.embed_url,
			duration = excluded.duration,
			date_published = excluded.date_published,
			date_modified = excluded.date_modified,
			tags = excluded.tags,
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err = tx.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.Thumbnail,
		video.EmbedURL,
		duration,
		video.DatePublished,
		video.DateModified,
		tags,
		video.Category,
	)
	return err
}

// nullableJSON encodes v, mapping a JSON null to SQL NULL
func nullableJSON(v json.Marshaler) (sql.NullString, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return sql.NullString{}, err
	}
	if string(raw) == "null" {
		return sql.NullString{}, nil
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}
