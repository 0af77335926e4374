package migrations

import (
	"sitemap-service/internal/core"
)

// Migration001CreateVideosTable creates the video catalog table.
// duration and tags hold raw JSON so their original shape survives a round trip.
var Migration001CreateVideosTable = core.Migration{
	Version:     1,
	Name:        "create_videos_table",
	Description: "Create the video catalog table",
	UpSQL: `
		CREATE TABLE IF NOT EXISTS videos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			video_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			thumbnail TEXT NOT NULL DEFAULT '',
			embed_url TEXT NOT NULL DEFAULT '',
			duration TEXT,
			date_published TEXT NOT NULL DEFAULT '',
			date_modified TEXT NOT NULL DEFAULT '',
			tags TEXT,
			category TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_videos_video_id ON videos(video_id) WHERE video_id <> '';
	`,
	DownSQL: `
		DROP INDEX IF EXISTS idx_videos_video_id;
		DROP TABLE IF EXISTS videos;
	`,
}
