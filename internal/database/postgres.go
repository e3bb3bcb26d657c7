package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"streamx-recommendation-service/internal/config"
)

func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS content (
			id VARCHAR(50) PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			thumbnail_url VARCHAR(500) NOT NULL DEFAULT '',
			content_url VARCHAR(500) NOT NULL DEFAULT '',
			content_type VARCHAR(20) NOT NULL,
			category VARCHAR(20) NOT NULL,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			release_date DATE,
			is_premium BOOLEAN NOT NULL DEFAULT FALSE,
			view_count BIGINT NOT NULL DEFAULT 0 CHECK (view_count >= 0),
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			genres TEXT[] NOT NULL DEFAULT '{}',
			cast_members TEXT[] NOT NULL DEFAULT '{}',
			director VARCHAR(100) NOT NULL DEFAULT '',
			total_episodes INTEGER NOT NULL DEFAULT 0,
			total_seasons INTEGER NOT NULL DEFAULT 0,
			creator_id VARCHAR(50) NOT NULL DEFAULT '',
			creator_name VARCHAR(100) NOT NULL DEFAULT '',
			is_live BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_content_view_count ON content(view_count DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_content_category ON content(category)`,
		`CREATE TABLE IF NOT EXISTS episodes (
			id VARCHAR(50) PRIMARY KEY,
			content_id VARCHAR(50) NOT NULL REFERENCES content(id),
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			episode_number INTEGER NOT NULL,
			season_number INTEGER NOT NULL,
			thumbnail_url VARCHAR(500) NOT NULL DEFAULT '',
			video_url VARCHAR(500) NOT NULL DEFAULT '',
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			release_date DATE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_episodes_content_id ON episodes(content_id)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id VARCHAR(50) PRIMARY KEY,
			preferred_genres TEXT[] NOT NULL DEFAULT '{}',
			preferred_creators TEXT[] NOT NULL DEFAULT '{}',
			content_length_preference VARCHAR(10) NOT NULL DEFAULT 'medium',
			watch_time_preference VARCHAR(10) NOT NULL DEFAULT 'evening',
			last_updated TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS watch_history (
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(50) NOT NULL,
			content_id VARCHAR(50) NOT NULL,
			watch_duration_seconds INTEGER NOT NULL DEFAULT 0,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_history_user_id ON watch_history(user_id)`,
		// Seed a small fixture catalog if the table is empty
		`INSERT INTO content (id, title, description, content_type, category,
			duration_seconds, release_date, is_premium, view_count, rating,
			genres, cast_members, director)
		 SELECT 'cnt_001', 'The Adventure Begins',
			'An epic journey through uncharted lands, where heroes are made and legends are born.',
			'movie', 'cinema', 7200, '2024-01-15', FALSE, 15420, 4.7,
			ARRAY['Adventure','Action','Fantasy'],
			ARRAY['John Smith','Emma Johnson','Michael Brown'], 'Robert Williams'
		 WHERE NOT EXISTS (SELECT 1 FROM content WHERE id = 'cnt_001')`,
		`INSERT INTO content (id, title, description, content_type, category,
			duration_seconds, release_date, is_premium, view_count, rating,
			genres, cast_members, director, total_episodes, total_seasons)
		 SELECT 'cnt_002', 'Cosmic Odyssey',
			'A journey through space and time, exploring the mysteries of the universe.',
			'series', 'originals', 3600, '2024-02-20', TRUE, 8750, 4.9,
			ARRAY['Sci-Fi','Drama','Mystery'],
			ARRAY['Sarah Parker','David Wilson','Lisa Thompson'], 'James Anderson', 10, 1
		 WHERE NOT EXISTS (SELECT 1 FROM content WHERE id = 'cnt_002')`,
		`INSERT INTO content (id, title, description, content_type, category,
			is_premium, view_count, creator_id, creator_name, is_live)
		 SELECT 'cnt_003', 'Live Gaming Marathon',
			'Join us for an epic gaming session with the community.',
			'live', 'play', FALSE, 3200, 'usr_002', 'GameMaster', TRUE
		 WHERE NOT EXISTS (SELECT 1 FROM content WHERE id = 'cnt_003')`,
		`INSERT INTO content (id, title, description, content_type, category,
			duration_seconds, release_date, is_premium, view_count, rating,
			creator_id, creator_name)
		 SELECT 'cnt_004', 'Behind the Music',
			'A creator documentary about writing songs for the big stage.',
			'video', 'creators', 1500, '2024-03-01', FALSE, 5100, 4.2,
			'usr_004', 'MelodyMaker'
		 WHERE NOT EXISTS (SELECT 1 FROM content WHERE id = 'cnt_004')`,
		`INSERT INTO episodes (id, content_id, title, description,
			episode_number, season_number, duration_seconds, release_date)
		 SELECT 'ep_001', 'cnt_002', 'The Beginning',
			'The journey starts as our heroes set out to explore the universe.',
			1, 1, 3600, '2024-02-20'
		 WHERE NOT EXISTS (SELECT 1 FROM episodes WHERE id = 'ep_001')`,
		`INSERT INTO episodes (id, content_id, title, description,
			episode_number, season_number, duration_seconds, release_date)
		 SELECT 'ep_002', 'cnt_002', 'Strange New Worlds',
			'The crew discovers a mysterious planet with unusual properties.',
			2, 1, 3600, '2024-02-27'
		 WHERE NOT EXISTS (SELECT 1 FROM episodes WHERE id = 'ep_002')`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
