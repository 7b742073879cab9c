package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kevinzhao-dev/jp2tw-captioner/internal/auth"
	"github.com/kevinzhao-dev/jp2tw-captioner/internal/db/models"
)

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		file_path TEXT NOT NULL,
		params TEXT NOT NULL,
		progress REAL DEFAULT 0,
		result TEXT,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		started_at DATETIME,
		completed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS translation_presets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		prompt TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *Database) EnsureAdmin(username, password string) error {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, 'admin')",
		username, hash,
	)
	return err
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *Database) GetUserByID(id int64) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetSetting returns a setting value by key, or defaultVal if not found
func (d *Database) GetSetting(key, defaultVal string) string {
	var val string
	err := d.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	if err != nil {
		return defaultVal
	}
	return val
}

// SetSetting upserts a setting
func (d *Database) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP`,
		key, value, value,
	)
	return err
}

// GetAllSettings returns all settings as a map
func (d *Database) GetAllSettings() (map[string]string, error) {
	rows, err := d.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for use by other packages (e.g., job queue)
func (d *Database) DB() *sql.DB {
	return d.db
}

// TranslationPreset represents a saved custom translation prompt
type TranslationPreset struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Prompt    string `json:"prompt"`
	CreatedAt string `json:"created_at"`
}

// ListTranslationPresets returns all saved presets ordered by creation time
func (d *Database) ListTranslationPresets() ([]TranslationPreset, error) {
	rows, err := d.db.Query("SELECT id, name, prompt, created_at FROM translation_presets ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []TranslationPreset
	for rows.Next() {
		var p TranslationPreset
		if err := rows.Scan(&p.ID, &p.Name, &p.Prompt, &p.CreatedAt); err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if presets == nil {
		presets = []TranslationPreset{}
	}
	return presets, nil
}

// GetTranslationPreset returns a single preset by ID
func (d *Database) GetTranslationPreset(id int64) (*TranslationPreset, error) {
	var p TranslationPreset
	err := d.db.QueryRow(
		"SELECT id, name, prompt, created_at FROM translation_presets WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Prompt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateTranslationPreset saves a new custom translation preset
func (d *Database) CreateTranslationPreset(name, prompt string) (int64, error) {
	result, err := d.db.Exec(
		"INSERT INTO translation_presets (name, prompt) VALUES (?, ?)",
		name, prompt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateTranslationPreset modifies an existing preset
func (d *Database) UpdateTranslationPreset(id int64, name, prompt string) error {
	_, err := d.db.Exec(
		"UPDATE translation_presets SET name = ?, prompt = ? WHERE id = ?",
		name, prompt, id,
	)
	return err
}

// DeleteTranslationPreset removes a saved preset by ID
func (d *Database) DeleteTranslationPreset(id int64) error {
	_, err := d.db.Exec("DELETE FROM translation_presets WHERE id = ?", id)
	return err
}
