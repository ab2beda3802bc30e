package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS checkins (
	id         TEXT PRIMARY KEY,
	habit_id   TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	day        TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(habit_id, day)
);

CREATE TABLE IF NOT EXISTS streaks (
	habit_id       TEXT PRIMARY KEY REFERENCES habits(id) ON DELETE CASCADE,
	count          INTEGER NOT NULL DEFAULT 0 CHECK(count >= 0),
	longest        INTEGER NOT NULL DEFAULT 0 CHECK(longest >= count),
	last_completed TEXT,
	updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_checkins_habit_id ON checkins(habit_id);
CREATE INDEX IF NOT EXISTS idx_checkins_day ON checkins(day);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS books (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	author          TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	goal            TEXT NOT NULL,
	mood            TEXT NOT NULL,
	minutes_per_day INTEGER NOT NULL DEFAULT 10,
	tags            TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS user_books (
	id         TEXT PRIMARY KEY,
	identity   TEXT NOT NULL,
	book_id    TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
	status     TEXT NOT NULL DEFAULT 'want' CHECK(status IN ('want', 'reading', 'finished')),
	progress   INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
	rating     INTEGER CHECK(rating BETWEEN 1 AND 5),
	notes      TEXT NOT NULL DEFAULT '',
	saved_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(identity, book_id)
);

CREATE INDEX IF NOT EXISTS idx_books_goal ON books(goal);
CREATE INDEX IF NOT EXISTS idx_books_mood ON books(mood);
CREATE INDEX IF NOT EXISTS idx_user_books_identity ON user_books(identity);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
CREATE TABLE IF NOT EXISTS focus_sessions (
	id               TEXT PRIMARY KEY,
	identity         TEXT NOT NULL,
	habit_id         TEXT REFERENCES habits(id) ON DELETE SET NULL,
	duration_seconds INTEGER NOT NULL DEFAULT 1500,
	status           TEXT NOT NULL DEFAULT 'running' CHECK(status IN ('running', 'paused', 'finished')),
	started_at       DATETIME NOT NULL,
	ended_at         DATETIME,
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todos (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	done       INTEGER NOT NULL DEFAULT 0 CHECK(done IN (0, 1)),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_focus_sessions_identity_status ON focus_sessions(identity, status);
CREATE INDEX IF NOT EXISTS idx_todos_done ON todos(done);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}
