package analytics

const schema = `
CREATE TABLE IF NOT EXISTS chat_interactions (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp            TEXT NOT NULL,
	user_id              TEXT NOT NULL,
	session_id           TEXT NOT NULL,
	query                TEXT NOT NULL,
	response             TEXT NOT NULL,
	search_method        TEXT NOT NULL,
	search_results_count INTEGER NOT NULL,
	response_time        REAL NOT NULL,
	user_role            TEXT,
	user_campus          TEXT,
	query_length         INTEGER NOT NULL,
	response_length      INTEGER NOT NULL,
	created_at           TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_sessions (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id        TEXT UNIQUE NOT NULL,
	user_id           TEXT NOT NULL,
	start_time        TEXT NOT NULL,
	end_time          TEXT,
	user_role         TEXT,
	user_campus       TEXT,
	created_at        TEXT DEFAULT CURRENT_TIMESTAMP,
	updated_at        TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS query_analytics (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	query_hash        TEXT UNIQUE NOT NULL,
	query_text        TEXT NOT NULL,
	frequency         INTEGER DEFAULT 1,
	avg_response_time REAL,
	first_seen        TEXT DEFAULT CURRENT_TIMESTAMP,
	last_seen         TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chat_timestamp ON chat_interactions(timestamp);
CREATE INDEX IF NOT EXISTS idx_chat_user_id ON chat_interactions(user_id);
CREATE INDEX IF NOT EXISTS idx_chat_session_id ON chat_interactions(session_id);
CREATE INDEX IF NOT EXISTS idx_sessions_session_id ON user_sessions(session_id);
CREATE INDEX IF NOT EXISTS idx_analytics_query_hash ON query_analytics(query_hash);
`
