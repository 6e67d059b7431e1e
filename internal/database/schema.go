// internal/database/schema.go
package database

// schema is applied on startup. Every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS teams (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	balance    INTEGER NOT NULL DEFAULT 10000,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	has_spun   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS questions (
	id             UUID PRIMARY KEY,
	seq            INTEGER NOT NULL,
	question_text  TEXT NOT NULL,
	option_a       TEXT NOT NULL,
	option_b       TEXT NOT NULL,
	option_c       TEXT NOT NULL,
	option_d       TEXT NOT NULL,
	correct_option CHAR(1) NOT NULL,
	explanation    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS game_state (
	id                  INTEGER PRIMARY KEY,
	current_round       INTEGER NOT NULL DEFAULT 1,
	current_question_id UUID,
	phase               TEXT NOT NULL DEFAULT 'lobby',
	is_bidding_open     BOOLEAN NOT NULL DEFAULT FALSE,
	bidding_ends_at     TIMESTAMPTZ,
	active_team_id      UUID,
	winning_bid_amount  INTEGER,
	version             BIGINT NOT NULL DEFAULT 1,
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bids (
	id           UUID PRIMARY KEY,
	seq          BIGSERIAL,
	team_id      UUID NOT NULL REFERENCES teams(id),
	round_number INTEGER NOT NULL,
	amount       INTEGER NOT NULL CHECK (amount > 0),
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS bids_round_idx ON bids (round_number, amount DESC, created_at, seq);

CREATE TABLE IF NOT EXISTS game_events (
	id          UUID PRIMARY KEY,
	event_type  TEXT NOT NULL,
	round       INTEGER NOT NULL,
	team_id     UUID,
	payload     JSONB NOT NULL DEFAULT '{}'::jsonb,
	occurred_at TIMESTAMPTZ NOT NULL
);
`
