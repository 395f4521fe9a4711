package database

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/fighter"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresConfig controls the Postgres connection pool used for fighter rows.
type PostgresConfig struct {
	DSN             string
	Table           string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// pgxPool is the subset of pgxpool.Pool the provider needs; pgxmock
// satisfies it in tests.
type pgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresProvider implements Provider backed by PostgreSQL.
// It assumes a table schema like:
//
//	CREATE TABLE fighters (
//	    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//	    url TEXT NOT NULL UNIQUE,
//	    name TEXT NOT NULL,
//	    height_inches INT,
//	    weight_label TEXT,
//	    reach_inches INT,
//	    stance TEXT,
//	    dob TEXT,
//	    strikes_landed_per_min DOUBLE PRECISION,
//	    striking_accuracy DOUBLE PRECISION,
//	    strikes_absorbed_per_min DOUBLE PRECISION,
//	    strike_defense DOUBLE PRECISION,
//	    takedown_avg DOUBLE PRECISION,
//	    takedown_accuracy DOUBLE PRECISION,
//	    takedown_defense DOUBLE PRECISION,
//	    submission_avg DOUBLE PRECISION,
//	    record TEXT,
//	    days_since_last_fight INT,
//	    fight_count INT NOT NULL,
//	    ufc_fight_count INT NOT NULL,
//	    weight_class TEXT NOT NULL,
//	    is_low_sample BOOLEAN NOT NULL DEFAULT FALSE,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresProvider struct {
	pool  pgxPool
	table string
}

// NewPostgresProvider creates a pooled Postgres connection and pings it to
// ensure it is alive before the first scrape run depends on it.
func NewPostgresProvider(ctx context.Context, cfg PostgresConfig) (*PostgresProvider, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "fighters"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresProvider{pool: pool, table: table}, nil
}

// NewPostgresProviderWithPool constructs a provider from an existing pool
// (primarily for testing).
func NewPostgresProviderWithPool(pool pgxPool, table string) (*PostgresProvider, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "fighters"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresProvider{pool: pool, table: table}, nil
}

// Close releases the underlying pool resources.
func (p *PostgresProvider) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
}

const fighterColumns = `
	url, name, height_inches, weight_label, reach_inches, stance, dob,
	strikes_landed_per_min, striking_accuracy, strikes_absorbed_per_min,
	strike_defense, takedown_avg, takedown_accuracy, takedown_defense,
	submission_avg, record, days_since_last_fight, fight_count,
	ufc_fight_count, weight_class, is_low_sample`

// SaveFighters upserts the batch in one transaction keyed on url. The
// (xmax = 0) trick distinguishes freshly inserted rows from updated ones.
// Any row failure rolls back the whole batch.
func (p *PostgresProvider) SaveFighters(ctx context.Context, records []fighter.Record) (int, int, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("begin fighters tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	query := fmt.Sprintf(`
INSERT INTO %s (%s)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
ON CONFLICT (url) DO UPDATE SET
	name = EXCLUDED.name,
	height_inches = EXCLUDED.height_inches,
	weight_label = EXCLUDED.weight_label,
	reach_inches = EXCLUDED.reach_inches,
	stance = EXCLUDED.stance,
	dob = EXCLUDED.dob,
	strikes_landed_per_min = EXCLUDED.strikes_landed_per_min,
	striking_accuracy = EXCLUDED.striking_accuracy,
	strikes_absorbed_per_min = EXCLUDED.strikes_absorbed_per_min,
	strike_defense = EXCLUDED.strike_defense,
	takedown_avg = EXCLUDED.takedown_avg,
	takedown_accuracy = EXCLUDED.takedown_accuracy,
	takedown_defense = EXCLUDED.takedown_defense,
	submission_avg = EXCLUDED.submission_avg,
	record = EXCLUDED.record,
	days_since_last_fight = EXCLUDED.days_since_last_fight,
	fight_count = EXCLUDED.fight_count,
	ufc_fight_count = EXCLUDED.ufc_fight_count,
	weight_class = EXCLUDED.weight_class,
	is_low_sample = EXCLUDED.is_low_sample,
	updated_at = NOW()
RETURNING (xmax = 0) AS inserted`, p.table, fighterColumns)

	var inserted, updated int
	for _, rec := range records {
		var wasInserted bool
		err := tx.QueryRow(ctx, query,
			rec.URL,
			rec.Name,
			rec.HeightInches,
			rec.WeightLabel,
			rec.ReachInches,
			rec.Stance,
			rec.DOB,
			rec.StrikesLandedPerMin,
			rec.StrikingAccuracy,
			rec.StrikesAbsorbedPerMin,
			rec.StrikeDefense,
			rec.TakedownAvg,
			rec.TakedownAccuracy,
			rec.TakedownDefense,
			rec.SubmissionAvg,
			rec.Record,
			rec.DaysSinceLastFight,
			rec.FightCount,
			rec.UFCFightCount,
			rec.WeightClass,
			rec.LowSample,
		).Scan(&wasInserted)
		if err != nil {
			return 0, 0, fmt.Errorf("upsert fighter %s: %w", rec.URL, err)
		}
		if wasInserted {
			inserted++
		} else {
			updated++
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("commit fighters tx: %w", err)
	}
	return inserted, updated, nil
}

// ListFighters returns stored fighters, optionally filtered by division and
// capped by a row limit.
func (p *PostgresProvider) ListFighters(ctx context.Context, filter Filter) ([]StoredFighter, error) {
	query := fmt.Sprintf("SELECT id,%s FROM %s", fighterColumns, p.table)
	var args []any
	if filter.WeightClass != "" {
		query += " WHERE weight_class = $1"
		args = append(args, filter.WeightClass)
	}
	query += " ORDER BY name"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, filter.Limit)
	}
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fighters: %w", err)
	}
	defer rows.Close()
	return scanFighters(rows)
}

// GetFighter returns one fighter by row ID.
func (p *PostgresProvider) GetFighter(ctx context.Context, id int64) (StoredFighter, error) {
	query := fmt.Sprintf("SELECT id,%s FROM %s WHERE id = $1", fighterColumns, p.table)
	rows, err := p.pool.Query(ctx, query, id)
	if err != nil {
		return StoredFighter{}, fmt.Errorf("get fighter %d: %w", id, err)
	}
	defer rows.Close()
	fighters, err := scanFighters(rows)
	if err != nil {
		return StoredFighter{}, err
	}
	if len(fighters) == 0 {
		return StoredFighter{}, ErrNotFound
	}
	return fighters[0], nil
}

// SearchFighters matches names case-insensitively on a substring.
func (p *PostgresProvider) SearchFighters(ctx context.Context, name string) ([]StoredFighter, error) {
	query := fmt.Sprintf(
		"SELECT id,%s FROM %s WHERE name ILIKE '%%' || $1 || '%%' ORDER BY name",
		fighterColumns, p.table)
	rows, err := p.pool.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("search fighters: %w", err)
	}
	defer rows.Close()
	return scanFighters(rows)
}

// CountFighters returns the total number of stored fighters.
func (p *PostgresProvider) CountFighters(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", p.table)
	if err := p.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count fighters: %w", err)
	}
	return count, nil
}

func scanFighters(rows pgx.Rows) ([]StoredFighter, error) {
	var out []StoredFighter
	for rows.Next() {
		var f StoredFighter
		if err := rows.Scan(
			&f.ID,
			&f.URL,
			&f.Name,
			&f.HeightInches,
			&f.WeightLabel,
			&f.ReachInches,
			&f.Stance,
			&f.DOB,
			&f.StrikesLandedPerMin,
			&f.StrikingAccuracy,
			&f.StrikesAbsorbedPerMin,
			&f.StrikeDefense,
			&f.TakedownAvg,
			&f.TakedownAccuracy,
			&f.TakedownDefense,
			&f.SubmissionAvg,
			&f.Record.Record,
			&f.DaysSinceLastFight,
			&f.FightCount,
			&f.UFCFightCount,
			&f.WeightClass,
			&f.LowSample,
		); err != nil {
			return nil, fmt.Errorf("scan fighter row: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fighter rows: %w", err)
	}
	return out, nil
}
