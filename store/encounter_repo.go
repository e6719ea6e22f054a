package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nathoo/skoolach/types"
)

// EncounterRepo records finished encounters. It satisfies engine.Recorder.
type EncounterRepo struct {
	DB *sql.DB
}

// RecordEncounter inserts one encounter summary.
func (r *EncounterRepo) RecordEncounter(ctx context.Context, rec types.EncounterRecord) error {
	caps, err := json.Marshal(rec.Capabilities)
	if err != nil {
		return fmt.Errorf("encode capabilities: %w", err)
	}

	const q = `INSERT INTO encounters (id, enemy, outcome, rounds, capabilities_json, player_health, enemy_health, final_phase, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.DB.ExecContext(ctx, q,
		rec.ID,
		rec.Enemy,
		rec.Outcome,
		rec.Rounds,
		string(caps),
		rec.PlayerHealth,
		rec.EnemyHealth,
		rec.FinalPhase,
		rec.StartedAt,
		rec.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("record encounter: %w", err)
	}
	return nil
}

// List returns the most recent encounters, newest first. limit <= 0 means all.
func (r *EncounterRepo) List(ctx context.Context, limit int) ([]types.EncounterRecord, error) {
	q := `SELECT id, enemy, outcome, rounds, capabilities_json, player_health, enemy_health, final_phase, started_at, ended_at
FROM encounters
ORDER BY ended_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list encounters: %w", err)
	}
	defer rows.Close()

	var records []types.EncounterRecord
	for rows.Next() {
		var rec types.EncounterRecord
		var caps string
		if err := rows.Scan(&rec.ID, &rec.Enemy, &rec.Outcome, &rec.Rounds, &caps,
			&rec.PlayerHealth, &rec.EnemyHealth, &rec.FinalPhase, &rec.StartedAt, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("scan encounter: %w", err)
		}
		if err := json.Unmarshal([]byte(caps), &rec.Capabilities); err != nil {
			return nil, fmt.Errorf("decode capabilities for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByOutcome returns how many encounters ended with each outcome.
func (r *EncounterRepo) CountByOutcome(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM encounters GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("count encounters: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}
