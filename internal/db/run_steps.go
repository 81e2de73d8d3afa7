package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StepStatus constants
const (
	StepStatusPending    = "pending"
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"
	StepStatusFailed     = "failed"
)

// StepCategory constants
const (
	StepCategoryExtraction = "extraction"
	StepCategoryResearch   = "research"
	StepCategorySynthesis  = "synthesis"
	StepCategoryGeneration = "generation"
)

// RunStep represents a single stage execution for a run
type RunStep struct {
	ID           uuid.UUID  `json:"id"`
	RunID        uuid.UUID  `json:"run_id"`
	Step         string     `json:"step"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	DurationMs   *int       `json:"duration_ms,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsTerminalStepStatus reports whether no further transitions are expected
func IsTerminalStepStatus(status string) bool {
	return status == StepStatusCompleted || status == StepStatusFailed
}

// StartRunStep records that a stage began executing
func (db *DB) StartRunStep(ctx context.Context, runID uuid.UUID, step, category string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO run_steps (run_id, step, category, status, started_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (run_id, step) DO UPDATE
		 SET status = EXCLUDED.status, started_at = NOW(), completed_at = NULL,
		     duration_ms = NULL, error_message = NULL, updated_at = NOW()`,
		runID, step, category, StepStatusInProgress,
	)
	if err != nil {
		return fmt.Errorf("failed to start run step %s: %w", step, err)
	}
	return nil
}

// FinishRunStep records the terminal status of a stage
func (db *DB) FinishRunStep(ctx context.Context, runID uuid.UUID, step, status, errMsg string) error {
	if !IsTerminalStepStatus(status) {
		return fmt.Errorf("invalid terminal status for step %s: %s", step, status)
	}
	var msg *string
	if errMsg != "" {
		msg = &errMsg
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE run_steps
		 SET status = $1, error_message = $2, completed_at = NOW(),
		     duration_ms = (EXTRACT(EPOCH FROM (NOW() - started_at)) * 1000)::INTEGER,
		     updated_at = NOW()
		 WHERE run_id = $3 AND step = $4`,
		status, msg, runID, step,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run step %s: %w", step, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("step not found: %s", step)
	}
	return nil
}

// GetRunStep retrieves a run step by run ID and step name
func (db *DB) GetRunStep(ctx context.Context, runID uuid.UUID, step string) (*RunStep, error) {
	var s RunStep
	err := db.pool.QueryRow(ctx,
		`SELECT id, run_id, step, category, status, started_at, completed_at,
		        duration_ms, error_message, created_at, updated_at
		 FROM run_steps
		 WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&s.ID, &s.RunID, &s.Step, &s.Category, &s.Status, &s.StartedAt, &s.CompletedAt,
		&s.DurationMs, &s.ErrorMessage, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run step: %w", err)
	}
	return &s, nil
}

// ListRunSteps retrieves all steps recorded for a run in execution order
func (db *DB) ListRunSteps(ctx context.Context, runID uuid.UUID) ([]RunStep, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, step, category, status, started_at, completed_at,
		        duration_ms, error_message, created_at, updated_at
		 FROM run_steps
		 WHERE run_id = $1
		 ORDER BY created_at`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run steps: %w", err)
	}
	defer rows.Close()

	var steps []RunStep
	for rows.Next() {
		var s RunStep
		if err := rows.Scan(&s.ID, &s.RunID, &s.Step, &s.Category, &s.Status, &s.StartedAt, &s.CompletedAt,
			&s.DurationMs, &s.ErrorMessage, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run step: %w", err)
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
