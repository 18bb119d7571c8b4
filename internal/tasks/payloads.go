package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeTaskSyncDraws = "task:sync_draws"
)

const DefaultSyncCount = 30

// SyncDrawsSchedule runs the sync at 22:00 on draw days. ssq is drawn at
// 21:15 on Tuesday, Thursday and Sunday.
const SyncDrawsSchedule = "0 22 * * 0,2,4"

// SyncDrawsPayload selects how many recent draws to fetch and where to dump
// them. Nil fields fall back to DefaultSyncCount and the configured path.
type SyncDrawsPayload struct {
	Count *int    `json:"count"`
	Path  *string `json:"path"`
}

// NewSyncDrawsTask creates a new task for asynq
func NewSyncDrawsTask(count *int, path *string) (*asynq.Task, error) {
	payload := SyncDrawsPayload{
		Count: count,
		Path:  path,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskSyncDraws, payloadBytes), nil
}
