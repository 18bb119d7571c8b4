package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"lottodesk/internal/config"
	"lottodesk/internal/pkg/cwl"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	config    *config.Config
	cwlClient *cwl.Client
	logger    *zap.Logger
}

// NewTaskProcessor creates a new TaskProcessor
func NewTaskProcessor(cfg *config.Config, cwlClient *cwl.Client, logger *zap.Logger) *TaskProcessor {
	return &TaskProcessor{
		config:    cfg,
		cwlClient: cwlClient,
		logger:    logger,
	}
}

func (p *TaskProcessor) HandleSyncDrawsTask(ctx context.Context, t *asynq.Task) error {
	var payload SyncDrawsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	count := DefaultSyncCount
	if payload.Count != nil {
		count = *payload.Count
	}
	if count <= 0 {
		return fmt.Errorf("invalid count %d: %w", count, asynq.SkipRetry)
	}

	path := p.config.LotteryDumpPath
	if payload.Path != nil && *payload.Path != "" {
		path = *payload.Path
	}

	p.logger.Info("syncing draws", zap.Int("count", count), zap.String("path", path))

	draws := p.cwlClient.FetchRecent(ctx, count)
	if len(draws) == 0 {
		// keep the previous dump rather than replacing it with nothing
		p.logger.Warn("no draws fetched, dump left untouched", zap.String("path", path))
		return nil
	}

	if err := cwl.SaveJSON(path, draws); err != nil {
		return fmt.Errorf("failed to save draws: %w", err)
	}

	p.logger.Info("draws synced", zap.Int("fetched", len(draws)), zap.String("latest_issue", draws[0].IssueCode))
	return nil
}
