package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// ViewRecorder persists view counts.
type ViewRecorder interface {
	IncrementArticleViews(ctx context.Context, id int64) error
	IncrementAnnouncementViews(ctx context.Context, id int64) error
}

// InitHandlers sets the recorder used by the view handlers. It must be
// called before Start.
func (j *JobService) InitHandlers(recorder ViewRecorder) {
	j.recorder = recorder
}

func (j *JobService) handleArticleViewTask(ctx context.Context, t *asynq.Task) error {
	return j.handleView(ctx, t, "article", j.recorder.IncrementArticleViews)
}

func (j *JobService) handleAnnouncementViewTask(ctx context.Context, t *asynq.Task) error {
	return j.handleView(ctx, t, "announcement", j.recorder.IncrementAnnouncementViews)
}

func (j *JobService) handleView(
	ctx context.Context,
	t *asynq.Task,
	entity string,
	increment func(context.Context, int64) error,
) error {
	var p ViewPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal %s view payload: %w", entity, err)
	}

	if err := increment(ctx, p.ID); err != nil {
		j.logger.Error().
			Str("type", t.Type()).
			Int64(entity+"_id", p.ID).
			Err(err).
			Msg("failed to record view")
		return err
	}

	j.logger.Debug().
		Str("type", t.Type()).
		Int64(entity+"_id", p.ID).
		Msg("recorded view")

	return nil
}
