package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskArticleView      = "article:view"
	TaskAnnouncementView = "announcement:view"

	// viewQueue is the queue view counting runs on. A lost view is
	// acceptable, so view tasks are never retried.
	viewQueue = "low"
)

// ViewPayload identifies the viewed entity.
type ViewPayload struct {
	ID int64 `json:"id"`
}

func newViewTask(taskType string, id int64) (*asynq.Task, error) {
	payload, err := json.Marshal(ViewPayload{ID: id})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		taskType,
		payload,
		asynq.MaxRetry(0),
		asynq.Queue(viewQueue),
		asynq.Timeout(10*time.Second),
	), nil
}

func NewArticleViewTask(articleID int64) (*asynq.Task, error) {
	return newViewTask(TaskArticleView, articleID)
}

func NewAnnouncementViewTask(announcementID int64) (*asynq.Task, error) {
	return newViewTask(TaskAnnouncementView, announcementID)
}
