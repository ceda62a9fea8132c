// Package job runs background work on Redis using Asynq.
//
// Request handlers enqueue tasks through the Client; the server pulls them
// from Redis and runs the registered handlers.
package job

import (
	"context"
	"errors"

	"github.com/deppfellow/go-cms/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client

	server   *asynq.Server
	logger   *zerolog.Logger
	recorder ViewRecorder
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				viewQueue:  1,
			},
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskArticleView, j.handleArticleViewTask)
	mux.HandleFunc(TaskAnnouncementView, j.handleAnnouncementViewTask)
	return mux
}

// Start launches the workers in the background.
func (j *JobService) Start() error {
	if j.recorder == nil {
		return errors.New("job handlers not initialized")
	}

	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	_ = j.Client.Close()
}

func (j *JobService) enqueue(ctx context.Context, task *asynq.Task, err error) error {
	if err != nil {
		return err
	}
	_, err = j.Client.EnqueueContext(ctx, task)
	return err
}

// EnqueueArticleView schedules a view increment for the article.
func (j *JobService) EnqueueArticleView(ctx context.Context, articleID int64) error {
	task, err := NewArticleViewTask(articleID)
	return j.enqueue(ctx, task, err)
}

// EnqueueAnnouncementView schedules a view increment for the announcement.
func (j *JobService) EnqueueAnnouncementView(ctx context.Context, announcementID int64) error {
	task, err := NewAnnouncementViewTask(announcementID)
	return j.enqueue(ctx, task, err)
}
