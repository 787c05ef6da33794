package jobs

import (
	"context"
	"log/slog"
	"time"

	"production/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultQueueReportSchedule runs the report at the top of every minute.
const DefaultQueueReportSchedule = "0 * * * * *"

type queueSummaryReader interface {
	Handle(ctx context.Context, query queries.GetQueueSummaryQuery) (queries.GetQueueSummaryQueryResponse, error)
}

// QueueReportJob periodically logs how many orders sit in each stage and how
// long the oldest unstarted order has been waiting.
type QueueReportJob struct {
	handler  queueSummaryReader
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

func NewQueueReportJob(handler queueSummaryReader, schedule string, logger *slog.Logger) *QueueReportJob {
	if schedule == "" {
		schedule = DefaultQueueReportSchedule
	}
	return &QueueReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "queue_report_job"),
		now:      time.Now,
	}
}

func (j *QueueReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue report job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running report to finish.
func (j *QueueReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Queue report job stopped")
}

// Run produces one report.
func (j *QueueReportJob) Run(ctx context.Context) {
	summary, err := j.handler.Handle(ctx, queries.NewGetQueueSummaryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue report failed", "error", err)
		return
	}

	attrs := []any{
		"received", summary.Received,
		"in_progress", summary.InProgress,
		"ready", summary.Ready,
		"delivered", summary.Delivered,
	}
	if summary.OldestReceived != nil {
		attrs = append(attrs, "oldest_received_wait", j.now().Sub(*summary.OldestReceived).Round(time.Second))
	}

	j.logger.InfoContext(ctx, "Production queue", attrs...)
}
