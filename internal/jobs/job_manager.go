package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	queueReportJob *QueueReportJob
}

func NewJobManager(
	summaryHandler queueSummaryReader,
	queueReportSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		queueReportJob: NewQueueReportJob(summaryHandler, queueReportSchedule, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.queueReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start queue report job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.queueReportJob.Stop()
}
