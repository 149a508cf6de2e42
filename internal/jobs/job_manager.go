package jobs

import (
	"fmt"
)

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	deliveryCompletionJob *DeliveryCompletionJob
}

func NewJobManager(deliveryCompletionJob *DeliveryCompletionJob) *JobManager {
	return &JobManager{
		deliveryCompletionJob: deliveryCompletionJob,
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.deliveryCompletionJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery completion job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.deliveryCompletionJob.Stop()
}
