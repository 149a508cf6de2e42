package jobs

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

const (
	DefaultDeliveryCompletionSchedule = "*/30 * * * * *"
	DefaultDeliveryCompletionAfter    = 10 * time.Minute
	deliveryCompletionBatch           = 100
)

type deliveryCompleter interface {
	Handle(ctx context.Context, cmd commands.CompleteDeliveriesCommand) (int, error)
}

// DeliveryCompletionJob marks as delivered the orders that have been waiting
// longer than after. Each run handles at most one batch.
type DeliveryCompletionJob struct {
	handler  deliveryCompleter
	schedule string
	after    time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *logger.Logger
}

// NewDeliveryCompletionJob takes a six-field cron schedule (with seconds).
// Empty or zero arguments fall back to the defaults.
func NewDeliveryCompletionJob(
	handler deliveryCompleter,
	schedule string,
	after time.Duration,
	log *logger.Logger,
) *DeliveryCompletionJob {
	if schedule == "" {
		schedule = DefaultDeliveryCompletionSchedule
	}
	if after <= 0 {
		after = DefaultDeliveryCompletionAfter
	}
	return &DeliveryCompletionJob{
		handler:  handler,
		schedule: schedule,
		after:    after,
		now:      func() time.Time { return time.Now().UTC() },
		cron:     cron.New(cron.WithSeconds()),
		logger:   log.With("component", "delivery_completion_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *DeliveryCompletionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("delivery completion job started", "schedule", j.schedule, "after", j.after.String())
	return nil
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *DeliveryCompletionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("delivery completion job stopped")
}

// RunOnce completes one batch and returns how many orders were delivered.
func (j *DeliveryCompletionJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewCompleteDeliveriesCommand(j.now().Add(-j.after), deliveryCompletionBatch)
	if err != nil {
		j.logger.Error("delivery completion command is invalid", "error", err)
		return 0, err
	}

	n, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("delivery completion job failed", "error", err)
		return 0, err
	}
	if n > 0 {
		j.logger.Info("deliveries completed", "count", n)
	}
	return n, nil
}
