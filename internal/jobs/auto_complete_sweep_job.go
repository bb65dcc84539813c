package jobs

import (
	"context"
	"time"

	"commissions/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const autoCompleteSweepJobName = "auto_complete_sweep"

// DeliverySweeper is satisfied by commands.CompleteOverdueDeliveriesCommandHandler.
type DeliverySweeper interface {
	Handle(ctx context.Context, cmd commands.CompleteOverdueDeliveriesCommand) (int, error)
}

// AutoCompleteSweepJob completes delivered orders whose review window has
// passed even when nobody reads them.
type AutoCompleteSweepJob struct {
	handler   DeliverySweeper
	schedule  string
	batchSize int
	cron      *cron.Cron
	observer  JobObserver
	logger    zerolog.Logger
}

func NewAutoCompleteSweepJob(
	handler DeliverySweeper,
	schedule string,
	batchSize int,
	observer JobObserver,
	logger zerolog.Logger,
) *AutoCompleteSweepJob {
	return &AutoCompleteSweepJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		observer:  observer,
		logger:    logger.With().Str("component", autoCompleteSweepJobName+"_job").Logger(),
	}
}

func (j *AutoCompleteSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Int("batch_size", j.batchSize).Msg("auto-complete sweep job started")
	return nil
}

// Run sweeps one batch. Per-order failures are logged and do not stop the batch.
func (j *AutoCompleteSweepJob) Run(ctx context.Context) {
	started := time.Now()
	defer func() {
		if j.observer != nil {
			j.observer.ObserveJob(autoCompleteSweepJobName, time.Since(started))
		}
	}()

	cmd, err := commands.NewCompleteOverdueDeliveriesCommand(j.batchSize)
	if err != nil {
		j.logger.Error().Err(err).Msg("auto-complete sweep misconfigured")
		return
	}

	completed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error().Err(err).Int("completed", completed).Msg("auto-complete sweep finished with errors")
		return
	}
	if completed > 0 {
		j.logger.Info().Int("completed", completed).Msg("auto-complete sweep finished")
	}
}

func (j *AutoCompleteSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("auto-complete sweep job stopped")
}
