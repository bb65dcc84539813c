package jobs

import (
	"context"
	"errors"
	"time"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const talentAssignmentJobName = "talent_assignment"

// TalentAssigner is satisfied by commands.AssignTalentCommandHandler.
type TalentAssigner interface {
	Handle(ctx context.Context, command commands.AssignTalentCommand) (*order.Order, error)
}

// JobObserver records how long a job run took.
type JobObserver interface {
	ObserveJob(job string, d time.Duration)
}

// TalentAssignmentJob links the oldest paid, unassigned order to a producer
// on every tick.
type TalentAssignmentJob struct {
	handler  TalentAssigner
	schedule string
	cron     *cron.Cron
	observer JobObserver
	logger   zerolog.Logger
}

// NewTalentAssignmentJob creates the job. schedule is a six-field cron
// expression (seconds first).
func NewTalentAssignmentJob(
	handler TalentAssigner,
	schedule string,
	observer JobObserver,
	logger zerolog.Logger,
) *TalentAssignmentJob {
	return &TalentAssignmentJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		observer: observer,
		logger:   logger.With().Str("component", talentAssignmentJobName+"_job").Logger(),
	}
}

// Start registers the schedule and starts the cron loop.
func (j *TalentAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("talent assignment job started")
	return nil
}

// Run performs a single assignment attempt.
func (j *TalentAssignmentJob) Run(ctx context.Context) {
	started := time.Now()
	defer func() {
		if j.observer != nil {
			j.observer.ObserveJob(talentAssignmentJobName, time.Since(started))
		}
	}()

	o, err := j.handler.Handle(ctx, commands.NewAssignTalentCommand())
	if err != nil {
		// Nothing waiting or nobody free is the normal idle state.
		if !errors.Is(err, commands.ErrNoOrderFound) && !errors.Is(err, commands.ErrNoAvailableTalentFound) {
			j.logger.Error().Err(err).Msg("talent assignment job failed")
		}
		return
	}

	event := j.logger.Info().Str("order_id", o.ID().String())
	if talentID := o.Talent(); talentID != nil {
		event = event.Str("talent_id", talentID.String())
	}
	event.Msg("talent assigned")
}

// Stop waits for a running tick to finish.
func (j *TalentAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("talent assignment job stopped")
}
