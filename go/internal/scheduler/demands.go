package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DemandSweeperJob = "demand-sweeper"

// DemandSweeper deletes pending demands past their confirmation deadline.
type DemandSweeper interface {
	SweepExpiredDemands(ctx context.Context) (int, error)
}

// RegisterDemandSweeper schedules sweeper on cronExpr.
func RegisterDemandSweeper(s *Service, sweeper DemandSweeper, cronExpr string) (gocron.Job, error) {
	if sweeper == nil {
		return nil, fmt.Errorf("demand sweeper job requires a sweeper")
	}
	jobLogger := log.With().
		Str("component", "demand_sweeper_job").
		Str("job_name", DemandSweeperJob).
		Logger()

	job, err := s.AddJob(DemandSweeperJob, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		sweepDemands(jobLogger.WithContext(ctx), sweeper, &jobLogger)
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return nil, fmt.Errorf("add demand sweeper job: %w", err)
	}
	return job, nil
}

func sweepDemands(ctx context.Context, sweeper DemandSweeper, logger *zerolog.Logger) int {
	n, err := sweeper.SweepExpiredDemands(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to sweep expired demands")
		return 0
	}
	if n > 0 {
		logger.Info().Int("swept", n).Msg("Expired demands removed")
	}
	return n
}
