package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the enabled jobs as a group.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates an empty manager. Jobs are added with Add so disabled
// ones can simply be left out.
func NewJobManager() *JobManager {
	return &JobManager{}
}

// Add registers a job under a name used in error messages.
func (jm *JobManager) Add(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// Len reports how many jobs are registered.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}

// StartAll starts the jobs in registration order.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully, newest first.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
