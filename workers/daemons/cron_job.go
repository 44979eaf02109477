package daemons

import (
	"github.com/wyhar1/execsim/jobs"
)

type CronJob struct {
	Jobs []jobs.Job
}

func NewCronJob(jobs ...jobs.Job) *CronJob {
	return &CronJob{Jobs: jobs}
}

// Start runs every job in its own goroutine and returns immediately.
func (c *CronJob) Start() {
	for _, job := range c.Jobs {
		go job.Process()
	}
}
