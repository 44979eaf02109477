package jobs

// Job is a long running process started by the cron daemon.
type Job interface {
	Process()
}
