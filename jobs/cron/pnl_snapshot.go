package cron

import (
	"github.com/jasonlvhit/gocron"
	"github.com/sirupsen/logrus"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/server"
)

// PnLSnapshotJob logs the PnL summary of a running simulation every
// Interval seconds.
type PnLSnapshotJob struct {
	Server   *server.EngineServer
	Interval uint64
}

func (j *PnLSnapshotJob) Process() {
	s := gocron.NewScheduler()
	s.Every(j.Interval).Seconds().Do(j.Snapshot)
	<-s.Start()
}

func (j *PnLSnapshotJob) Snapshot() logrus.Fields {
	summary := j.Server.Summary()

	fields := logrus.Fields{
		"realized":   summary.Realized.String(),
		"unrealized": summary.Unrealized.String(),
		"total":      summary.Total.String(),
		"cash":       summary.Cash.String(),
	}
	for symbol, quantity := range summary.Positions {
		fields["position."+symbol] = quantity
	}

	config.Logger.WithFields(fields).Info("pnl snapshot")

	return fields
}
