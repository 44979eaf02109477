package cron

import (
	"github.com/jasonlvhit/gocron"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/workers"
)

// TradeFlushJob flushes exported trades to InfluxDB every Interval seconds.
type TradeFlushJob struct {
	Exporter *workers.TradeExporter
	Interval uint64
}

func (j *TradeFlushJob) Process() {
	s := gocron.NewScheduler()
	s.Every(j.Interval).Seconds().Do(j.Flush)
	<-s.Start()
}

func (j *TradeFlushJob) Flush() {
	if _, err := j.Exporter.Flush(); err != nil {
		config.Logger.Errorf("Failed to export trades, Error: %v", err)
	}
}
