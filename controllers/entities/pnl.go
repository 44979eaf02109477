package entities

import (
	"github.com/wyhar1/execsim/metrics"
	"github.com/wyhar1/execsim/position"
)

type PnLEntity struct {
	Summary     position.PnLSummary `json:"summary"`
	Performance metrics.Performance `json:"performance"`
}
