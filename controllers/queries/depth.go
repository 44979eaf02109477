package queries

import "github.com/wyhar1/execsim/controllers/helpers"

type DepthQuery struct {
	Limit int `query:"limit" validate:"uint"`
}

func (t DepthQuery) Messages() map[string]string {
	return helpers.VaildateMessage("public.market_depth")
}
