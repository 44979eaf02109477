package types

import "github.com/shopspring/decimal"

type Depth struct {
	Asks     [][]decimal.Decimal `json:"asks"`
	Bids     [][]decimal.Decimal `json:"bids"`
	Sequence uint64              `json:"sequence"`
}

type PayloadAction = string

var (
	ActionSubmit PayloadAction = "submit"
	ActionCancel PayloadAction = "cancel"
	ActionAmend  PayloadAction = "amend"
	ActionPrice  PayloadAction = "price"
)

type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

// Opposite returns the contra side.
func (s OrderSide) Opposite() OrderSide {
	if s == SideBuy {
		return SideSell
	}

	return SideBuy
}

type OrderType string

const (
	TypeMarket OrderType = "market"
	TypeLimit  OrderType = "limit"
	TypeStop   OrderType = "stop"
)

// Priced reports whether orders of this type carry a price.
func (t OrderType) Priced() bool {
	return t == TypeLimit || t == TypeStop
}

type OrderStatus string

const (
	StatusAccepted OrderStatus = "accepted"
	StatusAmended  OrderStatus = "amended"
	StatusCanceled OrderStatus = "canceled"
	StatusFilled   OrderStatus = "filled"
)

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == StatusCanceled || s == StatusFilled
}

type ReportStatus string

const (
	ReportFilled      ReportStatus = "filled"
	ReportPartialFill ReportStatus = "partial_fill"
)

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)
