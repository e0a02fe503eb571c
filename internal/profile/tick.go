package profile

import "math"

// TickTable maps a price to the minimum legal price increment on an exchange.
type TickTable interface {
	TickSize(price float64) float64
}

// TickRule assigns a tick size to all prices below an upper bound.
type TickRule struct {
	Below float64
	Step  float64
}

// RuleTable is a TickTable built from ordered rules, evaluated
// lowest-threshold-first. The last rule's step applies to any price at or
// above the final threshold.
type RuleTable []TickRule

func (t RuleTable) TickSize(price float64) float64 {
	for _, r := range t {
		if price < r.Below {
			return r.Step
		}
	}
	return t[len(t)-1].Step
}

// TWSE is the Taiwan Stock Exchange tick size schedule.
var TWSE = RuleTable{
	{Below: 10, Step: 0.01},
	{Below: 50, Step: 0.05},
	{Below: 100, Step: 0.1},
	{Below: 500, Step: 0.5},
	{Below: 1000, Step: 1.0},
	{Below: math.Inf(1), Step: 5.0},
}
