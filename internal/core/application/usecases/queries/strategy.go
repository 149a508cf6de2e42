package queries

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Strategy selects how ListOrders reads the order graph.
type Strategy int

const (
	UnknownStrategy Strategy = iota
	// Lazy fetches member, delivery and lines per order on first access.
	Lazy
	// JoinFetch reads everything in one joined query. Not paginable.
	JoinFetch
	// Batched joins the to-one relations, then loads lines with chunked IN
	// queries.
	Batched
	// Flat reads one projection row per order line. Not paginable.
	Flat
	// TwoQuery reads paginated projection headers, then their lines.
	TwoQuery
	// Simple reads paginated projection headers only: member name, date,
	// status and address without lines.
	Simple
)

// DefaultStrategy is used when none is given.
const DefaultStrategy = Batched

func getStrategyStrings() map[Strategy]string {
	return map[Strategy]string{
		UnknownStrategy: "unknown",
		Lazy:            "lazy",
		JoinFetch:       "join-fetch",
		Batched:         "batched",
		Flat:            "flat",
		TwoQuery:        "two-query",
		Simple:          "simple",
	}
}

func (s Strategy) String() string {
	if str, ok := getStrategyStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Strategy) Validate() error {
	if _, ok := getStrategyStrings()[s]; !ok || s == UnknownStrategy {
		return errs.NewValueIsInvalidErrorWithCause("strategy", fmt.Errorf("%d is not a valid strategy", s))
	}
	return nil
}

// SupportsPagination reports whether the root query can take an offset and
// limit without cutting an order's lines.
func (s Strategy) SupportsPagination() bool {
	return s != JoinFetch && s != Flat
}

// ReturnsEntities reports whether the strategy builds order aggregates
// rather than projections.
func (s Strategy) ReturnsEntities() bool {
	return s == Lazy || s == JoinFetch || s == Batched
}

// ParseStrategy accepts the names printed by String, case-insensitively. An
// empty name selects DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultStrategy, nil
	}
	for s, str := range getStrategyStrings() {
		if s != UnknownStrategy && str == name {
			return s, nil
		}
	}
	return UnknownStrategy, errs.NewValueIsInvalidErrorWithCause("strategy", fmt.Errorf("%q is not a valid strategy", name))
}
