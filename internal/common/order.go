package common

import (
	"fmt"
	"time"
)

type Side int

const (
	Buy Side = iota
	Sell
)

// Valid reports whether the side is one of the two recognised values. Sides
// arrive from external callers, so they are checked before any book mutation.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

type Order struct {
	UUID          string    // Order tracked uuid
	Ticker        string    // Specific asset identifier
	Side          Side      // Order side
	LimitPrice    float64   // Limiting price
	Quantity      int64     // Remaining quantity
	TotalQuantity int64     // Total volume requested
	Seq           uint64    // Arrival counter, breaks equal-price ties FIFO
	Timestamp     time.Time // Time of arrival of order into the book
}

func (order Order) String() string {
	return fmt.Sprintf(
		`UUID:       %v
Ticker:     %s
Side:       %v
LimitPrice: %f
Quantity:   %d (Total: %d)
Seq:        %d
Timestamp:  %v`,
		order.UUID,
		order.Ticker,
		order.Side,
		order.LimitPrice,
		order.Quantity,
		order.TotalQuantity,
		order.Seq,
		order.Timestamp.Format(time.RFC3339), // Formatted for readability
	)
}
