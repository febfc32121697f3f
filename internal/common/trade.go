package common

import (
	"fmt"
	"time"
)

// Trade accounts for the two parties who matched. It carries copies of the
// identifying fields only, never pointers into the book, so a trade stays
// valid however the book moves on afterwards.
type Trade struct {
	BuyUUID   string
	SellUUID  string
	Ticker    string
	MatchQty  int64
	Price     float64
	Timestamp time.Time
}

func (t Trade) String() string {
	return fmt.Sprintf(
		`Buy:       %s
Sell:      %s
Ticker:    %s
MatchQty:  %d
Price:     %f
Timestamp: %v`,
		t.BuyUUID,
		t.SellUUID,
		t.Ticker,
		t.MatchQty,
		t.Price,
		t.Timestamp.Format(time.RFC3339),
	)
}
