package phh

import "time"

// Variant codes for the games a table can run
const (
	FixedLimitHoldem = "FT"
	NoLimitHoldem    = "NT"
)

// HandHistory represents a single poker hand encoded in PHH format.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet,omitempty"`
	SmallBet          int      `toml:"small_bet,omitempty"`
	BigBet            int      `toml:"big_bet,omitempty"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// SetTime fills the date and time fields from ts
func (h *HandHistory) SetTime(ts time.Time) {
	h.Timestamp = ts
	h.Time = ts.Format("15:04:05")
	h.TimeZone = ts.Location().String()
	h.Day = ts.Day()
	h.Month = int(ts.Month())
	h.Year = ts.Year()
}
