package hours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Hours is the opening window of one weekday in whole 24h hours. The zero
// value is Closed.
type Hours struct {
	Open  bool `json:"open"`
	Start int  `json:"start,omitempty"`
	End   int  `json:"end,omitempty"`
}

var Closed = Hours{}

// OpenBetween returns the window [start:00, end:00].
func OpenBetween(start, end int) Hours {
	return Hours{Open: true, Start: start, End: end}
}

func (h Hours) Validate() error {
	if !h.Open {
		return nil
	}
	if h.Start < 0 || h.End > 24 {
		return fmt.Errorf("hours %d-%d outside of the day", h.Start, h.End)
	}
	if h.Start >= h.End {
		return errors.New("start hour must be before end hour")
	}
	return nil
}

// OpensAt and ClosesAt are minutes since midnight.
func (h Hours) OpensAt() int  { return h.Start * 60 }
func (h Hours) ClosesAt() int { return h.End * 60 }

func (h Hours) String() string {
	if !h.Open {
		return "closed"
	}
	return fmt.Sprintf("%02d-%02d", h.Start, h.End)
}

// ConfigurationError is the panic value raised when a lookup is made with a
// weekday outside Monday..Sunday.
type ConfigurationError struct {
	Weekday Weekday
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("opening hours: no entry for %s", e.Weekday)
}

// Table maps every weekday to its opening hours. It is a value type; once
// built it is never modified.
type Table [7]Hours

// Default is the salon's own week.
var Default = Table{
	Monday:    Closed,
	Tuesday:   Closed,
	Wednesday: OpenBetween(17, 19),
	Thursday:  OpenBetween(10, 19),
	Friday:    OpenBetween(10, 19),
	Saturday:  OpenBetween(9, 15),
	Sunday:    Closed,
}

// HoursFor panics with a ConfigurationError for an invalid weekday.
func (t Table) HoursFor(d Weekday) Hours {
	if !d.Valid() {
		panic(ConfigurationError{Weekday: d})
	}
	return t[d]
}

// NewTable builds a table from entries; missing weekdays are closed.
func NewTable(entries map[Weekday]Hours) (Table, error) {
	var t Table
	for d, h := range entries {
		if !d.Valid() {
			return Table{}, fmt.Errorf("%w: %d", ErrUnknownWeekday, int(d))
		}
		if err := h.Validate(); err != nil {
			return Table{}, fmt.Errorf("%s: %w", d, err)
		}
		t[d] = h
	}
	return t, nil
}

// ParseTable reads config entries of the form "closed" or "HH-HH", keyed by
// weekday name. Weekdays absent from raw keep their value from base.
func ParseTable(base Table, raw map[string]string) (Table, error) {
	entries := make(map[Weekday]Hours, len(Weekdays))
	for _, d := range Weekdays {
		entries[d] = base[d]
	}
	for name, value := range raw {
		d, err := ParseWeekday(name)
		if err != nil {
			return Table{}, err
		}
		h, err := parseHours(value)
		if err != nil {
			return Table{}, fmt.Errorf("%s: %w", d, err)
		}
		entries[d] = h
	}
	return NewTable(entries)
}

func parseHours(value string) (Hours, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "closed" || v == "" {
		return Closed, nil
	}
	from, to, ok := strings.Cut(v, "-")
	if !ok {
		return Hours{}, fmt.Errorf("invalid hours %q, expected \"closed\" or \"HH-HH\"", value)
	}
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return Hours{}, fmt.Errorf("invalid start hour %q: %w", from, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return Hours{}, fmt.Errorf("invalid end hour %q: %w", to, err)
	}
	return OpenBetween(start, end), nil
}
