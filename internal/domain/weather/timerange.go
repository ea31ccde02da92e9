package weather

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yanqian/weather-station/pkg/errors"
)

// TimeRange is a validated, closed interval with Start <= End.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ParseTimeRange validates request parameters. Both bounds must be RFC3339 with an
// explicit offset.
func ParseTimeRange(start, end string) (TimeRange, error) {
	s, err := time.Parse(time.RFC3339, strings.TrimSpace(start))
	if err != nil {
		return TimeRange{}, apperrors.Wrap(CodeInvalidRange, "invalid 'start' (expected RFC3339)", err)
	}
	e, err := time.Parse(time.RFC3339, strings.TrimSpace(end))
	if err != nil {
		return TimeRange{}, apperrors.Wrap(CodeInvalidRange, "invalid 'end' (expected RFC3339)", err)
	}
	return NewTimeRange(s, e)
}

// NewTimeRange builds a range from already typed instants.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, apperrors.Wrap(CodeInvalidRange, "range bounds must be set", nil)
	}
	if end.Before(start) {
		return TimeRange{}, apperrors.Wrap(CodeInvalidRange, fmt.Sprintf("'end' %s precedes 'start' %s", FormatInstant(end), FormatInstant(start)), nil)
	}
	return TimeRange{Start: start, End: end}, nil
}

// FormatInstant renders t as RFC3339 with its own offset, keeping sub-second precision,
// so that parsing the result yields the same instant.
func FormatInstant(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func (r TimeRange) String() string {
	return FormatInstant(r.Start) + "/" + FormatInstant(r.End)
}
