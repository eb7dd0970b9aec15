package query

import (
	"fmt"
	"time"

	"github.com/vegasq/kqlplay/reader"
	"github.com/vegasq/kqlplay/table"
)

// Date/Time Functions

// timeArg accepts a datetime value or text in any supported layout.
func timeArg(fn string, v table.Value) (time.Time, error) {
	if t, ok := v.AsTime(); ok {
		return t, nil
	}
	if s, ok := v.AsString(); ok {
		t, err := reader.ParseDateTime(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", fn, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s: %w: expected datetime, got %s", fn, ErrOperandType, v.Kind())
}

// durationArg accepts a duration value or timespan text.
func durationArg(fn string, v table.Value) (time.Duration, error) {
	if d, ok := v.AsDuration(); ok {
		return d, nil
	}
	if s, ok := v.AsString(); ok {
		d, err := table.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", fn, err)
		}
		return d, nil
	}
	return 0, fmt.Errorf("%s: %w: expected timespan, got %s", fn, ErrOperandType, v.Kind())
}

// NowFunc returns the current UTC time. Clock overrides time.Now when set.
type NowFunc struct {
	Clock func() time.Time
}

func (f *NowFunc) Name() string  { return "now" }
func (f *NowFunc) MinArity() int { return 0 }
func (f *NowFunc) MaxArity() int { return 0 }
func (f *NowFunc) Evaluate(args []table.Value) (table.Value, error) {
	return table.DateTime(f.now()), nil
}

func (f *NowFunc) now() time.Time {
	if f.Clock != nil {
		return f.Clock().UTC()
	}
	return time.Now().UTC()
}

// AgoFunc subtracts a timespan from the current UTC time
type AgoFunc struct {
	Clock func() time.Time
}

func (f *AgoFunc) Name() string  { return "ago" }
func (f *AgoFunc) MinArity() int { return 1 }
func (f *AgoFunc) MaxArity() int { return 1 }
func (f *AgoFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.Null(), nil
	}
	d, err := durationArg("ago", args[0])
	if err != nil {
		return table.Null(), err
	}
	now := (&NowFunc{Clock: f.Clock}).now()
	return table.DateTime(now.Add(-d)), nil
}

// ToDateTimeFunc converts a value to datetime; unparsable text yields null
type ToDateTimeFunc struct{}

func (f *ToDateTimeFunc) Name() string  { return "todatetime" }
func (f *ToDateTimeFunc) MinArity() int { return 1 }
func (f *ToDateTimeFunc) MaxArity() int { return 1 }
func (f *ToDateTimeFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.Null(), nil
	}
	t, err := timeArg("todatetime", args[0])
	if err != nil {
		return table.Null(), nil
	}
	return table.DateTime(t), nil
}

// ToTimespanFunc converts a value to a timespan; unparsable text yields null
type ToTimespanFunc struct{}

func (f *ToTimespanFunc) Name() string  { return "totimespan" }
func (f *ToTimespanFunc) MinArity() int { return 1 }
func (f *ToTimespanFunc) MaxArity() int { return 1 }
func (f *ToTimespanFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.Null(), nil
	}
	d, err := durationArg("totimespan", args[0])
	if err != nil {
		return table.Null(), nil
	}
	return table.Duration(d), nil
}

// StartOfDayFunc truncates a datetime to midnight of the same day
type StartOfDayFunc struct{}

func (f *StartOfDayFunc) Name() string  { return "startofday" }
func (f *StartOfDayFunc) MinArity() int { return 1 }
func (f *StartOfDayFunc) MaxArity() int { return 1 }
func (f *StartOfDayFunc) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.Null(), nil
	}
	t, err := timeArg("startofday", args[0])
	if err != nil {
		return table.Null(), err
	}
	y, m, d := t.Date()
	return table.DateTime(time.Date(y, m, d, 0, 0, 0, 0, t.Location())), nil
}

// datePart extracts one integer component of a datetime.
type datePart struct {
	name string
	part func(time.Time) int
}

func (f *datePart) Name() string  { return f.name }
func (f *datePart) MinArity() int { return 1 }
func (f *datePart) MaxArity() int { return 1 }
func (f *datePart) Evaluate(args []table.Value) (table.Value, error) {
	if args[0].IsNull() {
		return table.Null(), nil
	}
	t, err := timeArg(f.name, args[0])
	if err != nil {
		return table.Null(), err
	}
	return table.Int32(int32(f.part(t))), nil
}

// GetYearFunc returns the year of a datetime
func GetYearFunc() Function {
	return &datePart{name: "getyear", part: func(t time.Time) int { return t.Year() }}
}

// GetMonthFunc returns the month number (1-12) of a datetime
func GetMonthFunc() Function {
	return &datePart{name: "getmonth", part: func(t time.Time) int { return int(t.Month()) }}
}

// DayOfMonthFunc returns the day of the month of a datetime
func DayOfMonthFunc() Function {
	return &datePart{name: "dayofmonth", part: func(t time.Time) int { return t.Day() }}
}

// HourOfDayFunc returns the hour (0-23) of a datetime
func HourOfDayFunc() Function {
	return &datePart{name: "hourofday", part: func(t time.Time) int { return t.Hour() }}
}
