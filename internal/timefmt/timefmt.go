// =============================================================================
// SW Maps to Emlid Converter - Time Normalizer
// =============================================================================
//
// This module turns the free-form date/time text found in survey exports into
// the averaging window strings expected by Emlid Flow:
//
//   2024-03-15 10:20:30.000 UTC+01:00
//
// PARSING:
//   - A trailing UTC offset after the time of day is honoured
//     ("Z", "+02", "+0200", "+02:00", optionally preceded by "UTC"/"GMT").
//   - Values without an offset are taken as UTC.
//   - Ambiguous numeric dates are read day-first (dd/mm/yyyy). A date with
//     no valid day-first reading is retried month-first (06/13/2024).
//   - Unparseable values produce an invalid Window, never an error.
//
// =============================================================================

package timefmt

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// AveragingDuration is the length of one averaging epoch. The window end is
// always the start plus this duration.
const AveragingDuration = 4 * time.Second

// OutputLayout renders a timestamp without its zone suffix.
const OutputLayout = "2006-01-02 15:04:05.000"

// =============================================================================
// INPUT LAYOUTS
// =============================================================================

// layouts are tried in order after the offset has been stripped. Year-first
// forms come before day-first ones so that ISO dates are never reinterpreted.
var layouts = []string{
	// ISO-8601 and year-first.
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2T15:04",
	"2006-1-2 15:04",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006.1.2 15:04:05",
	"2006.1.2 15:04",

	// Day-first numeric.
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"2/1/06 15:04:05",
	"2/1/06 15:04",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",

	// Month names.
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2 2006 15:04:05",
	"Mon Jan 2 15:04:05 2006",
	"Mon, 2 Jan 2006 15:04:05",

	// Date only (midnight).
	"2006-1-2",
	"2006/1/2",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2.1.2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// monthFirstLayouts are tried only when every layout above failed, so a
// value reads month-first only when its day-first reading is impossible
// (06/13/2024).
var monthFirstLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
	"1-2-2006 15:04:05",
	"1-2-2006 15:04",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
}

var (
	// offsetRe splits "<datetime> [UTC|GMT] <offset>". A one-digit hour is
	// accepted only after an explicit UTC/GMT prefix ("GMT+2").
	offsetRe = regexp.MustCompile(`(?i)^(.*?)\s*(?:(?:UTC|GMT)\s*([+-]\d{1,2}(?::?\d{2})?)|(Z|[+-]\d{2}(?::?\d{2})?))$`)

	// zoneNameRe matches a bare trailing zone name meaning offset zero.
	zoneNameRe = regexp.MustCompile(`(?i)^(.*?)\s*(?:UTC|GMT)$`)

	// timeOfDayRe guards offset detection so "2024-06-01" keeps its day.
	timeOfDayRe = regexp.MustCompile(`\d:\d{2}`)
)

// =============================================================================
// WINDOW
// =============================================================================

// Window is the averaging interval of one point. An invalid window stands
// for a missing or malformed source timestamp.
type Window struct {
	Start time.Time
	End   time.Time
	Valid bool
}

// NewWindow builds the window starting at start.
func NewWindow(start time.Time) Window {
	return Window{Start: start, End: start.Add(AveragingDuration), Valid: true}
}

// Strings returns the formatted start and end, or two empty strings when
// the window is invalid.
func (w Window) Strings() (string, string) {
	if !w.Valid {
		return "", ""
	}
	return Format(w.Start), Format(w.End)
}

// WindowFor parses raw and returns its averaging window.
func WindowFor(raw string) Window {
	t, ok := Parse(raw)
	if !ok {
		return Window{}
	}
	return NewWindow(t)
}

// Normalize parses raw and returns the formatted averaging start and end.
// Both are empty when raw cannot be parsed.
func Normalize(raw string) (start, end string) {
	return WindowFor(raw).Strings()
}

// =============================================================================
// PARSE / FORMAT
// =============================================================================

// Parse reads raw as a calendar date/time. The returned instant carries the
// source offset as a fixed zone (UTC when the source had none).
func Parse(raw string) (time.Time, bool) {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return time.Time{}, false
	}

	body, offset, ok := splitOffset(s)
	if !ok {
		return time.Time{}, false
	}
	loc := time.FixedZone("", offset)

	// Go only recognises upper-case AM/PM; month names match case-insensitively.
	body = strings.ToUpper(body)

	for _, set := range [][]string{layouts, monthFirstLayouts} {
		for _, layout := range set {
			if t, err := time.ParseInLocation(layout, body, loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// splitOffset strips a trailing zone designator from s and returns the
// offset in seconds east of UTC. ok is false for out-of-range offsets.
func splitOffset(s string) (body string, offset int, ok bool) {
	if m := offsetRe.FindStringSubmatch(s); m != nil && timeOfDayRe.MatchString(m[1]) {
		designator := m[2]
		if designator == "" {
			designator = m[3]
		}
		offset, ok = parseOffset(designator)
		return m[1], offset, ok
	}
	if m := zoneNameRe.FindStringSubmatch(s); m != nil {
		return m[1], 0, true
	}
	return s, 0, true
}

// parseOffset converts "Z", "+2", "+02", "+0200" or "+02:00" to seconds.
func parseOffset(s string) (int, bool) {
	if strings.EqualFold(s, "Z") {
		return 0, true
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}

	hh, mm, found := strings.Cut(s[1:], ":")
	if !found && len(hh) > 2 {
		hh, mm = hh[:len(hh)-2], hh[len(hh)-2:]
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours > 23 {
		return 0, false
	}
	minutes := 0
	if mm != "" {
		minutes, err = strconv.Atoi(mm)
		if err != nil || minutes > 59 {
			return 0, false
		}
	}
	return sign * (hours*3600 + minutes*60), true
}

// Format renders t as "YYYY-MM-DD HH:MM:SS.mmm UTC±HH:MM" in t's own zone.
func Format(t time.Time) string {
	return t.Format(OutputLayout) + " UTC" + t.Format("-07:00")
}
