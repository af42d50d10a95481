package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxNights bounds a stay; longer requests are treated as unparseable.
const MaxNights = 30

var (
	absolutePattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	durationPattern = regexp.MustCompile(`(\d+)\s*(day|night|ຄືນ|ມື້)`)
)

// Parser extracts a stay from free text: either two absolute DD/MM/YYYY dates or a
// "tomorrow, N nights" phrase.
type Parser struct {
	tomorrowMarkers []string
	now             func() time.Time
}

func NewParser(tomorrowMarkers []string) *Parser {
	markers := make([]string, 0, len(tomorrowMarkers))
	for _, m := range tomorrowMarkers {
		markers = append(markers, strings.ToLower(m))
	}
	return &Parser{tomorrowMarkers: markers, now: time.Now}
}

// WithClock replaces the source of "today".
func (p *Parser) WithClock(now func() time.Time) *Parser {
	p.now = now
	return p
}

// Parse returns the earlier date first. ok is false when the text holds no usable stay,
// including stays longer than MaxNights.
func (p *Parser) Parse(text string) (start, end time.Time, ok bool) {
	if start, end, ok = parseAbsolute(text); ok && withinMaxStay(start, end) {
		return start, end, true
	}
	return p.parseRelative(text)
}

func withinMaxStay(start, end time.Time) bool {
	return !end.After(start.AddDate(0, 0, MaxNights))
}

func parseAbsolute(text string) (time.Time, time.Time, bool) {
	matches := absolutePattern.FindAllStringSubmatch(text, 2)
	if len(matches) < 2 {
		return time.Time{}, time.Time{}, false
	}
	var parsed [2]time.Time
	for i, m := range matches {
		t, err := time.Parse("2-1-2006", m[1]+"-"+m[2]+"-"+m[3])
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		parsed[i] = t
	}
	if parsed[1].Before(parsed[0]) {
		return parsed[1], parsed[0], true
	}
	return parsed[0], parsed[1], true
}

func (p *Parser) parseRelative(text string) (time.Time, time.Time, bool) {
	lower := strings.ToLower(text)
	if !p.mentionsTomorrow(lower) {
		return time.Time{}, time.Time{}, false
	}
	m := durationPattern.FindStringSubmatch(lower)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}
	nights, err := strconv.Atoi(m[1])
	if err != nil || nights < 1 || nights > MaxNights {
		return time.Time{}, time.Time{}, false
	}

	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, 1)
	return start, start.AddDate(0, 0, nights), true
}

func (p *Parser) mentionsTomorrow(lower string) bool {
	for _, marker := range p.tomorrowMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
