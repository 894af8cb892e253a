package roster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

// blockInterval is a canonical block's span in minutes since midnight.
type blockInterval struct {
	block      models.TimeBlock
	start, end int
}

var blockIntervals = []blockInterval{
	{models.BlockMorning, 9*60 + 10, 11*60 + 5},
	{models.BlockMidday, 11*60 + 20, 13*60 + 15},
	{models.BlockAfternoon, 13*60 + 30, 14*60 + 20},
}

// ParseClock converts a wall-clock string to minutes since midnight.
// Accepts both 12-hour roster formats ("9:10AM", "1:30 PM") and 24-hour
// ("09:10", "13:30").
func ParseClock(s string) (int, error) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	pm := strings.HasSuffix(s, "PM")
	am := strings.HasSuffix(s, "AM")
	if pm || am {
		s = s[:len(s)-2]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}
	return hour*60 + minute, nil
}

// MapTimeBlock maps a raw start/end pair onto the canonical block whose
// interval contains it. A range that fits no block is a mapping error the
// caller surfaces before the engine runs.
func MapTimeBlock(start, end string) (models.TimeBlock, error) {
	s, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	e, err := ParseClock(end)
	if err != nil {
		return "", err
	}
	if e <= s {
		return "", fmt.Errorf("time range %s-%s ends before it starts", start, end)
	}
	for _, iv := range blockIntervals {
		if s >= iv.start && e <= iv.end {
			return iv.block, nil
		}
	}
	return "", fmt.Errorf("time range %s-%s falls in no canonical block", start, end)
}

// MapTimeRange maps a combined "start-end" label, the form availability
// column headers use.
func MapTimeRange(label string) (models.TimeBlock, error) {
	parts := strings.SplitN(strings.TrimSpace(label), "-", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time range %q", label)
	}
	return MapTimeBlock(parts[0], parts[1])
}
