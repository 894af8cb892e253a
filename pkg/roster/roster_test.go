package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"9:10AM", 9*60 + 10},
		{"09:10", 9*60 + 10},
		{"1:30PM", 13*60 + 30},
		{"1:30 pm", 13*60 + 30},
		{"13:30", 13*60 + 30},
		{"12:10PM", 12*60 + 10},
		{"12:05AM", 5},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "noon", "25:00", "9:75", "9"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestMapTimeBlock(t *testing.T) {
	block, err := MapTimeBlock("9:10AM", "11:05AM")
	require.NoError(t, err)
	assert.Equal(t, models.BlockMorning, block)

	// A sub-range inside a block maps to that block.
	block, err = MapTimeBlock("11:30", "12:30")
	require.NoError(t, err)
	assert.Equal(t, models.BlockMidday, block)

	block, err = MapTimeBlock("1:30PM", "2:20PM")
	require.NoError(t, err)
	assert.Equal(t, models.BlockAfternoon, block)

	// Straddles two blocks: no mapping.
	_, err = MapTimeBlock("10:00", "12:00")
	assert.Error(t, err)

	// Ends before it starts.
	_, err = MapTimeBlock("11:00", "10:00")
	assert.Error(t, err)
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"1", "y", "Yes", "TRUE", "t", "x", "✓", "Available", " avail "} {
		assert.True(t, Truthy(v), v)
	}
	for _, v := range []string{"", "0", "no", "n", "false", "-"} {
		assert.False(t, Truthy(v), v)
	}
}

const courseCSV = `Course,Section,Days,StartTime,EndTime,Room,Min # of SPTs Required
CS101,01,MWF,9:10AM,11:05AM,Room 4,2
CS202,02,TTh,11:20AM,1:15PM,Room 7,3
MATH1,01,MWF,1:30PM,2:20PM,Lab 2,
`

func TestParseCourses(t *testing.T) {
	sessions, err := ParseCourses(strings.NewReader(courseCSV))
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	assert.Equal(t, models.BlockMorning, sessions[0].TimeBlock)
	assert.Equal(t, "CS101", sessions[0].Course)
	assert.Equal(t, 2, sessions[0].MinRequired)
	assert.Equal(t, SessionID(models.BlockMorning, "CS101", "01"), sessions[0].ID)

	assert.Equal(t, models.BlockMidday, sessions[1].TimeBlock)
	assert.Equal(t, 3, sessions[1].MinRequired)

	// Blank minimum falls back to 1; the engine clamps it upward later.
	assert.Equal(t, 1, sessions[2].MinRequired)
}

func TestParseCoursesUnmappedBlockFails(t *testing.T) {
	bad := `Course,Section,Days,StartTime,EndTime,Room,Min # of SPTs Required
CS101,01,MWF,8:00AM,10:00AM,Room 4,2
`
	_, err := ParseCourses(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CS101")
}

func TestParseCoursesMissingColumns(t *testing.T) {
	_, err := ParseCourses(strings.NewReader("Course,Section\nCS101,01\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")

	_, err = ParseCourses(strings.NewReader("Course,Section,Days,StartTime,EndTime,Room,Min # of SPTs Required\n"))
	assert.Error(t, err, "empty roster")
}

const staffCSV = `Name:,Partner Preference 1:,Partner Preference 2:,Partner Preference 3:,1st Choice,2nd Choice,9:10AM-11:05AM,11:20AM-1:15PM,1:30PM-2:20PM,Veteran?
Ann Lee ,Bob Ray,,,CS101,CS202,Y,✓,,Yes
Bob Ray,Ann Lee,Cai Wu,,CS202,,x,,1,
,,,,,,,,,
Cai Wu,,,,MATH1,CS101,,true,available,no
`

func TestParseStaff(t *testing.T) {
	staff, err := ParseStaff(strings.NewReader(staffCSV))
	require.NoError(t, err)
	require.Len(t, staff, 3, "blank-name row dropped")

	ann := staff[0]
	assert.Equal(t, "Ann Lee", ann.ID, "name trimmed into the id")
	assert.Equal(t, []string{"Bob Ray"}, ann.PartnerPrefs)
	assert.Equal(t, []string{"CS101", "CS202"}, ann.CoursePrefs)
	assert.Equal(t, []models.TimeBlock{models.BlockMorning, models.BlockMidday}, ann.Availability)
	assert.True(t, ann.Veteran)

	bob := staff[1]
	assert.Equal(t, []string{"Ann Lee", "Cai Wu"}, bob.PartnerPrefs)
	assert.Equal(t, []models.TimeBlock{models.BlockMorning, models.BlockAfternoon}, bob.Availability)
	assert.False(t, bob.Veteran)

	cai := staff[2]
	assert.Equal(t, []models.TimeBlock{models.BlockMidday, models.BlockAfternoon}, cai.Availability)
	assert.False(t, cai.Veteran)
}

func TestParseStaffMissingColumns(t *testing.T) {
	_, err := ParseStaff(strings.NewReader("Name:,Veteran?\nAnn,Y\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestParseStaffNoAvailabilityColumns(t *testing.T) {
	header := strings.Join(staffColumns, ",")
	_, err := ParseStaff(strings.NewReader(header + "\nAnn,,,,,,N\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no availability columns")
}
