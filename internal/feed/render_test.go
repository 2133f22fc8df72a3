package feed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderNow = time.Date(2025, 9, 1, 4, 30, 0, 0, time.UTC)

func testCalendar() *Calendar {
	cal := &Calendar{StartYear: 2025, EndYear: 2050}
	cal.Add(
		// Deliberately out of order; Render must sort chronologically.
		Event{
			Start:   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			End:     time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
			Summary: "国庆节 假期",
			Description: "国庆节：10月1日（周三）至3日（周五）放假调休，共3天。" +
				" 9月28日（周日）上班。",
			AllDay:  true,
			UID:     "20251001_holiday_block@365day.top",
			Created: Stamp(renderNow),
			Status:  StatusConfirmed,
			Transp:  TranspTransparent,
		},
		Event{
			Start:       time.Date(2025, 9, 28, 9, 0, 0, 0, time.UTC),
			End:         time.Date(2025, 9, 28, 18, 0, 0, 0, time.UTC),
			Summary:     "国庆节 补班",
			Description: "调休安排",
			UID:         "20250928_work_0@365day.top",
			Created:     Stamp(renderNow),
			Status:      StatusTentative,
			Transp:      TranspOpaque,
			Alarm:       "补班提醒：国庆节 补班",
		},
		Event{
			Start:   time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC),
			End:     time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
			Summary: "春节",
			AllDay:  true,
			UID:     HashUID(time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC), "春节"),
			Created: Stamp(renderNow),
			Status:  StatusConfirmed,
			Transp:  TranspTransparent,
		},
	)
	return cal
}

func TestRenderStructure(t *testing.T) {
	text := testCalendar().Render("2025-09-01 12:30:00", renderNow)

	assert.True(t, strings.HasPrefix(text, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(text, "END:VCALENDAR"))
	assert.NotContains(t, text, "\n\n")

	for _, line := range []string{
		"PRODID:" + ProductID,
		"X-WR-CALNAME:中国节假日",
		"X-WR-TIMEZONE:Asia/Shanghai",
		"REFRESH-INTERVAL;VALUE=DURATION:PT24H",
		"BEGIN:VTIMEZONE",
		"TZID:Asia/Shanghai",
		"TZOFFSETFROM:+0800",
		"TZOFFSETTO:+0800",
		"TZNAME:CST",
		"DTSTART:19700101T000000",
		"END:VTIMEZONE",
	} {
		assert.Contains(t, text, line+"\r\n")
	}

	assert.Contains(t, text, "更新时间2025-09-01 12:30:00")
	assert.Contains(t, text, "DTSTAMP:20250901T043000Z\r\n")
	assert.Contains(t, text, "LAST-MODIFIED:20250901T043000Z\r\n")
}

func TestRenderEventFormats(t *testing.T) {
	text := testCalendar().Render("2025-09-01 12:30:00", renderNow)

	// All-day events use date-only values.
	assert.Contains(t, text, "DTSTART;VALUE=DATE:20251001\r\n")
	assert.Contains(t, text, "DTEND;VALUE=DATE:20251004\r\n")

	// Timed events carry the fixed zone.
	assert.Contains(t, text, "DTSTART;TZID=Asia/Shanghai:20250928T090000\r\n")
	assert.Contains(t, text, "DTEND;TZID=Asia/Shanghai:20250928T180000\r\n")

	// Exactly one VALARM, attached to the compensatory workday.
	assert.Equal(t, 1, strings.Count(text, "BEGIN:VALARM"))
	assert.Contains(t, text, "TRIGGER:-P1D\r\nACTION:DISPLAY\r\nDESCRIPTION:补班提醒：国庆节 补班\r\nEND:VALARM")
}

func TestRenderSortsByStart(t *testing.T) {
	text := testCalendar().Render("2025-09-01 12:30:00", renderNow)

	newYear := strings.Index(text, "UID:20250129_")
	workday := strings.Index(text, "UID:20250928_work_0")
	block := strings.Index(text, "UID:20251001_holiday_block")

	require.NotEqual(t, -1, newYear)
	require.NotEqual(t, -1, workday)
	require.NotEqual(t, -1, block)
	assert.Less(t, newYear, workday)
	assert.Less(t, workday, block)
}

func TestRenderOutputParsesAsICalendar(t *testing.T) {
	text := testCalendar().Render("2025-09-01 12:30:00", renderNow)

	parsed, err := ical.ParseCalendar(bytes.NewReader([]byte(text)))
	require.NoError(t, err)
	require.Len(t, parsed.Events(), 3)

	uids := make(map[string]bool)
	for _, ev := range parsed.Events() {
		prop := ev.GetProperty(ical.ComponentPropertyUniqueId)
		require.NotNil(t, prop)
		uids[prop.Value] = true
	}
	assert.True(t, uids["20251001_holiday_block@365day.top"])
	assert.True(t, uids["20250928_work_0@365day.top"])
}

func TestFoldLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "short line unchanged",
			in:   "SUMMARY:春节",
			want: "SUMMARY:春节",
		},
		{
			name: "exactly at width unchanged",
			in:   strings.Repeat("a", 50),
			want: strings.Repeat("a", 50),
		},
		{
			name: "one fold",
			in:   strings.Repeat("a", 60),
			want: strings.Repeat("a", 50) + "\r\n " + strings.Repeat("a", 10),
		},
		{
			name: "two folds, continuation space counts toward width",
			in:   strings.Repeat("a", 120),
			want: strings.Repeat("a", 50) + "\r\n " + strings.Repeat("a", 49) + "\r\n " + strings.Repeat("a", 21),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, foldLine(tt.in))
		})
	}
}

// Folding must count characters, not bytes, so multi-byte CJK text is
// never split mid-rune.
func TestFoldLineCJK(t *testing.T) {
	in := "DESCRIPTION:" + strings.Repeat("假", 60)
	out := foldLine(in)

	lines := strings.Split(out, "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 50, len([]rune(lines[0])))
	assert.True(t, strings.HasPrefix(lines[1], " "))
	assert.Equal(t, in, lines[0]+lines[1][1:], "unfolding restores the original")
}

func TestUIDHelpers(t *testing.T) {
	day := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "20251001_holiday_block@365day.top", UID(day, "holiday_block"))

	hashed := HashUID(day, "国庆节")
	assert.Regexp(t, `^20251001_[0-9a-f]{12}@365day\.top$`, hashed)
	assert.Equal(t, hashed, HashUID(day, "国庆节"), "same inputs, same UID")
	assert.NotEqual(t, hashed, HashUID(day, "中秋节"))
}
