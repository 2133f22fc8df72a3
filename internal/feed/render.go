package feed

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// foldWidth is the column at which long content lines are folded with a
// single-space continuation marker.
const foldWidth = 50

// Calendar accumulates the events of one run and renders the published
// document.
type Calendar struct {
	StartYear int
	EndYear   int
	Events    []Event
}

// Add appends events to the calendar.
func (c *Calendar) Add(events ...Event) {
	c.Events = append(c.Events, events...)
}

// Render serializes the calendar with the given human-readable update time
// embedded in the header and now as the DTSTAMP/LAST-MODIFIED instant.
// Events are sorted chronologically; ties keep insertion order.
func (c *Calendar) Render(displayTime string, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"PRODID:" + ProductID,
		"VERSION:2.0",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:中国节假日",
		"X-WR-TIMEZONE:" + TimezoneID,
		fmt.Sprintf("X-WR-CALDESC:%d~%d年中国放假、调休和补班日历 更新时间%s", c.StartYear, c.EndYear, displayTime),
		"REFRESH-INTERVAL;VALUE=DURATION:PT24H",
		"X-PUBLISHED-TTL:PT24H",
		"X-APPLE-CALENDAR-COLOR:#E62325",
		"BEGIN:VTIMEZONE",
		"TZID:" + TimezoneID,
		"X-LIC-LOCATION:" + TimezoneID,
		"BEGIN:STANDARD",
		"TZOFFSETFROM:+0800",
		"TZOFFSETTO:+0800",
		"TZNAME:CST",
		"DTSTART:19700101T000000",
		"END:STANDARD",
		"END:VTIMEZONE",
	}

	events := make([]Event, len(c.Events))
	copy(events, c.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].dtstart() < events[j].dtstart()
	})

	stamp := Stamp(now)

	for _, ev := range events {
		lines = append(lines, "BEGIN:VEVENT")
		if ev.AllDay {
			lines = append(lines,
				"DTSTART;VALUE=DATE:"+formatDate(ev.Start, true),
				"DTEND;VALUE=DATE:"+formatDate(ev.End, true),
			)
		} else {
			lines = append(lines,
				"DTSTART;TZID="+TimezoneID+":"+formatDate(ev.Start, false),
				"DTEND;TZID="+TimezoneID+":"+formatDate(ev.End, false),
			)
		}

		lines = append(lines,
			"DTSTAMP:"+stamp,
			"UID:"+ev.UID,
			"CREATED:"+ev.Created,
		)
		if ev.Description != "" {
			lines = append(lines, foldLine("DESCRIPTION:"+ev.Description))
		}
		lines = append(lines,
			"LAST-MODIFIED:"+stamp,
			"STATUS:"+ev.Status,
			foldLine("SUMMARY:"+ev.Summary),
			"TRANSP:"+ev.Transp,
		)

		if ev.Alarm != "" {
			lines = append(lines,
				"BEGIN:VALARM",
				"TRIGGER:-P1D",
				"ACTION:DISPLAY",
				foldLine("DESCRIPTION:"+ev.Alarm),
				"END:VALARM",
			)
		}

		lines = append(lines, "END:VEVENT")
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

// foldLine folds a long content line at foldWidth characters, prefixing
// continuation lines with one space. Counting is by character so CJK text
// folds the same way regardless of encoding width.
func foldLine(s string) string {
	runes := []rune(s)
	var parts []string
	for len(runes) > foldWidth {
		parts = append(parts, string(runes[:foldWidth]))
		runes = append([]rune{' '}, runes[foldWidth:]...)
	}
	parts = append(parts, string(runes))
	return strings.Join(parts, "\r\n")
}
