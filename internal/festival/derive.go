// Package festival derives traditional, dynamic and lunar-calendar
// events over a configured year range, with a persisted cache so the
// expensive day-by-day lunar computation runs only when the range
// changes.
package festival

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"chinacal/internal/feed"
	appLog "chinacal/internal/log"
	"chinacal/internal/lunar"
)

const snapshotLayout = "20060102"

// Deriver computes the traditional events for [StartYear, EndYear]
// inclusive. It keeps all run state on itself; nothing is process-wide.
type Deriver struct {
	StartYear int
	EndYear   int
	Oracle    lunar.Oracle
	CacheFile string

	created   string
	snapshots []Snapshot
	events    []feed.Event
}

// Derive returns all traditional events for the configured range,
// replaying the on-disk cache when it covers exactly the same range and
// recomputing (and overwriting the cache) otherwise.
func (d *Deriver) Derive(now time.Time) []feed.Event {
	d.created = feed.Stamp(now)
	d.snapshots = nil
	d.events = nil

	if cache, err := loadCache(d.CacheFile); err == nil {
		if cache.StartYear == d.StartYear && cache.EndYear == d.EndYear {
			appLog.Info("traditional cache matches, replaying",
				"file", d.CacheFile,
				"start_year", d.StartYear,
				"end_year", d.EndYear,
				"event_count", len(cache.Events),
			)
			for _, snap := range cache.Events {
				d.replay(snap)
			}
			return d.events
		}
		appLog.Info("traditional cache year range changed, recomputing",
			"cached_start", cache.StartYear, "cached_end", cache.EndYear,
			"start_year", d.StartYear, "end_year", d.EndYear,
		)
	} else if !errors.Is(err, fs.ErrNotExist) {
		appLog.Error("traditional cache unreadable, recomputing", err, "file", d.CacheFile)
	}

	appLog.Info("computing traditional events",
		"start_year", d.StartYear, "end_year", d.EndYear)

	for year := d.StartYear; year <= d.EndYear; year++ {
		d.fixedSolar(year)
		d.dynamicSolar(year)
		d.lunarPass(year)
	}

	if err := saveCache(d.CacheFile, &Cache{
		StartYear: d.StartYear,
		EndYear:   d.EndYear,
		Events:    d.snapshots,
	}); err != nil {
		appLog.Error("traditional cache save failed", err, "file", d.CacheFile)
	}

	return d.events
}

// record captures an emission in the cache snapshot list and materializes
// the live event through the same path the replay uses, so fresh and
// replayed runs produce identical feeds.
func (d *Deriver) record(start, end time.Time, summary, description string) {
	d.snapshots = append(d.snapshots, Snapshot{
		Start:       start.Format(snapshotLayout),
		End:         end.Format(snapshotLayout),
		Summary:     summary,
		Description: description,
		AllDay:      true,
	})
	d.emit(start, end, summary, description, true)
}

func (d *Deriver) replay(s Snapshot) {
	start, err := time.Parse(snapshotLayout, s.Start)
	if err != nil {
		appLog.Debug("skipping malformed cache snapshot", "start", s.Start, "summary", s.Summary)
		return
	}
	end, err := time.Parse(snapshotLayout, s.End)
	if err != nil {
		appLog.Debug("skipping malformed cache snapshot", "end", s.End, "summary", s.Summary)
		return
	}
	d.emit(start, end, s.Summary, s.Description, s.AllDay)
}

func (d *Deriver) emit(start, end time.Time, summary, description string, allDay bool) {
	d.events = append(d.events, feed.Event{
		Start:       start,
		End:         end,
		Summary:     summary,
		Description: description,
		AllDay:      allDay,
		UID:         feed.HashUID(start, summary),
		Created:     d.created,
		Status:      feed.StatusConfirmed,
		Transp:      feed.TranspTransparent,
	})
}

// fixedSolar emits the fixed Gregorian festivals for one year. July 1
// keeps its fixed name and, from 1998 on, additionally gets the Hong Kong
// reunification anniversary; December 20 becomes the Macau reunification
// anniversary from 2000 on, falling back to the plain name before that.
func (d *Deriver) fixedSolar(year int) {
	for _, fest := range solarFestivals {
		day, err := time.Parse("2006-01-02", fmt.Sprintf("%d-%s", year, fest.MonthDay))
		if err != nil {
			continue
		}
		next := day.AddDate(0, 0, 1)

		switch fest.MonthDay {
		case "07-01":
			d.record(day, next, fest.Name, "公历节日")
			if n := year - 1997; n > 0 {
				d.record(day, next, fmt.Sprintf("香港回归纪念日(%d周年)", n), "纪念日")
			}
		case "12-20":
			if n := year - 1999; n > 0 {
				d.record(day, next, fmt.Sprintf("澳门回归纪念日(%d周年)", n), "纪念日")
			} else {
				d.record(day, next, fest.Name, "公历节日")
			}
		default:
			d.record(day, next, fest.Name, "公历节日")
		}
	}
}

// dynamicSolar emits the Nth-weekday observances, plus the fixed-offset
// day after Thanksgiving when Thanksgiving exists that year.
func (d *Deriver) dynamicSolar(year int) {
	d.nthWeekdayEvent(year, time.May, time.Sunday, 2, "母亲节")
	d.nthWeekdayEvent(year, time.June, time.Sunday, 3, "父亲节")
	if tg, ok := d.nthWeekdayEvent(year, time.November, time.Thursday, 4, "感恩节"); ok {
		bf := tg.AddDate(0, 0, 1)
		d.record(bf, bf.AddDate(0, 0, 1), "黑色星期五", "商业节日")
	}
}

func (d *Deriver) nthWeekdayEvent(year int, month time.Month, weekday time.Weekday, nth int, name string) (time.Time, bool) {
	day, ok := nthWeekday(year, month, weekday, nth)
	if !ok {
		return time.Time{}, false
	}
	d.record(day, day.AddDate(0, 0, 1), name, "公历动态节日")
	return day, true
}

// nthWeekday returns the nth occurrence of the weekday in the month, or
// false when that occurrence overflows into the next month and therefore
// does not exist.
func nthWeekday(year int, month time.Month, weekday time.Weekday, nth int) (time.Time, bool) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := first.AddDate(0, 0, offset+7*(nth-1))
	if day.Month() != month {
		return time.Time{}, false
	}
	return day, true
}

// lunarPass walks every calendar day of the year, querying the oracle for
// the day and its successor (the lookahead detects lunar new year's eve
// and the cold-food day). The two plum-rain triggers are per-year state:
// 芒种 arms the search for the next 丙-stem day (入梅), 小暑 arms the
// search for the next 未-branch day (出梅).
func (d *Deriver) lunarPass(year int) {
	lookingForRuMei := false
	lookingForChuMei := false

	curr := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	for !curr.After(last) {
		next := curr.AddDate(0, 0, 1)
		today := d.Oracle.Query(curr)
		tomorrow := d.Oracle.Query(next)

		if today.SolarTerm != "" {
			d.record(curr, next, today.SolarTerm, "二十四节气")
			if today.SolarTerm == "芒种" {
				lookingForRuMei = true
			}
			if today.SolarTerm == "小暑" {
				lookingForChuMei = true
			}
		}

		if lookingForRuMei && today.DayStem == "丙" {
			d.record(curr, next, "入梅", "节气民俗")
			lookingForRuMei = false
		}
		if lookingForChuMei && today.DayBranch == "未" {
			d.record(curr, next, "出梅", "节气民俗")
			lookingForChuMei = false
		}

		if today.ShuJiuIndex == 1 && shuJiuNames[today.ShuJiuName] {
			d.record(curr, next, today.ShuJiuName, "节气民俗")
		}

		if today.FuIndex == 1 {
			name := today.FuName
			if name == "初伏" {
				name = "入伏"
			}
			d.record(curr, next, name, "节气民俗")
		}

		if today.LunarDay == 1 {
			switch today.MonthName {
			case "正", "冬", "腊":
				d.record(curr, next, "进入"+today.MonthName+"月", "农历月份")
			}
		}

		if name, ok := lunarFestivals[[2]int{today.LunarMonth, today.LunarDay}]; ok {
			d.record(curr, next, name, "传统节日")
		}

		if tomorrow.SolarTerm == "清明" {
			d.record(curr, next, "寒食节", "传统节日")
		}

		if today.LunarMonth == 1 && today.LunarDay == 1 {
			d.record(curr, next, "春节", "传统节日")
		}
		if tomorrow.LunarMonth == 1 && tomorrow.LunarDay == 1 {
			d.record(curr, next, "除夕", "传统节日")
		}

		curr = next
	}
}
