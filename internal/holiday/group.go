// Package holiday turns the statutory holiday/workday dataset into
// calendar events: per-name groups, consecutive-day blocks, and the
// compensatory workdays attached to each block.
package holiday

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"chinacal/internal/dataset"
	"chinacal/internal/feed"
	appLog "chinacal/internal/log"
)

const dateLayout = "2006-01-02"

// Group collects every dataset entry sharing one display name. Two
// physically distinct periods under the same name (possible across years)
// merge into one group with multiple blocks.
type Group struct {
	Name     string
	Holidays []time.Time
	Workdays []time.Time
}

// GroupByName merges the dataset's holiday and workday entries into
// per-name groups with deduplicated, sorted date lists. Groups come back
// ordered by name so every downstream step is deterministic. Entries with
// malformed dates or no display name are skipped.
func GroupByName(doc *dataset.Document) []Group {
	byName := make(map[string]*Group)

	collect := func(entries map[string]dataset.Entry, workday bool) {
		for raw, entry := range entries {
			if entry.Name == "" {
				continue
			}
			day, err := time.Parse(dateLayout, raw)
			if err != nil {
				appLog.Debug("skipping malformed dataset date", "date", raw, "name", entry.Name)
				continue
			}
			g := byName[entry.Name]
			if g == nil {
				g = &Group{Name: entry.Name}
				byName[entry.Name] = g
			}
			if workday {
				g.Workdays = append(g.Workdays, day)
			} else {
				g.Holidays = append(g.Holidays, day)
			}
		}
	}
	collect(doc.Holidays, false)
	collect(doc.Workdays, true)

	groups := make([]Group, 0, len(byName))
	for _, g := range byName {
		g.Holidays = sortedUnique(g.Holidays)
		g.Workdays = sortedUnique(g.Workdays)
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups
}

// ConsecutiveBlocks splits the dates into maximal runs of consecutive
// days: a new block starts whenever the gap to the previous date is not
// exactly one day. Singletons are blocks too.
func ConsecutiveBlocks(dates []time.Time) [][]time.Time {
	if len(dates) == 0 {
		return nil
	}
	sorted := sortedUnique(dates)

	var blocks [][]time.Time
	current := []time.Time{sorted[0]}
	for _, d := range sorted[1:] {
		if d.Sub(current[len(current)-1]) == 24*time.Hour {
			current = append(current, d)
		} else {
			blocks = append(blocks, current)
			current = []time.Time{d}
		}
	}
	return append(blocks, current)
}

// Events expands holiday groups into one all-day event per consecutive
// block plus one timed 09:00–18:00 compensatory-workday event per workday
// found within windowDays around the block.
func Events(groups []Group, windowDays int, now time.Time) []feed.Event {
	stamp := feed.Stamp(now)

	var events []feed.Event
	for _, g := range groups {
		for _, block := range ConsecutiveBlocks(g.Holidays) {
			start := block[0]
			end := block[len(block)-1]

			var workdays []time.Time
			lo := start.AddDate(0, 0, -windowDays)
			hi := end.AddDate(0, 0, windowDays)
			for _, wd := range g.Workdays {
				if !wd.Before(lo) && !wd.After(hi) {
					workdays = append(workdays, wd)
				}
			}

			desc := blockDescription(g.Name, block, workdays)

			events = append(events, feed.Event{
				Start:       start,
				End:         end.AddDate(0, 0, 1),
				Summary:     g.Name + " 假期",
				Description: desc,
				AllDay:      true,
				UID:         feed.UID(start, "holiday_block"),
				Created:     stamp,
				Status:      feed.StatusConfirmed,
				Transp:      feed.TranspTransparent,
			})

			for i, wd := range workdays {
				summary := g.Name + " 补班"
				events = append(events, feed.Event{
					Start:       wd.Add(9 * time.Hour),
					End:         wd.Add(18 * time.Hour),
					Summary:     summary,
					Description: desc,
					UID:         feed.UID(wd, fmt.Sprintf("work_%d", i)),
					Created:     stamp,
					Status:      feed.StatusTentative,
					Transp:      feed.TranspOpaque,
					Alarm:       "补班提醒：" + summary,
				})
			}
		}
	}
	return events
}

// weekdayNames is indexed by time.Weekday (Sunday first).
var weekdayNames = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

func weekName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// blockDescription builds the human-readable text shared by a block event
// and its compensatory-workday events, e.g.
// "国庆节：10月1日（周三）至3日（周五）放假调休，共3天。 9月28日（周日）上班。"
func blockDescription(name string, block, workdays []time.Time) string {
	if len(block) == 0 {
		return ""
	}
	start := block[0]
	end := block[len(block)-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s：%d月%d日（%s）", name, int(start.Month()), start.Day(), weekName(start))
	if len(block) > 1 {
		fmt.Fprintf(&b, "至%d日（%s）放假调休", end.Day(), weekName(end))
	} else {
		b.WriteString("放假")
	}
	fmt.Fprintf(&b, "，共%d天。", len(block))

	if len(workdays) > 0 {
		parts := make([]string, 0, len(workdays))
		for _, wd := range workdays {
			parts = append(parts, fmt.Sprintf("%d月%d日（%s）", int(wd.Month()), wd.Day(), weekName(wd)))
		}
		b.WriteString(" " + strings.Join(parts, "、") + "上班。")
	}
	return b.String()
}

func sortedUnique(dates []time.Time) []time.Time {
	if len(dates) == 0 {
		return dates
	}
	out := make([]time.Time, len(dates))
	copy(out, dates)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	dedup := out[:1]
	for _, d := range out[1:] {
		if !d.Equal(dedup[len(dedup)-1]) {
			dedup = append(dedup, d)
		}
	}
	return dedup
}
