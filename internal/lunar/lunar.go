// Package lunar wraps the traditional-calendar library behind one
// immutable per-date value, keeping the rest of the code off the library
// API and letting tests substitute a scripted oracle.
package lunar

import (
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// DayInfo is the full set of traditional-calendar attributes for one
// solar date.
type DayInfo struct {
	// LunarMonth is the lunar month number; leap months are negative,
	// which keeps them out of the fixed festival tables.
	LunarMonth int
	LunarDay   int

	// MonthName is the Chinese lunar month name (正, 二, ... 冬, 腊).
	MonthName string

	// SolarTerm is the solar term falling on this day, empty otherwise.
	SolarTerm string

	// DayStem and DayBranch name the day in the sexagenary cycle.
	DayStem   string
	DayBranch string

	// FuIndex is the 1-based day index within the current fu (dog days)
	// sub-period, 0 outside the fu season.
	FuIndex int
	FuName  string

	// ShuJiuIndex is the 1-based day index within the current nine-day
	// winter period, 0 outside the shu-jiu season.
	ShuJiuIndex int
	ShuJiuName  string
}

// Oracle resolves a solar date to its traditional-calendar attributes.
// Implementations must behave as pure functions of the date.
type Oracle interface {
	Query(t time.Time) DayInfo
}

// Calendar is the production Oracle backed by 6tail/lunar-go.
type Calendar struct{}

func (Calendar) Query(t time.Time) DayInfo {
	solar := calendar.NewSolarFromYmd(t.Year(), int(t.Month()), t.Day())
	l := solar.GetLunar()

	info := DayInfo{
		LunarMonth: l.GetMonth(),
		LunarDay:   l.GetDay(),
		MonthName:  l.GetMonthInChinese(),
		SolarTerm:  l.GetJieQi(),
		DayStem:    l.GetDayGan(),
		DayBranch:  l.GetDayZhi(),
	}

	if fu := l.GetFu(); fu != nil {
		info.FuIndex = fu.GetIndex()
		info.FuName = fu.GetName()
	}
	if sj := l.GetShuJiu(); sj != nil {
		info.ShuJiuIndex = sj.GetIndex()
		info.ShuJiuName = sj.GetName()
	}

	return info
}
