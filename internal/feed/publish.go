package feed

import (
	"os"
	"regexp"
	"strings"
	"time"

	appLog "chinacal/internal/log"
)

// displayTimeLayout is the human-readable update time embedded in the
// calendar description header.
const displayTimeLayout = "2006-01-02 15:04:05"

var (
	displayTimeRe = regexp.MustCompile(`更新时间(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`)

	// volatileRes match every line that changes between otherwise
	// identical runs and must be ignored when diffing.
	volatileRes = []*regexp.Regexp{
		regexp.MustCompile(`更新时间\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`),
		regexp.MustCompile(`DTSTAMP:.*`),
		regexp.MustCompile(`LAST-MODIFIED:.*`),
		regexp.MustCompile(`CREATED:.*`),
	}
)

func normalize(text string) string {
	for _, re := range volatileRes {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// sameContent reports whether two rendered documents are equal once all
// volatile timestamp fields are stripped.
func sameContent(oldText, newText string) bool {
	if oldText == "" {
		return false
	}
	return normalize(oldText) == normalize(newText)
}

// Publish renders the calendar and writes it to path. When the content is
// unchanged from the previously published document, the previous displayed
// update time is kept, so the timestamp only advances on real changes.
func (c *Calendar) Publish(path string, now time.Time) error {
	display := now.Format(displayTimeLayout)
	fresh := c.Render(display, now)

	oldText := ""
	if data, err := os.ReadFile(path); err == nil {
		oldText = string(data)
	}

	final := fresh
	if sameContent(oldText, fresh) {
		if m := displayTimeRe.FindStringSubmatch(oldText); m != nil {
			final = c.Render(m[1], now)
		}
		appLog.Info("feed unchanged, keeping previous update time", "path", path)
	} else {
		appLog.Info("feed content changed", "path", path, "updated", display)
	}

	return os.WriteFile(path, []byte(final), 0o644)
}
