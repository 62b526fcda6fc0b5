// Package tasks — reference.go renders and parses the "Task #<id>"
// heading. The heading keeps the visible format of the original listings;
// parsing exists only as a fallback for listing messages that predate the
// task_messages mapping table.
package tasks

import (
	"fmt"
	"regexp"
	"strconv"
)

var headingPattern = regexp.MustCompile(`Task #(\d+)`)

// Heading renders the visible task heading.
func Heading(taskID int64) string {
	return fmt.Sprintf("📝 Task #%d", taskID)
}

// ParseHeading extracts the task id from rendered listing text. Returns
// false when the text does not carry a task heading.
func ParseHeading(text string) (int64, bool) {
	m := headingPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
