package tui

import (
	"fmt"
	"strings"

	"github.com/hay-kot/weekplan/internal/core/agenda"
)

// View renders the categorized week.
func (m Model) View() string {
	var b strings.Builder

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if m.query != "" {
		b.WriteString(m.styles.Muted.Render("filter: " + m.query))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Overdue.Render("error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	if len(m.lines) == 0 {
		b.WriteString(m.styles.Muted.Render("nothing planned"))
		b.WriteString("\n")
		return b.String()
	}

	for i, l := range m.lines {
		if l.header {
			if i > 0 {
				b.WriteString("\n")
			}
			name := l.name
			if m.collapsed[l.bucket] {
				name += " " + m.styles.Muted.Render(fmt.Sprintf("(%d hidden)", m.bucketSize(l.bucket)))
			}
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render(name))
			} else {
				b.WriteString(m.styles.Header.Render(name))
			}
			b.WriteString("\n")
			continue
		}

		b.WriteString(m.renderItem(l, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("space done · J/K move · p unpin · tab fold · / search · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderItem(l line, selected bool) string {
	it := l.item

	check := "[ ]"
	if it.Completed() {
		check = "[x]"
	}

	var marks []string
	if it.Task.ManualPosition != nil {
		marks = append(marks, "pin")
	}
	if it.Task.DueTime != nil {
		ms := *it.Task.DueTime
		marks = append(marks, fmt.Sprintf("%02d:%02d", ms/3600000, ms%3600000/60000))
	}
	if it.Task.Recurring {
		marks = append(marks, string(it.Task.Recurrence))
	}

	text := it.Task.Description
	if len(marks) > 0 {
		text += "  " + m.styles.Muted.Render("("+strings.Join(marks, " ")+")")
	}

	row := fmt.Sprintf("  %s %s", check, text)

	switch {
	case selected:
		return m.styles.Selected.Render(row)
	case it.Completed():
		return m.styles.Completed.Render(row)
	case isOverdue(l):
		return m.styles.Overdue.Render(row)
	case it.Task.ManualPosition != nil:
		return m.styles.Pinned.Render(row)
	default:
		return m.styles.Item.Render(row)
	}
}

func (m Model) bucketSize(key agenda.Key) int {
	for _, b := range m.result.Buckets {
		if b.Key() == key {
			return len(b.Items)
		}
	}
	return 0
}

// isOverdue marks day-0 items placed there by a due date, which is
// either today or already past.
func isOverdue(l line) bool {
	if l.bucket.Kind != agenda.KindDay || l.bucket.Offset != 0 {
		return false
	}
	return l.item.Task.DueDate != nil
}
