package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"task-list/internal/config"
	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/storage"
	"task-list/internal/view"
)

// Output formats understood by the list command
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

const (
	shortIDLength    = 8
	progressBarWidth = 20
	emptyListMessage = "No tasks yet. Add your first task to get started"
	noMatchesMessage = "No tasks match the current filter"
)

var (
	colorHigh   = lipgloss.Color("#E74C3C")
	colorMedium = lipgloss.Color("#3498DB")
	colorLow    = lipgloss.Color("#2ECC71")
	colorMuted  = lipgloss.Color("#7F8C8D")
	colorWarn   = lipgloss.Color("#F4D03F")
)

type styles struct {
	high      lipgloss.Style
	medium    lipgloss.Style
	low       lipgloss.Style
	completed lipgloss.Style
	overdue   lipgloss.Style
	dueSoon   lipgloss.Style
	title     lipgloss.Style
	bar       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		high:      r.NewStyle().Foreground(colorHigh).Bold(true),
		medium:    r.NewStyle().Foreground(colorMedium),
		low:       r.NewStyle().Foreground(colorLow),
		completed: r.NewStyle().Foreground(colorMuted).Strikethrough(true),
		overdue:   r.NewStyle().Foreground(colorHigh),
		dueSoon:   r.NewStyle().Foreground(colorWarn),
		title:     r.NewStyle().Bold(true),
		bar:       r.NewStyle().Foreground(colorLow),
	}
}

// Renderer writes tasks and statistics for people and for other programs.
type Renderer struct {
	out        io.Writer
	dateFormat string
	color      bool
	now        time.Time
	styles     styles
}

// NewRenderer creates a renderer writing to out. Colour is used only when
// enabled in display and out is a terminal.
func NewRenderer(out io.Writer, display config.DisplayConfig, now time.Time) *Renderer {
	return &Renderer{
		out:        out,
		dateFormat: display.DateFormat,
		color:      display.Color && isTerminal(out),
		now:        now,
		styles:     newStyles(lipgloss.NewRenderer(out)),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Message writes a line of plain text.
func (r *Renderer) Message(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Tasks writes tasks in the given format. total is the size of the whole
// collection and picks the empty-state message for table output.
func (r *Renderer) Tasks(tasks []domain.Task, total int, format string) error {
	switch format {
	case FormatTable, "":
		r.table(tasks, total)
		return nil
	case FormatCSV:
		return r.csv(tasks)
	case FormatJSON:
		return r.json(tasks)
	}
	return errors.NewInvalidInputError("format", format, "must be one of table, csv, json")
}

func (r *Renderer) table(tasks []domain.Task, total int) {
	if len(tasks) == 0 {
		if total == 0 {
			r.Message(emptyListMessage)
		} else {
			r.Message(noMatchesMessage)
		}
		return
	}

	for _, task := range tasks {
		fmt.Fprintln(r.out, r.taskLine(task))
	}
}

func (r *Renderer) taskLine(task domain.Task) string {
	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	text := task.Text
	if task.Completed {
		text = r.paint(r.styles.completed, text)
	}

	line := fmt.Sprintf("%s %-*s %s %s",
		checkbox, shortIDLength, shortID(task.ID), r.priorityBadge(task), text)
	if due := r.dueLabel(task); due != "" {
		line += "  " + due
	}
	return line
}

// priorityBadge pads before painting so escape codes do not affect alignment.
func (r *Renderer) priorityBadge(task domain.Task) string {
	badge := fmt.Sprintf("%-6s", task.Priority.Label())
	if task.Completed {
		return r.paint(r.styles.completed, badge)
	}
	switch task.Priority {
	case domain.PriorityHigh:
		return r.paint(r.styles.high, badge)
	case domain.PriorityMedium:
		return r.paint(r.styles.medium, badge)
	case domain.PriorityLow:
		return r.paint(r.styles.low, badge)
	}
	return badge
}

func (r *Renderer) dueLabel(task domain.Task) string {
	if task.DueDate == nil {
		return ""
	}

	label := fmt.Sprintf("due %s (%s)", task.DueDate.Format(r.dateFormat), relativeDay(*task.DueDate, r.now))
	switch {
	case task.IsOverdue(r.now):
		return r.paint(r.styles.overdue, label+" overdue")
	case task.IsDueSoon(r.now):
		return r.paint(r.styles.dueSoon, label)
	case task.Completed:
		return r.paint(r.styles.completed, label)
	}
	return label
}

// Slots writes one line per slot with its size and age. The current slot is
// marked with an asterisk.
func (r *Renderer) Slots(infos []storage.SlotInfo, current string) {
	width := 0
	for _, info := range infos {
		width = max(width, len(info.Name))
	}

	for _, info := range infos {
		marker := " "
		if info.Name == current {
			marker = "*"
		}
		updated := "never written"
		if !info.UpdatedAt.IsZero() {
			updated = "updated " + humanize.RelTime(info.UpdatedAt, r.now, "ago", "from now")
		} else if info.Size > 0 {
			updated = "-"
		}

		line := fmt.Sprintf("%s %-*s %8s  %s", marker, width, info.Name, humanize.Bytes(uint64(info.Size)), updated)
		if info.Name == current {
			line = r.paint(r.styles.title, line)
		}
		fmt.Fprintln(r.out, line)
	}
}

// relativeDay describes a calendar date relative to the day of now.
func relativeDay(due, now time.Time) string {
	today := domain.DateOnly(now)
	day := domain.DateOnly(due)

	switch {
	case day.Equal(today):
		return "today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "tomorrow"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "yesterday"
	}
	return humanize.RelTime(day, today, "ago", "from now")
}

func (r *Renderer) csv(tasks []domain.Task) error {
	writer := csv.NewWriter(r.out)

	header := []string{"ID", "Text", "Completed", "Priority", "Due Date", "Created At"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		var due string
		if task.DueDate != nil {
			due = task.DueDate.Format(dueDateLayout)
		}
		row := []string{
			task.ID,
			task.Text,
			strconv.FormatBool(task.Completed),
			string(task.Priority),
			due,
			task.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (r *Renderer) json(tasks []domain.Task) error {
	records := domain.NewTaskMapper().ToRecordSlice(tasks)
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// Stats writes the completion summary. Nothing is written for an empty collection.
func (r *Renderer) Stats(stats view.Statistics) {
	if stats.IsEmpty() {
		return
	}

	fmt.Fprintln(r.out, r.paint(r.styles.title, fmt.Sprintf("%d of %d tasks completed (%d%%)",
		stats.CompletedCount, stats.TotalCount, stats.CompletionPercentage)))
	fmt.Fprintln(r.out, r.progressBar(stats.CompletionPercentage))

	counts := []string{
		fmt.Sprintf("%d high priority", stats.HighPriorityCount),
		fmt.Sprintf("%d due soon", stats.DueSoonCount),
	}
	overdue := fmt.Sprintf("%d overdue", stats.OverdueCount)
	if stats.OverdueCount > 0 {
		overdue = r.paint(r.styles.overdue, overdue)
	}
	counts = append(counts, overdue)
	fmt.Fprintln(r.out, strings.Join(counts, " · "))
}

// StatsJSON writes the statistics as a JSON object.
func (r *Renderer) StatsJSON(stats view.Statistics) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(stats)
}

func (r *Renderer) progressBar(percentage int) string {
	filled := percentage * progressBarWidth / 100
	return "[" + r.paint(r.styles.bar, strings.Repeat("█", filled)) +
		strings.Repeat("░", progressBarWidth-filled) + "]"
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}
