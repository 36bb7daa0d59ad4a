package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	maxCellWidth = 32
	timeLayout   = "2006-01-02 15:04"
	hiddenSecret = "********"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderEntryTable lists entries without their passwords.
func renderEntryTable(entries []models.EntryResponse) string {
	if len(entries) == 0 {
		return labelStyle.Render("no saved passwords")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID.String(),
			fitText(e.SiteName, maxCellWidth),
			fitText(valueOrDash(e.SiteURL), maxCellWidth),
			fitText(e.Username, maxCellWidth),
			e.UpdatedAt.Local().Format(timeLayout),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "SITE", "URL", "USERNAME", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}

// renderEntry shows one entry; the password is masked unless reveal is set.
func renderEntry(e models.EntryResponse, reveal bool) string {
	password := hiddenSecret
	if reveal {
		password = e.Password
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(e.SiteName))
	b.WriteString("\n")
	for _, f := range []struct{ label, value string }{
		{"id", e.ID.String()},
		{"url", valueOrDash(e.SiteURL)},
		{"username", e.Username},
		{"password", password},
		{"notes", valueOrDash(e.Notes)},
		{"created", e.CreatedAt.Local().Format(timeLayout)},
		{"updated", e.UpdatedAt.Local().Format(timeLayout)},
	} {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", f.label)), f.value)
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderUndecryptable(ids []uuid.UUID) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return warnStyle.Render(fmt.Sprintf("undecryptable entries (%d): %s", len(ids), strings.Join(parts, ", ")))
}

func renderUser(u models.UserResponse) string {
	return fmt.Sprintf("%s <%s>\n%s %s\n%s %s",
		titleStyle.Render(u.Username), u.Email,
		labelStyle.Render("id"), u.UserID,
		labelStyle.Render("since"), u.CreatedAt.Local().Format(time.DateOnly))
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
