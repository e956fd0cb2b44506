package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/iliyamo/lab-desk/internal/labapi"
	"github.com/iliyamo/lab-desk/internal/screen"
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	label  lipgloss.Style
	faint  lipgloss.Style
	err    lipgloss.Style
	ok     lipgloss.Style
	border lipgloss.Style
}

func newStyles(color bool) styles {
	plain := lipgloss.NewStyle()
	if !color {
		return styles{
			title: plain.Bold(true), header: plain.Bold(true), cell: plain.Padding(0, 1),
			label: plain, faint: plain, err: plain, ok: plain, border: plain,
		}
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1),
		cell:   lipgloss.NewStyle().Padding(0, 1),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		faint:  lipgloss.NewStyle().Faint(true),
		err:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		border: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// renderScreen writes the title, the list, the form and the surface.
func renderScreen(out io.Writer, st styles, s screen.Screen, session *labapi.Session) {
	surface := s.Surface()
	who := "signed out"
	if session.LoggedIn() {
		who = session.Email() + " (" + session.Role() + ")"
	}
	fmt.Fprintf(out, "%s  %s\n", st.title.Render(string(s.View())), st.faint.Render(surface.State().String()+" · "+who))

	if header, rows := s.Rows(); header != nil {
		if len(rows) == 0 {
			fmt.Fprintln(out, st.faint.Render("(empty)"))
		} else {
			fmt.Fprintln(out, renderTable(st, header, rows))
		}
	}

	if c, ok := s.(screen.Creator); ok {
		renderForm(out, st, c)
	}

	if msg := surface.Message(); msg != "" {
		kind := surface.Kind()
		line := "✗ " + msg
		if kind != labapi.KindUnknown {
			line += " [" + kind.String() + "]"
		}
		fmt.Fprintln(out, st.err.Render(line))
	}
}

func renderTable(st styles, header []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return st.cell
		}).
		String()
}

func renderForm(out io.Writer, st styles, c screen.Creator) {
	title := "form"
	if e, ok := c.(interface{ Editing() (string, bool) }); ok {
		if id, editing := e.Editing(); editing {
			title = "form (editing " + id + ")"
		}
	}
	fmt.Fprintln(out, st.faint.Render(title))
	for _, f := range c.Form() {
		value := f.Value
		if value == "" {
			value = st.faint.Render("<empty>")
		}
		line := "  " + st.label.Render(f.Name) + " = " + value
		if len(f.Options) > 0 {
			line += "  " + st.faint.Render("["+strings.Join(f.Options, "|")+"]")
		}
		fmt.Fprintln(out, line)
	}
}
