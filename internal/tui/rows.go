package tui

import (
	"strconv"
	"strings"

	"beatline-cli/internal/model"
	"beatline-cli/internal/style"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) View() string {
	if m.preview {
		return m.vp.View() + "\n" + styleHelp.Render("p/esc back  •  q quit")
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	rows := m.visibleRows()
	for _, line := range rows {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.footerView())
	return b.String()
}

func (m *appModel) headerView() string {
	title := "(no document)"
	if m.doc != nil {
		title = m.doc.Title
	}
	crumb := ""
	if m.doc != nil && len(m.doc.Blocks) > 1 {
		crumb = styleCrumb.Render("  block " + strconv.Itoa(m.blockIdx+1) + "/" + strconv.Itoa(len(m.doc.Blocks)))
	}
	rule := styleCrumb.Render(strings.Repeat(glyphHRule(), max(10, m.width)))
	return styleHeader.Render(title) + crumb + "\n" + rule
}

func (m *appModel) footerView() string {
	if m.mode != editNone {
		label := "rename: "
		switch m.mode {
		case editAddSibling:
			label = "add: "
		case editAddChild:
			label = "add child: "
		}
		return styleStatus.Render(label) + m.input.View()
	}
	help := "a add  A child  e edit  D del  tab indent  space fold  J/K move  u undo  p preview  q quit"
	line := styleHelp.Render(help)
	if m.status != "" {
		line = styleStatus.Render(m.status) + "  " + line
	}
	if m.width > 0 {
		line = xansi.Truncate(line, m.width, "…")
	}
	return line
}

// visibleRows renders the flat rows that fit the viewport, keeping the
// cursor on screen.
func (m *appModel) visibleRows() []string {
	avail := m.height - 4
	if avail < 1 {
		avail = len(m.flat)
	}
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+avail {
		m.top = m.cursor - avail + 1
	}
	end := m.top + avail
	if end > len(m.flat) {
		end = len(m.flat)
	}

	out := make([]string, 0, avail)
	if len(m.flat) == 0 {
		out = append(out, styleHelp.Render("  empty outline; press a to add a first line"))
		return out
	}
	for i := m.top; i < end; i++ {
		out = append(out, m.renderRow(i, i == m.cursor))
	}
	return out
}

func (m *appModel) renderRow(i int, selected bool) string {
	row := m.flat[i]
	indent := strings.Repeat("  ", row.Depth)

	twisty := "  "
	if row.HasChildren {
		if row.Collapsed {
			twisty = glyphTwistyCollapsed() + " "
		} else {
			twisty = glyphTwistyExpanded() + " "
		}
	}

	prefix := ""
	var label string
	if row.Type == model.NodeBody {
		label = styleBody.Render(row.Label)
	} else {
		p := style.FormatPrefix(row.Depth, m.indexes[i], m.styleCfg)
		if s := p.String(); s != "" {
			if p.Text == "•" && glyphs() == glyphSetASCII {
				prefix = stylePrefix.Render(glyphBullet()+p.Suffix) + " "
			} else {
				prefix = stylePrefix.Render(s) + " "
			}
		}
		st := lipgloss.NewStyle().Underline(p.Underline).Italic(p.Italic)
		label = st.Render(row.Label)
	}

	line := indent + twisty + prefix + label
	if m.width > 0 {
		line = xansi.Truncate(line, m.width, "…")
	}
	if selected {
		return styleSelected.Render(xansi.Strip(line))
	}
	return line
}

