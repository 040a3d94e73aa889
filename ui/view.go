package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/bento/codegen"
	"github.com/ByLCY/bento/grid"
)

const (
	listWidth   = 34
	detailWidth = 46
)

func (m Model) View() string {
	if m.mode == codeMode {
		return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.header(),
			panelStyle.Render(m.code.View()),
			m.statusLine(),
			helpStyle.Render("↑/↓ scroll · c copy · e export mode · f/esc back"),
		))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(listWidth).Render(m.cardList()),
		panelStyle.Width(detailWidth).Render(m.details()),
	)
	parts := []string{m.header(), body}
	if m.mode == renameMode {
		parts = append(parts, "Rename: "+m.rename.View())
	}
	parts = append(parts, m.statusLine(), helpStyle.Render(helpText))
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

const helpText = "j/k select · J/K move · a add · x remove · t template · s shadow · n anim · h hover\n" +
	"+/- span · 1/2/3 breakpoint · [/] columns · r rename · A/H apply to all · e export · f code · c copy · w write · q quit"

func (m Model) header() string {
	cfg := m.store.Snapshot()
	bp := badgeStyle.Render(breakpointLabel(m.breakpoint))
	info := labelStyle.Render(fmt.Sprintf("cols %s  gap %s  export %s",
		cfg.Columns, cfg.Gap, cfg.ExportMode))
	return lipgloss.JoinHorizontal(lipgloss.Center, headerStyle.Render("Bento Grid "), bp, " ", info)
}

func (m Model) cardList() string {
	cfg := m.store.Snapshot()
	selected, hasSelected := m.store.Selected()
	var b strings.Builder
	for i, card := range cfg.Sorted() {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker, style := "  ", itemStyle
		if hasSelected && card.ID == selected {
			marker, style = "▸ ", selectedItemStyle
		}
		span := fmt.Sprintf("%d×%d", card.ColSpan.Get(m.breakpoint), card.RowSpan.Get(m.breakpoint))
		name := truncate(card.Name, listWidth-5-runewidth.StringWidth(span))
		pad := listWidth - 2 - runewidth.StringWidth(marker) - runewidth.StringWidth(name) - runewidth.StringWidth(span)
		b.WriteString(style.Render(marker + name + strings.Repeat(" ", max(pad, 1)) + span))
	}
	if len(cfg.Cards) == 0 {
		b.WriteString(labelStyle.Render("没有卡片，按 a 添加"))
	}
	return b.String()
}

func (m Model) details() string {
	card, _, ok := m.selected()
	if !ok {
		return labelStyle.Render("未选中卡片")
	}
	s, c := card.Style, card.Content
	rows := [][2]string{
		{"id", fmt.Sprintf("%d (order %d)", card.ID, card.Order)},
		{"template", string(c.Template)},
		{"col-span", card.ColSpan.String()},
		{"row-span", card.RowSpan.String()},
		{"shadow", string(s.Shadow)},
		{"radius", string(s.Radius)},
		{"border", fmt.Sprintf("%t / %dpx", s.Border, s.BorderWidth)},
		{"glass", fmt.Sprintf("%t / %.1f", s.Glass, s.GlassOpacity)},
		{"colors", s.Background + " " + s.TextColor},
		{"animation", fmt.Sprintf("%s %.1fs +%.1fs", s.Animation, s.AnimationDuration, s.AnimationDelay)},
		{"hover", fmt.Sprintf("%s %.1fs", s.Hover, s.HoverDuration)},
		{"classes", codegen.CardClass(card)},
	}
	if c.Heading != "" {
		rows = append(rows, [2]string{"heading", c.Heading})
	}
	if c.Text != "" {
		rows = append(rows, [2]string{"text", c.Text})
	}
	if c.Template.IsChart() {
		data := c.ChartOrSample()
		rows = append(rows, [2]string{"chart", strings.Join(data.Labels, ", ")})
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(truncate(card.Name, detailWidth-2)))
	for _, row := range rows {
		b.WriteString("\n" + labelStyle.Render(fmt.Sprintf("%-10s", row[0])) + truncate(row[1], detailWidth-13))
	}
	return b.String()
}

func (m Model) statusLine() string {
	if m.store.Copied() {
		return copiedStyle.Render("✓ Copied")
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return statusErrorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

// truncate 按显示宽度截断，超出时以省略号结尾。
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func breakpointLabel(bp grid.Breakpoint) string { return strings.ToUpper(string(bp)) }
