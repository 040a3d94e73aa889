package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ByLCY/bento/grid"
	"github.com/ByLCY/bento/store"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.code.Width = max(msg.Width-6, 20)
		m.code.Height = max(msg.Height-6, 5)
		if m.mode == codeMode {
			m.refreshCode()
		}
		return m, nil

	case copiedExpiredMsg:
		// 仅用于重绘；是否仍显示由 store 决定。
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case renameMode:
			return m.updateRenameMode(msg)
		case codeMode:
			return m.updateCodeMode(msg)
		default:
			return m.updateListMode(msg)
		}
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	card, pos, hasCard := m.selected()
	ids := m.store.Snapshot().IDs()

	switch key := msg.String(); key {
	case "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if hasCard && pos > 0 {
			m.store.Select(ids[pos-1])
		}
	case "down", "j":
		if hasCard && pos < len(ids)-1 {
			m.store.Select(ids[pos+1])
		}

	case "K":
		if hasCard && pos > 0 {
			m.store.ReorderCards(card.ID, ids[pos-1])
		}
	case "J":
		if hasCard && pos < len(ids)-1 {
			m.store.ReorderCards(card.ID, ids[pos+1])
		}

	case "a":
		id := m.store.AddCard()
		m.store.Select(id)
		m.setStatus(fmt.Sprintf("已添加卡片 %d", id), false)
	case "x":
		if !hasCard {
			break
		}
		m.store.RemoveCard(card.ID)
		if next := m.store.Snapshot().IDs(); len(next) > 0 {
			m.store.Select(next[clamp(pos, 0, len(next)-1)])
		}
		m.setStatus(fmt.Sprintf("已删除卡片 %d", card.ID), false)

	case "t":
		if hasCard {
			next := cycle(grid.Templates, card.Content.Template)
			m.store.SetCardContent(card.ID, store.ContentPatch{Template: &next})
		}
	case "s":
		if hasCard {
			next := cycle(grid.Shadows, card.Style.Shadow)
			m.store.SetCardStyle(card.ID, store.StylePatch{Shadow: &next})
		}
	case "n":
		if hasCard {
			next := cycle(grid.Animations, card.Style.Animation)
			m.store.SetCardStyle(card.ID, store.StylePatch{Animation: &next})
		}
	case "h":
		if hasCard {
			next := cycle(grid.HoverEffects, card.Style.Hover)
			m.store.SetCardStyle(card.ID, store.StylePatch{Hover: &next})
		}

	case "+", "=", "-":
		if !hasCard {
			break
		}
		delta := 1
		if key == "-" {
			delta = -1
		}
		cols := m.store.Snapshot().Columns.Get(m.breakpoint)
		span := clamp(card.ColSpan.Get(m.breakpoint)+delta, 1, max(cols, 1))
		m.store.SetCardSize(card.ID, store.Spans(card.ColSpan.With(m.breakpoint, span)), store.Spans(card.RowSpan))

	case "1", "2", "3":
		m.breakpoint = grid.Breakpoints[key[0]-'1']
	case "[", "]":
		delta := 1
		if key == "[" {
			delta = -1
		}
		cols := m.store.Snapshot().Columns.Get(m.breakpoint)
		m.store.SetColumns(m.breakpoint, clamp(cols+delta, grid.MinColumns, grid.MaxColumns))

	case "r":
		if hasCard {
			m.mode = renameMode
			m.rename.SetValue(card.Name)
			m.rename.CursorEnd()
			return m, m.rename.Focus()
		}

	case "A":
		if hasCard {
			s := card.Style
			m.store.ApplyAnimationToAll(s.Animation, s.AnimationDuration, s.AnimationDelay)
			m.setStatus("动画已应用到全部卡片", false)
		}
	case "H":
		if hasCard {
			m.store.ApplyHoverEffectToAll(card.Style.Hover, card.Style.HoverDuration)
			m.setStatus("悬停效果已应用到全部卡片", false)
		}

	case "e":
		cfg := m.store.ToggleExportMode()
		m.setStatus("导出模式: "+string(cfg.ExportMode), false)

	case "f":
		m.store.ToggleFullscreenPreview()
		m.mode = codeMode
		m.refreshCode()

	case "c":
		return m.copy()

	case "w":
		if m.opts.Write == nil {
			m.setStatus("未配置输出文件", true)
			break
		}
		if err := m.opts.Write(m.store.Generate()); err != nil {
			m.setStatus(err.Error(), true)
			break
		}
		m.setStatus("已写出生成结果", false)
	}
	return m, nil
}

func (m Model) updateRenameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if card, _, ok := m.selected(); ok {
			name := strings.TrimSpace(m.rename.Value())
			if name != "" {
				m.store.SetCardName(card.ID, name)
			}
		}
		m.rename.Blur()
		m.mode = listMode
		return m, nil
	case "esc":
		m.rename.Blur()
		m.mode = listMode
		return m, nil
	}
	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

func (m Model) updateCodeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f", "esc", "q":
		m.store.ToggleFullscreenPreview()
		m.mode = listMode
		return m, nil
	case "c":
		return m.copy()
	case "e":
		m.store.ToggleExportMode()
		m.refreshCode()
		return m, nil
	}
	var cmd tea.Cmd
	m.code, cmd = m.code.Update(msg)
	return m, cmd
}

// copy 写剪贴板，并在窗口结束后安排一次重绘。
func (m Model) copy() (tea.Model, tea.Cmd) {
	if err := m.store.CopyGeneratedCode(); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.setStatus("", false)
	// 多等一点，保证 store 已经复位。
	return m, tea.Tick(m.opts.CopiedWindow+50*time.Millisecond, func(time.Time) tea.Msg {
		return copiedExpiredMsg{}
	})
}

func (m *Model) refreshCode() {
	out := m.store.Generate()
	text := out.Combined()
	if m.opts.Pretty {
		if rendered, err := Highlight(out, m.code.Width); err == nil {
			text = rendered
		}
	}
	m.code.SetContent(text)
}
