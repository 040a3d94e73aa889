// Package ui 是基于 bubbletea 的终端网格编辑器，所有修改都经由 store。
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ByLCY/bento/codegen"
	"github.com/ByLCY/bento/grid"
	"github.com/ByLCY/bento/store"
)

type mode int

const (
	listMode mode = iota
	renameMode
	codeMode
)

// Options 配置编辑器。
type Options struct {
	// CopiedWindow 与 store 的“已复制”窗口一致，用于到期后刷新界面。
	CopiedWindow time.Duration
	// Write 在按下 w 时写出生成结果；为 nil 时该按键只提示未配置输出。
	Write func(codegen.Output) error
	// Pretty 为代码视图启用语法高亮。
	Pretty bool
}

// Model is the editor's bubbletea model.
type Model struct {
	store *store.Store
	opts  Options

	mode       mode
	breakpoint grid.Breakpoint

	rename textinput.Model
	code   viewport.Model

	status    string
	statusErr bool

	termWidth  int
	termHeight int
}

// copiedExpiredMsg 在复制窗口结束后触发一次重绘。
type copiedExpiredMsg struct{}

// New 创建编辑器；若 store 中没有选中卡片，则选中第一张。
func New(s *store.Store, opts Options) Model {
	if opts.CopiedWindow <= 0 {
		opts.CopiedWindow = store.DefaultCopiedWindow
	}
	ti := textinput.New()
	ti.Placeholder = "Card name"
	ti.CharLimit = 80
	ti.Width = 40

	m := Model{
		store:      s,
		opts:       opts,
		breakpoint: grid.LG,
		rename:     ti,
		code:       viewport.New(80, 20),
	}
	if _, ok := s.Selected(); !ok {
		if ids := s.Snapshot().IDs(); len(ids) > 0 {
			s.Select(ids[0])
		}
	}
	return m
}

// Run 启动全屏编辑器并阻塞到退出。
func Run(s *store.Store, opts Options) error {
	_, err := tea.NewProgram(New(s, opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// selected 返回当前选中的卡片及其显示位置。
func (m Model) selected() (grid.Card, int, bool) {
	id, ok := m.store.Selected()
	if !ok {
		return grid.Card{}, -1, false
	}
	for i, card := range m.store.Snapshot().Sorted() {
		if card.ID == id {
			return card, i, true
		}
	}
	return grid.Card{}, -1, false
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status, m.statusErr = text, isErr
}

// cycle 返回 all 中 cur 的下一个元素，cur 不在其中时返回第一个。
func cycle[T comparable](all []T, cur T) T {
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
