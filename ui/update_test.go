package ui

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ByLCY/bento/codegen"
	"github.com/ByLCY/bento/grid"
	"github.com/ByLCY/bento/store"
)

type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

// Helper to create an editor over the demo grid with card 1 selected
func createTestModel(cb store.Clipboard, opts Options) Model {
	if cb == nil {
		cb = &fakeClipboard{}
	}
	s := store.New(grid.Default(),
		store.WithClipboard(cb),
		store.WithCopiedWindow(60*time.Millisecond),
		store.WithLogger(log.New(&bytes.Buffer{}, "", 0)),
	)
	opts.CopiedWindow = 60 * time.Millisecond
	return New(s, opts)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press 依次发送按键并返回最后一个命令。
func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var tm tea.Model
	var cmd tea.Cmd
	for _, k := range keys {
		tm, cmd = m.Update(k)
		m = tm.(Model)
	}
	return m, cmd
}

func selectedID(t *testing.T, m Model) grid.CardID {
	t.Helper()
	id, ok := m.store.Selected()
	if !ok {
		t.Fatalf("应有选中卡片")
	}
	return id
}

func findCard(t *testing.T, m Model, id grid.CardID) grid.Card {
	t.Helper()
	card, ok := m.store.Snapshot().Find(id)
	if !ok {
		t.Fatalf("找不到卡片 %d", id)
	}
	return card
}

func TestNewSelectsFirstCard(t *testing.T) {
	m := createTestModel(nil, Options{})
	if id := selectedID(t, m); id != 1 {
		t.Fatalf("初始选中应为 1，实际 %d", id)
	}
	if m.breakpoint != grid.LG {
		t.Fatalf("初始断点应为 lg，实际 %s", m.breakpoint)
	}
}

func TestUpdateListMode_Navigation(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	if id := selectedID(t, m); id != 3 {
		t.Errorf("下移两次后应选中 3，实际 %d", id)
	}

	m, _ = press(m, runes("k"))
	if id := selectedID(t, m); id != 2 {
		t.Errorf("上移后应选中 2，实际 %d", id)
	}

	// 到顶后不再移动
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if id := selectedID(t, m); id != 1 {
		t.Errorf("顶部应停在 1，实际 %d", id)
	}
}

func TestUpdateListMode_Reorder(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("J"))
	cfg := m.store.Snapshot()
	if ids := cfg.IDs(); ids[0] != 2 || ids[1] != 1 {
		t.Fatalf("下移卡片 1 后顺序应为 [2 1 ...]，实际 %v", ids)
	}
	if id := selectedID(t, m); id != 1 {
		t.Errorf("移动后仍应选中 1，实际 %d", id)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("移动后配置应合法: %v", err)
	}

	m, _ = press(m, runes("K"))
	if ids := m.store.Snapshot().IDs(); ids[0] != 1 {
		t.Errorf("上移后卡片 1 应回到首位，实际 %v", ids)
	}
}

func TestUpdateListMode_AddRemove(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("a"))
	if id := selectedID(t, m); id != 6 {
		t.Fatalf("新增卡片应被选中且 id 为 6，实际 %d", id)
	}
	if m.status != "已添加卡片 6" {
		t.Errorf("状态栏不符: %q", m.status)
	}

	m, _ = press(m, runes("x"))
	cfg := m.store.Snapshot()
	if len(cfg.Cards) != 5 || cfg.Index(6) >= 0 {
		t.Fatalf("删除后应剩 5 张卡片且不含 6")
	}
	if id := selectedID(t, m); id != 5 {
		t.Errorf("删除末尾卡片后应选中新的末尾 5，实际 %d", id)
	}
}

func TestUpdateListMode_CycleTemplateAndStyle(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("t"), runes("s"), runes("h"))
	card := findCard(t, m, 1)
	if card.Content.Template != grid.TemplateHeadingText {
		t.Errorf("模板应切换到 heading-text，实际 %s", card.Content.Template)
	}
	if card.Style.Shadow != grid.ShadowLG {
		t.Errorf("阴影应从 md 切到 lg，实际 %s", card.Style.Shadow)
	}
	if card.Style.Hover == grid.HoverNone {
		t.Errorf("悬停效果应已切换")
	}
	if card.Content.Text != "Welcome to Benty" {
		t.Errorf("切换模板不应改动文本，实际 %q", card.Content.Text)
	}
}

func TestUpdateListMode_SpanClampedToColumns(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("+"), runes("="), runes("+"))
	card := findCard(t, m, 1)
	if got := card.ColSpan.Get(grid.LG); got != 3 {
		t.Errorf("lg 跨度应被限制在 3 列，实际 %d", got)
	}
	if got := card.ColSpan.Get(grid.SM); got != 1 {
		t.Errorf("其他断点不应变化，sm 实际 %d", got)
	}

	m, _ = press(m, runes("-"))
	if got := findCard(t, m, 1).ColSpan.Get(grid.LG); got != 2 {
		t.Errorf("缩小后 lg 跨度应为 2，实际 %d", got)
	}

	// sm 只有 1 列
	m, _ = press(m, runes("1"), runes("+"))
	if m.breakpoint != grid.SM {
		t.Fatalf("按 1 后断点应为 sm，实际 %s", m.breakpoint)
	}
	if got := findCard(t, m, 1).ColSpan.Get(grid.SM); got != 1 {
		t.Errorf("sm 跨度应保持 1，实际 %d", got)
	}
}

func TestUpdateListMode_Columns(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("]"))
	if got := m.store.Snapshot().Columns.Get(grid.LG); got != 4 {
		t.Errorf("lg 列数应为 4，实际 %d", got)
	}

	m, _ = press(m, runes("1"), runes("["))
	if got := m.store.Snapshot().Columns.Get(grid.SM); got != grid.MinColumns {
		t.Errorf("sm 列数不应低于 %d，实际 %d", grid.MinColumns, got)
	}
}

func TestUpdateRenameMode(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("r"))
	if m.mode != renameMode {
		t.Fatalf("按 r 应进入重命名模式")
	}
	m, _ = press(m, runes("!"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != listMode {
		t.Fatalf("回车后应回到列表模式")
	}
	if name := findCard(t, m, 1).Name; name != "Welcome Card!" {
		t.Errorf("名称应为 %q，实际 %q", "Welcome Card!", name)
	}

	m, _ = press(m, runes("r"), runes("?"), tea.KeyMsg{Type: tea.KeyEsc})
	if name := findCard(t, m, 1).Name; name != "Welcome Card!" {
		t.Errorf("取消重命名不应修改名称，实际 %q", name)
	}
}

func TestUpdateListMode_ExportAndApplyAll(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("e"))
	if mode := m.store.Snapshot().ExportMode; mode != grid.ExportPlain {
		t.Fatalf("导出模式应切换为 plain，实际 %s", mode)
	}
	if m.status != "导出模式: plain" {
		t.Errorf("状态栏不符: %q", m.status)
	}

	m, _ = press(m, runes("n"), runes("A"))
	want := findCard(t, m, 1).Style.Animation
	for _, card := range m.store.Snapshot().Cards {
		if card.Style.Animation != want {
			t.Errorf("卡片 %d 动画应为 %s，实际 %s", card.ID, want, card.Style.Animation)
		}
	}
}

func TestCopyShowsIndicator(t *testing.T) {
	cb := &fakeClipboard{}
	m := createTestModel(cb, Options{})

	m, cmd := press(m, runes("c"))
	if cmd == nil {
		t.Fatalf("复制成功后应安排一次重绘")
	}
	if !m.store.Copied() {
		t.Fatalf("复制后应显示已复制")
	}
	if !strings.Contains(m.View(), "✓ Copied") {
		t.Errorf("界面应包含已复制提示")
	}
	if cb.text != m.store.Generate().Combined() {
		t.Errorf("剪贴板内容应为完整生成结果")
	}

	time.Sleep(150 * time.Millisecond)
	if m.store.Copied() {
		t.Errorf("窗口结束后提示应消失")
	}
	if strings.Contains(m.View(), "✓ Copied") {
		t.Errorf("窗口结束后界面不应再有提示")
	}
}

func TestCopyFailureReportsError(t *testing.T) {
	m := createTestModel(&fakeClipboard{err: errors.New("no clipboard")}, Options{})

	m, cmd := press(m, runes("c"))
	if cmd != nil {
		t.Errorf("复制失败时不应安排重绘")
	}
	if !m.statusErr || !strings.Contains(m.status, "写入剪贴板失败") {
		t.Errorf("状态栏应提示失败，实际 %q", m.status)
	}
	if m.store.Copied() {
		t.Errorf("失败时不应显示已复制")
	}
}

func TestWriteCallback(t *testing.T) {
	m := createTestModel(nil, Options{})
	m, _ = press(m, runes("w"))
	if !m.statusErr || m.status != "未配置输出文件" {
		t.Errorf("未配置写出时应提示，实际 %q", m.status)
	}

	var got codegen.Output
	m = createTestModel(nil, Options{Write: func(out codegen.Output) error {
		got = out
		return nil
	}})
	m, _ = press(m, runes("w"))
	if got.Markup == "" || got.Stylesheet == "" {
		t.Fatalf("写出回调应收到生成结果")
	}
	if m.statusErr {
		t.Errorf("写出成功不应报错: %q", m.status)
	}

	m = createTestModel(nil, Options{Write: func(codegen.Output) error {
		return errors.New("disk full")
	}})
	m, _ = press(m, runes("w"))
	if !m.statusErr || m.status != "disk full" {
		t.Errorf("写出失败应显示错误，实际 %q", m.status)
	}
}

func TestCodeModeToggle(t *testing.T) {
	m := createTestModel(nil, Options{})

	m, _ = press(m, runes("f"))
	if m.mode != codeMode || !m.store.Fullscreen() {
		t.Fatalf("按 f 应进入代码视图并打开全屏预览")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != listMode || m.store.Fullscreen() {
		t.Fatalf("esc 应回到列表并关闭全屏预览")
	}
}

func TestViewListsCards(t *testing.T) {
	m := createTestModel(nil, Options{})
	view := m.View()
	for _, want := range []string{"Welcome Card", "Line Chart", "LG"} {
		if !strings.Contains(view, want) {
			t.Errorf("界面应包含 %q", want)
		}
	}

	tm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = tm.(Model)
	if m.code.Width != 114 || m.code.Height != 34 {
		t.Errorf("代码视图尺寸不符: %dx%d", m.code.Width, m.code.Height)
	}
}

func TestQuit(t *testing.T) {
	m := createTestModel(nil, Options{})
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatalf("q 应返回退出命令")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("应为 tea.QuitMsg")
	}
}
