package grid

import (
	"fmt"
	"reflect"
	"sort"
)

// ChangeKind 标识两次快照之间的一类变化。
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeCard    ChangeKind = "card"
	ChangeGrid    ChangeKind = "grid"
)

// Change 描述一条变化；Fields 为变化的字段名（按固定顺序）。
type Change struct {
	Kind   ChangeKind
	CardID CardID
	Fields []string
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeAdded:
		return fmt.Sprintf("新增卡片 %d", c.CardID)
	case ChangeRemoved:
		return fmt.Sprintf("删除卡片 %d", c.CardID)
	case ChangeGrid:
		return fmt.Sprintf("网格变化: %v", c.Fields)
	default:
		return fmt.Sprintf("卡片 %d 变化: %v", c.CardID, c.Fields)
	}
}

// Diff 比较两个快照，结果按网格变化、卡片 id 升序排列。
// prev 为 nil 时把 next 的全部卡片视为新增。
func Diff(prev, next *Config) []Change {
	if next == nil {
		return nil
	}
	if prev == nil {
		prev = &Config{}
	}
	var out []Change

	var gridFields []string
	if prev.Columns != next.Columns {
		gridFields = append(gridFields, "columns")
	}
	if prev.Gap != next.Gap {
		gridFields = append(gridFields, "gap")
	}
	if prev.Rows != next.Rows {
		gridFields = append(gridFields, "rows")
	}
	if prev.ExportMode != next.ExportMode {
		gridFields = append(gridFields, "exportMode")
	}
	if len(gridFields) > 0 {
		out = append(out, Change{Kind: ChangeGrid, Fields: gridFields})
	}

	before := make(map[CardID]Card, len(prev.Cards))
	for _, card := range prev.Cards {
		before[card.ID] = card
	}
	after := make(map[CardID]bool, len(next.Cards))
	var cardChanges []Change
	for _, card := range next.Cards {
		after[card.ID] = true
		old, ok := before[card.ID]
		if !ok {
			cardChanges = append(cardChanges, Change{Kind: ChangeAdded, CardID: card.ID})
			continue
		}
		if fields := cardFieldChanges(old, card); len(fields) > 0 {
			cardChanges = append(cardChanges, Change{Kind: ChangeCard, CardID: card.ID, Fields: fields})
		}
	}
	for _, card := range prev.Cards {
		if !after[card.ID] {
			cardChanges = append(cardChanges, Change{Kind: ChangeRemoved, CardID: card.ID})
		}
	}
	sort.SliceStable(cardChanges, func(i, j int) bool { return cardChanges[i].CardID < cardChanges[j].CardID })
	return append(out, cardChanges...)
}

func cardFieldChanges(a, b Card) []string {
	var fields []string
	if a.Name != b.Name {
		fields = append(fields, "name")
	}
	if a.Order != b.Order {
		fields = append(fields, "order")
	}
	if a.ColSpan != b.ColSpan {
		fields = append(fields, "colSpan")
	}
	if a.RowSpan != b.RowSpan {
		fields = append(fields, "rowSpan")
	}
	if a.Style != b.Style {
		fields = append(fields, "style")
	}
	if !reflect.DeepEqual(a.Content, b.Content) {
		fields = append(fields, "content")
	}
	return fields
}
