package grid

import (
	"fmt"
	"sort"
	"strings"
)

// CardID 在一个配置内唯一，由 AddCard 单调分配。
type CardID int

// Card 是布局的基本单元。Order 为从 0 开始的显示位置。
type Card struct {
	ID      CardID     `json:"id"`
	Name    string     `json:"name"`
	ColSpan Responsive `json:"colSpan"`
	RowSpan Responsive `json:"rowSpan"`
	Order   int        `json:"order"`
	Style   CardStyle  `json:"style"`
	Content Content    `json:"content"`
}

// Clone returns a deep copy of the card.
func (c Card) Clone() Card {
	c.Content = c.Content.clone()
	return c
}

// ExportMode 决定图表卡片生成的代码是否依赖图表库。
type ExportMode string

const (
	ExportLibrary ExportMode = "library"
	ExportPlain   ExportMode = "plain"
)

var ExportModes = []ExportMode{ExportLibrary, ExportPlain}

func ParseExportMode(s string) (ExportMode, error) { return parseEnum("export", s, ExportModes) }

// Toggle returns the other export mode.
func (m ExportMode) Toggle() ExportMode {
	if m == ExportPlain {
		return ExportLibrary
	}
	return ExportPlain
}

// Config 是整个网格配置。Cards 的切片顺序无意义，显示顺序由每张卡的 Order 决定。
// 不变式：ID 唯一；Order 的集合恰为 {0, 1, ..., n-1}。
//
// 配置按快照使用：一旦交给读者就不再原地修改，变更总是产生新的 *Config。
type Config struct {
	Columns    Responsive `json:"columns"`
	Gap        Responsive `json:"gap"`
	Rows       int        `json:"rows"`
	Cards      []Card     `json:"cards"`
	ExportMode ExportMode `json:"exportMode"`
}

// Clone 深拷贝配置。
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Cards != nil {
		out.Cards = make([]Card, len(c.Cards))
		for i, card := range c.Cards {
			out.Cards[i] = card.Clone()
		}
	}
	return &out
}

// Sorted 返回按 Order 升序（稳定）排列的卡片副本切片。
func (c *Config) Sorted() []Card {
	cards := make([]Card, len(c.Cards))
	copy(cards, c.Cards)
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Order < cards[j].Order })
	return cards
}

// Find returns the card with the given id.
func (c *Config) Find(id CardID) (Card, bool) {
	if i := c.Index(id); i >= 0 {
		return c.Cards[i], true
	}
	return Card{}, false
}

// Index returns the slice position of the card with the given id, or -1.
func (c *Config) Index(id CardID) int {
	for i := range c.Cards {
		if c.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// MaxID returns the largest card id, or 0 for an empty configuration.
func (c *Config) MaxID() CardID {
	var max CardID
	for _, card := range c.Cards {
		if card.ID > max {
			max = card.ID
		}
	}
	return max
}

// IDs returns the card ids in display order.
func (c *Config) IDs() []CardID {
	sorted := c.Sorted()
	ids := make([]CardID, len(sorted))
	for i, card := range sorted {
		ids[i] = card.ID
	}
	return ids
}

// InvariantError 列出配置违反的不变式。
type InvariantError struct {
	Problems []string
}

func (e *InvariantError) Error() string {
	return "网格配置不满足不变式: " + strings.Join(e.Problems, "; ")
}

// Validate 检查 ID 唯一与 Order 稠密连续两条不变式。
func (c *Config) Validate() error {
	var problems []string
	ids := make(map[CardID]int, len(c.Cards))
	orders := make(map[int]CardID, len(c.Cards))
	n := len(c.Cards)
	for _, card := range c.Cards {
		if _, dup := ids[card.ID]; dup {
			problems = append(problems, fmt.Sprintf("卡片 id %d 重复", card.ID))
		}
		ids[card.ID]++
		if card.Order < 0 || card.Order >= n {
			problems = append(problems, fmt.Sprintf("卡片 %d 的 order %d 超出 [0, %d)", card.ID, card.Order, n))
			continue
		}
		if other, dup := orders[card.Order]; dup {
			problems = append(problems, fmt.Sprintf("卡片 %d 与 %d 的 order 同为 %d", other, card.ID, card.Order))
			continue
		}
		orders[card.Order] = card.ID
	}
	if len(problems) == 0 {
		return nil
	}
	return &InvariantError{Problems: problems}
}

// NewCard 构造新增卡片的默认值。
func NewCard(id CardID, order int) Card {
	name := fmt.Sprintf("Card %d", id)
	return Card{
		ID:      id,
		Name:    name,
		ColSpan: Uniform(1),
		RowSpan: Uniform(1),
		Order:   order,
		Style:   DefaultStyle(),
		Content: Content{
			Template: TemplateTextOnly,
			Text:     name,
		},
	}
}

// Default 返回编辑会话初始化时的演示配置。
func Default() *Config {
	card := func(id CardID, name string, order int, content Content) Card {
		return Card{
			ID:      id,
			Name:    name,
			ColSpan: Uniform(1),
			RowSpan: Uniform(1),
			Order:   order,
			Style:   DefaultStyle(),
			Content: content,
		}
	}

	feature := card(2, "Feature Card", 1, Content{
		Template: TemplateHeadingText,
		Heading:  "Card 2",
		Text:     "This is a card with heading and text",
	})
	feature.ColSpan = Responsive{SM: 1, MD: 2, LG: 2}

	return &Config{
		Columns:    Responsive{SM: 1, MD: 2, LG: 3},
		Gap:        Responsive{SM: 2, MD: 3, LG: 4},
		Rows:       2,
		ExportMode: ExportLibrary,
		Cards: []Card{
			card(1, "Welcome Card", 0, Content{
				Template: TemplateTextOnly,
				Text:     "Welcome to Benty",
			}),
			feature,
			card(3, "Bar Chart", 2, Content{
				Template: TemplateBarChart,
				Heading:  "Monthly Sales",
				Text:     "Sales performance by month",
				Chart: &ChartData{
					Labels: []string{"Jan", "Feb", "Mar", "Apr", "May"},
					Values: []float64{400, 300, 500, 200, 350},
					Colors: []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884d8"},
				},
			}),
			card(4, "Pie Chart", 3, Content{
				Template: TemplatePieChart,
				Heading:  "Revenue Sources",
				Text:     "Distribution of revenue by source",
				Chart: &ChartData{
					Labels: []string{"Product A", "Product B", "Product C"},
					Values: []float64{400, 300, 300},
					Colors: []string{"#0088FE", "#00C49F", "#FFBB28"},
				},
			}),
			card(5, "Line Chart", 4, Content{
				Template: TemplateLineChart,
				Heading:  "User Growth",
				Text:     "User acquisition over time",
				Chart: &ChartData{
					Labels: []string{"Jan", "Feb", "Mar", "Apr", "May"},
					Values: []float64{100, 250, 300, 450, 600},
					Colors: []string{"#8884d8"},
				},
			}),
		},
	}
}
