package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/bento/dsl"
)

const sampleDSL = `
# 仪表盘示例
bento Dashboard v1 {
  grid {
    columns: { sm: 1, md: 2, lg: 3 }
    gap: { sm: 2, md: 3, lg: 4 }
    rows: 2
    export: library
  }

  card 1 "Welcome Card" {
    order: 0
    col-span: 1
    style {
      shadow: lg
      background: #0F172A
      hover: lift
      hover-duration: 0.4
    }
    content text-only {
      text: "Welcome to ${site.name}"
    }
  }

  // 图表卡片
  card 3 "Bar Chart" {
    order: 1
    col-span: { sm: 1, md: 2, lg: 2 }
    content bar-chart {
      heading: "Monthly Sales"
      chart {
        labels: ["Jan", "Feb", "Mar"]
        values: [400, 300, 500]
        colors: [#0088FE, #00C49F, #FFBB28]
      }
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Dashboard" || doc.Version != "v1" {
		t.Fatalf("unexpected header %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	kinds := []string{doc.Sections[0].Kind(), doc.Sections[1].Kind(), doc.Sections[2].Kind()}
	if strings.Join(kinds, ",") != "grid,card,card" {
		t.Fatalf("unexpected section kinds %v", kinds)
	}

	grid := doc.Sections[0].Grid
	if len(grid.Block.Statements) != 4 {
		t.Fatalf("expected 4 grid statements, got %d", len(grid.Block.Statements))
	}
	columns := grid.Block.Statements[0].Assignment
	if columns == nil || columns.Key != "columns" || columns.Value.Object == nil {
		t.Fatalf("expected columns object, got %+v", grid.Block.Statements[0])
	}
	lg, ok := columns.Value.Object.Lookup("lg")
	if !ok || lg.Number == nil || *lg.Number != "3" {
		t.Fatalf("expected lg: 3, got %+v", lg)
	}
	export := grid.Block.Statements[3].Assignment
	if export.Value.Ident == nil || *export.Value.Ident != "library" {
		t.Fatalf("expected export ident, got %+v", export.Value)
	}
}

func TestParseCardSection(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	card := doc.Sections[1].Card
	if card == nil || card.ID == nil || *card.ID != "1" {
		t.Fatalf("expected card 1, got %+v", card)
	}
	if card.Name == nil || string(*card.Name) != "Welcome Card" {
		t.Fatalf("unexpected card name %v", card.Name)
	}

	style := card.Block.Statements[2].Command
	if style == nil || style.Name != "style" || style.Block == nil {
		t.Fatalf("expected style block, got %+v", card.Block.Statements[2])
	}
	bg := style.Block.Statements[1].Assignment
	if bg.Value.Color == nil || *bg.Value.Color != "#0F172A" {
		t.Fatalf("expected background color, got %+v", bg.Value)
	}

	content := card.Block.Statements[3].Command
	if content == nil || content.Name != "content" {
		t.Fatalf("expected content command, got %+v", card.Block.Statements[3])
	}
	if len(content.Args) != 1 || content.Args[0].Value != "text-only" {
		t.Fatalf("unexpected content args %+v", content.Args)
	}
	text := content.Block.Statements[0].Assignment
	if got := string(*text.Value.String); got != "Welcome to ${site.name}" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestParseChartArrays(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	content := doc.Sections[2].Card.Block.Statements[2].Command
	chart := content.Block.Statements[1].Command
	if chart == nil || chart.Name != "chart" {
		t.Fatalf("expected chart block, got %+v", content.Block.Statements[1])
	}
	colors := chart.Block.Statements[2].Assignment
	if colors.Value.Array == nil || len(colors.Value.Array.Values) != 3 {
		t.Fatalf("expected 3 colors, got %+v", colors.Value)
	}
	// 六位色值不能被拆成三位色值加标识符。
	if got := *colors.Value.Array.Values[0].Color; got != "#0088FE" {
		t.Fatalf("expected #0088FE, got %s", got)
	}
}

func TestParseAnonymousCard(t *testing.T) {
	doc, err := dsl.ParseString(`bento Mini v1 {
  card {
    content heading-text { heading: "Hi" text: "there" }
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	card := doc.Sections[0].Card
	if card.ID != nil || card.Name != nil {
		t.Fatalf("expected anonymous card, got %+v", card)
	}
	content := card.Block.Statements[0].Command
	if len(content.Block.Statements) != 2 {
		t.Fatalf("expected two inline assignments, got %d", len(content.Block.Statements))
	}
}

func TestParseError(t *testing.T) {
	if _, err := dsl.ParseString(`bento Broken v1 { card "x" { order 1 } `); err == nil {
		t.Fatalf("expected parse error for unterminated document")
	}
}
