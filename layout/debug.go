package layout

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/bento/grid"
)

// DebugDocument 是调试 JSON 的顶层结构：模型本身加上各断点的放置结果。
type DebugDocument struct {
	Config  *grid.Config `json:"config"`
	Layouts []*Result    `json:"layouts"`
}

// WriteDebugJSON 将模型与放置结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(path string, cfg *grid.Config, layouts ...*Result) error {
	if cfg == nil {
		return nil
	}
	data, err := json.MarshalIndent(DebugDocument{Config: cfg, Layouts: layouts}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
