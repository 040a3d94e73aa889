package codegen

import "strings"

// featureIcons 是 feature-card 可用的图标，键为小写标识符，值为 lucide 组件名。
var featureIcons = map[string]string{
	"zap":       "Zap",
	"shield":    "ShieldCheck",
	"rocket":    "Rocket",
	"barchart3": "BarChart3",
	"layers":    "Layers",
	"megaphone": "Megaphone",
	"linechart": "LineChart",
}

// 与 recharts 导出同名的图标需要以别名导入。
var iconAliases = map[string]string{
	"LineChart": "LineChartIcon",
}

// IconComponent 查找图标对应的组件名，大小写不敏感；未知图标返回 false。
func IconComponent(name string) (string, bool) {
	comp, ok := featureIcons[strings.ToLower(strings.TrimSpace(name))]
	return comp, ok
}

// IconNames returns the known icon identifiers.
func IconNames() []string {
	return []string{"zap", "shield", "rocket", "barchart3", "layers", "megaphone", "linechart"}
}

// iconLocal 返回组件在生成代码中使用的本地名。
func iconLocal(comp string) string {
	if alias, ok := iconAliases[comp]; ok {
		return alias
	}
	return comp
}

// iconImport 返回 import 列表中的写法。
func iconImport(comp string) string {
	if alias, ok := iconAliases[comp]; ok {
		return comp + " as " + alias
	}
	return comp
}
