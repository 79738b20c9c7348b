package session

import "github.com/milk9111/marblebounce/thing"

// Tool is the active tool bar entry.
type Tool int

const (
	ToolSelect Tool = iota
	ToolBox
	ToolGoal
	ToolCradle
	ToolCircle
	ToolOpenPath
	ToolPolygon
)

// Tools lists the tool bar in display order.
func Tools() []Tool {
	return []Tool{ToolSelect, ToolBox, ToolGoal, ToolCradle, ToolCircle, ToolOpenPath, ToolPolygon}
}

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolBox:
		return "Box"
	case ToolGoal:
		return "Goal"
	case ToolCradle:
		return "Cradle"
	case ToolCircle:
		return "Circle"
	case ToolOpenPath:
		return "OpenPath"
	case ToolPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// Kind returns the thing kind a placement tool creates.
func (t Tool) Kind() (thing.Kind, bool) {
	switch t {
	case ToolBox:
		return thing.KindBox, true
	case ToolGoal:
		return thing.KindGoal, true
	case ToolCradle:
		return thing.KindCradle, true
	case ToolCircle:
		return thing.KindCircle, true
	case ToolOpenPath:
		return thing.KindOpenPath, true
	case ToolPolygon:
		return thing.KindPolygon, true
	default:
		return "", false
	}
}
