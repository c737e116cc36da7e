package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyLevel  = errors.New("prefabs: level has no rows")
	ErrRaggedLevel = errors.New("prefabs: level rows differ in width")
	ErrNoAgent     = errors.New("prefabs: level has no agent cell")
	ErrNoTarget    = errors.New("prefabs: level has no target cell")
	ErrUnknownCell = errors.New("prefabs: unknown level cell")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PathfindingSpec struct {
	GridSize          float64 `yaml:"grid_size"`
	RepathFrames      int     `yaml:"repath_frames"`
	MaxSearchNodes    int     `yaml:"max_search_nodes"`
	StepBudget        int     `yaml:"step_budget"`
	LineOfSightBudget int     `yaml:"line_of_sight_budget"`
	AgentRadius       float64 `yaml:"agent_radius"`
	DebugNodeSize     float64 `yaml:"debug_node_size"`
	Script            string  `yaml:"script"`
}

type FollowerSpec struct {
	Speed        float64 `yaml:"speed"`
	ArriveRadius float64 `yaml:"arrive_radius"`
}

// NavigationSpec configures the pathfinding agent.
type NavigationSpec struct {
	Name        string          `yaml:"name"`
	Pathfinding PathfindingSpec `yaml:"pathfinding"`
	Follower    FollowerSpec    `yaml:"follower"`
}

func LoadNavigationSpec(filename string) (NavigationSpec, error) {
	return LoadSpec[NavigationSpec](filename)
}

// Level cell characters.
const (
	CellOpen   = '.'
	CellWall   = '#'
	CellAgent  = 'A'
	CellTarget = 'T'
)

// LevelSpec is a grid level drawn as rows of cell characters, top row
// first.
type LevelSpec struct {
	Name     string   `yaml:"name"`
	TileSize float64  `yaml:"tile_size"`
	Rows     []string `yaml:"rows"`
}

// Cell is a column/row position in a level.
type Cell struct {
	X int
	Y int
}

// LevelLayout is the parsed form of a LevelSpec.
type LevelLayout struct {
	Width   int
	Height  int
	Blocked []bool
	Agent   Cell
	Target  Cell
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	return LoadSpec[LevelSpec](filename)
}

// Layout parses the rows. Exactly the first agent and target cells found
// are used; both stand on open ground.
func (l LevelSpec) Layout() (LevelLayout, error) {
	rows := make([]string, 0, len(l.Rows))
	for _, r := range l.Rows {
		if r = strings.TrimSpace(r); r != "" {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return LevelLayout{}, ErrEmptyLevel
	}

	out := LevelLayout{Width: len(rows[0]), Height: len(rows)}
	out.Blocked = make([]bool, out.Width*out.Height)
	agent, target := false, false
	for y, row := range rows {
		if len(row) != out.Width {
			return LevelLayout{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedLevel, y, len(row), out.Width)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case CellOpen:
			case CellWall:
				out.Blocked[y*out.Width+x] = true
			case CellAgent:
				if !agent {
					out.Agent = Cell{X: x, Y: y}
					agent = true
				}
			case CellTarget:
				if !target {
					out.Target = Cell{X: x, Y: y}
					target = true
				}
			default:
				return LevelLayout{}, fmt.Errorf("%w %q at (%d,%d)", ErrUnknownCell, row[x], x, y)
			}
		}
	}
	if !agent {
		return LevelLayout{}, ErrNoAgent
	}
	if !target {
		return LevelLayout{}, ErrNoTarget
	}
	return out, nil
}
