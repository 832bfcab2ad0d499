package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/wobbly/internal/dynamo"
)

// Actions a Step may perform.
const (
	ActionGrab   = "grab"
	ActionDrag   = "drag"
	ActionUngrab = "ungrab"
	ActionWait   = "wait"
	ActionResize = "resize"
	ActionSettle = "settle"
)

// Scenario is a scripted gesture sequence played against one surface.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one gesture. X and Y are the surface-local grab point for
// grab, the total pointer delta for drag and the new size for resize.
type Step struct {
	Action     string  `yaml:"action"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	DurationMs int     `yaml:"duration_ms"`
	Ease       string  `yaml:"ease"`
}

var eases = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-cubic":    ease.InCubic,
	"out-cubic":   ease.OutCubic,
	"in-out-sine": ease.InOutSine,
	"out-back":    ease.OutBack,
	"out-elastic": ease.OutElastic,
	"out-bounce":  ease.OutBounce,
}

// Eases lists the easing names a drag step accepts.
func Eases() []string {
	names := make([]string, 0, len(eases))
	for n := range eases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func easeFunc(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := eases[name]
	if !ok {
		return nil, fmt.Errorf("ease %q (available: %s): %w", name, strings.Join(Eases(), ", "), dynamo.ErrInvalidScenario)
	}
	return fn, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks each step in isolation. Ordering mistakes, such as an
// ungrab with nothing held, surface when the scenario is run.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps: %w", s.Name, dynamo.ErrInvalidScenario)
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionGrab, ActionUngrab, ActionSettle:
		case ActionDrag:
			if _, err := easeFunc(st.Ease); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case ActionWait:
			if st.DurationMs <= 0 {
				return fmt.Errorf("step %d: wait needs duration_ms: %w", i+1, dynamo.ErrInvalidScenario)
			}
		case ActionResize:
			if st.X <= 0 || st.Y <= 0 {
				return fmt.Errorf("step %d: resize to %vx%v: %w", i+1, st.X, st.Y, dynamo.ErrInvalidScenario)
			}
		default:
			return fmt.Errorf("step %d: action %q: %w", i+1, st.Action, dynamo.ErrInvalidScenario)
		}
	}
	return nil
}
