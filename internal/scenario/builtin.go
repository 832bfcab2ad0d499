package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/wobbly/internal/dynamo"
)

var builtins = map[string]string{
	"flick": `
name: flick
description: short fast throw from the top-left corner
steps:
  - {action: grab, x: 20, y: 20}
  - {action: drag, x: 120, y: 40, duration_ms: 80, ease: out-quad}
  - {action: ungrab}
  - {action: settle}
`,
	"drag": `
name: drag
description: slow drag across the screen from the middle of the title bar
steps:
  - {action: grab, x: 160, y: 10}
  - {action: drag, x: 240, y: 0, duration_ms: 600, ease: in-out-sine}
  - {action: wait, duration_ms: 200}
  - {action: drag, x: -100, y: 80, duration_ms: 400}
  - {action: ungrab}
  - {action: settle}
`,
	"regrab": `
name: regrab
description: catch the surface again while it is still wobbling
steps:
  - {action: grab, x: 300, y: 180}
  - {action: drag, x: -150, y: -60, duration_ms: 160, ease: out-cubic}
  - {action: ungrab}
  - {action: wait, duration_ms: 96}
  - {action: grab, x: 40, y: 100}
  - {action: drag, x: 90, y: 30, duration_ms: 240, ease: out-back}
  - {action: ungrab}
  - {action: settle}
`,
	"resize": `
name: resize
description: resize mid-wobble, dropping the pending release
steps:
  - {action: grab, x: 20, y: 20}
  - {action: drag, x: 80, y: 80, duration_ms: 120}
  - {action: ungrab}
  - {action: resize, x: 400, y: 260}
  - {action: settle}
`,
}

// Builtin returns a fresh copy of a named built-in scenario.
func Builtin(name string) (*Scenario, error) {
	src, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("scenario %q: %w", name, dynamo.ErrUnknownPreset)
	}
	return Parse([]byte(src))
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
