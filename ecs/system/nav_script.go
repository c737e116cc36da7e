package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gridnav/navgrid"
	"github.com/milk9111/gridnav/prefabs"
)

// navScriptDispatch is appended to every filter script. The script must
// define allow(from_x, from_z, to_x, to_z).
const navScriptDispatch = `
__allow = allow(__from_x, __from_z, __to_x, __to_z)
`

// NavScriptFilter vetoes line-of-sight checks from a tengo script. It only
// runs once the physical check has passed.
type NavScriptFilter struct {
	scriptPath string
	compiled   *tengo.Compiled
	calls      int
}

// LoadNavScriptFilter compiles the named script from prefabs/scripts.
func LoadNavScriptFilter(path string) (*NavScriptFilter, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("nav script: empty path")
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("nav script: load %s: %w", path, err)
	}
	f, err := NewNavScriptFilter(src)
	if err != nil {
		return nil, fmt.Errorf("nav script: %s: %w", path, err)
	}
	f.scriptPath = path
	return f, nil
}

// NewNavScriptFilter compiles src.
func NewNavScriptFilter(src []byte) (*NavScriptFilter, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + navScriptDispatch))
	_ = script.Add("__from_x", 0)
	_ = script.Add("__from_z", 0)
	_ = script.Add("__to_x", 0)
	_ = script.Add("__to_z", 0)
	_ = script.Add("__allow", false)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &NavScriptFilter{compiled: compiled}, nil
}

// Allow runs the script for one pair of cells. A panic inside the VM, such
// as an integer division by zero, is returned as an error.
func (f *NavScriptFilter) Allow(from, to navgrid.NavGridNode) (allowed bool, err error) {
	if f == nil || f.compiled == nil {
		return true, nil
	}
	f.calls++
	defer func() {
		if r := recover(); r != nil {
			allowed = false
			err = fmt.Errorf("nav script: allow(%s, %s) panicked: %v", from, to, r)
		}
	}()
	for name, v := range map[string]int{
		"__from_x": from.X,
		"__from_z": from.Z,
		"__to_x":   to.X,
		"__to_z":   to.Z,
	} {
		if err := f.compiled.Set(name, v); err != nil {
			return false, err
		}
	}
	if err := f.compiled.Run(); err != nil {
		return false, err
	}
	return f.compiled.Get("__allow").Bool(), nil
}

// Wrap returns a predicate that consults inner first and the script second.
// A script error counts as blocked.
func (f *NavScriptFilter) Wrap(inner navgrid.LineOfSight) navgrid.LineOfSight {
	if f == nil {
		return inner
	}
	if inner == nil {
		inner = navgrid.OpenField
	}
	return func(from, to navgrid.NavGridNode) bool {
		if !inner(from, to) {
			return false
		}
		ok, err := f.Allow(from, to)
		if err != nil {
			log.Printf("nav script: %s allow(%s, %s) error: %v", f.scriptPath, from, to, err)
			return false
		}
		return ok
	}
}

// Calls reports how many times the script has run.
func (f *NavScriptFilter) Calls() int {
	if f == nil {
		return 0
	}
	return f.calls
}
