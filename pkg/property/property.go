package property

import (
	"errors"
	"fmt"
	"slices"
)

// ErrSkipped is returned by a check that does not apply to a case.
var ErrSkipped = errors.New("property: not applicable")

// Violation describes a failed check.
type Violation struct {
	Property string
	Input    string
	Want     string
	Got      string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s: want %s, got %s", v.Property, v.Input, v.Want, v.Got)
}

// Check tests one property against a case. It returns nil on success,
// ErrSkipped when the case is out of scope, or a *Violation.
type Check func(c *Case) error

// Property is a named, registered check.
type Property struct {
	Name        string
	Description string
	Check       Check
}

var registry = map[string]Property{}

// Register adds a property to the registry.
func Register(p Property) {
	registry[p.Name] = p
}

// Get returns a property by name.
func Get(name string) (Property, error) {
	p, ok := registry[name]
	if !ok {
		return Property{}, fmt.Errorf("unknown property: %s", name)
	}
	return p, nil
}

// Names returns all registered property names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Result is the outcome of one property on one case.
type Result struct {
	Property string `json:"property"`
	Passed   bool   `json:"passed"`
	Skipped  bool   `json:"skipped,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Resolve looks up the named properties. An empty list selects all of them.
func Resolve(names []string) ([]Property, error) {
	if len(names) == 0 {
		names = Names()
	}
	props := make([]Property, 0, len(names))
	for _, name := range names {
		p, err := Get(name)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

// Run checks every property against the case. A check that panics is
// reported as a failure.
func Run(c *Case, props []Property) []Result {
	results := make([]Result, len(props))
	for i, p := range props {
		results[i] = runOne(c, p)
	}
	return results
}

func runOne(c *Case, p Property) (r Result) {
	r.Property = p.Name
	defer func() {
		if v := recover(); v != nil {
			r.Passed = false
			r.Skipped = false
			r.Detail = fmt.Sprintf("panic: %v", v)
		}
	}()

	err := p.Check(c)
	switch {
	case err == nil:
		r.Passed = true
	case errors.Is(err, ErrSkipped):
		r.Passed = true
		r.Skipped = true
	default:
		r.Detail = err.Error()
	}
	return r
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
