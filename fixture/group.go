package fixture

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Group is a name keyed set of fixtures. A fixture may belong to several groups.
type Group struct {
	fixtures map[string]*Fixture
}

// Create a new Group object with reasonable defaults for real usage.
func NewGroup() *Group {
	return &Group{
		fixtures: make(map[string]*Fixture),
	}
}

func (fg *Group) GetFixture(name string) (*Fixture, error) {
	if fixture, found := fg.fixtures[name]; found {
		return fixture, nil
	}
	return nil, fmt.Errorf("%w: the fixture group does not contain a fixture named %s", ErrNoSuchFixture, name)
}

// AddFixture registers f under its name, refusing to replace an existing entry.
func (fg *Group) AddFixture(f *Fixture) error {
	if _, found := fg.fixtures[f.Name()]; found {
		return fmt.Errorf("%w: name=%s", ErrDuplicateFixture, f.Name())
	}
	fg.fixtures[f.Name()] = f
	return nil
}

// HasFixtures returns true if there are fixtures in the group
func (fg *Group) HasFixtures() bool {
	return len(fg.fixtures) > 0
}

// Count returns the number of fixtures in the group
func (fg *Group) Count() int {
	return len(fg.fixtures)
}

// Names returns the fixture names in sorted order.
func (fg *Group) Names() []string {
	names := maps.Keys(fg.fixtures)
	slices.Sort(names)
	return names
}

// Fixtures returns the fixtures ordered by name.
func (fg *Group) Fixtures() []*Fixture {
	out := make([]*Fixture, 0, len(fg.fixtures))
	for _, name := range fg.Names() {
		out = append(out, fg.fixtures[name])
	}
	return out
}
