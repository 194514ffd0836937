package registry

import (
	"errors"
	"fmt"

	"schemaui/model"
)

var ErrComponentNotFound = errors.New("component not found")

type DuplicateComponentError struct {
	Name string
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %s already declared", e.Name)
}

// Registry stores resolved components by name. It has no internal locking:
// registration is single-writer during a parse, and must happen-before any
// concurrent lookups by downstream consumers.
type Registry struct {
	components map[string]*model.Component
	order      []*model.Component
}

func New() *Registry {
	return &Registry{components: map[string]*model.Component{}}
}

func (r *Registry) Register(c *model.Component) error {
	if _, ok := r.components[c.Name]; ok {
		return &DuplicateComponentError{Name: c.Name}
	}
	r.components[c.Name] = c
	r.order = append(r.order, c)
	return nil
}

// Lookup returns the named component, or ErrComponentNotFound.
func (r *Registry) Lookup(name string) (*model.Component, error) {
	c, ok := r.components[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, name)
	}
	return c, nil
}

// List returns all components in registration order.
func (r *Registry) List() []*model.Component {
	return r.order
}
