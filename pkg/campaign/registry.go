package campaign

import (
	"errors"
	"fmt"
	"slices"
)

var ErrNotFound = errors.New("campaign type not found")

// NotFoundError is returned by Lookup for an unknown campaign type.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("campaign type %q not found", string(e.ID))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Registry is a read-only catalog of campaign types. It is safe for concurrent use.
type Registry struct {
	order []ID
	byID  map[ID]Descriptor
}

func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		order: make([]ID, 0, len(descs)),
		byID:  make(map[ID]Descriptor, len(descs)),
	}
	for _, d := range descs {
		if d.ID == "" {
			return nil, errors.New("campaign type id is required")
		}
		if d.Name == "" || d.Description == "" {
			return nil, fmt.Errorf("campaign type %q: name and description are required", string(d.ID))
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("campaign type %q registered twice", string(d.ID))
		}
		d.ValueDescriptions = slices.Clone(d.ValueDescriptions)
		r.order = append(r.order, d.ID)
		r.byID[d.ID] = d
	}
	return r, nil
}

func (r *Registry) Lookup(id ID) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, &NotFoundError{ID: id}
	}
	d.ValueDescriptions = slices.Clone(d.ValueDescriptions)
	return d, nil
}

// List returns every descriptor in registration order.
func (r *Registry) List() []Descriptor {
	res := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		d := r.byID[id]
		d.ValueDescriptions = slices.Clone(d.ValueDescriptions)
		res = append(res, d)
	}
	return res
}

func (r *Registry) Len() int {
	return len(r.order)
}
