package registry

import (
	"context"

	"github.com/vk/modorder/internal/ctxlog"
	"github.com/vk/modorder/internal/manifest"
)

// Entry is one registered module. Resolved starts true and is cleared by the
// graph builder when the module declares a dependency that no registry entry
// satisfies.
type Entry struct {
	Descriptor *manifest.Descriptor
	Resolved   bool
}

// Registry holds all registered modules for a single discovery run, keyed by
// name and ordered by registration.
type Registry struct {
	entries map[string]*Entry
	order   []string
}

// Build constructs a registry from the scanned descriptors. Descriptors that
// collide on name produce one DuplicateModuleError each; the first descriptor
// for a name wins, and it is the caller's decision whether the collisions
// abort the run.
func Build(ctx context.Context, descriptors []*manifest.Descriptor) (*Registry, []*DuplicateModuleError) {
	logger := ctxlog.FromContext(ctx)

	reg := &Registry{entries: make(map[string]*Entry, len(descriptors))}
	var duplicates []*DuplicateModuleError

	for _, desc := range descriptors {
		if existing, ok := reg.entries[desc.Name]; ok {
			dup := &DuplicateModuleError{
				Name:            desc.Name,
				FirstSource:     existing.Descriptor.Source,
				DuplicateSource: desc.Source,
			}
			logger.Error("Duplicate module name.", "name", desc.Name, "first", dup.FirstSource, "duplicate", dup.DuplicateSource)
			duplicates = append(duplicates, dup)
			continue
		}
		reg.entries[desc.Name] = &Entry{Descriptor: desc, Resolved: true}
		reg.order = append(reg.order, desc.Name)
	}

	logger.Debug("Registry built.", "modules", len(reg.order), "duplicates", len(duplicates))
	return reg, duplicates
}

// Entry returns the entry for the given module name.
func (r *Registry) Entry(name string) (*Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns all registered module names in registration order. The
// returned slice is a copy.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, r.entries[name])
	}
	return entries
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.order)
}
