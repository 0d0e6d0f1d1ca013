// Package tzregistry provides name-based lookup into a compiled set of
// zonedb.ZoneInfo records, following link targets transparently.
package tzregistry

import (
	"sort"

	"github.com/go-tz/acetz/zonedb"
)

// Registry is an immutable, binary-searchable index from zone name to
// ZoneInfo. Build it once at startup with New and share it freely across
// goroutines.
type Registry struct {
	context *zonedb.ZoneContext
	entries []*zonedb.ZoneInfo
}

// New builds a Registry from a name -> ZoneInfo map, typically produced by
// zonedb.Load. All entries must share the same non-nil ZoneContext.
func New(zones map[string]*zonedb.ZoneInfo) *Registry {
	entries := make([]*zonedb.ZoneInfo, 0, len(zones))
	var ctx *zonedb.ZoneContext
	for _, zi := range zones {
		entries = append(entries, zi)
		if ctx == nil {
			ctx = zi.Context
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return &Registry{context: ctx, entries: entries}
}

// Len returns the number of registered names, zones and links combined.
func (r *Registry) Len() int { return len(r.entries) }

// Context returns the shared ZoneContext every entry in the registry was
// compiled under.
func (r *Registry) Context() *zonedb.ZoneContext { return r.context }

// Get returns the ZoneInfo registered under name. The returned record may
// be a link; callers that need era data should use its ResolveEras method,
// or call Resolve instead to get the underlying true zone directly.
func (r *Registry) Get(name string) (*zonedb.ZoneInfo, bool) {
	i := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].Name >= name })
	if i < len(r.entries) && r.entries[i].Name == name {
		return r.entries[i], true
	}
	return nil, false
}

// Resolve looks up name and follows a single link hop if it names a link,
// returning the true zone that owns the era data.
func (r *Registry) Resolve(name string) (*zonedb.ZoneInfo, bool) {
	zi, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	if zi.IsLink() {
		return zi.Target, true
	}
	return zi, true
}

// Names returns every registered name in sorted order, zones and links
// combined. The returned slice is owned by the caller.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, zi := range r.entries {
		names[i] = zi.Name
	}
	return names
}
