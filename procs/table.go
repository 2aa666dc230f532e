package procs

import (
	"sort"
	"unsafe"

	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// Handle is a dispatchable Vulkan handle (a VkInstance) or 0 for global entry points
type Handle uintptr

// NullHandle resolves instance-independent entry points
const NullHandle Handle = 0

// ProcAddrFunc is the bootstrap vkGetInstanceProcAddr. It returns nil for any name the runtime
// does not expose.
type ProcAddrFunc func(instance Handle, name string) unsafe.Pointer

// Table holds the entry points resolved for one Vulkan instance lifetime. A name with no pointer
// means the capability behind it is unavailable, and callers must check with Has or Lookup before
// relying on it.
type Table struct {
	getInstanceProcAddr ProcAddrFunc
	names               []string
	entries             *swiss.Map[string, unsafe.Pointer]
}

// NewTable creates a table that will resolve the given names. With no names, DefaultNames is used.
func NewTable(names ...string) *Table {
	if len(names) == 0 {
		names = DefaultNames
	}

	table := &Table{
		names: make([]string, 0, len(names)),
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		table.names = append(table.names, name)
	}
	table.entries = swiss.NewMap[string, unsafe.Pointer](uint32(len(table.names)))

	return table
}

// Load stores the bootstrap loader function used by ResolveAll
func (t *Table) Load(getInstanceProcAddr ProcAddrFunc) {
	t.getInstanceProcAddr = getInstanceProcAddr
}

// Loaded reports whether a bootstrap loader has been stored
func (t *Table) Loaded() bool {
	return t.getInstanceProcAddr != nil
}

// ResolveAll queries the loader for every name that does not have a pointer yet and returns how
// many new pointers were found. Pointers that are already resolved are never replaced, so calling
// it again with the same loader and instance changes nothing.
func (t *Table) ResolveAll(instance Handle) int {
	if t.getInstanceProcAddr == nil {
		return 0
	}

	resolved := 0
	for _, name := range t.names {
		if ptr, ok := t.entries.Get(name); ok && ptr != nil {
			continue
		}

		ptr := t.getInstanceProcAddr(instance, name)
		if ptr == nil {
			continue
		}

		t.entries.Put(name, ptr)
		resolved++
	}

	return resolved
}

// Lookup returns the pointer for name, if it was resolved
func (t *Table) Lookup(name string) (unsafe.Pointer, bool) {
	ptr, ok := t.entries.Get(name)
	if !ok || ptr == nil {
		return nil, false
	}
	return ptr, true
}

func (t *Table) Has(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// ResolvedCount is the number of names with a pointer
func (t *Table) ResolvedCount() int {
	return t.entries.Count()
}

// Missing lists, sorted, the names that have no pointer
func (t *Table) Missing() []string {
	var missing []string
	for _, name := range t.names {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	return missing
}

// Reset forgets the loader and every resolved pointer so the table can serve a new instance
func (t *Table) Reset() {
	t.getInstanceProcAddr = nil
	t.entries = swiss.NewMap[string, unsafe.Pointer](uint32(len(t.names)))
}

// PrintDetailedMap writes a JSON object mapping each name to whether it was resolved
func (t *Table) PrintDetailedMap(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	names := make([]string, len(t.names))
	copy(names, t.names)
	sort.Strings(names)

	for _, name := range names {
		obj.Name(name).Bool(t.Has(name))
	}
}
