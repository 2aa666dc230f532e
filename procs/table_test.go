package procs

import (
	"testing"
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
)

// fakeLoader hands out a fresh pointer on every call so a replaced entry would be visible
type fakeLoader struct {
	exposed map[Handle][]string
	calls   map[string]int
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		exposed: map[Handle][]string{
			NullHandle:   {CreateInstance, EnumerateInstanceExtensionProperties},
			Handle(0x10): {CreateInstance, EnumerateInstanceExtensionProperties, CreateDevice, GetMemoryWin32HandleKHR},
		},
		calls: make(map[string]int),
	}
}

func (l *fakeLoader) getInstanceProcAddr(instance Handle, name string) unsafe.Pointer {
	l.calls[name]++
	for _, exposed := range l.exposed[instance] {
		if exposed == name {
			return unsafe.Pointer(new(uint64))
		}
	}
	return nil
}

func TestTable_ResolveWithoutLoader(t *testing.T) {
	table := NewTable(CreateInstance, CreateDevice)

	require.False(t, table.Loaded())
	require.Equal(t, 0, table.ResolveAll(NullHandle))
	require.Equal(t, []string{CreateDevice, CreateInstance}, table.Missing())
}

func TestTable_ResolveGlobalThenInstance(t *testing.T) {
	loader := newFakeLoader()
	table := NewTable(CreateInstance, EnumerateInstanceExtensionProperties, CreateDevice, GetMemoryWin32HandleKHR, DestroyImage)
	table.Load(loader.getInstanceProcAddr)

	require.Equal(t, 2, table.ResolveAll(NullHandle))
	require.True(t, table.Has(CreateInstance))
	require.False(t, table.Has(CreateDevice))

	createInstance, ok := table.Lookup(CreateInstance)
	require.True(t, ok)

	require.Equal(t, 2, table.ResolveAll(Handle(0x10)))
	require.True(t, table.Has(CreateDevice))
	require.True(t, table.Has(GetMemoryWin32HandleKHR))
	require.Equal(t, []string{DestroyImage}, table.Missing())
	require.Equal(t, 4, table.ResolvedCount())

	// Already resolved entries are not queried again and keep their first pointer
	require.Equal(t, 1, loader.calls[CreateInstance])
	again, ok := table.Lookup(CreateInstance)
	require.True(t, ok)
	require.Equal(t, createInstance, again)
}

func TestTable_ResolveAllIdempotent(t *testing.T) {
	loader := newFakeLoader()
	table := NewTable()
	table.Load(loader.getInstanceProcAddr)

	first := table.ResolveAll(Handle(0x10))
	require.Equal(t, 4, first)

	pointers := make(map[string]unsafe.Pointer)
	for _, name := range DefaultNames {
		ptr, ok := table.Lookup(name)
		if ok {
			pointers[name] = ptr
		}
	}

	require.Equal(t, 0, table.ResolveAll(Handle(0x10)))
	for name, ptr := range pointers {
		again, ok := table.Lookup(name)
		require.True(t, ok)
		require.Equal(t, ptr, again, name)
	}
	require.Len(t, table.Missing(), len(DefaultNames)-4)
}

func TestTable_Reset(t *testing.T) {
	loader := newFakeLoader()
	table := NewTable(CreateInstance, CreateDevice)
	table.Load(loader.getInstanceProcAddr)
	table.ResolveAll(Handle(0x10))
	require.Equal(t, 2, table.ResolvedCount())

	table.Reset()

	require.False(t, table.Loaded())
	require.Equal(t, 0, table.ResolvedCount())
	_, ok := table.Lookup(CreateDevice)
	require.False(t, ok)
}

func TestTable_DuplicateNames(t *testing.T) {
	table := NewTable(CreateInstance, CreateInstance, CreateDevice)

	require.Equal(t, []string{CreateDevice, CreateInstance}, table.Missing())
}

func TestTable_PrintDetailedMap(t *testing.T) {
	loader := newFakeLoader()
	table := NewTable(CreateInstance, DestroyImage)
	table.Load(loader.getInstanceProcAddr)
	table.ResolveAll(NullHandle)

	writer := jwriter.NewWriter()
	table.PrintDetailedMap(&writer)

	require.NoError(t, writer.Error())
	require.JSONEq(t, `{"vkCreateInstance":true,"vkDestroyImage":false}`, string(writer.Bytes()))
}
