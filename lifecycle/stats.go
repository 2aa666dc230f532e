package lifecycle

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/d3dshare/vulkan"
)

// BuildStatsString reports the controller's state, adapter, device capabilities and memory use
// as JSON. The detailed report also lists every exportable resource and entry point.
func (c *Controller) BuildStatsString(detailed bool) string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	writer := jwriter.NewWriter()
	obj := writer.Object()

	obj.Name("State").String(c.state.String())
	obj.Name("Flags").String(c.options.Flags.String())
	obj.Name("SharedTextures").Int(c.textures.Count())

	if c.adapter != nil {
		adapter := obj.Name("Adapter").Object()
		adapter.Name("Description").String(c.adapter.Description)
		adapter.Name("VendorID").Int(int(c.adapter.VendorID))
		adapter.Name("DeviceID").Int(int(c.adapter.DeviceID))
		adapter.End()
	}

	if c.extensions != nil {
		extensions := obj.Name("Extensions").Object()
		c.extensions.PrintParameters(&extensions)
		extensions.End()
	}

	if c.deviceMemory != nil {
		memory := obj.Name("Memory").Object()
		c.deviceMemory.PrintParameters(&memory)
		memory.End()
	}

	if c.registry != nil {
		var stats vulkan.Statistics
		c.registry.AddStatistics(&stats)

		total := obj.Name("Exported").Object()
		total.Name("ResourceCount").Int(stats.BlockCount)
		total.Name("AllocationBytes").Int(stats.BlockBytes)
		total.End()

		if detailed {
			resources := obj.Name("Resources").Array()
			c.registry.BuildStatsString(&resources)
			resources.End()
		}
	}

	if c.loader != nil {
		table := c.loader.Procs()
		obj.Name("ResolvedEntryPoints").Int(table.ResolvedCount())

		missing := obj.Name("MissingEntryPoints").Array()
		for _, name := range table.Missing() {
			missing.String(name)
		}
		missing.End()

		if detailed {
			table.PrintDetailedMap(obj.Name("EntryPoints"))
		}
	}

	obj.End()
	return string(writer.Bytes())
}
