package external

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/d3dshare/internal/utils"
	"github.com/vkngwrapper/d3dshare/vulkan"
)

// Registry is an intrusive list of the live exportable resources of one logical device. Every
// resource must be destroyed, and so removed from the registry, before the device is.
type Registry struct {
	mutex utils.OptionalRWMutex

	count        int
	resourceHead *Resource
	resourceTail *Resource
}

func NewRegistry(useMutex bool) *Registry {
	return &Registry{
		mutex: utils.OptionalRWMutex{UseMutex: useMutex},
	}
}

func (r *Registry) Validate() error {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	actualCount := 0
	var prev *Resource
	for resource := r.resourceHead; resource != nil; resource = resource.next {
		if resource.registry != r {
			return errors.New("a resource in the registry belongs to a different registry")
		}
		if resource.prev != prev {
			return errors.New("a resource in the registry has a broken back link")
		}

		prev = resource
		actualCount++
	}

	if prev != r.resourceTail {
		return errors.New("the registry's tail is not its last resource")
	}

	if r.count != actualCount {
		return errors.Newf("the listed number of resources in the registry (%d) does not match the actual number of resources (%d)", r.count, actualCount)
	}

	return nil
}

func (r *Registry) AddStatistics(stats *vulkan.Statistics) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stats.BlockCount += r.count
	for resource := r.resourceHead; resource != nil; resource = resource.next {
		stats.BlockBytes += resource.AllocationSize
	}
}

func (r *Registry) BuildStatsString(s *jwriter.ArrayState) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for resource := r.resourceHead; resource != nil; resource = resource.next {
		o := s.Object()
		resource.PrintParameters(&o)
		o.End()
	}
}

func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.count
}

func (r *Registry) IsEmpty() bool {
	return r.Count() == 0
}

func (r *Registry) Register(resource *Resource) error {
	if resource == nil {
		panic("attempted to register a nil resource")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if resource.registry != nil {
		return errors.New("attempted to register a resource that is already registered")
	}

	r.pushResource(resource)
	return nil
}

func (r *Registry) Unregister(resource *Resource) error {
	if resource == nil {
		panic("attempted to unregister a nil resource")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if resource.registry != r {
		return errors.New("attempted to unregister a resource that is not in this registry")
	}

	r.removeResource(resource)
	return nil
}

// DestroyAll unregisters and destroys every resource, oldest first. Every resource is destroyed
// even when some fail; the failures are combined into the returned error.
func (r *Registry) DestroyAll() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var err error
	for r.resourceHead != nil {
		resource := r.resourceHead
		r.removeResource(resource)
		err = errors.CombineErrors(err, resource.Destroy())
	}

	return err
}

func (r *Registry) removeResource(resource *Resource) {
	if resource.prev != nil {
		resource.prev.next = resource.next
	} else {
		r.resourceHead = resource.next
	}

	if resource.next != nil {
		resource.next.prev = resource.prev
	} else {
		r.resourceTail = resource.prev
	}

	resource.prev = nil
	resource.next = nil
	resource.registry = nil
	r.count--
}

func (r *Registry) pushResource(resource *Resource) {
	resource.registry = r
	if r.count == 0 {
		r.resourceHead = resource
		r.resourceTail = resource
		r.count = 1
		return
	}

	resource.prev = r.resourceTail
	r.resourceTail.next = resource
	r.resourceTail = resource
	r.count++
}
