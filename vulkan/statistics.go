package vulkan

// Statistics counts the device memory blocks allocated from one heap
type Statistics struct {
	BlockCount int
	BlockBytes int
}

func (s *Statistics) Clear() {
	s.BlockCount = 0
	s.BlockBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.BlockCount += other.BlockCount
	s.BlockBytes += other.BlockBytes
}
