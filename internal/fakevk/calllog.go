package fakevk

// CallLog records the order of native calls across every fake object sharing it
type CallLog struct {
	Calls []string
}

func (l *CallLog) Record(name string) {
	if l == nil {
		return
	}
	l.Calls = append(l.Calls, name)
}

func (l *CallLog) Count(name string) int {
	if l == nil {
		return 0
	}

	count := 0
	for _, call := range l.Calls {
		if call == name {
			count++
		}
	}
	return count
}

func (l *CallLog) Has(name string) bool {
	return l.Count(name) > 0
}

// Index returns the position of the first call with the given name, or -1
func (l *CallLog) Index(name string) int {
	if l == nil {
		return -1
	}

	for i, call := range l.Calls {
		if call == name {
			return i
		}
	}
	return -1
}
