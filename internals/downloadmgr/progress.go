package downloadmgr

import "sync/atomic"

// DownloadClass separates the few big core files from the many small resources
type DownloadClass int

const (
	// ClassCore are the client jar, libraries, natives, the logging config and the asset index
	ClassCore DownloadClass = iota
	// ClassResource are asset objects
	ClassResource
)

func (c DownloadClass) String() string {
	switch c {
	case ClassCore:
		return "core"
	case ClassResource:
		return "resource"
	default:
		return "unknown"
	}
}

// ProgressFunc is called every time a file is satisfied (downloaded or already present).
// It is called from multiple goroutines at once and has to be safe for concurrent use
type ProgressFunc func(name string, completed int, total int, class DownloadClass)

// ProgressState is a point in time view of one download class
type ProgressState struct {
	Completed int
	Total     int
	// Last is the name of the most recently completed file
	Last string
}

// Progress keeps the completed and total counters of both download classes.
// Every field is updated atomically. Reading a ProgressState gives no guarantee
// that its fields belong to the same moment
type Progress struct {
	counters [2]counter
}

type counter struct {
	completed atomic.Int64
	total     atomic.Int64
	last      atomic.Value
}

func (p *Progress) counter(class DownloadClass) *counter {
	if class == ClassResource {
		return &p.counters[1]
	}
	return &p.counters[0]
}

// SetTotal sets the total count of a class. It is called once before the class fans out
func (p *Progress) SetTotal(class DownloadClass, total int) {
	p.counter(class).total.Store(int64(total))
}

// Increment marks one more file of the class as completed and returns the new count
// together with the current total
func (p *Progress) Increment(class DownloadClass, name string) (completed int, total int) {
	c := p.counter(class)
	c.last.Store(name)
	return int(c.completed.Add(1)), int(c.total.Load())
}

// State returns the current state of a class
func (p *Progress) State(class DownloadClass) ProgressState {
	c := p.counter(class)
	last, _ := c.last.Load().(string)
	return ProgressState{
		Completed: int(c.completed.Load()),
		Total:     int(c.total.Load()),
		Last:      last,
	}
}
