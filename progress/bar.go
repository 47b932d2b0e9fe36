package progress

import (
	"sync"

	"github.com/gosuri/uiprogress"
)

// Bar renders a terminal progress bar per phase.
type Bar struct {
	mu       sync.Mutex
	progress *uiprogress.Progress
	bar      *uiprogress.Bar
}

func NewBar() *Bar {
	return &Bar{}
}

func (b *Bar) Start(phase string, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if total <= 0 {
		total = 1
	}

	b.progress = uiprogress.New()
	b.progress.Start()
	b.bar = b.progress.AddBar(total)
	b.bar.AppendCompleted()
	b.bar.PrependElapsed()
	b.bar.PrependFunc(func(*uiprogress.Bar) string {
		return phase
	})
}

func (b *Bar) Incr() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		return
	}
	b.bar.Incr()
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.progress == nil {
		return
	}

	b.progress.Stop()
	b.progress = nil
	b.bar = nil
}
