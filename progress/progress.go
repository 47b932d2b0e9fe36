// Package progress reports the advance of long running passes over a
// corpus: periodic log lines with a linear ETA and memory usage, or a
// terminal progress bar.
package progress

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// DefaultEvery is the default number of units between two log lines.
const DefaultEvery = 100

// Reporter receives the progress of a phase. Implementations are safe for
// concurrent use.
type Reporter interface {
	// Start begins a phase of total units. total may be 0 if unknown.
	Start(phase string, total int)

	// Incr marks one more unit as done.
	Incr()

	// Finish ends the current phase.
	Finish()
}

var (
	_ Reporter = Nop{}
	_ Reporter = (*Log)(nil)
	_ Reporter = (*Bar)(nil)
	_ Reporter = multi(nil)
)

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(string, int) {}
func (Nop) Incr()             {}
func (Nop) Finish()           {}

// Multi reports to all the given reporters.
func Multi(rs ...Reporter) Reporter {
	return multi(rs)
}

type multi []Reporter

func (m multi) Start(phase string, total int) {
	for _, r := range m {
		r.Start(phase, total)
	}
}

func (m multi) Incr() {
	for _, r := range m {
		r.Incr()
	}
}

func (m multi) Finish() {
	for _, r := range m {
		r.Finish()
	}
}

// Remaining estimates the time left assuming a constant rate:
//
//	elapsed * total/done - elapsed
//
// It is 0 if nothing is done yet or the phase is complete.
func Remaining(elapsed time.Duration, done, total int) time.Duration {
	if done <= 0 || total <= done {
		return 0
	}
	return time.Duration(float64(elapsed)*float64(total)/float64(done)) - elapsed
}

// Log writes a line every Every units.
type Log struct {
	logger *log.Logger
	every  int
	usage  bool

	mu    sync.Mutex
	phase string
	total int
	done  int
	start time.Time

	// now is replaced in tests
	now func() time.Time
}

// NewLog returns a Log reporter. every <= 0 means DefaultEvery. If usage is
// set, each line carries the memory and cpu usage of the process.
func NewLog(logger *log.Logger, every int, usage bool) *Log {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if every <= 0 {
		every = DefaultEvery
	}

	return &Log{logger: logger, every: every, usage: usage, now: time.Now}
}

func (l *Log) Start(phase string, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.phase = phase
	l.total = total
	l.done = 0
	l.start = l.now()

	if total > 0 {
		l.logger.Printf("%s: starting, %s units", phase, humanize.Comma(int64(total)))
		return
	}
	l.logger.Printf("%s: starting", phase)
}

func (l *Log) Incr() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.done++
	if l.done%l.every != 0 {
		return
	}

	l.logger.Print(l.line())
}

func (l *Log) Finish() {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("%s: done %s units in %s", l.phase, humanize.Comma(int64(l.done)), l.now().Sub(l.start).Round(time.Millisecond))
	if l.usage {
		msg += ", " + Usage()
	}
	l.logger.Print(msg)
}

func (l *Log) line() string {
	elapsed := l.now().Sub(l.start)

	var msg string
	if l.total > 0 {
		msg = fmt.Sprintf("%s: %s/%s (%.1f%%), elapsed %s, remaining %s",
			l.phase,
			humanize.Comma(int64(l.done)),
			humanize.Comma(int64(l.total)),
			100*float64(l.done)/float64(l.total),
			elapsed.Round(time.Second),
			Remaining(elapsed, l.done, l.total).Round(time.Second))
	} else {
		msg = fmt.Sprintf("%s: %s, elapsed %s", l.phase, humanize.Comma(int64(l.done)), elapsed.Round(time.Second))
	}

	if l.usage {
		msg += ", " + Usage()
	}
	return msg
}

// Usage describes the resident memory and cpu usage of the process.
func Usage() string {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return "usage unavailable"
	}

	msg := "rss unavailable"
	if mi, err := p.MemoryInfo(); err == nil {
		msg = "rss " + humanize.Bytes(mi.RSS)
	}

	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		msg += fmt.Sprintf(", cpu %.0f%%", pct[0])
	}

	return msg
}
