package progress

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestRemaining(t *testing.T) {
	cases := []struct {
		elapsed  time.Duration
		done     int
		total    int
		expected time.Duration
	}{
		{10 * time.Second, 100, 1000, 90 * time.Second},
		{10 * time.Second, 500, 1000, 10 * time.Second},
		{10 * time.Second, 0, 1000, 0},
		{10 * time.Second, 1000, 1000, 0},
		{10 * time.Second, 10, 0, 0},
	}

	for _, c := range cases {
		if got := Remaining(c.elapsed, c.done, c.total); got != c.expected {
			t.Errorf("Remaining(%s, %d, %d): expected %s, got %s", c.elapsed, c.done, c.total, c.expected, got)
		}
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(log.New(&buf, "", 0), 10, false)

	now := time.Unix(0, 0)
	l.now = func() time.Time { return now }

	l.Start("Query", 100)
	for i := 0; i < 25; i++ {
		now = now.Add(time.Second)
		l.Incr()
	}
	l.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", lines)
	}

	if lines[0] != "Query: starting, 100 units" {
		t.Errorf("unexpected start line %q", lines[0])
	}

	expected := "Query: 10/100 (10.0%), elapsed 10s, remaining 1m30s"
	if lines[1] != expected {
		t.Errorf("expected %q, got %q", expected, lines[1])
	}

	if lines[3] != "Query: done 25 units in 25s" {
		t.Errorf("unexpected finish line %q", lines[3])
	}
}

func TestLogUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(log.New(&buf, "", 0), 1, false)
	l.now = func() time.Time { return time.Unix(0, 0) }

	l.Start("Build", 0)
	l.Incr()

	if !strings.Contains(buf.String(), "Build: 1, elapsed 0s") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestMulti(t *testing.T) {
	var a, b bytes.Buffer
	la := NewLog(log.New(&a, "", 0), 1, false)
	lb := NewLog(log.New(&b, "", 0), 1, false)
	la.now = func() time.Time { return time.Unix(0, 0) }
	lb.now = la.now

	m := Multi(la, lb, Nop{})

	m.Start("Phase", 2)
	m.Incr()
	m.Finish()

	if a.String() == "" || a.String() != b.String() {
		t.Errorf("expected identical output, got %q and %q", a.String(), b.String())
	}
}
