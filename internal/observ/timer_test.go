package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	scan := timer.Begin("scan")
	time.Sleep(time.Millisecond)
	timer.End(scan, "3 files")
	resolve := timer.Begin("resolve")
	timer.End(resolve, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "scan" || report.Phases[0].Note != "3 files" {
		t.Errorf("phase 0 = %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS <= 0 {
		t.Errorf("scan duration = %v, want > 0", report.Phases[0].DurationMS)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("total %v below scan phase %v", report.TotalMS, report.Phases[0].DurationMS)
	}
}

func TestTimerEmptyReport(t *testing.T) {
	report := NewTimer().Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 {
		t.Errorf("empty timer report = %+v", report)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(0, "no phase started")
	timer.End(-1, "")
	if len(timer.Report().Phases) != 0 {
		t.Error("out-of-range End created phases")
	}
}

func TestTimerSummary(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("scan")
	timer.End(idx, "cached")

	s := timer.Summary()
	if !strings.Contains(s, "scan") || !strings.Contains(s, "total") {
		t.Errorf("summary missing phases: %q", s)
	}
	if !strings.Contains(s, "// cached") {
		t.Errorf("summary missing note: %q", s)
	}
}
