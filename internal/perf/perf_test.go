package perf

import (
	"testing"
	"time"
)

func TestRecordDisabledIsNoop(t *testing.T) {
	Record("frame", time.Millisecond)
	if snaps := snapshotAndReset(); len(snaps) != 0 {
		t.Fatalf("disabled recorder kept %d stats", len(snaps))
	}
}

func TestSnapshotSummarizesAndResets(t *testing.T) {
	defer EnableForTest()()

	Record("frame", 10*time.Millisecond)
	Record("frame", 20*time.Millisecond)
	Record("frame", 30*time.Millisecond)

	snaps := snapshotAndReset()
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	s := snaps[0]
	if s.name != "frame" || s.count != 3 {
		t.Fatalf("snapshot = %+v", s)
	}
	if s.min != 10*time.Millisecond || s.max != 30*time.Millisecond {
		t.Errorf("min/max = %s/%s", s.min, s.max)
	}
	if s.avg != 20*time.Millisecond {
		t.Errorf("avg = %s, want 20ms", s.avg)
	}
	if s.p95 != 30*time.Millisecond {
		t.Errorf("p95 = %s, want 30ms", s.p95)
	}

	if again := snapshotAndReset(); len(again) != 0 {
		t.Fatal("snapshot did not reset the stats")
	}
}

func TestTimeRecordsElapsed(t *testing.T) {
	defer EnableForTest()()

	stop := Time("view")
	stop()

	snaps := snapshotAndReset()
	if len(snaps) != 1 || snaps[0].name != "view" || snaps[0].count != 1 {
		t.Fatalf("snapshots = %+v", snaps)
	}
}

func TestP95RingWindow(t *testing.T) {
	defer EnableForTest()()

	// Overfill the ring so only the newest sampleWindow entries count.
	for i := 0; i < sampleWindow+10; i++ {
		Record("frame", time.Duration(i)*time.Microsecond)
	}

	snaps := snapshotAndReset()
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	if snaps[0].p95 == 0 {
		t.Fatal("p95 not computed from the ring window")
	}
}
