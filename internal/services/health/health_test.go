package health

import "testing"

type fixedCounter int

func (c fixedCounter) Count() int { return int(c) }

func TestStatus(t *testing.T) {
	got := NewService(fixedCounter(3)).Status()
	if !got.OK || got.Documents != 3 {
		t.Fatalf("unexpected status: %+v", got)
	}

	var nilSvc *Service
	if status := nilSvc.Status(); !status.OK || status.Documents != 0 {
		t.Fatalf("unexpected nil service status: %+v", status)
	}
}
