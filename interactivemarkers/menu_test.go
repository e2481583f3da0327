package interactivemarkers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	vm "github.com/rosgo/frametarget/msgs/visualization_msgs"
)

func TestMenuHandler(t *testing.T) {
	s := newTestServer(t)
	s.Insert(testMarker("menu"))
	s.ApplyChanges()

	var selected []string
	record := func(name string) FeedbackFunc {
		return func(*vm.InteractiveMarkerFeedback) { selected = append(selected, name) }
	}
	h := NewMenuHandler()
	start := h.Insert("Start", record("start"))
	stop := h.Insert("Stop", record("stop"))
	options := h.Insert("Options", nil)
	fast, err := h.InsertChild(options, "Fast", record("fast"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.InsertChild(42, "Orphan", nil); err == nil {
		t.Error("InsertChild accepted a missing parent")
	}
	if start != 1 || stop != 2 || options != 3 || fast != 4 {
		t.Errorf("handles = %d %d %d %d, want 1 2 3 4", start, stop, options, fast)
	}

	if h.Apply(s.Server, "missing") {
		t.Error("Apply succeeded for a missing marker")
	}
	if !h.Apply(s.Server, "menu") {
		t.Fatal("Apply failed")
	}
	s.ApplyChanges()
	marker, _ := s.Get("menu")
	want := []vm.MenuEntry{
		{Id: 1, Title: "Start"},
		{Id: 2, Title: "Stop"},
		{Id: 3, Title: "Options"},
		{Id: 4, ParentId: 3, Title: "Fast"},
	}
	if diff := cmp.Diff(want, marker.MenuEntries); diff != "" {
		t.Errorf("menu entries mismatch (-want +got):\n%s", diff)
	}

	for _, id := range []EntryHandle{stop, fast, options, 99, start} {
		s.ProcessFeedback(&vm.InteractiveMarkerFeedback{
			ClientId:    "/rviz",
			MarkerName:  "menu",
			EventType:   vm.InteractiveMarkerFeedback_MENU_SELECT,
			MenuEntryId: uint32(id),
		})
	}
	if diff := cmp.Diff([]string{"stop", "fast", "start"}, selected); diff != "" {
		t.Errorf("selected entries (-want +got):\n%s", diff)
	}

	h.SetVisible(options, false)
	if !h.Reapply(s.Server) {
		t.Fatal("Reapply failed")
	}
	s.ApplyChanges()
	marker, _ = s.Get("menu")
	if diff := cmp.Diff(want[:2], marker.MenuEntries); diff != "" {
		t.Errorf("menu entries after hiding Options (-want +got):\n%s", diff)
	}
	if title, _ := h.Title(fast); title != "Fast" {
		t.Errorf("Title(fast) = %q", title)
	}
}
