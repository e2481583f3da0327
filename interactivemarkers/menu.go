package interactivemarkers

import (
	"sync"

	"github.com/pkg/errors"

	vm "github.com/rosgo/frametarget/msgs/visualization_msgs"
)

// EntryHandle identifies a menu entry. Handles start at 1; 0 is the
// parent id of top-level entries.
type EntryHandle uint32

type menuEntry struct {
	title    string
	visible  bool
	children []EntryHandle
	callback FeedbackFunc
}

// MenuHandler builds the context menu of one or more markers and
// dispatches MENU_SELECT feedback to the callback of the chosen entry.
type MenuHandler struct {
	mu       sync.Mutex
	entries  map[EntryHandle]*menuEntry
	topLevel []EntryHandle
	lastID   EntryHandle
	managed  map[string]struct{}
}

func NewMenuHandler() *MenuHandler {
	return &MenuHandler{
		entries: make(map[EntryHandle]*menuEntry),
		managed: make(map[string]struct{}),
	}
}

// Insert adds a top-level entry.
func (h *MenuHandler) Insert(title string, cb FeedbackFunc) EntryHandle {
	h.mu.Lock()
	defer h.mu.Unlock()
	handle := h.add(title, cb)
	h.topLevel = append(h.topLevel, handle)
	return handle
}

// InsertChild adds an entry to the submenu of parent.
func (h *MenuHandler) InsertChild(parent EntryHandle, title string, cb FeedbackFunc) (EntryHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.entries[parent]
	if !ok {
		return 0, errors.Errorf("menu entry %d does not exist", parent)
	}
	handle := h.add(title, cb)
	p.children = append(p.children, handle)
	return handle, nil
}

func (h *MenuHandler) add(title string, cb FeedbackFunc) EntryHandle {
	h.lastID++
	h.entries[h.lastID] = &menuEntry{title: title, visible: true, callback: cb}
	return h.lastID
}

// SetVisible hides or shows an entry and its submenu. The change takes
// effect on the next Apply or Reapply.
func (h *MenuHandler) SetVisible(handle EntryHandle, visible bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.entries[handle]
	if !ok {
		return false
	}
	e.visible = visible
	return true
}

// Title returns the title of an entry.
func (h *MenuHandler) Title(handle EntryHandle) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.entries[handle]
	if !ok {
		return "", false
	}
	return e.title, true
}

// Apply attaches the menu to the named marker on server. It returns false
// if the server has no such marker. Call server.ApplyChanges to publish.
func (h *MenuHandler) Apply(server *Server, markerName string) bool {
	marker, ok := server.Get(markerName)
	if !ok {
		h.mu.Lock()
		delete(h.managed, markerName)
		h.mu.Unlock()
		return false
	}

	h.mu.Lock()
	marker.MenuEntries = h.menuEntries(h.topLevel, 0, nil)
	h.managed[markerName] = struct{}{}
	h.mu.Unlock()

	server.Insert(marker)
	server.SetCallback(markerName, h.ProcessFeedback, vm.InteractiveMarkerFeedback_MENU_SELECT)
	return true
}

// Reapply refreshes the menu of every marker it was applied to.
func (h *MenuHandler) Reapply(server *Server) bool {
	h.mu.Lock()
	names := make([]string, 0, len(h.managed))
	for name := range h.managed {
		names = append(names, name)
	}
	h.mu.Unlock()

	ok := true
	for _, name := range names {
		ok = h.Apply(server, name) && ok
	}
	return ok
}

func (h *MenuHandler) menuEntries(handles []EntryHandle, parent EntryHandle, out []vm.MenuEntry) []vm.MenuEntry {
	for _, handle := range handles {
		e := h.entries[handle]
		if !e.visible {
			continue
		}
		out = append(out, vm.MenuEntry{
			Id:          uint32(handle),
			ParentId:    uint32(parent),
			Title:       e.title,
			CommandType: vm.MenuEntry_FEEDBACK,
		})
		out = h.menuEntries(e.children, handle, out)
	}
	return out
}

// ProcessFeedback runs the callback of the selected entry.
func (h *MenuHandler) ProcessFeedback(feedback *vm.InteractiveMarkerFeedback) {
	h.mu.Lock()
	e, ok := h.entries[EntryHandle(feedback.MenuEntryId)]
	h.mu.Unlock()
	if !ok || e.callback == nil {
		return
	}
	e.callback(feedback)
}
