package node

// AddListener registers fn for events of type t on the node. The returned
// function unregisters it; calling it again does nothing.
func (n *Node) AddListener(t EventType, fn Listener) (remove func()) {
	if n.listeners == nil {
		n.listeners = make(map[EventType][]*listenerEntry)
	}
	entry := &listenerEntry{fn: fn}
	n.listeners[t] = append(n.listeners[t], entry)
	return func() {
		if entry.removed {
			return
		}
		entry.removed = true
		entries := n.listeners[t]
		for i, e := range entries {
			if e == entry {
				n.listeners[t] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns the number of live listeners for t.
func (n *Node) ListenerCount(t EventType) int {
	return len(n.listeners[t])
}

// Dispatch delivers the event to its target and bubbles it up to the root.
// Pointer events without a target are hit tested from n; other events
// target n itself. Listeners added while the event is travelling do not see
// it on the node that is currently handling it.
func (n *Node) Dispatch(e *Event) {
	if e.Target == nil {
		if e.Type.IsPointer() {
			x, y := e.Point()
			e.Target = n.HitTest(x, y)
		}
		if e.Target == nil {
			e.Target = n
		}
	}
	for cur := e.Target; cur != nil; cur = cur.parent {
		cur.fire(e)
		if e.stopped {
			return
		}
	}
}

func (n *Node) fire(e *Event) {
	entries := n.listeners[e.Type]
	if len(entries) == 0 {
		return
	}
	snapshot := append([]*listenerEntry(nil), entries...)
	for _, entry := range snapshot {
		if entry.removed {
			continue
		}
		entry.fn(e)
	}
}
