package common

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
)

var (
	debounceMu  sync.Mutex
	generations = map[string]uint64{}
)

// Debounce waits for the given duration before running cmd; newer calls with
// the same identifier supersede previous ones, which then deliver nothing.
func Debounce(identifier string, duration time.Duration, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}

	debounceMu.Lock()
	generations[identifier]++
	generation := generations[identifier]
	debounceMu.Unlock()

	return tea.Tick(duration, func(time.Time) tea.Msg {
		debounceMu.Lock()
		latest := generations[identifier] == generation
		debounceMu.Unlock()
		if !latest {
			return nil
		}
		return cmd()
	})
}
