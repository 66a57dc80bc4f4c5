// Package analytics builds the tagging commands run in the visitor's browser
// once they accept usage cookies.
package analytics

import "sync"

// Command is one call into a tagging library, e.g. gtag('config', id, opts).
type Command struct {
	// Target is the global function the page calls: "gtag" or "ga".
	Target string `json:"target"`
	Args   []any  `json:"args"`
}

// DataLayer buffers commands in the order they must run on the page.
type DataLayer struct {
	mu       sync.Mutex
	commands []Command
}

func NewDataLayer() *DataLayer {
	return &DataLayer{}
}

func (d *DataLayer) Push(target string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = append(d.commands, Command{Target: target, Args: args})
}

// Commands returns a copy of the buffered commands.
func (d *DataLayer) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Command(nil), d.commands...)
}

// Len returns the number of buffered commands.
func (d *DataLayer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.commands)
}
