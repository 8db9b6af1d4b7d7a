package app

import "sync"

// Clipboard is where ClipboardRead and ClipboardWrite actions go.
type Clipboard interface {
	Read() (string, bool)
	Write(contents string)
}

// MemoryClipboard is a Clipboard that is only shared inside of the
// process. The zero value is empty and ready to use.
type MemoryClipboard struct {
	m        sync.Mutex
	contents string
	set      bool
}

func (c *MemoryClipboard) Read() (string, bool) {
	c.m.Lock()
	defer c.m.Unlock()

	return c.contents, c.set
}

func (c *MemoryClipboard) Write(contents string) {
	c.m.Lock()
	defer c.m.Unlock()

	c.contents = contents
	c.set = true
}
