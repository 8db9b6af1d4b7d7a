package eventloop

import (
	"errors"
	"fmt"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/cursor"
	"deedles.dev/wlui/pointer"
)

// cursorImage draws cursors from a theme into a surface that is
// shared by every pointer.
type cursorImage struct {
	theme   *cursor.Theme
	shm     *wl.Shm
	surface *wl.Surface
	buf     *wl.ImageBuffer
}

func newCursorImage(theme *cursor.Theme, compositor *wl.Compositor, shm *wl.Shm) *cursorImage {
	return &cursorImage{
		theme:   theme,
		shm:     shm,
		surface: compositor.CreateSurface(),
	}
}

func (c *cursorImage) load(i pointer.Interaction) (*cursor.Cursor, error) {
	cur, err := c.theme.Cursor(i.CursorName())
	if err == nil {
		return cur, nil
	}
	if i == pointer.Idle {
		return nil, err
	}

	fallback, ferr := c.theme.Cursor(pointer.Idle.CursorName())
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return fallback, nil
}

func (c *cursorImage) apply(p *wl.Pointer, serial uint32, i pointer.Interaction, scale int32) error {
	cur, err := c.load(i)
	if err != nil {
		return err
	}
	img := cur.Frame(0)

	scale = max(scale, 1)
	size := int32(c.theme.Size) * scale
	if c.buf == nil {
		c.buf, err = wl.NewImageBuffer(c.shm, size, size)
		if err != nil {
			return fmt.Errorf("cursor buffer: %w", err)
		}
	} else if err := c.buf.Resize(size, size); err != nil {
		return fmt.Errorf("resize cursor buffer: %w", err)
	}

	hot := img.Draw(c.buf.Image())

	c.surface.SetBufferScale(scale)
	c.surface.Attach(c.buf.Buffer(), 0, 0)
	c.surface.DamageBuffer(0, 0, size, size)
	c.surface.Commit()
	p.SetCursor(serial, c.surface, int32(hot.X)/scale, int32(hot.Y)/scale)
	return nil
}

func (c *cursorImage) destroy() error {
	c.surface.Destroy()
	if c.buf == nil {
		return nil
	}
	return c.buf.Destroy()
}
