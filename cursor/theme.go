// Package cursor loads pointer images from Xcursor themes.
package cursor

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

var defaultLibraryPaths = []string{
	"~/.icons",
	"/usr/share/icons",
	"/usr/share/pixmaps",
	"~/.cursors",
	"/usr/share/cursors/xorg-x11",
	"/usr/X11R6/lib/X11/icons",
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

func libraryPaths() []string {
	if v, ok := os.LookupEnv("XCURSOR_PATH"); ok {
		paths := filepath.SplitList(v)
		for i, p := range paths {
			paths[i] = expandHome(p)
		}
		return paths
	}

	v, ok := os.LookupEnv("XDG_DATA_HOME")
	if !ok || !filepath.IsAbs(v) {
		v = "~/.local/share"
	}

	paths := append([]string{filepath.Join(v, "icons")}, defaultLibraryPaths...)
	for i, p := range paths {
		paths[i] = expandHome(p)
	}
	return paths
}

type Cursor struct {
	Comments []*Comment
	Frames   []*Image
}

// Frame returns the frame that should be showing after elapsed time
// has passed since the animation started.
func (c *Cursor) Frame(elapsed time.Duration) *Image {
	var total time.Duration
	for _, f := range c.Frames {
		total += f.Delay
	}
	if total <= 0 {
		return c.Frames[0]
	}

	elapsed %= total
	for _, f := range c.Frames {
		if elapsed < f.Delay {
			return f
		}
		elapsed -= f.Delay
	}
	return c.Frames[len(c.Frames)-1]
}

type Comment struct {
	Subtype CommentSubtype
	Version uint32
	Comment string
}

type CommentSubtype uint32

const (
	CommentSubtypeCopyright CommentSubtype = 1 + iota
	CommentSubtypeLicense
	CommentSubtypeOther
)

type Image struct {
	Version     int
	NominalSize int
	XHot        int
	YHot        int
	Delay       time.Duration

	// Image holds premultiplied pixels.
	Image *image.RGBA
}

// Draw draws the image into dst, scaling it to fill dst's bounds. It
// returns the hotspot scaled to match.
func (img *Image) Draw(dst draw.Image) image.Point {
	src := img.Image.Bounds()
	b := dst.Bounds()
	if b.Size() == src.Size() {
		draw.Draw(dst, b, img.Image, src.Min, draw.Src)
		return image.Pt(img.XHot, img.YHot)
	}

	draw.CatmullRom.Scale(dst, b, img.Image, src, draw.Src, nil)
	return image.Pt(
		img.XHot*b.Dx()/max(src.Dx(), 1),
		img.YHot*b.Dy()/max(src.Dy(), 1),
	)
}

// Theme is an Xcursor theme. Cursors are loaded the first time that
// they are asked for.
type Theme struct {
	Name string
	Size int

	dirs    []string
	cursors map[string]*Cursor
}

// LoadTheme finds the named theme and the themes it inherits from. An
// empty name loads the default theme.
func LoadTheme(name string, size int) (*Theme, error) {
	if name == "" {
		name = "default"
	}

	t := Theme{
		Name:    name,
		Size:    size,
		cursors: make(map[string]*Cursor),
	}
	err := t.load(name, make(map[string]struct{}))
	if err != nil {
		return nil, err
	}
	if len(t.dirs) == 0 {
		return nil, fmt.Errorf("theme %q: %w", name, fs.ErrNotExist)
	}
	return &t, nil
}

func (t *Theme) load(theme string, seen map[string]struct{}) error {
	if _, ok := seen[theme]; ok {
		return nil
	}
	seen[theme] = struct{}{}

	for _, path := range libraryPaths() {
		dir := filepath.Join(path, theme)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}

		cursors := filepath.Join(dir, "cursors")
		if info, err := os.Stat(cursors); err == nil && info.IsDir() {
			t.dirs = append(t.dirs, cursors)
		}

		inherits, err := loadInherits(filepath.Join(dir, "index.theme"))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load inherited themes: %w", err)
		}
		for _, theme := range inherits {
			err := t.load(theme, seen)
			if err != nil {
				return fmt.Errorf("load inherited theme %q: %w", theme, err)
			}
		}

		break
	}

	return nil
}

// Cursor returns the named cursor from the first directory of the
// theme that has it.
func (t *Theme) Cursor(name string) (*Cursor, error) {
	if cur, ok := t.cursors[name]; ok {
		return cur, nil
	}

	for _, dir := range t.dirs {
		cur, err := DecodeFile(filepath.Join(dir, name), t.Size)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrBadMagic) {
				continue
			}
			return nil, fmt.Errorf("load %q: %w", name, err)
		}

		t.cursors[name] = cur
		return cur, nil
	}

	return nil, fmt.Errorf("cursor %q: %w", name, fs.ErrNotExist)
}

func loadInherits(index string) (inherits []string, err error) {
	file, err := os.Open(index)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s := bufio.NewScanner(file)
	for s.Scan() {
		line := s.Text()
		if !strings.HasPrefix(line, "Inherits") {
			continue
		}

		_, after, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		inherits = strings.FieldsFunc(after, func(c rune) bool {
			return (c == ':') || (c == ',') || (c == ';')
		})
		for i, v := range inherits {
			inherits[i] = strings.TrimSpace(v)
		}

		break
	}
	if err := s.Err(); err != nil {
		return inherits, fmt.Errorf("scan: %w", err)
	}

	return inherits, nil
}
