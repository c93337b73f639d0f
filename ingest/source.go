package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.design/x/clipboard"
)

// File is one upload: a base name and its contents.
type File struct {
	Name string
	Data []byte
}

// ReadFS reads every regular, non-hidden file under fsys in lexical order.
func ReadFS(fsys fs.FS) ([]File, error) {
	if fsys == nil {
		return nil, nil
	}
	var files []File
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != "." && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("ingest: read %s: %w", p, err)
		}
		files = append(files, File{Name: path.Base(p), Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ReadDir reads the upload directory on disk.
func ReadDir(dir string) ([]File, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("ingest: read dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ingest: read dir %s: not a directory", dir)
	}
	return ReadFS(os.DirFS(dir))
}

var ErrClipboardEmpty = errors.New("ingest: clipboard holds no image or text")

// Clipboard reads pasted images and text from the system clipboard.
type Clipboard struct {
	once    sync.Once
	initErr error
	now     func() time.Time
}

func NewClipboard() *Clipboard {
	return &Clipboard{now: time.Now}
}

// Read returns the clipboard contents as an upload. Images come back as PNG.
func (c *Clipboard) Read() (File, error) {
	c.once.Do(func() { c.initErr = clipboard.Init() })
	if c.initErr != nil {
		return File{}, fmt.Errorf("ingest: clipboard: %w", c.initErr)
	}
	stamp := c.now().Format("20060102-150405")
	if data := clipboard.Read(clipboard.FmtImage); len(data) > 0 {
		return File{Name: "pasted-" + stamp + ".png", Data: data}, nil
	}
	if data := clipboard.Read(clipboard.FmtText); len(bytes.TrimSpace(data)) > 0 {
		return File{Name: "pasted-" + stamp + ".txt", Data: data}, nil
	}
	return File{}, ErrClipboardEmpty
}
