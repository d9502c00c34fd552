package journal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Follow calls fn for every line appended to the journal after it starts,
// until ctx is done. The directory is watched rather than the file so a
// journal that is cleared and recreated keeps being followed.
func (j *Journal) Follow(ctx context.Context, fn func(line string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(j.path)); err != nil {
		return fmt.Errorf("watch journal dir: %w", err)
	}

	t := &tail{path: j.path}
	if info, err := os.Stat(j.path); err == nil {
		t.offset = info.Size()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(j.path) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				t.reset()
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				if err := t.read(fn); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch journal: %w", err)
		}
	}
}

// tail reads complete lines past offset. A partial trailing line is kept
// until its newline arrives.
type tail struct {
	path    string
	offset  int64
	partial string
}

func (t *tail) reset() {
	t.offset = 0
	t.partial = ""
}

func (t *tail) read(fn func(line string)) error {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			t.reset()
			return nil
		}
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat journal: %w", err)
	}
	if info.Size() < t.offset {
		t.reset()
	}
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek journal: %w", err)
	}

	r := bufio.NewReader(f)
	for {
		chunk, err := r.ReadString('\n')
		t.offset += int64(len(chunk))
		if err == io.EOF {
			t.partial += chunk
			return nil
		}
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}
		line := strings.TrimRight(t.partial+chunk, "\r\n")
		t.partial = ""
		if line != "" {
			fn(line)
		}
	}
}
