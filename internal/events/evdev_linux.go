//go:build linux

package events

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sys/unix"
)

const (
	inputDir       = "/dev/input"
	hotplugRetries = 10
	hotplugDelay   = 100 * time.Millisecond
)

var timevalSize = int(unsafe.Sizeof(unix.Timeval{}))

// Evdev reads key events from Linux input devices.
type Evdev struct {
	*Chan

	cfg     EvdevConfig
	log     *slog.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	files   map[string]*os.File
	closing bool
	wg      sync.WaitGroup
}

var _ Source = (*Evdev)(nil)

// OpenEvdev opens the configured or discovered keyboards and starts reading.
func OpenEvdev(cfg EvdevConfig) (*Evdev, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	e := &Evdev{
		Chan:  NewChan(256),
		cfg:   cfg,
		log:   log,
		files: make(map[string]*os.File),
	}

	paths := cfg.Paths
	if len(paths) == 0 {
		found, err := FindKeyboards(cfg.ExcludeNames)
		if err != nil {
			return nil, fmt.Errorf("find keyboards: %w", err)
		}
		paths = found
	}
	if len(paths) == 0 && !cfg.Watch {
		return nil, fmt.Errorf("no keyboard devices found: %w", ErrNotAvailable)
	}

	for _, p := range paths {
		if err := e.open(p); err != nil {
			_ = e.Close()
			return nil, err
		}
	}

	if cfg.Watch && len(cfg.Paths) == 0 {
		if err := e.watch(); err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("watch %s: %w", inputDir, err)
		}
	}

	return e, nil
}

// FindKeyboards returns the event device paths of attached keyboards.
func FindKeyboards(excludeNames []string) ([]string, error) {
	f, err := os.Open(ProcDevices)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	devices, err := ParseDevices(f)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, d := range devices {
		if d.Keyboard && !excluded(d.Name, excludeNames) {
			paths = append(paths, d.Path)
		}
	}
	return paths, nil
}

func (e *Evdev) open(path string) error {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return &DeviceError{Path: path, Err: err}
	}

	e.mu.Lock()
	if e.closing {
		e.mu.Unlock()
		_ = f.Close()
		return ErrClosed
	}
	if _, dup := e.files[path]; dup {
		e.mu.Unlock()
		_ = f.Close()
		return nil
	}
	e.files[path] = f
	e.wg.Add(1)
	e.mu.Unlock()

	e.log.Debug("reading input device", "path", path)
	go e.readLoop(path, f)
	return nil
}

func (e *Evdev) readLoop(path string, f *os.File) {
	defer e.wg.Done()

	buf := make([]byte, timevalSize+8)
	for {
		n, err := f.Read(buf)
		if err != nil {
			e.mu.Lock()
			closing := e.closing
			delete(e.files, path)
			e.mu.Unlock()
			_ = f.Close()

			if closing {
				return
			}
			// Unplugged keyboards report ENODEV; the rest keep working.
			if errors.Is(err, unix.ENODEV) {
				e.log.Info("input device removed", "path", path)
				return
			}
			e.Fail(&DeviceError{Path: path, Err: err})
			return
		}
		if n < len(buf) {
			continue
		}

		k, kind, ok := decodeKeyEvent(buf, timevalSize)
		if !ok {
			continue
		}
		e.Push(Event{Key: k, Kind: kind, Time: time.Now(), Device: path})
	}
}

func (e *Evdev) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(inputDir); err != nil {
		_ = w.Close()
		return err
	}
	e.watcher = w

	e.wg.Add(1)
	go e.watchLoop(w)
	return nil
}

func (e *Evdev) watchLoop(w *fsnotify.Watcher) {
	defer e.wg.Done()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) || !strings.HasPrefix(filepath.Base(ev.Name), "event") {
				continue
			}
			e.wg.Add(1)
			go e.hotplug(ev.Name)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			e.log.Warn("input directory watch error", "error", err)
		}
	}
}

// hotplug waits for udev to settle permissions on a new node, then opens it
// if the kernel lists it as a keyboard.
func (e *Evdev) hotplug(path string) {
	defer e.wg.Done()

	for i := 0; i < hotplugRetries; i++ {
		time.Sleep(hotplugDelay)

		e.mu.Lock()
		closing := e.closing
		e.mu.Unlock()
		if closing {
			return
		}

		found, err := FindKeyboards(e.cfg.ExcludeNames)
		if err != nil {
			continue
		}
		if !contains(found, path) {
			continue
		}
		if err := e.open(path); err != nil {
			continue
		}
		e.log.Info("keyboard attached", "path", path)
		return
	}
}

func (e *Evdev) Close() error {
	e.mu.Lock()
	if e.closing {
		e.mu.Unlock()
		return nil
	}
	e.closing = true
	files := make([]*os.File, 0, len(e.files))
	for _, f := range e.files {
		files = append(files, f)
	}
	e.mu.Unlock()

	var errs []error
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range files {
		_ = f.Close()
	}
	e.wg.Wait()
	errs = append(errs, e.Chan.Close())
	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
