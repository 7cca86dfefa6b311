package main

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a GMM file must go without writes before it is
// reported.
const settleDelay = 100 * time.Millisecond

// Watcher reports GMM files in the watched directories once they have
// settled. Every write to a file restarts its timer, so a save made in
// several steps is reported once, after the last step.
type Watcher struct {
	Events chan string
	Errors chan error

	fs      *fsnotify.Watcher
	settled chan settledFile
	done    chan struct{}
	once    sync.Once
}

type pendingFile struct {
	timer *time.Timer
	seq   uint64
}

type settledFile struct {
	name string
	seq  uint64
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err = fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		fs:      fs,
		settled: make(chan settledFile),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Events and Errors are closed once it has stopped.
func (w *Watcher) Close() (err error) {
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	pending := make(map[string]*pendingFile)
	defer func() {
		for _, file := range pending {
			file.timer.Stop()
		}
	}()

	var seq uint64
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !isGMMFile(event.Name) {
				continue
			}
			if file, ok := pending[event.Name]; ok {
				file.timer.Stop()
				delete(pending, event.Name)
			}
			// A removed or renamed file is gone; there is nothing to convert.
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			seq++
			pending[event.Name] = &pendingFile{timer: w.settleAfter(event.Name, seq), seq: seq}

		case file := <-w.settled:
			// Timers stopped after they fired still deliver; only the latest counts.
			if latest, ok := pending[file.name]; !ok || latest.seq != file.seq {
				continue
			}
			delete(pending, file.name)
			select {
			case w.Events <- file.name:
			case <-w.done:
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) settleAfter(name string, seq uint64) *time.Timer {
	return time.AfterFunc(settleDelay, func() {
		select {
		case w.settled <- settledFile{name: name, seq: seq}:
		case <-w.done:
		}
	})
}
