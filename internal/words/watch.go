package words

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 100 * time.Millisecond

// Watcher reloads a Dictionary whenever its file is written or replaced.
// The parent directory is watched so editors that save via rename still
// trigger a reload.
type Watcher struct {
	dict    *Dictionary
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher

	// Reloaded receives the word count after each successful reload.
	Reloaded chan int
	// Errors receives reload and watch errors. Sends never block.
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func Watch(dict *Dictionary, path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		dict:     dict,
		path:     abs,
		log:      log.Named("words"),
		watcher:  fw,
		Reloaded: make(chan int, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Reloaded)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	// Saves often arrive as truncate+write pairs; reload once things settle.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	if err := w.dict.Reload(w.path); err != nil {
		w.log.Warn("dictionary reload failed", zap.String("path", w.path), zap.Error(err))
		w.report(err)
		return
	}
	n := w.dict.Len()
	w.log.Info("dictionary reloaded", zap.String("path", w.path), zap.Int("words", n))
	select {
	case w.Reloaded <- n:
	default:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
