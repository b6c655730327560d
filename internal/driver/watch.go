package driver

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"synport/internal/fsys"
	"synport/internal/trace"
)

// DefaultDebounce is how long a file must stay quiet before it is rewritten.
const DefaultDebounce = 300 * time.Millisecond

// CommentWatcher reruns the comment pass on files under a root as they are
// created or modified.
type CommentWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	provider    fsys.Provider
	opts        CommentOptions
	debounceMap map[string]time.Time
	debounceDur time.Duration
	report      func(CommentResult)
	now         func() time.Time
	doneCh      chan struct{}
	running     bool
}

// NewCommentWatcher watches every directory under opts.Root. report is
// called from the watcher goroutine for each rewritten or failed file.
func NewCommentWatcher(p fsys.Provider, opts CommentOptions, debounce time.Duration, report func(CommentResult)) (*CommentWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &CommentWatcher{
		watcher:     w,
		provider:    p,
		opts:        opts.withDefaults(),
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		report:      report,
		now:         time.Now,
		doneCh:      make(chan struct{}),
	}, nil
}

// Start registers the directory tree and begins processing events until ctx
// is cancelled or Stop is called.
func (cw *CommentWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	if err := cw.addTree(); err != nil {
		cw.mu.Lock()
		cw.running = false
		cw.mu.Unlock()
		return err
	}
	go cw.run(ctx)
	return nil
}

func (cw *CommentWatcher) addTree() error {
	dirs, err := cw.provider.ListDirectories(cw.opts.Root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := cw.watcher.Add(dir); err != nil {
			return err
		}
	}
	return nil
}

// Stop closes the watcher and waits for the event loop to exit.
func (cw *CommentWatcher) Stop() error {
	cw.mu.Lock()
	wasRunning := cw.running
	cw.running = false
	cw.mu.Unlock()

	err := cw.watcher.Close()
	if wasRunning {
		<-cw.doneCh
	}
	return err
}

// Done is closed once the event loop has exited.
func (cw *CommentWatcher) Done() <-chan struct{} { return cw.doneCh }

func (cw *CommentWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	tick := time.NewTicker(cw.debounceDur / 3)
	defer tick.Stop()
	tracer := trace.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			trace.Failure(tracer, trace.ScopeRun, "watch", err, 0)
		case <-tick.C:
			cw.processDebounced(ctx)
		}
	}
}

func (cw *CommentWatcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = cw.watcher.Add(event.Name)
			return
		}
	}
	if !strings.HasSuffix(event.Name, cw.opts.Extension) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	cw.mu.Lock()
	cw.debounceMap[event.Name] = cw.now()
	cw.mu.Unlock()
}

// processDebounced rewrites files that have been quiet for debounceDur.
func (cw *CommentWatcher) processDebounced(ctx context.Context) {
	now := cw.now()
	cw.mu.Lock()
	var ready []string
	for path, last := range cw.debounceMap {
		if now.Sub(last) >= cw.debounceDur {
			ready = append(ready, path)
			delete(cw.debounceMap, path)
		}
	}
	cw.mu.Unlock()
	sort.Strings(ready)

	for _, path := range ready {
		res := rewriteFile(ctx, cw.provider, path, cw.opts)
		if cw.report != nil && (res.Changed || res.Err != nil) {
			cw.report(res)
		}
	}
}
