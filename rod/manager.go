package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/depthcrawl"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the default number of tabs a browser serves before it is replaced.
const DefaultMaxPages = 75

// BrowserManager leases tabs to concurrent crawl goroutines and replaces the
// Chrome process after a fixed number of tabs. Deep crawls open many tabs and
// Chrome's resident memory keeps growing even after tabs are closed.
//
// A replaced browser keeps running until every tab leased from it has been
// released, so recycling never aborts a fetch in flight.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *browserInstance
	draining map[*browserInstance]struct{}
	maxPages int
	headless bool
	recycles int
	closed   bool
}

// browserInstance is one Chrome process and the tabs leased from it.
type browserInstance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	opened   int
	leased   int
	stopOnce sync.Once
	stopErr  error
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many tabs a browser serves before it is replaced.
// Defaults to 75. Values below 1 disable recycling.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithHeadless controls whether Chrome runs without a window. Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// NewBrowserManager launches Chrome and returns a manager for it.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		draining: make(map[*browserInstance]struct{}),
		maxPages: DefaultMaxPages,
		headless: true,
	}
	for _, opt := range opts {
		opt(bm)
	}

	inst, err := launchBrowser(bm.headless)
	if err != nil {
		return nil, err
	}
	bm.current = inst

	return bm, nil
}

// OpenPage opens a blank tab. The returned release func closes the tab and
// must be called exactly once when the caller is done with it.
func (bm *BrowserManager) OpenPage() (*rod.Page, func(), error) {
	bm.mu.Lock()
	if bm.closed {
		bm.mu.Unlock()
		return nil, nil, depthcrawl.Errorf(depthcrawl.EINVALID, "browser manager is closed")
	}
	if bm.maxPages > 0 && bm.current.opened >= bm.maxPages {
		bm.recycle()
	}
	inst := bm.current
	inst.opened++
	inst.leased++
	bm.mu.Unlock()

	page, err := inst.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		bm.release(inst)
		return nil, nil, fmt.Errorf("opening tab: %w", err)
	}

	var once sync.Once
	return page, func() {
		once.Do(func() {
			_ = page.Close()
			bm.release(inst)
		})
	}, nil
}

// Recycles returns how many times the browser has been replaced.
func (bm *BrowserManager) Recycles() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.recycles
}

// Close shuts down the current browser and any replaced browser still
// serving tabs. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	if bm.closed {
		bm.mu.Unlock()
		return nil
	}
	bm.closed = true
	instances := []*browserInstance{bm.current}
	for inst := range bm.draining {
		instances = append(instances, inst)
	}
	bm.draining = nil
	bm.mu.Unlock()

	var err error
	for _, inst := range instances {
		if stopErr := inst.stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}
	return err
}

// LauncherPID returns the process ID of the current browser launcher, or 0 once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return bm.current.launcher.PID()
}

// recycle swaps in a fresh browser. The old one drains its leased tabs first.
// If the launch fails the current browser is kept.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	next, err := launchBrowser(bm.headless)
	if err != nil {
		return
	}

	old := bm.current
	bm.current = next
	bm.recycles++
	if old.leased == 0 {
		_ = old.stop()
		return
	}
	bm.draining[old] = struct{}{}
}

func (bm *BrowserManager) release(inst *browserInstance) {
	bm.mu.Lock()
	inst.leased--
	_, retired := bm.draining[inst]
	done := retired && inst.leased == 0
	if done {
		delete(bm.draining, inst)
	}
	bm.mu.Unlock()

	if done {
		_ = inst.stop()
	}
}

// launchBrowser starts Chrome with flags that keep background tabs rendering.
func launchBrowser(headless bool) (*browserInstance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(headless)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &browserInstance{browser: browser, launcher: l}, nil
}

func (inst *browserInstance) stop() error {
	inst.stopOnce.Do(func() {
		inst.stopErr = inst.browser.Close()
		inst.launcher.Kill()
	})
	return inst.stopErr
}
