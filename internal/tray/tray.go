// Package tray provides the system tray interface for the posecam demo.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// backendMenuEntries are the selectable compute backends shown in the
// tray menu, label to backend spec.
var backendMenuEntries = []struct {
	Label string
	Spec  string
}{
	{"CPU", "litert-cpu"},
	{"GPU", "litert-gpu"},
	{"NPU", "litert-npu"},
}

// Tray represents the system tray application.
type Tray struct {
	onToggle  func(enabled bool)
	onBackend func(spec string)
	onPanel   func()
	onQuit    func()
	enabled   bool
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuToggle  *systray.MenuItem
	menuBackend *systray.MenuItem
	menuNotice  *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnBackend sets the callback function to be called when a backend is
// selected from the menu. The argument is the full backend spec.
func (t *Tray) OnBackend(fn func(spec string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onBackend = fn
}

// OnPanel sets the callback function to be called when the option panel
// menu item is clicked.
func (t *Tray) OnPanel(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onPanel = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Posecam")
	systray.SetTooltip("Posecam Pose Estimation")

	t.menuToggle = systray.AddMenuItem("● Detecting", "Toggle pose detection")
	systray.AddSeparator()

	t.menuBackend = systray.AddMenuItem("Backend: cpu", "Active compute backend")
	t.menuBackend.Disable()

	// Hidden until the first warning arrives.
	t.menuNotice = systray.AddMenuItem("", "Latest warning")
	t.menuNotice.Disable()
	t.menuNotice.Hide()

	backendItems := make([]*systray.MenuItem, len(backendMenuEntries))
	for i, entry := range backendMenuEntries {
		backendItems[i] = systray.AddMenuItem("Use "+entry.Label, "Switch to the "+entry.Label+" backend")
	}
	systray.AddSeparator()

	menuPanel := systray.AddMenuItem("Open Panel...", "Open the option panel in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Posecam")

	// One goroutine per backend item; the clicked channels never close.
	for i, item := range backendItems {
		spec := backendMenuEntries[i].Spec
		go func(item *systray.MenuItem, spec string) {
			for range item.ClickedCh {
				t.handleBackend(spec)
			}
		}(item, spec)
	}

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuPanel.ClickedCh:
				t.handlePanel()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	// Update menu item text based on new state
	if enabled {
		t.menuToggle.SetTitle("● Detecting")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleBackend handles a backend selection click.
func (t *Tray) handleBackend(spec string) {
	t.mu.RLock()
	callback := t.onBackend
	t.mu.RUnlock()

	if callback != nil {
		callback(spec)
	}
}

// handlePanel handles the option panel menu item click.
func (t *Tray) handlePanel() {
	t.mu.RLock()
	callback := t.onPanel
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetBackend updates the active backend display in the menu.
func (t *Tray) SetBackend(spec string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuBackend != nil {
		t.menuBackend.SetTitle("Backend: " + spec)
	}
}

// ShowNotice surfaces a warning in the menu, such as the fallback notice
// when an unsupported backend is requested.
func (t *Tray) ShowNotice(msg string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuNotice != nil {
		t.menuNotice.SetTitle("⚠ " + msg)
		t.menuNotice.Show()
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
