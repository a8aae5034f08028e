// Package tray provides the optional system tray icon using
// getlantern/systray.
package tray

import (
	"github.com/getlantern/systray"
)

type menuItem struct {
	title    string
	callback func()
	item     *systray.MenuItem
}

// Tray manages the system tray icon and menu. Items must be added before Run.
type Tray struct {
	title   string
	tooltip string
	items   []*menuItem
	quitCh  chan struct{}
}

// New creates a new system tray.
func New(title, tooltip string) *Tray {
	return &Tray{
		title:   title,
		tooltip: tooltip,
		quitCh:  make(chan struct{}),
	}
}

// AddMenuItem adds a menu item. A nil callback makes the item informational
// (disabled, e.g. the touchpad URL).
func (t *Tray) AddMenuItem(title string, callback func()) {
	t.items = append(t.items, &menuItem{title: title, callback: callback})
}

// AddSeparator adds a separator to the menu.
func (t *Tray) AddSeparator() {
	t.items = append(t.items, nil)
}

// Run starts the tray event loop (blocks until Stop).
func (t *Tray) Run() {
	systray.Run(t.setup, func() {
		close(t.quitCh)
	})
}

// Stop removes the icon and unblocks Run.
func (t *Tray) Stop() {
	systray.Quit()
}

func (t *Tray) setup() {
	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(icon())

	for _, mi := range t.items {
		if mi == nil {
			systray.AddSeparator()
			continue
		}

		mi.item = systray.AddMenuItem(mi.title, "")
		if mi.callback == nil {
			mi.item.Disable()
			continue
		}

		go func(mi *menuItem) {
			for {
				select {
				case <-mi.item.ClickedCh:
					mi.callback()
				case <-t.quitCh:
					return
				}
			}
		}(mi)
	}
}

// icon returns a minimal valid 16x16 32-bit ICO; pixels are left transparent.
func icon() []byte {
	buf := make([]byte, 1118)
	// ICONDIR
	copy(buf[0:6], []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00})
	// ICONDIRENTRY: 16x16, 32bpp, 1096-byte image at offset 22
	copy(buf[6:22], []byte{
		0x10, 0x10, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
		0x48, 0x04, 0x00, 0x00,
		0x16, 0x00, 0x00, 0x00,
	})
	// BITMAPINFOHEADER: width 16, height 32 (XOR+AND), 32bpp
	copy(buf[22:62], []byte{
		0x28, 0x00, 0x00, 0x00,
		0x10, 0x00, 0x00, 0x00,
		0x20, 0x00, 0x00, 0x00,
		0x01, 0x00,
		0x20, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x04, 0x00, 0x00,
	})
	return buf
}
