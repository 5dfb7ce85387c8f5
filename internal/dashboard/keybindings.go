package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/memtop/internal/ui"
)

// Key bindings as constants for consistency.
const (
	KeyQuit          = "q"
	KeyQuitAlt       = "ctrl+c"
	KeyCycleView     = "tab"
	KeyViewSwap      = "1"
	KeyViewNUMA      = "2"
	KeyViewGPU       = "3"
	KeyViewUnified   = "4"
	KeyCycleSort     = "s"
	KeyAggregate     = "a"
	KeyUnitKB        = "k"
	KeyUnitMB        = "m"
	KeyUnitGB        = "g"
	KeyScrollUp      = "up"
	KeyScrollUpAlt   = "u"
	KeyScrollDown    = "down"
	KeyScrollDownAlt = "d"
	KeyScrollTop     = "home"
	KeyScrollBottom  = "end"
	KeyPageUp        = "pgup"
	KeyPageDown      = "pgdown"
	KeySlowerTick    = "right"
	KeyFasterTick    = "left"
	KeyRefresh       = "r"
	KeyToggleHelp    = "?"
	KeyCloseOverlay  = "esc"
)

// handleKey processes keyboard input. Returns true if the key was handled.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help overlay takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCloseOverlay {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyCycleView:
		m.setView(m.view.Next())
		return true, nil

	case KeyViewSwap:
		m.setView(ViewSwap)
		return true, nil

	case KeyViewNUMA:
		m.setView(ViewNUMA)
		return true, nil

	case KeyViewGPU:
		m.setView(ViewGPU)
		return true, nil

	case KeyViewUnified:
		m.setView(ViewUnified)
		return true, nil

	case KeyCycleSort:
		m.sortKey = m.sortKey.Next()
		m.rebuild()
		return true, nil

	case KeyAggregate:
		m.aggregated = !m.aggregated
		m.scroll = 0
		return true, nil

	case KeyUnitKB:
		m.unit = ui.UnitKB
		return true, nil

	case KeyUnitMB:
		m.unit = ui.UnitMB
		return true, nil

	case KeyUnitGB:
		m.unit = ui.UnitGB
		return true, nil

	case KeyScrollUp, KeyScrollUpAlt:
		if m.scroll > 0 {
			m.scroll--
		}
		return true, nil

	case KeyScrollDown, KeyScrollDownAlt:
		m.scroll++
		return true, nil

	case KeyScrollTop:
		m.scroll = 0
		return true, nil

	case KeyScrollBottom:
		// A large offset; the render path clamps it against the list.
		m.scroll = int(^uint(0) >> 1)
		return true, nil

	case KeyPageUp:
		m.scroll -= m.visibleRows()
		if m.scroll < 0 {
			m.scroll = 0
		}
		return true, nil

	case KeyPageDown:
		m.scroll += m.visibleRows()
		return true, nil

	case KeySlowerTick:
		m.interval += intervalStep
		if m.interval > maxInterval {
			m.interval = maxInterval
		}
		return true, nil

	case KeyFasterTick:
		m.interval -= intervalStep
		if m.interval < minInterval {
			m.interval = minInterval
		}
		return true, nil

	case KeyRefresh:
		m.refresh()
		return true, nil
	}

	return false, nil
}

// setView switches the displayed view and resets scroll position.
func (m *Model) setView(v View) {
	if v != m.view {
		m.view = v
		m.scroll = 0
	}
}
