package monitor

// Page identifies one dashboard view in the live status cycle. The set is
// fixed and ordered; Next and Prev wrap around, so every page is reachable
// from every other.
type Page int

const (
	PageDataUsage Page = iota
	PageConnection
	PageNetwork
	PageCellInfo
	PageIPConfig
	PageSystem

	pageCount
)

// String returns the page title shown in the dashboard header.
func (p Page) String() string {
	switch p {
	case PageDataUsage:
		return "Data Usage"
	case PageConnection:
		return "Connection"
	case PageNetwork:
		return "Network"
	case PageCellInfo:
		return "Cell Info"
	case PageIPConfig:
		return "IP Config"
	case PageSystem:
		return "System"
	default:
		return "Unknown"
	}
}

// Position returns the 1-based page number and the page count, for
// "2/6" style footers.
func (p Page) Position() (int, int) {
	return int(p) + 1, int(pageCount)
}

// Next returns the following page, wrapping from the last to the first.
func (p Page) Next() Page {
	return (p + 1) % pageCount
}

// Prev returns the preceding page, wrapping from the first to the last.
func (p Page) Prev() Page {
	return (p + pageCount - 1) % pageCount
}

// Pager tracks the page currently shown by a live view. The zero value
// starts at the first page, Data Usage.
type Pager struct {
	current Page
}

// Current returns the page being shown.
func (p *Pager) Current() Page {
	return p.current
}

// Apply advances the pager for a navigation event. Events that are not
// navigation leave the page unchanged.
func (p *Pager) Apply(ev Event) {
	switch ev {
	case EventNext:
		p.current = p.current.Next()
	case EventPrev:
		p.current = p.current.Prev()
	}
}
