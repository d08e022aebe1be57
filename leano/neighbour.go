package leano

import (
	"strconv"
	"strings"
)

// NeighbourCell is one row of a get_neighbour_cell scan. Values keep the
// device's own formatting; fields the scan omitted are empty.
type NeighbourCell struct {
	Type string
	Band string
	PCID string
	RSRQ string
	RSRP string

	// RSRPPP mirrors the wire field "rsrppp<n>", which the firmware ships
	// without documentation. It is surfaced untouched.
	RSRPPP string
}

// Neighbours decodes the numbered-suffix cell list from a scan reply. The
// advertised row count lives in "lenghtt" (the device's own spelling of
// length); rows are read at suffixes 1 through that count. A missing or
// non-numeric count yields no rows rather than an error.
func Neighbours(r Response) []NeighbourCell {
	count, err := strconv.Atoi(strings.TrimSpace(r.Field("lenghtt")))
	if err != nil || count <= 0 {
		return nil
	}
	if count > len(r) {
		// The count cannot exceed the number of fields actually present.
		count = len(r)
	}
	cells := make([]NeighbourCell, 0, count)
	for i := 1; i <= count; i++ {
		n := strconv.Itoa(i)
		cells = append(cells, NeighbourCell{
			Type:   r.Field("type" + n),
			Band:   r.Field("band" + n),
			PCID:   r.Field("pcid" + n),
			RSRQ:   r.Field("rsrq" + n),
			RSRP:   r.Field("rsrp" + n),
			RSRPPP: r.Field("rsrppp" + n),
		})
	}
	return cells
}
