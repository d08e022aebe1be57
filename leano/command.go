package leano

import (
	"strconv"
	"strings"
)

// Command is a single instruction in the device's fixed text grammar, sent
// verbatim as the body of a command POST. Validity is decided entirely by
// the device; the client never parses a command beyond trimming user input.
type Command string

const (
	// GetIndexData requests the flat dashboard mapping backing the live
	// status view.
	GetIndexData Command = "get_index_data"

	// GetNeighbourCell requests the neighbour-cell scan, reported as
	// numbered field suffixes plus a row count.
	GetNeighbourCell Command = "get_neighbour_cell"
)

// DefaultDMZHost is the forwarding target used when no address is given,
// matching the stock firmware's suggestion.
const DefaultDMZHost = "192.168.0.98"

// SetDMZ builds the command that forwards all TCP and UDP traffic to host.
// An empty host selects DefaultDMZHost.
func SetDMZ(host string) Command {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultDMZHost
	}
	return Command("set_dmz 1 tcpudp " + host)
}

// SetBandLock builds the command that pins the radio to the LTE channel
// identified by earfcn.
func SetBandLock(earfcn uint32) Command {
	return Command("set_band_lock " + strconv.FormatUint(uint64(earfcn), 10))
}

// Raw wraps a user-supplied command line, trimmed of surrounding
// whitespace.
func Raw(line string) Command {
	return Command(strings.TrimSpace(line))
}

// Verb returns the leading word of the command. Error messages use the
// verb rather than the full command so argument values, credentials
// included, stay out of logs.
func (c Command) Verb() string {
	if i := strings.IndexAny(string(c), " \t"); i >= 0 {
		return string(c[:i])
	}
	return string(c)
}
