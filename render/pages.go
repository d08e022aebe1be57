package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/northvector/zitel/monitor"
)

// A fieldSpec maps one dashboard wire field to its display label and
// formatting.
type fieldSpec struct {
	key    string
	label  string
	format func(string) string
}

// pageFields lists what each page shows, in display order. Keys are the
// device's wire names, misspellings included.
var pageFields = map[monitor.Page][]fieldSpec{
	monitor.PageDataUsage: {
		{key: "recieve", label: "Downloaded", format: formatBytes},
		{key: "sentt", label: "Uploaded", format: formatBytes},
	},
	monitor.PageConnection: {
		{key: "INTERNET", label: "Internet"},
		{key: "WANUP", label: "WAN uptime", format: formatSeconds},
		{key: "TYPE", label: "Mode"},
		{key: "APN", label: "APN"},
		{key: "CSQ", label: "Signal (CSQ)"},
		{key: "RSSI", label: "RSSI", format: formatDBm},
	},
	monitor.PageNetwork: {
		{key: "IMSI", label: "IMSI"},
		{key: "ICCID", label: "ICCID"},
		{key: "MCC", label: "MCC"},
		{key: "MNC", label: "MNC"},
		{key: "BAND", label: "Band"},
	},
	monitor.PageCellInfo: {
		{key: "PCID", label: "PCI"},
		{key: "EARFCN", label: "EARFCN"},
		{key: "TAC", label: "TAC"},
		{key: "ENODE", label: "eNodeB"},
		{key: "CELL", label: "Cell ID"},
		{key: "RSRP", label: "RSRP", format: formatDBm},
		{key: "RSRQ", label: "RSRQ", format: formatDB},
		{key: "SINR", label: "SINR", format: formatDB},
	},
	monitor.PageIPConfig: {
		{key: "IPV4", label: "WAN IPv4"},
		{key: "IPV6", label: "WAN IPv6"},
		{key: "DNS1", label: "DNS 1"},
		{key: "DNS2", label: "DNS 2"},
		{key: "lanip", label: "LAN IP"},
		{key: "netmask", label: "Netmask"},
	},
	monitor.PageSystem: {
		{key: "model", label: "Model"},
		{key: "serial", label: "Serial"},
		{key: "hardv", label: "Hardware"},
		{key: "sofv", label: "Firmware"},
		{key: "IMEI", label: "IMEI"},
		{key: "SYSUP", label: "Uptime", format: formatSeconds},
		{key: "cpu1", label: "CPU 1", format: formatPercent},
		{key: "cpu2", label: "CPU 2", format: formatPercent},
		{key: "ram", label: "RAM", format: formatKilobytes},
	},
}

// Dashboard renders one live-view frame: a titled panel with the fields
// the current page shows, and a footer carrying the page position, key
// help and the frame's notice when present. Fields the device omitted are
// left out rather than shown empty.
func Dashboard(f monitor.Frame) string {
	fields := pageFields[f.Page]

	width := 0
	for _, fs := range fields {
		if f.Data.Has(fs.key) && len(fs.label) > width {
			width = len(fs.label)
		}
	}

	rows := make([]string, 0, len(fields))
	for _, fs := range fields {
		value := f.Data.Field(fs.key)
		if value == "" {
			continue
		}
		if fs.format != nil {
			value = fs.format(value)
		}
		label := fmt.Sprintf("%-*s", width, fs.label)
		rows = append(rows, labelStyle.Render(label)+"  "+valueStyle.Render(value))
	}
	if len(rows) == 0 {
		rows = append(rows, labelStyle.Render("nothing reported for this page"))
	}

	title := titleStyle.Render("ZITEL " + f.Page.String())
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, rows...)...)

	page, total := f.Page.Position()
	footer := footerStyle.Render(fmt.Sprintf("page %d/%d  n: next  p: prev  q: quit", page, total))
	if f.Notice != "" {
		footer = noticeStyle.Render(f.Notice) + "\n" + footer
	}

	return panelStyle.Render(body) + "\n" + footer + "\n"
}

// formatBytes renders a raw byte counter the way the device's web UI
// does, falling back to the wire text when it is not numeric.
func formatBytes(v string) string {
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return v
	}
	return humanize.IBytes(n)
}

// formatKilobytes handles the dashboard's RAM field, reported in KB.
func formatKilobytes(v string) string {
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return v
	}
	return humanize.IBytes(n * 1024)
}

// formatSeconds renders an uptime counter as days plus hours, minutes and
// seconds.
func formatSeconds(v string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return v
	}
	d := time.Duration(n) * time.Second
	if days := int(d.Hours()) / 24; days > 0 {
		return fmt.Sprintf("%dd %s", days, d-time.Duration(days)*24*time.Hour)
	}
	return d.String()
}

func formatPercent(v string) string {
	if strings.HasSuffix(v, "%") {
		return v
	}
	return v + "%"
}

func formatDBm(v string) string { return withUnit(v, "dBm") }

func formatDB(v string) string { return withUnit(v, "dB") }

// withUnit appends a unit unless the device already included one.
func withUnit(v, unit string) string {
	if strings.Contains(v, " ") {
		return v
	}
	return v + " " + unit
}
