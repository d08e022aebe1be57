package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/northvector/zitel/leano"
)

type execFunc func(ctx context.Context, cmd leano.Command) (leano.Response, error)

func (f execFunc) Execute(ctx context.Context, cmd leano.Command) (leano.Response, error) {
	return f(ctx, cmd)
}

func TestCollectorMetrics(t *testing.T) {
	data := leano.Response{
		"status":   "success",
		"model":    "ZLT X21",
		"RSRP":     "-95",
		"BAND":     "B3",
		"TAC":      "0x1A2B",
		"INTERNET": "connected",
		"SYSUP":    "86400",
		"cpu1":     "12",
		"cpu2":     "34",
		"recieve":  "123456789",
		"sentt":    "987654",
	}
	c := NewCollector(execFunc(func(ctx context.Context, cmd leano.Command) (leano.Response, error) {
		if cmd != leano.GetIndexData {
			t.Errorf("scrape issued %q, want %q", cmd, leano.GetIndexData)
		}
		return data, nil
	}))

	expected := `
# HELP zitel_cell_band Active LTE band number
# TYPE zitel_cell_band gauge
zitel_cell_band{model="ZLT X21"} 3
# HELP zitel_cell_tac Tracking area code
# TYPE zitel_cell_tac gauge
zitel_cell_tac{model="ZLT X21"} 6699
# HELP zitel_cpu_usage_percent Per-core CPU usage percentage
# TYPE zitel_cpu_usage_percent gauge
zitel_cpu_usage_percent{core="1",model="ZLT X21"} 12
zitel_cpu_usage_percent{core="2",model="ZLT X21"} 34
# HELP zitel_internet_up Whether the device reports its internet connection as up
# TYPE zitel_internet_up gauge
zitel_internet_up{model="ZLT X21"} 1
# HELP zitel_network_receive_bytes_total Bytes received on the WAN interface
# TYPE zitel_network_receive_bytes_total counter
zitel_network_receive_bytes_total{model="ZLT X21"} 123456789
# HELP zitel_network_transmit_bytes_total Bytes transmitted on the WAN interface
# TYPE zitel_network_transmit_bytes_total counter
zitel_network_transmit_bytes_total{model="ZLT X21"} 987654
# HELP zitel_scrape_success Whether the last scrape of the device succeeded
# TYPE zitel_scrape_success gauge
zitel_scrape_success 1
# HELP zitel_signal_rsrp_dbm Reference Signal Received Power in dBm
# TYPE zitel_signal_rsrp_dbm gauge
zitel_signal_rsrp_dbm{model="ZLT X21"} -95
# HELP zitel_uptime_seconds Device uptime in seconds
# TYPE zitel_uptime_seconds gauge
zitel_uptime_seconds{model="ZLT X21"} 86400
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"zitel_cell_band",
		"zitel_cell_tac",
		"zitel_cpu_usage_percent",
		"zitel_internet_up",
		"zitel_network_receive_bytes_total",
		"zitel_network_transmit_bytes_total",
		"zitel_scrape_success",
		"zitel_signal_rsrp_dbm",
		"zitel_uptime_seconds",
	)
	if err != nil {
		t.Errorf("collected metrics mismatch: %v", err)
	}
}

func TestCollectorSkipsUnreportedFields(t *testing.T) {
	data := leano.Response{
		"model": "ZLT X21",
		"RSRP":  "-90",
		"SINR":  "N/A",
	}
	c := NewCollector(execFunc(func(ctx context.Context, cmd leano.Command) (leano.Response, error) {
		return data, nil
	}))

	// SINR is unparseable and RSRQ absent entirely; neither may surface
	// as a zero-valued sample.
	expected := `
# HELP zitel_scrape_success Whether the last scrape of the device succeeded
# TYPE zitel_scrape_success gauge
zitel_scrape_success 1
# HELP zitel_signal_rsrp_dbm Reference Signal Received Power in dBm
# TYPE zitel_signal_rsrp_dbm gauge
zitel_signal_rsrp_dbm{model="ZLT X21"} -90
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"zitel_scrape_success",
		"zitel_signal_rsrp_dbm",
		"zitel_signal_sinr_db",
		"zitel_signal_rsrq_db",
	)
	if err != nil {
		t.Errorf("collected metrics mismatch: %v", err)
	}
}

func TestCollectorScrapeFailure(t *testing.T) {
	c := NewCollector(execFunc(func(ctx context.Context, cmd leano.Command) (leano.Response, error) {
		return nil, errors.New("device unreachable")
	}))

	expected := `
# HELP zitel_scrape_success Whether the last scrape of the device succeeded
# TYPE zitel_scrape_success gauge
zitel_scrape_success 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"zitel_scrape_success",
		"zitel_signal_rsrp_dbm",
	)
	if err != nil {
		t.Errorf("collected metrics mismatch: %v", err)
	}
}

func TestBandNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"B3", 3, true},
		{"b41", 41, true},
		{"n28", 28, true},
		{"3", 3, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"LTE", 0, false},
	}
	for _, tt := range tests {
		got, ok := bandNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bandNumber(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBoolNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1", 1, true},
		{"connected", 1, true},
		{"Up", 1, true},
		{"0", 0, true},
		{"disconnected", 0, true},
		{"", 0, false},
		{"maybe", 0, false},
	}
	for _, tt := range tests {
		got, ok := boolNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("boolNumber(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
