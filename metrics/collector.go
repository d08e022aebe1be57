// Package metrics exposes ZITEL dashboard telemetry as Prometheus
// metrics.
package metrics

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/northvector/zitel/leano"
)

// Executor is the slice of the protocol client the collector scrapes
// through.
type Executor interface {
	Execute(ctx context.Context, cmd leano.Command) (leano.Response, error)
}

// Collector implements prometheus.Collector over the dashboard reply.
// Metrics are emitted only for fields present in the reply, preserving
// the protocol's everything-optional contract: an absent field means an
// absent sample, never a zero.
type Collector struct {
	exec Executor
	mu   sync.Mutex

	// Signal quality
	csqDesc  *prometheus.Desc
	rsrpDesc *prometheus.Desc
	rsrqDesc *prometheus.Desc
	sinrDesc *prometheus.Desc
	rssiDesc *prometheus.Desc

	// Serving cell
	bandDesc   *prometheus.Desc
	earfcnDesc *prometheus.Desc
	pcidDesc   *prometheus.Desc
	tacDesc    *prometheus.Desc
	enodebDesc *prometheus.Desc

	// Link state
	internetDesc  *prometheus.Desc
	uptimeDesc    *prometheus.Desc
	wanUptimeDesc *prometheus.Desc

	// Device load
	cpuDesc *prometheus.Desc
	ramDesc *prometheus.Desc

	// Traffic counters
	receiveDesc  *prometheus.Desc
	transmitDesc *prometheus.Desc

	// Scrape health
	scrapeSuccessDesc  *prometheus.Desc
	scrapeDurationDesc *prometheus.Desc
}

// NewCollector creates a Collector scraping through exec.
func NewCollector(exec Executor) *Collector {
	labels := []string{"model"}

	return &Collector{
		exec: exec,

		csqDesc: prometheus.NewDesc(
			"zitel_signal_csq",
			"Reported CSQ signal quality index",
			labels, nil,
		),
		rsrpDesc: prometheus.NewDesc(
			"zitel_signal_rsrp_dbm",
			"Reference Signal Received Power in dBm",
			labels, nil,
		),
		rsrqDesc: prometheus.NewDesc(
			"zitel_signal_rsrq_db",
			"Reference Signal Received Quality in dB",
			labels, nil,
		),
		sinrDesc: prometheus.NewDesc(
			"zitel_signal_sinr_db",
			"Signal to Interference plus Noise Ratio in dB",
			labels, nil,
		),
		rssiDesc: prometheus.NewDesc(
			"zitel_signal_rssi_dbm",
			"Received Signal Strength Indicator in dBm",
			labels, nil,
		),

		bandDesc: prometheus.NewDesc(
			"zitel_cell_band",
			"Active LTE band number",
			labels, nil,
		),
		earfcnDesc: prometheus.NewDesc(
			"zitel_cell_earfcn",
			"Absolute radio frequency channel number of the serving cell",
			labels, nil,
		),
		pcidDesc: prometheus.NewDesc(
			"zitel_cell_pcid",
			"Physical cell ID of the serving cell",
			labels, nil,
		),
		tacDesc: prometheus.NewDesc(
			"zitel_cell_tac",
			"Tracking area code",
			labels, nil,
		),
		enodebDesc: prometheus.NewDesc(
			"zitel_cell_enodeb",
			"eNodeB identifier",
			labels, nil,
		),

		internetDesc: prometheus.NewDesc(
			"zitel_internet_up",
			"Whether the device reports its internet connection as up",
			labels, nil,
		),
		uptimeDesc: prometheus.NewDesc(
			"zitel_uptime_seconds",
			"Device uptime in seconds",
			labels, nil,
		),
		wanUptimeDesc: prometheus.NewDesc(
			"zitel_wan_uptime_seconds",
			"WAN session uptime in seconds",
			labels, nil,
		),

		cpuDesc: prometheus.NewDesc(
			"zitel_cpu_usage_percent",
			"Per-core CPU usage percentage",
			[]string{"model", "core"}, nil,
		),
		ramDesc: prometheus.NewDesc(
			"zitel_ram_usage_kilobytes",
			"RAM usage as reported by the dashboard, in kilobytes",
			labels, nil,
		),

		receiveDesc: prometheus.NewDesc(
			"zitel_network_receive_bytes_total",
			"Bytes received on the WAN interface",
			labels, nil,
		),
		transmitDesc: prometheus.NewDesc(
			"zitel_network_transmit_bytes_total",
			"Bytes transmitted on the WAN interface",
			labels, nil,
		),

		scrapeSuccessDesc: prometheus.NewDesc(
			"zitel_scrape_success",
			"Whether the last scrape of the device succeeded",
			nil, nil,
		),
		scrapeDurationDesc: prometheus.NewDesc(
			"zitel_scrape_duration_seconds",
			"Duration of the last device scrape in seconds",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.csqDesc
	ch <- c.rsrpDesc
	ch <- c.rsrqDesc
	ch <- c.sinrDesc
	ch <- c.rssiDesc
	ch <- c.bandDesc
	ch <- c.earfcnDesc
	ch <- c.pcidDesc
	ch <- c.tacDesc
	ch <- c.enodebDesc
	ch <- c.internetDesc
	ch <- c.uptimeDesc
	ch <- c.wanUptimeDesc
	ch <- c.cpuDesc
	ch <- c.ramDesc
	ch <- c.receiveDesc
	ch <- c.transmitDesc
	ch <- c.scrapeSuccessDesc
	ch <- c.scrapeDurationDesc
}

// Collect implements prometheus.Collector. Each scrape issues one
// dashboard read; the client's own command timeout bounds it.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		ch <- prometheus.MustNewConstMetric(c.scrapeDurationDesc, prometheus.GaugeValue, v)
	}))
	defer timer.ObserveDuration()

	data, err := c.exec.Execute(context.Background(), leano.GetIndexData)
	if err != nil {
		log.Printf("Error collecting metrics: %v", err)
		ch <- prometheus.MustNewConstMetric(c.scrapeSuccessDesc, prometheus.GaugeValue, 0)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.scrapeSuccessDesc, prometheus.GaugeValue, 1)

	if status := data.Field(leano.FieldStatus); status != "" && status != leano.StatusSuccess {
		log.Printf("Device reported status %q (code %q)", status, data.Code())
	}

	model := data.Field("model")

	gauge := func(desc *prometheus.Desc, field string) {
		if v, ok := data.Float(field); ok {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v, model)
		}
	}
	intGauge := func(desc *prometheus.Desc, field string) {
		if v, ok := data.Int(field); ok {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(v), model)
		}
	}
	counter := func(desc *prometheus.Desc, field string) {
		if v, ok := data.Float(field); ok {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, v, model)
		}
	}

	gauge(c.csqDesc, "CSQ")
	gauge(c.rsrpDesc, "RSRP")
	gauge(c.rsrqDesc, "RSRQ")
	gauge(c.sinrDesc, "SINR")
	gauge(c.rssiDesc, "RSSI")

	if v, ok := bandNumber(data.Field("BAND")); ok {
		ch <- prometheus.MustNewConstMetric(c.bandDesc, prometheus.GaugeValue, v, model)
	}
	intGauge(c.earfcnDesc, "EARFCN")
	intGauge(c.pcidDesc, "PCID")
	intGauge(c.tacDesc, "TAC")
	intGauge(c.enodebDesc, "ENODE")

	if v, ok := boolNumber(data.Field("INTERNET")); ok {
		ch <- prometheus.MustNewConstMetric(c.internetDesc, prometheus.GaugeValue, v, model)
	}
	intGauge(c.uptimeDesc, "SYSUP")
	intGauge(c.wanUptimeDesc, "WANUP")

	if v, ok := data.Float("cpu1"); ok {
		ch <- prometheus.MustNewConstMetric(c.cpuDesc, prometheus.GaugeValue, v, model, "1")
	}
	if v, ok := data.Float("cpu2"); ok {
		ch <- prometheus.MustNewConstMetric(c.cpuDesc, prometheus.GaugeValue, v, model, "2")
	}
	gauge(c.ramDesc, "ram")

	// Wire spellings: the firmware reports traffic as "recieve"/"sentt".
	counter(c.receiveDesc, "recieve")
	counter(c.transmitDesc, "sentt")
}

// bandNumber extracts the numeric band from values like "B3", "b41" or
// "n28".
func bandNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == "N/A" {
		return 0, false
	}
	v = strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(v, "B"), "b"), "n")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// boolNumber maps the device's connection-state literals to 0/1.
// Unrecognized literals yield no sample rather than a guess.
func boolNumber(v string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "connected", "up", "yes", "true", "enable", "enabled":
		return 1, true
	case "0", "disconnected", "down", "no", "false", "disable", "disabled":
		return 0, true
	default:
		return 0, false
	}
}
