package leano

import (
	"encoding/json"
	"testing"
)

func TestResponseUnmarshalCoercesScalars(t *testing.T) {
	t.Parallel()

	payload := `{
		"name": "ZLT X21",
		"count": 42,
		"rsrp": -95.5,
		"flag": true,
		"missing": null,
		"nested": {"k": 1},
		"list": [1, 2]
	}`

	var r Response
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := map[string]string{
		"name":    "ZLT X21",
		"count":   "42",
		"rsrp":    "-95.5",
		"flag":    "true",
		"missing": "",
		"nested":  "",
		"list":    "",
	}
	for name, value := range want {
		if got := r.Field(name); got != value {
			t.Errorf("Field(%q) = %q, want %q", name, got, value)
		}
	}
}

func TestResponseUnmarshalRejectsNonObject(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`[1, 2]`, `"text"`, `42`} {
		var r Response
		if err := json.Unmarshal([]byte(payload), &r); err == nil {
			t.Errorf("Unmarshal(%q) accepted a non-object payload", payload)
		}
	}
}

func TestResponseFieldAndHas(t *testing.T) {
	t.Parallel()

	r := Response{"IMSI": "432110123456789", "ICCID": ""}

	if got := r.Field("IMSI"); got != "432110123456789" {
		t.Errorf("Field(IMSI) = %q", got)
	}
	if got := r.Field("absent"); got != "" {
		t.Errorf("Field(absent) = %q, want empty", got)
	}
	if !r.Has("IMSI") {
		t.Error("Has(IMSI) = false")
	}
	if r.Has("ICCID") {
		t.Error("Has reported an empty field as present")
	}
	if r.Has("absent") {
		t.Error("Has reported an absent field as present")
	}
}

func TestResponseOK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r    Response
		want bool
	}{
		{Response{"status": "success"}, true},
		{Response{"status": "failed"}, false},
		{Response{"status": ""}, false},
		{Response{}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := tt.r.OK(); got != tt.want {
			t.Errorf("OK() on %v = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestResponseFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  float64
		ok    bool
	}{
		{"-95", -95, true},
		{"-95 dBm", -95, true},
		{"23.5", 23.5, true},
		{" 12 ", 12, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		r := Response{"v": tt.value}
		got, ok := r.Float("v")
		if got != tt.want || ok != tt.ok {
			t.Errorf("Float(%q) = %v, %v, want %v, %v", tt.value, got, ok, tt.want, tt.ok)
		}
	}

	if _, ok := (Response{}).Float("absent"); ok {
		t.Error("Float parsed an absent field")
	}
}

func TestResponseInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  int64
		ok    bool
	}{
		{"42490", 42490, true},
		{"0x1A2B", 0x1a2b, true},
		{"0X10", 16, true},
		{"-7", -7, true},
		{"12 dB", 12, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"0xZZ", 0, false},
		{"12.5", 0, false},
	}
	for _, tt := range tests {
		r := Response{"v": tt.value}
		got, ok := r.Int("v")
		if got != tt.want || ok != tt.ok {
			t.Errorf("Int(%q) = %v, %v, want %v, %v", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}
