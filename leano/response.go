package leano

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Fields the device includes on most replies.
const (
	FieldStatus = "status"
	FieldCode   = "code"
	FieldToken  = "token"
)

// StatusSuccess is the literal the device uses to report that a command
// was accepted. Anything else in the status field is a device-side
// failure.
const StatusSuccess = "success"

// Response is the decoded reply to a single command: a flat JSON object in
// which every field is optional and values are strings. Some firmware
// revisions emit bare numbers for counter fields; those are coerced to
// their literal text so lookups behave the same across revisions.
//
// Several wire names are misspelled by the firmware ("recieve", "sentt",
// "lenghtt"). They are the device's actual field names and must be queried
// verbatim.
type Response map[string]string

// UnmarshalJSON decodes a flat JSON object, coercing scalar values to
// strings. Payloads that are valid JSON but not an object are rejected.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Response, len(raw))
	for name, value := range raw {
		out[name] = scalarText(value)
	}
	*r = out
	return nil
}

// scalarText renders a raw JSON value as the string the device meant.
// Nulls and composite values have no place in the observed schema and read
// as absent.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		// Numbers and booleans keep their literal text.
		return string(raw)
	}
}

// Field returns the value for name. Absent fields and empty values both
// come back as "", which callers must treat as "not reported".
func (r Response) Field(name string) string {
	return r[name]
}

// Has reports whether name is present with a non-empty value.
func (r Response) Has(name string) bool {
	return r[name] != ""
}

// OK reports whether the device marked this reply successful. Set commands
// gate on it; telemetry reads generally do not.
func (r Response) OK() bool {
	return r.Field(FieldStatus) == StatusSuccess
}

// Code returns the device's result code, empty when absent.
func (r Response) Code() string {
	return r.Field(FieldCode)
}

// Float parses the named field as a number. Values carrying a unit suffix
// ("-95 dBm") are read up to the first space, matching how the firmware
// formats signal readings. Absent, empty and non-numeric values report
// ok == false.
func (r Response) Float(name string) (float64, bool) {
	v := strings.TrimSpace(r[name])
	if v == "" || v == "N/A" {
		return 0, false
	}
	v = strings.Split(v, " ")[0]
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int parses the named field as an integer, accepting the 0x-prefixed hex
// form some revisions use for cell identifiers.
func (r Response) Int(name string) (int64, bool) {
	v := strings.TrimSpace(r[name])
	if v == "" || v == "N/A" {
		return 0, false
	}
	v = strings.Split(v, " ")[0]
	if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
		n, err := strconv.ParseInt(v[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
