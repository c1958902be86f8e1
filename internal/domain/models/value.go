package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// RawKind tags the encoding a ratio field arrived in.
type RawKind uint8

const (
	RawMissing RawKind = iota
	RawNumber
	RawText
)

func (k RawKind) String() string {
	switch k {
	case RawNumber:
		return "number"
	case RawText:
		return "text"
	default:
		return "missing"
	}
}

// RawValue is a ratio field exactly as the upstream source encoded it.
// The zero value is Missing.
type RawValue struct {
	kind RawKind
	num  float64
	text string
}

// Number wraps a numeric field.
func Number(n float64) RawValue { return RawValue{kind: RawNumber, num: n} }

// Text wraps a field that was delivered as a string.
func Text(s string) RawValue { return RawValue{kind: RawText, text: s} }

// Missing is an absent or null field.
func Missing() RawValue { return RawValue{} }

func (r RawValue) Kind() RawKind { return r.kind }

// Num returns the numeric payload; only meaningful for RawNumber.
func (r RawValue) Num() float64 { return r.num }

// Str returns the text payload; only meaningful for RawText.
func (r RawValue) Str() string { return r.text }

func (r RawValue) String() string {
	switch r.kind {
	case RawNumber:
		return strconv.FormatFloat(r.num, 'g', -1, 64)
	case RawText:
		return strconv.Quote(r.text)
	default:
		return "<missing>"
	}
}

// UnmarshalJSON maps null to Missing, numbers to Number and strings to Text.
// Any other JSON type is outside the field contract and decodes as Missing.
func (r *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Missing()
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode text value: %w", err)
		}
		*r = Text(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			// out of float64 range; keep the literal so coercion decides
			*r = Text(string(b))
			return nil
		}
		*r = Number(n)
	default:
		*r = Missing()
	}
	return nil
}

// MarshalJSON writes the value back in its original encoding.
func (r RawValue) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RawNumber:
		if math.IsNaN(r.num) || math.IsInf(r.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(r.num)
	case RawText:
		return json.Marshal(r.text)
	default:
		return []byte("null"), nil
	}
}

// Value is a coerced ratio value: a finite number or absent.
// The zero value is absent.
type Value struct {
	n  float64
	ok bool
}

// Some returns a present value. Non-finite numbers collapse to absent.
func Some(n float64) Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Value{}
	}
	return Value{n: n, ok: true}
}

// Absent is the distinguished "no value" marker.
func Absent() Value { return Value{} }

// Get returns the number and whether it is present.
func (v Value) Get() (float64, bool) { return v.n, v.ok }

func (v Value) Valid() bool { return v.ok }

// Raw converts the value back into the raw domain so it can be coerced again.
func (v Value) Raw() RawValue {
	if !v.ok {
		return Missing()
	}
	return Number(v.n)
}

func (v Value) String() string {
	if !v.ok {
		return "absent"
	}
	return strconv.FormatFloat(v.n, 'g', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.n)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = Absent()
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	*v = Some(n)
	return nil
}
