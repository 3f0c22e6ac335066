package stats

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

// Value is an optional metric figure. The zero Value is absent.
type Value struct {
	v  float64
	ok bool
}

// Of wraps f. Non-finite input produces an absent Value.
func Of(f float64) Value {
	if Missing(f) {
		return Value{}
	}
	return Value{v: f, ok: true}
}

// None returns an absent Value.
func None() Value { return Value{} }

// Get returns the figure and whether it is present.
func (v Value) Get() (float64, bool) { return v.v, v.ok }

// Valid reports presence.
func (v Value) Valid() bool { return v.ok }

// Float returns the figure, or NaN when absent.
func (v Value) Float() float64 {
	if !v.ok {
		return math.NaN()
	}
	return v.v
}

// Or returns the figure, or fallback when absent.
func (v Value) Or(fallback float64) float64 {
	if !v.ok {
		return fallback
	}
	return v.v
}

// Map applies fn to a present Value.
func (v Value) Map(fn func(float64) float64) Value {
	if !v.ok {
		return v
	}
	return Of(fn(v.v))
}

func (v Value) String() string {
	if !v.ok {
		return "--"
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Of(f)
	return nil
}

func (v Value) MarshalCBOR() ([]byte, error) {
	if !v.ok {
		return cbor.Marshal(nil)
	}
	return cbor.Marshal(v.v)
}

func (v *Value) UnmarshalCBOR(data []byte) error {
	// 0xf6 null, 0xf7 undefined
	if len(data) == 1 && (data[0] == 0xf6 || data[0] == 0xf7) {
		*v = Value{}
		return nil
	}
	var f float64
	if err := cbor.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Of(f)
	return nil
}
