package adapter

import (
	"fmt"
	"reflect"
	"time"

	"github.com/curtisnewbie/timeaxis/util/atom"
	"github.com/spf13/cast"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputNumber
	inputMillis
	inputTime
	inputText
)

// Raw temporal value handed to [Adapter.Parse].
//
// The zero value is absent.
type Input struct {
	kind   inputKind
	number float64
	millis int64
	time   time.Time
	text   string
}

// Absent value.
func None() Input {
	return Input{}
}

// Milliseconds since unix epoch, the fraction is truncated.
func Number(ms float64) Input {
	return Input{kind: inputNumber, number: ms}
}

// Milliseconds since unix epoch.
func Millis(ms int64) Input {
	return Input{kind: inputMillis, millis: ms}
}

func TimeValue(t time.Time) Input {
	return Input{kind: inputTime, time: t}
}

func Text(s string) Input {
	return Input{kind: inputText, text: s}
}

func (i Input) IsNone() bool {
	return i.kind == inputNone
}

func (i Input) String() string {
	switch i.kind {
	case inputNumber:
		return fmt.Sprintf("Number(%v)", i.number)
	case inputMillis:
		return fmt.Sprintf("Millis(%d)", i.millis)
	case inputTime:
		return fmt.Sprintf("Time(%v)", i.time)
	case inputText:
		return fmt.Sprintf("Text(%q)", i.text)
	}
	return "None"
}

/*
Coerce arbitrary value to Input.

	- nil and nil pointers are absent.
	- integers are milliseconds since unix epoch, floats are Number.
	- time.Time, *time.Time and atom.Time are instants.
	- string, *string and []byte are text.
	- anything else is absent.
*/
func InputOf(v any) Input {
	if v == nil {
		return None()
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return None()
	}

	switch x := v.(type) {
	case Input:
		return x
	case time.Time:
		return TimeValue(x)
	case *time.Time:
		return TimeValue(*x)
	case atom.Time:
		return TimeValue(x.Unwrap())
	case *atom.Time:
		return TimeValue(x.Unwrap())
	case string, *string, []byte:
		return Text(cast.ToString(x))
	case float32, float64, *float32, *float64:
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return None()
		}
		return Number(f)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		*int, *int8, *int16, *int32, *int64, *uint, *uint8, *uint16, *uint32, *uint64:
		ms, err := cast.ToInt64E(x)
		if err != nil {
			return None()
		}
		return Millis(ms)
	}
	return None()
}
