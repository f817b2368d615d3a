// Package json is a thin layer over json-iterator.
//
// Exported struct fields without an explicit json name are written and read in lower camel case, e.g., ErrorCode
// is "errorCode".
package json

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/curtisnewbie/timeaxis/util/strutil"
	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.Config{EscapeHTML: true}.Froze()

func init() {
	api.RegisterExtension(&lowerCamelExtension{})
}

func ParseJsonAs[T any](body []byte) (T, error) {
	var t T
	return t, api.Unmarshal(body, &t)
}

func SParseJsonAs[T any](body string) (T, error) {
	return ParseJsonAs[T](strutil.UnsafeStr2Byt(body))
}

// Write body as json string, strings are returned as is.
func SWriteJson(body any) (string, error) {
	if s, ok := body.(string); ok {
		return s, nil
	}
	buf, err := api.Marshal(body)
	if err != nil {
		return "", err
	}
	return strutil.UnsafeByt2Str(buf), nil
}

// Write body as json string indented with two spaces.
func SWriteIndent(body any) (string, error) {
	buf, err := api.MarshalIndent(body, "", "  ")
	if err != nil {
		return "", err
	}
	return strutil.UnsafeByt2Str(buf), nil
}

func DecodeJson(r io.Reader, ptr any) error {
	return api.NewDecoder(r).Decode(ptr)
}

func EncodeJson(w io.Writer, body any) error {
	return api.NewEncoder(w).Encode(body)
}

func lowerCamel(name string) string {
	r, n := utf8.DecodeRuneInString(name)
	if n == 0 {
		return name
	}
	return string(unicode.ToLower(r)) + name[n:]
}

type lowerCamelExtension struct {
	jsoniter.DummyExtension
}

func (e *lowerCamelExtension) UpdateStructDescriptor(sd *jsoniter.StructDescriptor) {
	for _, b := range sd.Fields {
		name := b.Field.Name()
		if r, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(r) {
			continue
		}
		if tag, ok := b.Field.Tag().Lookup("json"); ok {
			// "-" hides the field, any other non-empty name is kept
			if n, _, _ := strings.Cut(tag, ","); n != "" {
				continue
			}
		}
		b.ToNames = []string{lowerCamel(name)}
		b.FromNames = []string{lowerCamel(name)}
	}
}
