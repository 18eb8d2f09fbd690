package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Attachment is a file-kind output.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Envelope field names, present in every response.
const (
	ErrorField   = "error"
	MessageField = "message"
)

// collect picks the declared outputs the handler produced out of its result.
// The result may be a struct (or pointer to one) with json tags, or a
// map[string]any. Nil pointers, slices, maps and interfaces count as not
// produced.
func collect(route Route, result any) (map[string]any, map[string]*Attachment) {
	scalars := map[string]any{}
	files := map[string]*Attachment{}
	if result == nil {
		return scalars, files
	}

	put := func(name string, v reflect.Value) {
		p, ok := route.output(name)
		if !ok || name == ErrorField || name == MessageField || !produced(v) {
			return
		}
		if p.Kind == FileKind {
			if a := asAttachment(v); a != nil {
				files[name] = a
			}
			return
		}
		scalars[name] = v.Interface()
	}

	v := reflect.ValueOf(result)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return scalars, files
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			put(outputName(f), v.Field(i))
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return scalars, files
		}
		iter := v.MapRange()
		for iter.Next() {
			put(iter.Key().String(), iter.Value())
		}
	}
	return scalars, files
}

func outputName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}

func produced(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !v.IsNil()
	}
	return true
}

func asAttachment(v reflect.Value) *Attachment {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	switch a := v.Interface().(type) {
	case *Attachment:
		return a
	case Attachment:
		return &a
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// write serializes the envelope. Routes with file outputs answer with a
// multipart body: a "json" part holding the scalars and one part per file.
func write(c *fiber.Ctx, route Route, status int, scalars map[string]any, files map[string]*Attachment, kind, message string) error {
	body := make(map[string]any, len(scalars)+2)
	for k, v := range scalars {
		body[k] = v
	}
	body[ErrorField] = kind
	body[MessageField] = message

	if !route.hasFileOutputs() {
		return c.Status(status).JSON(body)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode json part: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField(jsonPart, string(raw)); err != nil {
		return err
	}
	for _, out := range route.Outputs {
		a, ok := files[out.Name]
		if !ok || out.Kind != FileKind {
			continue
		}
		ct := a.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		h := make(textproto.MIMEHeader)
		h.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(out.Name), quoteEscaper.Replace(a.Filename)))
		h.Set(fiber.HeaderContentType, ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := part.Write(a.Data); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, mw.FormDataContentType())
	return c.Status(status).Send(buf.Bytes())
}
