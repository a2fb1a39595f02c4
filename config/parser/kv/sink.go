package kv

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/0xalexb/kvline/parse"
	"github.com/0xalexb/kvline/properties"
)

const tagName = "kv"

// sink resolves a key to the function storing its value.
type sink interface {
	lookup(key string) (func(parse.Token) error, bool)
	seen(key string) bool
}

func (p *Parser) sinkFor(target any) (sink, error) {
	if props, ok := target.(*properties.Properties); ok {
		if props == nil {
			return nil, fmt.Errorf("%w: nil *properties.Properties", ErrUnsupportedTarget)
		}

		return &propertiesSink{props: props, schema: p.schema}, nil
	}

	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}

	return newStructSink(ptr.Elem(), p.normalize), nil
}

type propertiesSink struct {
	props  *properties.Properties
	schema properties.Schema
}

func (s *propertiesSink) lookup(key string) (func(parse.Token) error, bool) {
	if s.schema == nil {
		return func(tok parse.Token) error {
			s.props.Set(key, properties.Value{Kind: properties.String, Data: tok.Text(), Offset: tok.Offset()})

			return nil
		}, true
	}

	kind, ok := s.schema.Lookup(key)
	if !ok {
		return nil, false
	}

	return func(tok parse.Token) error {
		data, err := kind.Parse(tok)
		if err != nil {
			return err
		}

		s.props.Set(key, properties.Value{Kind: kind, Data: data, Offset: tok.Offset()})

		return nil
	}, true
}

func (s *propertiesSink) seen(key string) bool {
	return s.props.Has(key)
}

type structSink struct {
	value  reflect.Value
	fields map[string]int
	set    map[string]bool
}

func newStructSink(value reflect.Value, normalize func(string) string) *structSink {
	typ := value.Type()
	fields := make(map[string]int, typ.NumField())

	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}

		if name == "" {
			name = strings.ToLower(field.Name)
		}

		fields[normalize(name)] = i
	}

	return &structSink{value: value, fields: fields, set: make(map[string]bool)}
}

func (s *structSink) lookup(key string) (func(parse.Token) error, bool) {
	idx, ok := s.fields[key]
	if !ok {
		return nil, false
	}

	return func(tok parse.Token) error {
		err := parse.ParseValue(s.value.Field(idx), tok)
		if err != nil {
			return err
		}

		s.set[key] = true

		return nil
	}, true
}

func (s *structSink) seen(key string) bool {
	return s.set[key]
}
