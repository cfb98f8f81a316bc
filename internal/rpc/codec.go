package rpc

import (
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	_ "google.golang.org/grpc/encoding/proto" // registered first so Codec replaces it
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// CodecName is the content subtype ClinicService speaks: application/grpc+proto.
const CodecName = "proto"

// wireMessage is a ClinicService message encoded by hand with protowire.
// Field numbers follow api/clinic/v1/clinic.proto.
type wireMessage interface {
	appendWire(b []byte) []byte
	// consumeField decodes one field whose tag has been read and returns the
	// bytes used, or a negative protowire error code.
	consumeField(num protowire.Number, typ protowire.Type, b []byte) int
}

// Codec encodes ClinicService messages in protobuf wire format. Generated
// messages (health checks, status details) go through proto as usual.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case wireMessage:
		return m.appendWire(nil), nil
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("rpc: cannot marshal %T", v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case wireMessage:
		if err := unmarshalWire(data, m); err != nil {
			return fmt.Errorf("decode %T: %w", v, err)
		}
		return nil
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("rpc: cannot unmarshal into %T", v)
}

func (Codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(Codec{})
}

// CallOption pins the protobuf content subtype on a client call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}

func unmarshalWire(b []byte, m wireMessage) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n = m.consumeField(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

// proto3 scalars: zero values are not written.

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendStrings(b []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

// appendTime writes t as a google.protobuf.Timestamp.
func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	var inner []byte
	if s := t.Unix(); s != 0 {
		inner = protowire.AppendTag(inner, 1, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(s))
	}
	if ns := t.Nanosecond(); ns != 0 {
		inner = protowire.AppendTag(inner, 2, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(ns))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func appendMessage(b []byte, num protowire.Number, m wireMessage) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.appendWire(nil))
}

// A field sent with an unexpected wire type is skipped, as proto does for
// unknown fields.

func consumeString(num protowire.Number, typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeStrings(num protowire.Number, typ protowire.Type, b []byte, dst *[]string) int {
	var s string
	n := consumeString(num, typ, b, &s)
	if n >= 0 && typ == protowire.BytesType {
		*dst = append(*dst, s)
	}
	return n
}

func consumeBool(num protowire.Number, typ protowire.Type, b []byte, dst *bool) int {
	if typ != protowire.VarintType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}

func consumeInt(num protowire.Number, typ protowire.Type, b []byte, dst *int) int {
	if typ != protowire.VarintType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = int(int64(v))
	}
	return n
}

func consumeTime(num protowire.Number, typ protowire.Type, b []byte, dst *time.Time) int {
	if typ != protowire.BytesType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	ts := &timestamppb.Timestamp{}
	if err := proto.Unmarshal(v, ts); err != nil {
		return errInvalid
	}
	*dst = ts.AsTime()
	return n
}

// errInvalid is protowire's generic parse error code.
const errInvalid = -1

func consumeMessage(num protowire.Number, typ protowire.Type, b []byte, m wireMessage) int {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	if err := unmarshalWire(v, m); err != nil {
		return errInvalid
	}
	return n
}

// msgPtr is *T for a message struct T.
type msgPtr[T any] interface {
	*T
	wireMessage
}

func consumeOne[T any, P msgPtr[T]](num protowire.Number, typ protowire.Type, b []byte, dst *P) int {
	if typ != protowire.BytesType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	if *dst == nil {
		*dst = P(new(T))
	}
	return consumeMessage(num, typ, b, *dst)
}

func consumeMany[T any, P msgPtr[T]](num protowire.Number, typ protowire.Type, b []byte, dst *[]P) int {
	if typ != protowire.BytesType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	m := P(new(T))
	n := consumeMessage(num, typ, b, m)
	if n >= 0 {
		*dst = append(*dst, m)
	}
	return n
}
