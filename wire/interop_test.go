package wire

import (
	"bytes"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/sviezypan/protocodec/schema"
)

// Differential tests against google.golang.org/protobuf: the reference
// implementation must agree with this codec on every byte it reads and
// writes.

func TestInterop_ProtowireReadsOurBytes(t *testing.T) {
	data, err := EncodeValue(schemaRecord, map[string]interface{}{"name": "Foo", "value": int32(123)})
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}

	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 {
		t.Fatalf("ConsumeTag failed: %v", protowire.ParseError(n))
	}
	if num != 1 || typ != protowire.BytesType {
		t.Fatalf("first key = %d/%v", num, typ)
	}
	data = data[n:]

	name, n := protowire.ConsumeBytes(data)
	if n < 0 {
		t.Fatalf("ConsumeBytes failed: %v", protowire.ParseError(n))
	}
	if string(name) != "Foo" {
		t.Errorf("name payload = %q", name)
	}
	data = data[n:]

	num, typ, n = protowire.ConsumeTag(data)
	if n < 0 {
		t.Fatalf("ConsumeTag failed: %v", protowire.ParseError(n))
	}
	if num != 2 || typ != protowire.VarintType {
		t.Fatalf("second key = %d/%v", num, typ)
	}
	data = data[n:]

	value, n := protowire.ConsumeVarint(data)
	if n < 0 {
		t.Fatalf("ConsumeVarint failed: %v", protowire.ParseError(n))
	}
	if value != 123 {
		t.Errorf("value payload = %d", value)
	}
	if len(data[n:]) != 0 {
		t.Errorf("%d trailing bytes", len(data[n:]))
	}
}

func TestInterop_ProtowireBuildsOurBytes(t *testing.T) {
	var ref []byte
	ref = protowire.AppendTag(ref, 1, protowire.BytesType)
	ref = protowire.AppendString(ref, "Foo")
	ref = protowire.AppendTag(ref, 2, protowire.VarintType)
	ref = protowire.AppendVarint(ref, 123)

	ours, err := EncodeValue(schemaRecord, map[string]interface{}{"name": "Foo", "value": int32(123)})
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	if !bytes.Equal(ours, ref) {
		t.Errorf("encoded % X, protowire reference % X", ours, ref)
	}
}

// itemDescriptor builds the descriptor of a message mirroring
// schemaItem: string name = 1; int64 value = 2; repeated int64 nums = 3.
func itemDescriptor(t *testing.T) *dynamicpb.Message {
	t.Helper()

	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("interop.proto"),
		Package: proto.String("interop"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Item"),
			Field: []*descriptorpb.FieldDescriptorProto{
				{
					Name:     proto.String("name"),
					Number:   proto.Int32(1),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					JsonName: proto.String("name"),
				},
				{
					Name:     proto.String("value"),
					Number:   proto.Int32(2),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_INT64.Enum(),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					JsonName: proto.String("value"),
				},
				{
					Name:     proto.String("nums"),
					Number:   proto.Int32(3),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_INT64.Enum(),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
					JsonName: proto.String("nums"),
				},
			},
		}},
	}

	fd, err := protodesc.NewFile(fdp, nil)
	if err != nil {
		t.Fatalf("protodesc.NewFile failed: %v", err)
	}
	return dynamicpb.NewMessage(fd.Messages().Get(0))
}

var schemaItem = schema.Record(
	schema.FieldOf("name", schema.Primitive(schema.String)),
	schema.FieldOf("value", schema.Primitive(schema.Long)),
	schema.FieldOf("nums", schema.Sequence(schema.Primitive(schema.Long))),
)

func TestInterop_DynamicpbDecodesOurBytes(t *testing.T) {
	data, err := EncodeValue(schemaItem, map[string]interface{}{
		"name":  "Foo",
		"value": int64(-123),
		"nums":  []interface{}{int64(3), int64(270), int64(86942)},
	})
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}

	msg := itemDescriptor(t)
	if err := proto.Unmarshal(data, msg); err != nil {
		t.Fatalf("reference Unmarshal rejected our bytes: %v", err)
	}

	md := msg.Descriptor()
	if got := msg.Get(md.Fields().ByNumber(1)).String(); got != "Foo" {
		t.Errorf("name = %q", got)
	}
	if got := msg.Get(md.Fields().ByNumber(2)).Int(); got != -123 {
		t.Errorf("value = %d", got)
	}
	nums := msg.Get(md.Fields().ByNumber(3)).List()
	if nums.Len() != 3 || nums.Get(0).Int() != 3 || nums.Get(1).Int() != 270 || nums.Get(2).Int() != 86942 {
		t.Errorf("nums round-tripped wrong: %v", nums)
	}
}

func TestInterop_WeDecodeDynamicpbBytes(t *testing.T) {
	msg := itemDescriptor(t)
	md := msg.Descriptor()
	msg.Set(md.Fields().ByNumber(1), protoreflect.ValueOfString("Bar"))
	msg.Set(md.Fields().ByNumber(2), protoreflect.ValueOfInt64(150))
	nums := msg.Mutable(md.Fields().ByNumber(3)).List()
	nums.Append(protoreflect.ValueOfInt64(1))
	nums.Append(protoreflect.ValueOfInt64(-1))

	data, err := proto.Marshal(msg)
	if err != nil {
		t.Fatalf("reference Marshal failed: %v", err)
	}

	got, err := DecodeValue(schemaItem, data)
	if err != nil {
		t.Fatalf("DecodeValue rejected reference bytes: %v", err)
	}
	record, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("decoded %T", got)
	}
	if record["name"] != "Bar" || record["value"] != int64(150) {
		t.Errorf("decoded %#v", record)
	}
	wantNums := []interface{}{int64(1), int64(-1)}
	if gotNums, _ := record["nums"].([]interface{}); len(gotNums) != 2 || gotNums[0] != wantNums[0] || gotNums[1] != wantNums[1] {
		t.Errorf("nums = %#v", record["nums"])
	}
}
