package main

import (
	"fmt"
	"log"
	"time"

	"github.com/sviezypan/protocodec"
	"github.com/sviezypan/protocodec/schema"
)

func main() {
	codec := protocodec.NewCodec()

	// Schemas are plain values: no .proto files, no code generation.
	address := schema.Record(
		schema.FieldOf("street", schema.Primitive(schema.String)),
		schema.FieldOf("number", schema.Primitive(schema.Int)),
	)
	user := schema.Record(
		schema.FieldOf("name", schema.Primitive(schema.String)),
		schema.FieldOf("id", schema.Primitive(schema.Long)),
		schema.FieldOf("scores", schema.Sequence(schema.Primitive(schema.Double))),
		schema.FieldOf("address", address),
		schema.FieldOf("email", schema.Optional(schema.Primitive(schema.String))),
		schema.FieldOf("joined", schema.Primitive(schema.Instant(""))),
	)

	if err := codec.RegisterSchema("User", user); err != nil {
		log.Fatalf("failed to register schema: %v", err)
	}

	value := map[string]interface{}{
		"name":    "Ada",
		"id":      int64(1),
		"scores":  []interface{}{9.5, 8.25},
		"address": map[string]interface{}{"street": "Main", "number": int32(42)},
		"email":   "ada@example.com",
		"joined":  time.Date(2024, time.March, 5, 12, 30, 0, 0, time.UTC),
	}

	data, err := codec.MarshalNamed("User", value)
	if err != nil {
		log.Fatalf("failed to encode: %v", err)
	}
	fmt.Printf("encoded %d bytes: % X\n", len(data), data)

	decoded, err := codec.UnmarshalNamed("User", data)
	if err != nil {
		log.Fatalf("failed to decode: %v", err)
	}
	fmt.Printf("decoded: %v\n", decoded)

	// Schema-less view of the same bytes.
	raw, err := codec.Parse(data)
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	fmt.Printf("raw fields: %d\n", len(raw))

	// Streaming: a chunk boundary inside a field is buffered until the
	// rest of the field arrives.
	sd := codec.StreamDecoder(user)
	half := len(data) / 2
	for _, chunk := range [][]byte{data[:half], data[half:]} {
		values, err := sd.Feed(chunk)
		if err != nil {
			log.Fatalf("stream decode failed: %v", err)
		}
		for _, v := range values {
			fmt.Printf("streamed: %v\n", v)
		}
	}
	if err := sd.Finish(); err != nil {
		log.Fatalf("stream finish failed: %v", err)
	}
}
