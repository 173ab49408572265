package engine

import (
	"testing"
)

func TestPackUnpackPtrLen(t *testing.T) {
	cases := []struct {
		ptr, length uint32
	}{
		{0, 0},
		{1, 1},
		{0x1000, 256},
		{0xFFFFFFFF, 0xFFFFFFFF},
	}
	for _, tc := range cases {
		ptr, length := unpackPtrLen(packPtrLen(tc.ptr, tc.length))
		if ptr != tc.ptr || length != tc.length {
			t.Errorf("roundtrip (%d, %d) = (%d, %d)", tc.ptr, tc.length, ptr, length)
		}
	}
}

func TestDecodeDescriptor(t *testing.T) {
	data := []byte(`{
		"name": "hello-client",
		"requires": ["plume:timing/frame-timing"],
		"optional": ["plume:gui/gui"],
		"provides": ["example:hello/greeter"],
		"handlers": [{"event": "plume:timing/frame", "handler": 0}],
		"targets": ["client"]
	}`)

	desc, err := decodeDescriptor(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if desc.Name != "hello-client" {
		t.Errorf("Name = %q", desc.Name)
	}
	if len(desc.Requires) != 1 || desc.Requires[0] != "plume:timing/frame-timing" {
		t.Errorf("Requires = %v", desc.Requires)
	}
	if len(desc.Handlers) != 1 || desc.Handlers[0].Event != "plume:timing/frame" {
		t.Errorf("Handlers = %v", desc.Handlers)
	}
	if !desc.MatchesTarget("client") || desc.MatchesTarget("server") {
		t.Error("target restriction not honored")
	}
}

func TestDecodeDescriptorRejectsUnnamed(t *testing.T) {
	if _, err := decodeDescriptor([]byte(`{"provides": ["x"]}`)); err == nil {
		t.Fatal("expected unnamed descriptor to be rejected")
	}
	if _, err := decodeDescriptor([]byte(`not json`)); err == nil {
		t.Fatal("expected malformed descriptor to be rejected")
	}
}
