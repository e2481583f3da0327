package ros

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConnectionHeaderRoundTrip(t *testing.T) {
	in := []header{
		{"callerid", "/interactive_frame_target"},
		{"topic", "/tf"},
		{"md5sum", "94810edda583a504dfda3829e70d7eec"},
		{"message_definition", "a=b\nc"},
		{"latching", ""},
	}
	var buf bytes.Buffer
	if err := writeConnectionHeader(in, &buf); err != nil {
		t.Fatal(err)
	}
	out, err := readConnectionHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out, cmp.AllowUnexported(header{})); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if m := headerMap(out); m["message_definition"] != "a=b\nc" {
		t.Error(m)
	}
}

func TestConnectionHeaderWireFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := writeConnectionHeader([]header{{"a", "b"}}, &buf); err != nil {
		t.Fatal(err)
	}
	expected := []byte{7, 0, 0, 0, 3, 0, 0, 0, 'a', '=', 'b'}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("% x", buf.Bytes())
	}
}

func TestConnectionHeaderRejectsOverrun(t *testing.T) {
	bad := []byte{8, 0, 0, 0, 9, 0, 0, 0, 'a', '=', 'b', 'c'}
	if _, err := readConnectionHeader(bytes.NewReader(bad)); err == nil {
		t.Error("expected an overrun error")
	}
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := writeFrame(&buf, []byte("payload")); err != nil {
		t.Fatal(err)
	}
	got, err := readFrame(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Error(string(got))
	}
}
