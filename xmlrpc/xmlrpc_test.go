package xmlrpc

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmitScalars(t *testing.T) {
	cases := []struct {
		in       interface{}
		expected string
	}{
		{nil, ""},
		{true, "<boolean>1</boolean>"},
		{false, "<boolean>0</boolean>"},
		{42, "<int>42</int>"},
		{uint32(7), "<int>7</int>"},
		{3.14, "<double>3.14</double>"},
		{"Hello, world!", "<string>Hello, world!</string>"},
		{"a<b&c", "<string>a&lt;b&amp;c</string>"},
		{[]byte("ABCDEFG"), "<base64>QUJDREVGRw==</base64>"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if err := emitValue(&buf, c.in); err != nil {
			t.Fatalf("%v: %v", c.in, err)
		}
		if buf.String() != c.expected {
			t.Errorf("emitValue(%#v) = %q, want %q", c.in, buf.String(), c.expected)
		}
	}
}

func TestEmitArray(t *testing.T) {
	var buf bytes.Buffer
	xs := []interface{}{12, "Egypt", false, -31}
	if err := emitValue(&buf, xs); err != nil {
		t.Fatal(err)
	}
	expected := "<array><data>" +
		"<value><int>12</int></value>" +
		"<value><string>Egypt</string></value>" +
		"<value><boolean>0</boolean></value>" +
		"<value><int>-31</int></value>" +
		"</data></array>"
	if buf.String() != expected {
		t.Error(buf.String())
	}
}

func TestEmitStructRejectsNonStringKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := emitValue(&buf, map[int]int{1: 2}); err == nil {
		t.Error("expected an error for an int-keyed map")
	}
}

func TestParseRequest(t *testing.T) {
	req := `<?xml version="1.0"?>
<methodCall>
  <methodName>examples.getStateName</methodName>
  <params>
    <param><value><i4>41</i4></value></param>
    <param><value><boolean>1</boolean></value></param>
    <param><value>untyped</value></param>
    <param><value><string></string></value></param>
    <param><value><double>-12.5</double></value></param>
    <param><value><base64>QUJD</base64></value></param>
    <param><value><array><data>
      <value><int>1</int></value>
      <value><string>two</string></value>
    </data></array></value></param>
    <param><value><struct>
      <member><name>lowerBound</name><value><int>18</int></value></member>
      <member><name>upperBound</name><value><int>139</int></value></member>
    </struct></value></param>
  </params>
</methodCall>`
	name, args, err := parseRequest([]byte(req))
	if err != nil {
		t.Fatal(err)
	}
	if name != "examples.getStateName" {
		t.Error(name)
	}
	expected := []interface{}{
		int32(41),
		true,
		"untyped",
		"",
		-12.5,
		[]byte("ABC"),
		[]interface{}{int32(1), "two"},
		map[string]interface{}{"lowerBound": int32(18), "upperBound": int32(139)},
	}
	if diff := cmp.Diff(expected, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := []interface{}{"/rosout", int32(3), []interface{}{"TCPROS"}}
	if err := emitRequest(&buf, "requestTopic", in...); err != nil {
		t.Fatal(err)
	}
	name, args, err := parseRequest(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if name != "requestTopic" {
		t.Error(name)
	}
	if diff := cmp.Diff(in, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResponse(t *testing.T) {
	res := `<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><i4>1</i4></value>
<value><string>Success</string></value>
<value><array><data><value><string>http://host:1234/</string></value></data></array></value>
</data></array></value></param></params></methodResponse>`
	v, err := parseResponse([]byte(res))
	if err != nil {
		t.Fatal(err)
	}
	expected := []interface{}{int32(1), "Success", []interface{}{"http://host:1234/"}}
	if diff := cmp.Diff(expected, v); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFault(t *testing.T) {
	var buf bytes.Buffer
	emitFault(&buf, 4, "Too many parameters.")
	_, err := parseResponse(buf.Bytes())
	fault, ok := err.(*Fault)
	if !ok {
		t.Fatalf("expected *Fault, got %v", err)
	}
	if fault.Code != 4 || fault.Message != "Too many parameters." {
		t.Error(fault)
	}
}

type adder struct{}

func (adder) addTwoInts(a int32, b int32) (interface{}, error) {
	return a + b, nil
}

func TestClientAndHandler(t *testing.T) {
	var a adder
	h := NewHandler(map[string]Method{
		"addTwoInts": a.addTwoInts,
		"greet":      func(name string) (interface{}, error) { return "hello " + name, nil },
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	result, err := Call(srv.URL, "addTwoInts", 40, 2)
	if err != nil {
		t.Fatal(err)
	}
	if result != int32(42) {
		t.Errorf("addTwoInts = %v", result)
	}

	result, err = Call(srv.URL, "greet", "ros")
	if err != nil {
		t.Fatal(err)
	}
	if result != "hello ros" {
		t.Errorf("greet = %v", result)
	}

	_, err = Call(srv.URL, "missing")
	if err == nil || !strings.Contains(err.Error(), "No method named") {
		t.Errorf("unexpected error %v", err)
	}

	_, err = Call(srv.URL, "greet", 42)
	if _, ok := err.(*Fault); !ok {
		t.Errorf("expected a fault for a mistyped argument, got %v", err)
	}
	h.WaitForShutdown()
}
