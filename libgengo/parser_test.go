package libgengo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvertConstantValue(t *testing.T) {
	tests := []struct {
		fieldType    string
		valueLiteral string
		expected     interface{}
		expectError  bool
	}{
		{"bool", "0", false, false},
		{"bool", "1", true, false},
		{"bool", "2", true, false},
		{"bool", "-2", nil, true},
		{"bool", "True", true, false},
		{"bool", "False", false, false},
		{"bool", "None", false, false},
		{"float32", "2.72", float32(2.72), false},
		{"float64", "-3.14", float64(-3.14), false},
		{"int8", "-129", nil, true},
		{"int8", "-128", int8(-128), false},
		{"int8", "127", int8(127), false},
		{"int8", "128", nil, true},
		{"int16", "-32768", int16(-32768), false},
		{"int16", "32768", nil, true},
		{"int32", "-2147483648", int32(-2147483648), false},
		{"int32", "2147483648", nil, true},
		{"int64", "-9223372036854775808", int64(-9223372036854775808), false},
		{"int64", "9223372036854775808", nil, true},
		{"uint8", "-1", nil, true},
		{"uint8", "255", uint8(255), false},
		{"uint8", "256", nil, true},
		{"uint16", "65535", uint16(65535), false},
		{"uint16", "65536", nil, true},
		{"uint32", "4294967295", uint32(4294967295), false},
		{"uint32", "4294967296", nil, true},
		{"uint64", "18446744073709551615", uint64(18446744073709551615), false},
		{"uint64", "18446744073709551616", nil, true},
		{"char", "0x41", uint8(0x41), false},
		{"string", "Lorem Ipsum", "Lorem Ipsum", false},
		{"Header", "1", nil, true},
	}

	for _, test := range tests {
		result, err := convertConstantValue(test.fieldType, test.valueLiteral)
		if test.expectError {
			if err == nil {
				t.Errorf("INPUT(%s : %s) | should fail but succeeded", test.valueLiteral, test.fieldType)
			}
			continue
		}
		if err != nil {
			t.Errorf("INPUT(%s : %s) | %v", test.valueLiteral, test.fieldType, err)
		} else if result != test.expected {
			t.Errorf("INPUT(%s : %s) | Expected: [%T: %v], Actual: [%T: %v]",
				test.valueLiteral, test.fieldType, test.expected, test.expected, result, result)
		}
	}
}

func TestLoadFieldLine(t *testing.T) {
	tests := []struct {
		line    string
		want    Field
		wantErr bool
	}{
		{
			line: "float64 x",
			want: Field{Type: "float64", Name: "x", Declared: "float64", IsBuiltin: true, GoName: "X"},
		},
		{
			line: "Header header # stamp and frame",
			want: Field{Package: "std_msgs", Type: "Header", Name: "header", Declared: "Header", GoName: "Header"},
		},
		{
			line: "Point[] points",
			want: Field{Package: "foo", Type: "Point", Name: "points", Declared: "Point[]", IsArray: true, ArrayLen: -1, GoName: "Points"},
		},
		{
			line: "geometry_msgs/Pose pose",
			want: Field{Package: "geometry_msgs", Type: "Pose", Name: "pose", Declared: "geometry_msgs/Pose", GoName: "Pose"},
		},
		{
			line: "float64[9]\tcovariance",
			want: Field{Type: "float64", Name: "covariance", Declared: "float64[9]", IsBuiltin: true, IsArray: true, ArrayLen: 9, GoName: "Covariance"},
		},
		{
			line: "int32 type",
			want: Field{Type: "int32", Name: "type", Declared: "int32", IsBuiltin: true, GoName: "Type_"},
		},
		{line: "float64", wantErr: true},
		{line: "float64[ x", wantErr: true},
		{line: "float64[a] x", wantErr: true},
		{line: "float64 x y", wantErr: true},
		{line: "float64 9x", wantErr: true},
	}
	for _, tt := range tests {
		got, err := loadFieldLine(tt.line, "foo")
		if tt.wantErr {
			if err == nil {
				t.Errorf("loadFieldLine(%q) succeeded, want an error", tt.line)
			}
			continue
		}
		if err != nil {
			t.Errorf("loadFieldLine(%q): %v", tt.line, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("loadFieldLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestParseMessage(t *testing.T) {
	const text string = `
# Comment
bool B = 1
int8 I8 =  -128
uint64 U64 =  18446744073709551615
string S = Lorem Ipsum # kept as part of the value

Header header
uint8 u8
float32 f32
string s
time t
duration d
string[] sva
string[42] sfa
std_msgs/Empty e
std_msgs/Empty[] eva
Bar x
Bar[42] xfa
`
	spec, err := parseMsg(text, "foo/Foo")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	wantConstants := []string{
		"bool B=1",
		"int8 I8=-128",
		"uint64 U64=18446744073709551615",
		"string S=Lorem Ipsum # kept as part of the value",
	}
	var constants []string
	for _, c := range spec.Constants {
		constants = append(constants, c.String())
	}
	if diff := cmp.Diff(wantConstants, constants); diff != "" {
		t.Errorf("constants mismatch (-want +got):\n%s", diff)
	}

	wantFields := []string{
		"std_msgs/Header",
		"uint8", "float32", "string", "time", "duration", "string", "string",
		"std_msgs/Empty", "std_msgs/Empty",
		"foo/Bar", "foo/Bar",
	}
	var fields []string
	for _, f := range spec.Fields {
		fields = append(fields, f.FullType())
	}
	if diff := cmp.Diff(wantFields, fields); diff != "" {
		t.Errorf("field types mismatch (-want +got):\n%s", diff)
	}
	if spec.Package != "foo" || spec.ShortName != "Foo" {
		t.Errorf("name = %s/%s, want foo/Foo", spec.Package, spec.ShortName)
	}
}

func TestParseMessageSyntaxError(t *testing.T) {
	_, err := parseMsg("uint8 ok\nuint8 A = 300\n", "foo/Bad")
	serr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("err = %v, want a *SyntaxError", err)
	}
	if serr.Line != 2 || serr.FullName != "foo/Bad" {
		t.Errorf("error at %s@%d, want foo/Bad@2", serr.FullName, serr.Line)
	}
}

func TestSplitSrv(t *testing.T) {
	tests := []struct {
		text, req, res string
		wantErr        bool
	}{
		{text: "string data\n---\nbool success\nstring message\n", req: "string data\n", res: "bool success\nstring message\n"},
		{text: "---\n", req: "", res: ""},
		{text: "int32 a\n--- \nint32 b", req: "int32 a\n", res: "int32 b"},
		{text: "int32 a\n", wantErr: true},
	}
	for _, tt := range tests {
		req, res, err := splitSrv(tt.text)
		if tt.wantErr {
			if err == nil {
				t.Errorf("splitSrv(%q) succeeded, want an error", tt.text)
			}
			continue
		}
		if err != nil {
			t.Errorf("splitSrv(%q): %v", tt.text, err)
			continue
		}
		if req != tt.req || res != tt.res {
			t.Errorf("splitSrv(%q) = %q, %q, want %q, %q", tt.text, req, res, tt.req, tt.res)
		}
	}
}
