// Package libgengo parses ROS message and service definitions and generates
// the Go types under msgs/ from them.
package libgengo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	HeaderType     = "Header"
	HeaderFullName = "std_msgs/Header"
	TimeType       = "time"
	DurationType   = "duration"
)

var PrimitiveTypes = []string{
	"int8", "uint8", "int16", "uint16", "int32", "uint32", "int64", "uint64",
	"float32", "float64",
	"string",
	"bool",
	// deprecated:
	"char", "byte",
}

var BuiltinTypes = append([]string{TimeType, DurationType}, PrimitiveTypes...)

var resourceNamePattern = regexp.MustCompile(`^[A-Za-z][\w/]*$`)

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func isPrimitiveType(name string) bool {
	return contains(PrimitiveTypes, name)
}

func isBuiltinType(name string) bool {
	return contains(BuiltinTypes, name)
}

func isLegalResourceName(name string) bool {
	return !strings.Contains(name, "//") && resourceNamePattern.MatchString(name)
}

func isValidMsgFieldName(name string) bool {
	return isLegalResourceName(name) && !strings.Contains(name, "/")
}

func baseMsgType(t string) string {
	if i := strings.Index(t, "["); i >= 0 {
		return t[:i]
	}
	return t
}

// isValidMsgType accepts a resource name followed by any number of [] or
// [N] suffixes.
func isValidMsgType(t string) bool {
	if t != strings.TrimSpace(t) {
		return false
	}
	base := baseMsgType(t)
	if !isLegalResourceName(base) {
		return false
	}
	inBracket := false
	for _, c := range t[len(base):] {
		switch {
		case !inBracket && c == '[':
			inBracket = true
		case inBracket && c == ']':
			inBracket = false
		case inBracket && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return !inBracket
}

// packageResourceName splits "pkg/Name" into its parts. A bare name has an
// empty package.
func packageResourceName(name string) (string, string, error) {
	parts := strings.Split(name, "/")
	switch len(parts) {
	case 1:
		return "", name, nil
	case 2:
		return parts[0], parts[1], nil
	}
	return "", "", fmt.Errorf("invalid resource name %q", name)
}

// parseType splits a field type such as geometry_msgs/Point[4] into
// package, base type and array length. arrayLen is -1 for variable-length
// arrays.
func parseType(msgType string) (pkg, baseType string, isArray bool, arrayLen int, err error) {
	i := strings.Index(msgType, "[")
	if i < 0 {
		pkg, baseType, err = packageResourceName(msgType)
		return pkg, baseType, false, 0, err
	}
	if !strings.HasSuffix(msgType, "]") {
		return "", "", false, 0, fmt.Errorf("missing ']' in %q", msgType)
	}
	pkg, baseType, err = packageResourceName(msgType[:i])
	if err != nil {
		return "", "", false, 0, err
	}
	size := msgType[i+1 : len(msgType)-1]
	if size == "" {
		return pkg, baseType, true, -1, nil
	}
	n, err := strconv.ParseUint(size, 10, 31)
	if err != nil {
		return "", "", false, 0, fmt.Errorf("invalid array length in %q", msgType)
	}
	return pkg, baseType, true, int(n), nil
}

// ToGoName converts a snake_case field name to an exported Go name. Names
// that collide with the methods of generated types get a trailing
// underscore.
func ToGoName(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, "_") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	goName := b.String()
	switch goName {
	case "Type", "Serialize", "Deserialize":
		goName += "_"
	}
	return goName
}

var goBuiltinTypes = map[string]string{
	"char":       "uint8",
	"byte":       "uint8",
	TimeType:     "ros.Time",
	DurationType: "ros.Duration",
}

// ToGoType returns the Go type of a field element declared in package
// ownerPkg.
func ToGoType(ownerPkg, pkg, typeName string) string {
	if isBuiltinType(typeName) {
		if t, ok := goBuiltinTypes[typeName]; ok {
			return t
		}
		return typeName
	}
	if pkg == "" || pkg == ownerPkg {
		return typeName
	}
	return pkg + "." + typeName
}

type Constant struct {
	Type      string
	Name      string
	Value     interface{}
	ValueText string
}

// GoValue is the constant's value as a Go literal.
func (c Constant) GoValue() string {
	if c.Type == "string" {
		return strconv.Quote(c.ValueText)
	}
	return fmt.Sprint(c.Value)
}

func (c Constant) GoType() string {
	return ToGoType("", "", c.Type)
}

func (c Constant) String() string {
	return fmt.Sprintf("%s %s=%s", c.Type, c.Name, c.ValueText)
}

// Field is one field of a message. Package is empty for builtin types and
// always resolved for message types, even where the definition omits it.
type Field struct {
	Package string
	Type    string
	Name    string
	// Declared is the type as written in the definition, e.g. Header or
	// Point[].
	Declared  string
	IsBuiltin bool
	IsArray   bool
	ArrayLen  int
	GoName    string
}

func NewField(pkg, fieldType, name, declared string, isArray bool, arrayLen int) Field {
	return Field{
		Package:   pkg,
		Type:      fieldType,
		Name:      name,
		Declared:  declared,
		IsBuiltin: isBuiltinType(fieldType),
		IsArray:   isArray,
		ArrayLen:  arrayLen,
		GoName:    ToGoName(name),
	}
}

// FullType is the package-qualified element type, e.g. std_msgs/Header.
func (f Field) FullType() string {
	if f.Package == "" {
		return f.Type
	}
	return f.Package + "/" + f.Type
}

func (f Field) IsVariableArray() bool {
	return f.IsArray && f.ArrayLen < 0
}

func (f Field) String() string {
	switch {
	case f.IsArray && f.ArrayLen >= 0:
		return fmt.Sprintf("%s[%d] %s", f.Type, f.ArrayLen, f.Name)
	case f.IsArray:
		return fmt.Sprintf("%s[] %s", f.Type, f.Name)
	}
	return fmt.Sprintf("%s %s", f.Type, f.Name)
}

type MsgSpec struct {
	Fields    []Field
	Constants []Constant
	Text      string
	MD5Sum    string
	FullName  string
	ShortName string
	Package   string
}

type SrvSpec struct {
	Package   string
	ShortName string
	FullName  string
	Text      string
	MD5Sum    string
	Request   *MsgSpec
	Response  *MsgSpec
}

func (s *MsgSpec) String() string {
	lines := []string{fmt.Sprintf("msg %s {", s.FullName)}
	for _, c := range s.Constants {
		lines = append(lines, "\t"+c.String())
	}
	for _, f := range s.Fields {
		lines = append(lines, "\t"+f.String())
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}
