package libgengo

import (
	"bytes"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// DefaultRosImport is the import path of the ros package generated code
// depends on.
const DefaultRosImport = "github.com/rosgo/frametarget/ros"

// Options controls the import paths of generated code.
type Options struct {
	// ImportPrefix is prepended to ROS package names to import message
	// types of other packages, e.g. github.com/rosgo/frametarget/msgs.
	ImportPrefix string
	RosImport    string
}

func (o Options) rosImport() string {
	if o.RosImport == "" {
		return DefaultRosImport
	}
	return o.RosImport
}

var funcs = template.FuncMap{
	"raw":    rawString,
	"write":  writeField,
	"read":   readField,
	"goType": func(spec *MsgSpec, f Field) string { return ToGoType(spec.Package, f.Package, f.Type) },
}

// rawString quotes s as a raw string literal.
func rawString(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "` + \"`\" + `") + "`"
}

// writeField returns the statement serializing expr, an element of f.
func writeField(f Field, expr string) string {
	switch {
	case !f.IsBuiltin:
		return "if err = " + expr + ".Serialize(buf); err != nil {\nreturn err\n}"
	case f.Type == "string":
		return "ros.WriteString(buf, " + expr + ")"
	case f.Type == TimeType:
		return "ros.WriteTime(buf, " + expr + ")"
	case f.Type == DurationType:
		return "ros.WriteDuration(buf, " + expr + ")"
	}
	return "binary.Write(buf, binary.LittleEndian, " + expr + ")"
}

// readField returns the statement deserializing into expr, an element of
// f.
func readField(f Field, expr string) string {
	var stmt string
	switch {
	case !f.IsBuiltin:
		stmt = "err = " + expr + ".Deserialize(buf)"
	case f.Type == "string":
		stmt = expr + ", err = ros.ReadString(buf)"
	case f.Type == TimeType:
		stmt = expr + ", err = ros.ReadTime(buf)"
	case f.Type == DurationType:
		stmt = expr + ", err = ros.ReadDuration(buf)"
	default:
		stmt = "err = binary.Read(buf, binary.LittleEndian, &" + expr + ")"
	}
	return "if " + stmt + "; err != nil {\nreturn err\n}"
}

var msgTemplate = template.Must(template.New("msg").Funcs(funcs).Parse(`
// Package {{ .Spec.Package }} is automatically generated from the message definition "{{ .Spec.FullName }}.msg"
package {{ .Spec.Package }}

import (
	"bytes"
{{- if .NeedsBinary }}
	"encoding/binary"
{{- end }}
{{ range .Imports }}
	"{{ . }}"
{{- end }}
)
{{- if .Spec.Constants }}

const (
{{- range .Spec.Constants }}
	{{ $.Spec.ShortName }}_{{ .Name }} {{ .GoType }} = {{ .GoValue }}
{{- end }}
)
{{- end }}

type _Msg{{ .Spec.ShortName }} struct {
	text   string
	name   string
	md5sum string
}

func (t *_Msg{{ .Spec.ShortName }}) Text() string {
	return t.text
}

func (t *_Msg{{ .Spec.ShortName }}) Name() string {
	return t.name
}

func (t *_Msg{{ .Spec.ShortName }}) MD5Sum() string {
	return t.md5sum
}

func (t *_Msg{{ .Spec.ShortName }}) NewMessage() ros.Message {
	m := new({{ .Spec.ShortName }})
{{- range .Spec.Fields }}
{{- if .IsVariableArray }}
	m.{{ .GoName }} = []{{ goType $.Spec . }}{}
{{- end }}
{{- end }}
	return m
}

var (
	Msg{{ .Spec.ShortName }} = &_Msg{{ .Spec.ShortName }}{
		{{ raw .Spec.Text }},
		"{{ .Spec.FullName }}",
		"{{ .Spec.MD5Sum }}",
	}
)

type {{ .Spec.ShortName }} struct {
{{- range .Spec.Fields }}
{{- if .IsVariableArray }}
	{{ .GoName }} []{{ goType $.Spec . }} ` + "`" + `rosmsg:"{{ .Name }}:{{ .Declared }}"` + "`" + `
{{- else if .IsArray }}
	{{ .GoName }} [{{ .ArrayLen }}]{{ goType $.Spec . }} ` + "`" + `rosmsg:"{{ .Name }}:{{ .Declared }}"` + "`" + `
{{- else }}
	{{ .GoName }} {{ goType $.Spec . }} ` + "`" + `rosmsg:"{{ .Name }}:{{ .Declared }}"` + "`" + `
{{- end }}
{{- end }}
}

func (m *{{ .Spec.ShortName }}) Type() ros.MessageType {
	return Msg{{ .Spec.ShortName }}
}

func (m *{{ .Spec.ShortName }}) Serialize(buf *bytes.Buffer) error {
{{- if .HasMessageFields }}
	var err error
{{- end }}
{{- range .Spec.Fields }}
{{- if .IsArray }}
{{- if .IsVariableArray }}
	ros.WriteLength(buf, len(m.{{ .GoName }}))
{{- end }}
	for _, e := range m.{{ .GoName }} {
		{{ write . "e" }}
	}
{{- else }}
	{{ write . (print "m." .GoName) }}
{{- end }}
{{- end }}
	return nil
}

func (m *{{ .Spec.ShortName }}) Deserialize(buf *bytes.Reader) error {
{{- if .Spec.Fields }}
	var err error
{{- end }}
{{- if .HasVariableArrays }}
	var size int
{{- end }}
{{- range .Spec.Fields }}
{{- if .IsVariableArray }}
	if size, err = ros.ReadLength(buf); err != nil {
		return err
	}
	m.{{ .GoName }} = make([]{{ goType $.Spec . }}, size)
	for i := 0; i < size; i++ {
		{{ read . (print "m." .GoName "[i]") }}
	}
{{- else if .IsArray }}
	for i := 0; i < {{ .ArrayLen }}; i++ {
		{{ read . (print "m." .GoName "[i]") }}
	}
{{- else }}
	{{ read . (print "m." .GoName) }}
{{- end }}
{{- end }}
	return nil
}
`))

var srvTemplate = template.Must(template.New("srv").Funcs(funcs).Parse(`
// Package {{ .Spec.Package }} is automatically generated from the service definition "{{ .Spec.FullName }}.srv"
package {{ .Spec.Package }}

import (
	"{{ .RosImport }}"
)

// Service type metadata
type _Srv{{ .Spec.ShortName }} struct {
	name    string
	md5sum  string
	text    string
	reqType ros.MessageType
	resType ros.MessageType
}

func (t *_Srv{{ .Spec.ShortName }}) Name() string                  { return t.name }
func (t *_Srv{{ .Spec.ShortName }}) MD5Sum() string                { return t.md5sum }
func (t *_Srv{{ .Spec.ShortName }}) Text() string                  { return t.text }
func (t *_Srv{{ .Spec.ShortName }}) RequestType() ros.MessageType  { return t.reqType }
func (t *_Srv{{ .Spec.ShortName }}) ResponseType() ros.MessageType { return t.resType }
func (t *_Srv{{ .Spec.ShortName }}) NewService() ros.Service {
	return new({{ .Spec.ShortName }})
}

var (
	Srv{{ .Spec.ShortName }} = &_Srv{{ .Spec.ShortName }}{
		"{{ .Spec.FullName }}",
		"{{ .Spec.MD5Sum }}",
		{{ raw .Spec.Text }},
		Msg{{ .Spec.Request.ShortName }},
		Msg{{ .Spec.Response.ShortName }},
	}
)

type {{ .Spec.ShortName }} struct {
	Request  {{ .Spec.Request.ShortName }}
	Response {{ .Spec.Response.ShortName }}
}

func (s *{{ .Spec.ShortName }}) ReqMessage() ros.Message { return &s.Request }
func (s *{{ .Spec.ShortName }}) ResMessage() ros.Message { return &s.Response }
`))

type msgData struct {
	Spec              *MsgSpec
	Imports           []string
	NeedsBinary       bool
	HasMessageFields  bool
	HasVariableArrays bool
}

func newMsgData(spec *MsgSpec, opts Options) msgData {
	d := msgData{Spec: spec}
	imports := map[string]bool{opts.rosImport(): true}
	for _, f := range spec.Fields {
		if f.IsVariableArray() {
			d.HasVariableArrays = true
		}
		switch {
		case !f.IsBuiltin:
			d.HasMessageFields = true
			if f.Package != spec.Package {
				imports[strings.TrimSuffix(opts.ImportPrefix, "/")+"/"+f.Package] = true
			}
		case f.Type != "string" && f.Type != TimeType && f.Type != DurationType:
			d.NeedsBinary = true
		}
	}
	for path := range imports {
		d.Imports = append(d.Imports, path)
	}
	sort.Strings(d.Imports)
	return d
}

// GenerateMessage returns the formatted Go source of the message type.
func GenerateMessage(spec *MsgSpec, opts Options) ([]byte, error) {
	return render(msgTemplate, newMsgData(spec, opts))
}

// GenerateService returns the formatted Go sources of the service type and
// of its request and response messages.
func GenerateService(spec *SrvSpec, opts Options) (srv, req, res []byte, err error) {
	srv, err = render(srvTemplate, struct {
		Spec      *SrvSpec
		RosImport string
	}{spec, opts.rosImport()})
	if err != nil {
		return nil, nil, nil, err
	}
	if req, err = GenerateMessage(spec.Request, opts); err != nil {
		return nil, nil, nil, err
	}
	if res, err = GenerateMessage(spec.Response, opts); err != nil {
		return nil, nil, nil, err
	}
	return srv, req, res, nil
}

func render(t *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "execute %s template", t.Name())
	}
	code, err := format.Source(bytes.TrimLeft(buf.Bytes(), "\n"))
	if err != nil {
		return nil, errors.Wrap(err, "format generated code")
	}
	return code, nil
}
