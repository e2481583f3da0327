// Package xmlrpc is a small XML-RPC client and HTTP handler covering the
// subset of the protocol used by the ROS master and slave APIs.
package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const iso8601 = "20060102T15:04:05"

// Method is a function registered with a Handler. It must return
// (interface{}, error); arguments are matched positionally.
type Method interface{}

type value struct {
	Int      *string      `xml:"int"`
	I4       *string      `xml:"i4"`
	Boolean  *string      `xml:"boolean"`
	Double   *string      `xml:"double"`
	String   *string      `xml:"string"`
	Base64   *string      `xml:"base64"`
	DateTime *string      `xml:"dateTime.iso8601"`
	Array    *arrayValue  `xml:"array"`
	Struct   *structValue `xml:"struct"`
	Text     string       `xml:",chardata"`
}

type arrayValue struct {
	Values []value `xml:"data>value"`
}

type structValue struct {
	Members []member `xml:"member"`
}

type member struct {
	Name  string `xml:"name"`
	Value value  `xml:"value"`
}

type param struct {
	Value value `xml:"value"`
}

type methodCall struct {
	XMLName    xml.Name `xml:"methodCall"`
	MethodName string   `xml:"methodName"`
	Params     []param  `xml:"params>param"`
}

type methodResponse struct {
	XMLName xml.Name `xml:"methodResponse"`
	Params  []param  `xml:"params>param"`
	Fault   *param   `xml:"fault"`
}

func (v *value) decode() (interface{}, error) {
	switch {
	case v.Int != nil:
		return parseInt(*v.Int)
	case v.I4 != nil:
		return parseInt(*v.I4)
	case v.Boolean != nil:
		switch strings.TrimSpace(*v.Boolean) {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
		return nil, errors.Errorf("invalid boolean %q", *v.Boolean)
	case v.Double != nil:
		f, err := strconv.ParseFloat(strings.TrimSpace(*v.Double), 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid double")
		}
		return f, nil
	case v.String != nil:
		return *v.String, nil
	case v.Base64 != nil:
		bs, err := base64.StdEncoding.DecodeString(strings.TrimSpace(*v.Base64))
		if err != nil {
			return nil, errors.Wrap(err, "invalid base64")
		}
		return bs, nil
	case v.DateTime != nil:
		t, err := time.Parse(iso8601, strings.TrimSpace(*v.DateTime))
		if err != nil {
			return nil, errors.Wrap(err, "invalid dateTime.iso8601")
		}
		return t, nil
	case v.Array != nil:
		a := make([]interface{}, 0, len(v.Array.Values))
		for i := range v.Array.Values {
			x, err := v.Array.Values[i].decode()
			if err != nil {
				return nil, err
			}
			a = append(a, x)
		}
		return a, nil
	case v.Struct != nil:
		m := make(map[string]interface{}, len(v.Struct.Members))
		for i := range v.Struct.Members {
			x, err := v.Struct.Members[i].Value.decode()
			if err != nil {
				return nil, err
			}
			m[v.Struct.Members[i].Name] = x
		}
		return m, nil
	}
	// An untyped value is a string.
	return v.Text, nil
}

func parseInt(s string) (int32, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, "invalid int")
	}
	return int32(i), nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func emitValue(buf *bytes.Buffer, x interface{}) error {
	switch v := x.(type) {
	case nil:
		return nil
	case []byte:
		buf.WriteString("<base64>")
		buf.WriteString(base64.StdEncoding.EncodeToString(v))
		buf.WriteString("</base64>")
		return nil
	case time.Time:
		buf.WriteString("<dateTime.iso8601>")
		buf.WriteString(v.Format(iso8601))
		buf.WriteString("</dateTime.iso8601>")
		return nil
	}

	val := reflect.ValueOf(x)
	switch val.Kind() {
	case reflect.Bool:
		if val.Bool() {
			buf.WriteString("<boolean>1</boolean>")
		} else {
			buf.WriteString("<boolean>0</boolean>")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fmt.Fprintf(buf, "<int>%d</int>", val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		fmt.Fprintf(buf, "<int>%d</int>", val.Uint())
	case reflect.Float32, reflect.Float64:
		buf.WriteString("<double>")
		buf.WriteString(strconv.FormatFloat(val.Float(), 'g', -1, 64))
		buf.WriteString("</double>")
	case reflect.String:
		buf.WriteString("<string>")
		buf.WriteString(xmlEscape(val.String()))
		buf.WriteString("</string>")
	case reflect.Array, reflect.Slice:
		buf.WriteString("<array><data>")
		for i := 0; i < val.Len(); i++ {
			buf.WriteString("<value>")
			if err := emitValue(buf, val.Index(i).Interface()); err != nil {
				return err
			}
			buf.WriteString("</value>")
		}
		buf.WriteString("</data></array>")
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return errors.New("map key must be string")
		}
		buf.WriteString("<struct>")
		iter := val.MapRange()
		for iter.Next() {
			buf.WriteString("<member><name>")
			buf.WriteString(xmlEscape(iter.Key().String()))
			buf.WriteString("</name><value>")
			if err := emitValue(buf, iter.Value().Interface()); err != nil {
				return err
			}
			buf.WriteString("</value></member>")
		}
		buf.WriteString("</struct>")
	default:
		return errors.Errorf("unsupported kind %s", val.Kind())
	}
	return nil
}

func emitRequest(buf *bytes.Buffer, method string, args ...interface{}) error {
	buf.WriteString(xml.Header)
	buf.WriteString("<methodCall><methodName>")
	buf.WriteString(xmlEscape(method))
	buf.WriteString("</methodName><params>")
	for _, arg := range args {
		buf.WriteString("<param><value>")
		if err := emitValue(buf, arg); err != nil {
			return err
		}
		buf.WriteString("</value></param>")
	}
	buf.WriteString("</params></methodCall>")
	return nil
}

func emitResponse(buf *bytes.Buffer, result interface{}) error {
	buf.WriteString(xml.Header)
	buf.WriteString("<methodResponse><params><param><value>")
	if err := emitValue(buf, result); err != nil {
		return err
	}
	buf.WriteString("</value></param></params></methodResponse>")
	return nil
}

func emitFault(buf *bytes.Buffer, code int, message string) {
	buf.WriteString(xml.Header)
	buf.WriteString("<methodResponse><fault><value>")
	_ = emitValue(buf, map[string]interface{}{
		"faultCode":   code,
		"faultString": message,
	})
	buf.WriteString("</value></fault></methodResponse>")
}

func parseRequest(data []byte) (string, []interface{}, error) {
	var call methodCall
	if err := xml.Unmarshal(data, &call); err != nil {
		return "", nil, errors.Wrap(err, "malformed methodCall")
	}
	args := make([]interface{}, 0, len(call.Params))
	for i := range call.Params {
		x, err := call.Params[i].Value.decode()
		if err != nil {
			return "", nil, err
		}
		args = append(args, x)
	}
	return strings.TrimSpace(call.MethodName), args, nil
}

// Fault is an XML-RPC fault returned by the remote side.
type Fault struct {
	Code    int32
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("XMLRPC fault: code=%d string=%s", f.Code, f.Message)
}

func parseResponse(data []byte) (interface{}, error) {
	var res methodResponse
	if err := xml.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrap(err, "malformed methodResponse")
	}
	if res.Fault != nil {
		x, err := res.Fault.Value.decode()
		if err != nil {
			return nil, err
		}
		m, ok := x.(map[string]interface{})
		if !ok {
			return nil, errors.New("malformed XMLRPC fault")
		}
		code, _ := m["faultCode"].(int32)
		msg, _ := m["faultString"].(string)
		return nil, &Fault{Code: code, Message: msg}
	}
	if len(res.Params) != 1 {
		return nil, errors.Errorf("methodResponse has %d params", len(res.Params))
	}
	return res.Params[0].Value.decode()
}

// Client issues XML-RPC calls over HTTP.
type Client struct {
	HTTPClient *http.Client
}

// DefaultClient is used by Call.
var DefaultClient = &Client{HTTPClient: &http.Client{Timeout: 10 * time.Second}}

// Call invokes method on the XML-RPC server at url using DefaultClient.
func Call(url string, method string, args ...interface{}) (interface{}, error) {
	return DefaultClient.Call(url, method, args...)
}

// Call invokes method on the XML-RPC server at url.
func (c *Client) Call(url string, method string, args ...interface{}) (interface{}, error) {
	var buf bytes.Buffer
	if err := emitRequest(&buf, method, args...); err != nil {
		return nil, errors.Wrapf(err, "building %s request", method)
	}
	r, err := c.HTTPClient.Post(url, "text/xml", &buf)
	if err != nil {
		return nil, errors.Wrapf(err, "sending %s request", method)
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s: HTTP status %s", method, r.Status)
	}
	var body bytes.Buffer
	if _, err := body.ReadFrom(r.Body); err != nil {
		return nil, errors.Wrapf(err, "reading %s response", method)
	}
	return parseResponse(body.Bytes())
}

// Handler dispatches XML-RPC requests to registered methods.
type Handler struct {
	methods map[string]Method
	wait    sync.WaitGroup
}

// NewHandler returns a handler serving the given methods.
func NewHandler(methods map[string]Method) *Handler {
	return &Handler{methods: methods}
}

// WaitForShutdown blocks until in-flight requests complete.
func (h *Handler) WaitForShutdown() {
	h.wait.Wait()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.wait.Add(1)
	defer h.wait.Done()

	var body, out bytes.Buffer
	if _, err := body.ReadFrom(req.Body); err != nil {
		emitFault(&out, 1, "Invalid request.")
		h.write(w, &out)
		return
	}

	name, args, err := parseRequest(body.Bytes())
	if err != nil {
		emitFault(&out, 1, "Invalid request.")
		h.write(w, &out)
		return
	}
	result, err := h.invoke(name, args)
	if err != nil {
		emitFault(&out, 1, err.Error())
		h.write(w, &out)
		return
	}
	if err := emitResponse(&out, result); err != nil {
		out.Reset()
		emitFault(&out, 1, fmt.Sprintf("Method '%s' returned an invalid result type.", name))
	}
	h.write(w, &out)
}

func (h *Handler) invoke(name string, args []interface{}) (interface{}, error) {
	method, ok := h.methods[name]
	if !ok {
		return nil, errors.Errorf("No method named '%s'.", name)
	}
	fn := reflect.ValueOf(method)
	ft := fn.Type()
	if ft.Kind() != reflect.Func || ft.NumOut() != 2 {
		return nil, errors.Errorf("Method '%s' has an invalid signature.", name)
	}
	if ft.NumIn() != len(args) {
		return nil, errors.Errorf("Method '%s' takes %d arguments, got %d.", name, ft.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v := reflect.ValueOf(arg)
		if !v.IsValid() || !v.Type().AssignableTo(ft.In(i)) {
			return nil, errors.Errorf("Method '%s': argument %d has the wrong type.", name, i)
		}
		in[i] = v
	}
	out := fn.Call(in)
	if errValue := out[1]; !errValue.IsNil() {
		return nil, errors.Errorf("Method '%s' call failed: %v", name, errValue.Interface())
	}
	return out[0].Interface(), nil
}

func (h *Handler) write(w http.ResponseWriter, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
