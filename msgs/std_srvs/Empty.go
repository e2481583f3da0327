// Package std_srvs is automatically generated from the service definition "std_srvs/Empty.srv"
package std_srvs

import (
	"github.com/rosgo/frametarget/ros"
)

// Service type metadata
type _SrvEmpty struct {
	name    string
	md5sum  string
	text    string
	reqType ros.MessageType
	resType ros.MessageType
}

func (t *_SrvEmpty) Name() string                  { return t.name }
func (t *_SrvEmpty) MD5Sum() string                { return t.md5sum }
func (t *_SrvEmpty) Text() string                  { return t.text }
func (t *_SrvEmpty) RequestType() ros.MessageType  { return t.reqType }
func (t *_SrvEmpty) ResponseType() ros.MessageType { return t.resType }
func (t *_SrvEmpty) NewService() ros.Service {
	return new(Empty)
}

var (
	SrvEmpty = &_SrvEmpty{
		"std_srvs/Empty",
		"d41d8cd98f00b204e9800998ecf8427e",
		`---
`,
		MsgEmptyRequest,
		MsgEmptyResponse,
	}
)

type Empty struct {
	Request  EmptyRequest
	Response EmptyResponse
}

func (s *Empty) ReqMessage() ros.Message { return &s.Request }
func (s *Empty) ResMessage() ros.Message { return &s.Response }
