// Package cob_srvs is automatically generated from the service definition "cob_srvs/SetString.srv"
package cob_srvs

import (
	"github.com/rosgo/frametarget/ros"
)

// Service type metadata
type _SrvSetString struct {
	name    string
	md5sum  string
	text    string
	reqType ros.MessageType
	resType ros.MessageType
}

func (t *_SrvSetString) Name() string                  { return t.name }
func (t *_SrvSetString) MD5Sum() string                { return t.md5sum }
func (t *_SrvSetString) Text() string                  { return t.text }
func (t *_SrvSetString) RequestType() ros.MessageType  { return t.reqType }
func (t *_SrvSetString) ResponseType() ros.MessageType { return t.resType }
func (t *_SrvSetString) NewService() ros.Service {
	return new(SetString)
}

var (
	SrvSetString = &_SrvSetString{
		"cob_srvs/SetString",
		"546971982e3fbbd5a41e60fb6432e357",
		`string data
---
bool success
string message
`,
		MsgSetStringRequest,
		MsgSetStringResponse,
	}
)

type SetString struct {
	Request  SetStringRequest
	Response SetStringResponse
}

func (s *SetString) ReqMessage() ros.Message { return &s.Request }
func (s *SetString) ResMessage() ros.Message { return &s.Response }
