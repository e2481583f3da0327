// Package std_srvs is automatically generated from the message definition "std_srvs/EmptyResponse.msg"
package std_srvs

import (
	"bytes"

	"github.com/rosgo/frametarget/ros"
)

type _MsgEmptyResponse struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgEmptyResponse) Text() string {
	return t.text
}

func (t *_MsgEmptyResponse) Name() string {
	return t.name
}

func (t *_MsgEmptyResponse) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgEmptyResponse) NewMessage() ros.Message {
	m := new(EmptyResponse)
	return m
}

var (
	MsgEmptyResponse = &_MsgEmptyResponse{
		``,
		"std_srvs/EmptyResponse",
		"d41d8cd98f00b204e9800998ecf8427e",
	}
)

type EmptyResponse struct {
}

func (m *EmptyResponse) Type() ros.MessageType {
	return MsgEmptyResponse
}

func (m *EmptyResponse) Serialize(buf *bytes.Buffer) error {
	return nil
}

func (m *EmptyResponse) Deserialize(buf *bytes.Reader) error {
	return nil
}
