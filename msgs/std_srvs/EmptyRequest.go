// Package std_srvs is automatically generated from the message definition "std_srvs/EmptyRequest.msg"
package std_srvs

import (
	"bytes"

	"github.com/rosgo/frametarget/ros"
)

type _MsgEmptyRequest struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgEmptyRequest) Text() string {
	return t.text
}

func (t *_MsgEmptyRequest) Name() string {
	return t.name
}

func (t *_MsgEmptyRequest) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgEmptyRequest) NewMessage() ros.Message {
	m := new(EmptyRequest)
	return m
}

var (
	MsgEmptyRequest = &_MsgEmptyRequest{
		``,
		"std_srvs/EmptyRequest",
		"d41d8cd98f00b204e9800998ecf8427e",
	}
)

type EmptyRequest struct {
}

func (m *EmptyRequest) Type() ros.MessageType {
	return MsgEmptyRequest
}

func (m *EmptyRequest) Serialize(buf *bytes.Buffer) error {
	return nil
}

func (m *EmptyRequest) Deserialize(buf *bytes.Reader) error {
	return nil
}
