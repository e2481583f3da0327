// Package cob_srvs is automatically generated from the message definition "cob_srvs/SetStringRequest.msg"
package cob_srvs

import (
	"bytes"

	"github.com/rosgo/frametarget/ros"
)

type _MsgSetStringRequest struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgSetStringRequest) Text() string {
	return t.text
}

func (t *_MsgSetStringRequest) Name() string {
	return t.name
}

func (t *_MsgSetStringRequest) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgSetStringRequest) NewMessage() ros.Message {
	m := new(SetStringRequest)
	return m
}

var (
	MsgSetStringRequest = &_MsgSetStringRequest{
		`string data
`,
		"cob_srvs/SetStringRequest",
		"992ce8a1687cec8c8bd883ec73ca41d1",
	}
)

type SetStringRequest struct {
	Data string `rosmsg:"data:string"`
}

func (m *SetStringRequest) Type() ros.MessageType {
	return MsgSetStringRequest
}

func (m *SetStringRequest) Serialize(buf *bytes.Buffer) error {
	ros.WriteString(buf, m.Data)
	return nil
}

func (m *SetStringRequest) Deserialize(buf *bytes.Reader) error {
	var err error
	if m.Data, err = ros.ReadString(buf); err != nil {
		return err
	}
	return nil
}
