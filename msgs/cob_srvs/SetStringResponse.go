// Package cob_srvs is automatically generated from the message definition "cob_srvs/SetStringResponse.msg"
package cob_srvs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosgo/frametarget/ros"
)

type _MsgSetStringResponse struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgSetStringResponse) Text() string {
	return t.text
}

func (t *_MsgSetStringResponse) Name() string {
	return t.name
}

func (t *_MsgSetStringResponse) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgSetStringResponse) NewMessage() ros.Message {
	m := new(SetStringResponse)
	return m
}

var (
	MsgSetStringResponse = &_MsgSetStringResponse{
		`bool success
string message
`,
		"cob_srvs/SetStringResponse",
		"937c9679a518e3a18d831e57125ea522",
	}
)

type SetStringResponse struct {
	Success bool   `rosmsg:"success:bool"`
	Message string `rosmsg:"message:string"`
}

func (m *SetStringResponse) Type() ros.MessageType {
	return MsgSetStringResponse
}

func (m *SetStringResponse) Serialize(buf *bytes.Buffer) error {
	binary.Write(buf, binary.LittleEndian, m.Success)
	ros.WriteString(buf, m.Message)
	return nil
}

func (m *SetStringResponse) Deserialize(buf *bytes.Reader) error {
	var err error
	if err = binary.Read(buf, binary.LittleEndian, &m.Success); err != nil {
		return err
	}
	if m.Message, err = ros.ReadString(buf); err != nil {
		return err
	}
	return nil
}
