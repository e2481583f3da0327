// Package geometry_msgs is automatically generated from the message definition "geometry_msgs/TransformStamped.msg"
package geometry_msgs

import (
	"bytes"

	"github.com/rosgo/frametarget/msgs/std_msgs"
	"github.com/rosgo/frametarget/ros"
)

type _MsgTransformStamped struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgTransformStamped) Text() string {
	return t.text
}

func (t *_MsgTransformStamped) Name() string {
	return t.name
}

func (t *_MsgTransformStamped) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgTransformStamped) NewMessage() ros.Message {
	m := new(TransformStamped)
	return m
}

var (
	MsgTransformStamped = &_MsgTransformStamped{
		`# This expresses a transform from coordinate frame header.frame_id
# to the coordinate frame child_frame_id
Header header
string child_frame_id # the frame id of the child frame
Transform transform
`,
		"geometry_msgs/TransformStamped",
		"b5764a33bfeb3588febc2682852579b0",
	}
)

type TransformStamped struct {
	Header       std_msgs.Header `rosmsg:"header:Header"`
	ChildFrameId string          `rosmsg:"child_frame_id:string"`
	Transform    Transform       `rosmsg:"transform:Transform"`
}

func (m *TransformStamped) Type() ros.MessageType {
	return MsgTransformStamped
}

func (m *TransformStamped) Serialize(buf *bytes.Buffer) error {
	var err error
	if err = m.Header.Serialize(buf); err != nil {
		return err
	}
	ros.WriteString(buf, m.ChildFrameId)
	if err = m.Transform.Serialize(buf); err != nil {
		return err
	}
	return nil
}

func (m *TransformStamped) Deserialize(buf *bytes.Reader) error {
	var err error
	if err = m.Header.Deserialize(buf); err != nil {
		return err
	}
	if m.ChildFrameId, err = ros.ReadString(buf); err != nil {
		return err
	}
	if err = m.Transform.Deserialize(buf); err != nil {
		return err
	}
	return nil
}
