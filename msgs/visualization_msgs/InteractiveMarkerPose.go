// Package visualization_msgs is automatically generated from the message definition "visualization_msgs/InteractiveMarkerPose.msg"
package visualization_msgs

import (
	"bytes"

	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/std_msgs"
	"github.com/rosgo/frametarget/ros"
)

type _MsgInteractiveMarkerPose struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgInteractiveMarkerPose) Text() string {
	return t.text
}

func (t *_MsgInteractiveMarkerPose) Name() string {
	return t.name
}

func (t *_MsgInteractiveMarkerPose) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgInteractiveMarkerPose) NewMessage() ros.Message {
	m := new(InteractiveMarkerPose)
	return m
}

var (
	MsgInteractiveMarkerPose = &_MsgInteractiveMarkerPose{
		`# Time/frame info.
Header header

# Initial pose. Also, defines the pivot point for rotations.
geometry_msgs/Pose pose

# Identifying string. Must be globally unique in
# the topic that this message is sent through.
string name
`,
		"visualization_msgs/InteractiveMarkerPose",
		"a6e6833209a196a38d798dadb02c81f8",
	}
)

type InteractiveMarkerPose struct {
	Header std_msgs.Header    `rosmsg:"header:Header"`
	Pose   geometry_msgs.Pose `rosmsg:"pose:geometry_msgs/Pose"`
	Name   string             `rosmsg:"name:string"`
}

func (m *InteractiveMarkerPose) Type() ros.MessageType {
	return MsgInteractiveMarkerPose
}

func (m *InteractiveMarkerPose) Serialize(buf *bytes.Buffer) error {
	var err error
	if err = m.Header.Serialize(buf); err != nil {
		return err
	}
	if err = m.Pose.Serialize(buf); err != nil {
		return err
	}
	ros.WriteString(buf, m.Name)
	return nil
}

func (m *InteractiveMarkerPose) Deserialize(buf *bytes.Reader) error {
	var err error
	if err = m.Header.Deserialize(buf); err != nil {
		return err
	}
	if err = m.Pose.Deserialize(buf); err != nil {
		return err
	}
	if m.Name, err = ros.ReadString(buf); err != nil {
		return err
	}
	return nil
}
