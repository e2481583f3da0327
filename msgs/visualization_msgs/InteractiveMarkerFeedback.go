// Package visualization_msgs is automatically generated from the message definition "visualization_msgs/InteractiveMarkerFeedback.msg"
package visualization_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/std_msgs"
	"github.com/rosgo/frametarget/ros"
)

const (
	InteractiveMarkerFeedback_KEEP_ALIVE   uint8 = 0
	InteractiveMarkerFeedback_POSE_UPDATE  uint8 = 1
	InteractiveMarkerFeedback_MENU_SELECT  uint8 = 2
	InteractiveMarkerFeedback_BUTTON_CLICK uint8 = 3
	InteractiveMarkerFeedback_MOUSE_DOWN   uint8 = 4
	InteractiveMarkerFeedback_MOUSE_UP     uint8 = 5
)

type _MsgInteractiveMarkerFeedback struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgInteractiveMarkerFeedback) Text() string {
	return t.text
}

func (t *_MsgInteractiveMarkerFeedback) Name() string {
	return t.name
}

func (t *_MsgInteractiveMarkerFeedback) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgInteractiveMarkerFeedback) NewMessage() ros.Message {
	m := new(InteractiveMarkerFeedback)
	return m
}

var (
	MsgInteractiveMarkerFeedback = &_MsgInteractiveMarkerFeedback{
		`# Time/frame info.
Header header

# Identifying string. Must be unique in the topic namespace.
string client_id

# Feedback message sent back from the GUI, e.g.
# when the status of an interactive marker was modified by the user.

# Specifies which interactive marker and control this message refers to
string marker_name
string control_name

# Type of the event
# KEEP_ALIVE: sent while dragging to keep up control of the marker
# MENU_SELECT: a menu entry has been selected
# BUTTON_CLICK: a button control has been clicked
# POSE_UPDATE: the pose has been changed using one of the controls
uint8 KEEP_ALIVE = 0
uint8 POSE_UPDATE = 1
uint8 MENU_SELECT = 2
uint8 BUTTON_CLICK = 3

uint8 MOUSE_DOWN = 4
uint8 MOUSE_UP = 5

uint8 event_type

# Current pose of the marker
# Note: Has to be valid for all feedback types.
geometry_msgs/Pose pose

# Contains the ID of the selected menu entry
# Only valid for MENU_SELECT events.
uint32 menu_entry_id

# If event_type is BUTTON_CLICK, MOUSE_DOWN, or MOUSE_UP, mouse_point
# may contain the 3 dimensional position of the event on the
# control.  If it does, mouse_point_valid will be true.  mouse_point
# will be relative to the frame listed in the header.
geometry_msgs/Point mouse_point
bool mouse_point_valid
`,
		"visualization_msgs/InteractiveMarkerFeedback",
		"ab0f1eee058667e28c19ff3ffc3f4b78",
	}
)

type InteractiveMarkerFeedback struct {
	Header          std_msgs.Header     `rosmsg:"header:Header"`
	ClientId        string              `rosmsg:"client_id:string"`
	MarkerName      string              `rosmsg:"marker_name:string"`
	ControlName     string              `rosmsg:"control_name:string"`
	EventType       uint8               `rosmsg:"event_type:uint8"`
	Pose            geometry_msgs.Pose  `rosmsg:"pose:geometry_msgs/Pose"`
	MenuEntryId     uint32              `rosmsg:"menu_entry_id:uint32"`
	MousePoint      geometry_msgs.Point `rosmsg:"mouse_point:geometry_msgs/Point"`
	MousePointValid bool                `rosmsg:"mouse_point_valid:bool"`
}

func (m *InteractiveMarkerFeedback) Type() ros.MessageType {
	return MsgInteractiveMarkerFeedback
}

func (m *InteractiveMarkerFeedback) Serialize(buf *bytes.Buffer) error {
	var err error
	if err = m.Header.Serialize(buf); err != nil {
		return err
	}
	ros.WriteString(buf, m.ClientId)
	ros.WriteString(buf, m.MarkerName)
	ros.WriteString(buf, m.ControlName)
	binary.Write(buf, binary.LittleEndian, m.EventType)
	if err = m.Pose.Serialize(buf); err != nil {
		return err
	}
	binary.Write(buf, binary.LittleEndian, m.MenuEntryId)
	if err = m.MousePoint.Serialize(buf); err != nil {
		return err
	}
	binary.Write(buf, binary.LittleEndian, m.MousePointValid)
	return nil
}

func (m *InteractiveMarkerFeedback) Deserialize(buf *bytes.Reader) error {
	var err error
	if err = m.Header.Deserialize(buf); err != nil {
		return err
	}
	if m.ClientId, err = ros.ReadString(buf); err != nil {
		return err
	}
	if m.MarkerName, err = ros.ReadString(buf); err != nil {
		return err
	}
	if m.ControlName, err = ros.ReadString(buf); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.EventType); err != nil {
		return err
	}
	if err = m.Pose.Deserialize(buf); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.MenuEntryId); err != nil {
		return err
	}
	if err = m.MousePoint.Deserialize(buf); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.MousePointValid); err != nil {
		return err
	}
	return nil
}
