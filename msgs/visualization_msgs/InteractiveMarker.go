// Package visualization_msgs is automatically generated from the message definition "visualization_msgs/InteractiveMarker.msg"
package visualization_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/std_msgs"
	"github.com/rosgo/frametarget/ros"
)

type _MsgInteractiveMarker struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgInteractiveMarker) Text() string {
	return t.text
}

func (t *_MsgInteractiveMarker) Name() string {
	return t.name
}

func (t *_MsgInteractiveMarker) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgInteractiveMarker) NewMessage() ros.Message {
	m := new(InteractiveMarker)
	m.MenuEntries = []MenuEntry{}
	m.Controls = []InteractiveMarkerControl{}
	return m
}

var (
	MsgInteractiveMarker = &_MsgInteractiveMarker{
		`# Time/frame info.
# If header.time is set to 0, the marker will be retransformed into
# its frame on each timestep. You will receive the pose feedback
# in the same frame.
# Otherwise, you might receive feedback in a different frame.
# For rviz, this will be the current 'fixed frame' set by the user.
Header header

# Initial pose. Also, defines the pivot point for rotations.
geometry_msgs/Pose pose

# Identifying string. Must be globally unique in
# the topic that this message is sent through.
string name

# Short description (< 40 characters).
string description

# Scale to be used for default controls (default=1).
float32 scale

# All menu and submenu entries associated with this marker.
MenuEntry[] menu_entries

# List of controls displayed for this marker.
InteractiveMarkerControl[] controls
`,
		"visualization_msgs/InteractiveMarker",
		"dd86d22909d5a3364b384492e35c10af",
	}
)

type InteractiveMarker struct {
	Header      std_msgs.Header            `rosmsg:"header:Header"`
	Pose        geometry_msgs.Pose         `rosmsg:"pose:geometry_msgs/Pose"`
	Name        string                     `rosmsg:"name:string"`
	Description string                     `rosmsg:"description:string"`
	Scale       float32                    `rosmsg:"scale:float32"`
	MenuEntries []MenuEntry                `rosmsg:"menu_entries:MenuEntry[]"`
	Controls    []InteractiveMarkerControl `rosmsg:"controls:InteractiveMarkerControl[]"`
}

func (m *InteractiveMarker) Type() ros.MessageType {
	return MsgInteractiveMarker
}

func (m *InteractiveMarker) Serialize(buf *bytes.Buffer) error {
	var err error
	if err = m.Header.Serialize(buf); err != nil {
		return err
	}
	if err = m.Pose.Serialize(buf); err != nil {
		return err
	}
	ros.WriteString(buf, m.Name)
	ros.WriteString(buf, m.Description)
	binary.Write(buf, binary.LittleEndian, m.Scale)
	ros.WriteLength(buf, len(m.MenuEntries))
	for _, e := range m.MenuEntries {
		if err = e.Serialize(buf); err != nil {
			return err
		}
	}
	ros.WriteLength(buf, len(m.Controls))
	for _, e := range m.Controls {
		if err = e.Serialize(buf); err != nil {
			return err
		}
	}
	return nil
}

func (m *InteractiveMarker) Deserialize(buf *bytes.Reader) error {
	var err error
	var size int
	if err = m.Header.Deserialize(buf); err != nil {
		return err
	}
	if err = m.Pose.Deserialize(buf); err != nil {
		return err
	}
	if m.Name, err = ros.ReadString(buf); err != nil {
		return err
	}
	if m.Description, err = ros.ReadString(buf); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.Scale); err != nil {
		return err
	}
	if size, err = ros.ReadLength(buf); err != nil {
		return err
	}
	m.MenuEntries = make([]MenuEntry, size)
	for i := 0; i < size; i++ {
		if err = m.MenuEntries[i].Deserialize(buf); err != nil {
			return err
		}
	}
	if size, err = ros.ReadLength(buf); err != nil {
		return err
	}
	m.Controls = make([]InteractiveMarkerControl, size)
	for i := 0; i < size; i++ {
		if err = m.Controls[i].Deserialize(buf); err != nil {
			return err
		}
	}
	return nil
}
