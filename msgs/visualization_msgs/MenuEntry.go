// Package visualization_msgs is automatically generated from the message definition "visualization_msgs/MenuEntry.msg"
package visualization_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosgo/frametarget/ros"
)

const (
	MenuEntry_FEEDBACK  uint8 = 0
	MenuEntry_ROSRUN    uint8 = 1
	MenuEntry_ROSLAUNCH uint8 = 2
)

type _MsgMenuEntry struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgMenuEntry) Text() string {
	return t.text
}

func (t *_MsgMenuEntry) Name() string {
	return t.name
}

func (t *_MsgMenuEntry) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgMenuEntry) NewMessage() ros.Message {
	m := new(MenuEntry)
	return m
}

var (
	MsgMenuEntry = &_MsgMenuEntry{
		`# MenuEntry message.

# ID is a number for each menu entry.  Must be unique within the
# control, and should never be 0.
uint32 id

# ID of the parent of this menu entry, if it is a submenu.  If this
# menu entry is a top-level entry, set parent_id to 0.
uint32 parent_id

# menu / entry title
string title

# Arguments to command indicated by command_type (below)
string command

# Command_type stores the type of response desired when this menu
# entry is clicked.
# FEEDBACK: send an InteractiveMarkerFeedback message with menu_entry_id set to this entry's id.
# ROSRUN: execute "rosrun" with arguments given in the command field (above).
# ROSLAUNCH: execute "roslaunch" with arguments given in the command field (above).
uint8 FEEDBACK=0
uint8 ROSRUN=1
uint8 ROSLAUNCH=2
uint8 command_type
`,
		"visualization_msgs/MenuEntry",
		"b90ec63024573de83b57aa93eb39be2d",
	}
)

type MenuEntry struct {
	Id          uint32 `rosmsg:"id:uint32"`
	ParentId    uint32 `rosmsg:"parent_id:uint32"`
	Title       string `rosmsg:"title:string"`
	Command     string `rosmsg:"command:string"`
	CommandType uint8  `rosmsg:"command_type:uint8"`
}

func (m *MenuEntry) Type() ros.MessageType {
	return MsgMenuEntry
}

func (m *MenuEntry) Serialize(buf *bytes.Buffer) error {
	binary.Write(buf, binary.LittleEndian, m.Id)
	binary.Write(buf, binary.LittleEndian, m.ParentId)
	ros.WriteString(buf, m.Title)
	ros.WriteString(buf, m.Command)
	binary.Write(buf, binary.LittleEndian, m.CommandType)
	return nil
}

func (m *MenuEntry) Deserialize(buf *bytes.Reader) error {
	var err error
	if err = binary.Read(buf, binary.LittleEndian, &m.Id); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.ParentId); err != nil {
		return err
	}
	if m.Title, err = ros.ReadString(buf); err != nil {
		return err
	}
	if m.Command, err = ros.ReadString(buf); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.CommandType); err != nil {
		return err
	}
	return nil
}
