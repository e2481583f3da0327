// Package visualization_msgs is automatically generated from the message definition "visualization_msgs/InteractiveMarkerInit.msg"
package visualization_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosgo/frametarget/ros"
)

type _MsgInteractiveMarkerInit struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgInteractiveMarkerInit) Text() string {
	return t.text
}

func (t *_MsgInteractiveMarkerInit) Name() string {
	return t.name
}

func (t *_MsgInteractiveMarkerInit) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgInteractiveMarkerInit) NewMessage() ros.Message {
	m := new(InteractiveMarkerInit)
	m.Markers = []InteractiveMarker{}
	return m
}

var (
	MsgInteractiveMarkerInit = &_MsgInteractiveMarkerInit{
		`# Identifying string. Must be unique in the topic namespace
# that this server works on.
string server_id

# Sequence number.
# The client will use this to detect if it has missed a subsequent
# update.  Every update message will have the same sequence number as
# an init message.  Clients will likely want to unsubscribe from the
# init topic after a successful initialization to avoid receiving
# duplicate data.
uint64 seq_num

# All markers.
InteractiveMarker[] markers
`,
		"visualization_msgs/InteractiveMarkerInit",
		"d5f2c5045a72456d228676ab91048734",
	}
)

type InteractiveMarkerInit struct {
	ServerId string              `rosmsg:"server_id:string"`
	SeqNum   uint64              `rosmsg:"seq_num:uint64"`
	Markers  []InteractiveMarker `rosmsg:"markers:InteractiveMarker[]"`
}

func (m *InteractiveMarkerInit) Type() ros.MessageType {
	return MsgInteractiveMarkerInit
}

func (m *InteractiveMarkerInit) Serialize(buf *bytes.Buffer) error {
	var err error
	ros.WriteString(buf, m.ServerId)
	binary.Write(buf, binary.LittleEndian, m.SeqNum)
	ros.WriteLength(buf, len(m.Markers))
	for _, e := range m.Markers {
		if err = e.Serialize(buf); err != nil {
			return err
		}
	}
	return nil
}

func (m *InteractiveMarkerInit) Deserialize(buf *bytes.Reader) error {
	var err error
	var size int
	if m.ServerId, err = ros.ReadString(buf); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.SeqNum); err != nil {
		return err
	}
	if size, err = ros.ReadLength(buf); err != nil {
		return err
	}
	m.Markers = make([]InteractiveMarker, size)
	for i := 0; i < size; i++ {
		if err = m.Markers[i].Deserialize(buf); err != nil {
			return err
		}
	}
	return nil
}
