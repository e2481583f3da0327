// Package visualization_msgs is automatically generated from the message definition "visualization_msgs/InteractiveMarkerUpdate.msg"
package visualization_msgs

import (
	"bytes"
	"encoding/binary"

	"github.com/rosgo/frametarget/ros"
)

const (
	InteractiveMarkerUpdate_KEEP_ALIVE uint8 = 0
	InteractiveMarkerUpdate_UPDATE     uint8 = 1
)

type _MsgInteractiveMarkerUpdate struct {
	text   string
	name   string
	md5sum string
}

func (t *_MsgInteractiveMarkerUpdate) Text() string {
	return t.text
}

func (t *_MsgInteractiveMarkerUpdate) Name() string {
	return t.name
}

func (t *_MsgInteractiveMarkerUpdate) MD5Sum() string {
	return t.md5sum
}

func (t *_MsgInteractiveMarkerUpdate) NewMessage() ros.Message {
	m := new(InteractiveMarkerUpdate)
	m.Markers = []InteractiveMarker{}
	m.Poses = []InteractiveMarkerPose{}
	m.Erases = []string{}
	return m
}

var (
	MsgInteractiveMarkerUpdate = &_MsgInteractiveMarkerUpdate{
		`# Identifying string. Must be unique in the topic namespace
# that this server works on.
string server_id

# Sequence number.
# The client will use this to detect if it has missed an update.
uint64 seq_num

# Type holds the purpose of this message.  It must be one of UPDATE or KEEP_ALIVE.
# UPDATE: Incremental update to previous state.
#         The sequence number must be 1 higher than for
#         the previous update.
# KEEP_ALIVE: Indicates the that the server is still living.
#             The sequence number does not increase.
#             No payload data should be filled out (markers, poses, or erases).
uint8 KEEP_ALIVE = 0
uint8 UPDATE = 1

uint8 type

#Note: No guarantees on the order of processing.
#      Contents must be kept consistent by sender.

#Markers to be added or updated
InteractiveMarker[] markers

#Poses of markers that should be moved
InteractiveMarkerPose[] poses

#Names of markers to be erased
string[] erases
`,
		"visualization_msgs/InteractiveMarkerUpdate",
		"710d308d0a9276d65945e92dd30b3946",
	}
)

type InteractiveMarkerUpdate struct {
	ServerId string                  `rosmsg:"server_id:string"`
	SeqNum   uint64                  `rosmsg:"seq_num:uint64"`
	Type_    uint8                   `rosmsg:"type:uint8"`
	Markers  []InteractiveMarker     `rosmsg:"markers:InteractiveMarker[]"`
	Poses    []InteractiveMarkerPose `rosmsg:"poses:InteractiveMarkerPose[]"`
	Erases   []string                `rosmsg:"erases:string[]"`
}

func (m *InteractiveMarkerUpdate) Type() ros.MessageType {
	return MsgInteractiveMarkerUpdate
}

func (m *InteractiveMarkerUpdate) Serialize(buf *bytes.Buffer) error {
	var err error
	ros.WriteString(buf, m.ServerId)
	binary.Write(buf, binary.LittleEndian, m.SeqNum)
	binary.Write(buf, binary.LittleEndian, m.Type_)
	ros.WriteLength(buf, len(m.Markers))
	for _, e := range m.Markers {
		if err = e.Serialize(buf); err != nil {
			return err
		}
	}
	ros.WriteLength(buf, len(m.Poses))
	for _, e := range m.Poses {
		if err = e.Serialize(buf); err != nil {
			return err
		}
	}
	ros.WriteLength(buf, len(m.Erases))
	for _, e := range m.Erases {
		ros.WriteString(buf, e)
	}
	return nil
}

func (m *InteractiveMarkerUpdate) Deserialize(buf *bytes.Reader) error {
	var err error
	var size int
	if m.ServerId, err = ros.ReadString(buf); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.SeqNum); err != nil {
		return err
	}
	if err = binary.Read(buf, binary.LittleEndian, &m.Type_); err != nil {
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
	if size, err = ros.ReadLength(buf); err != nil {
		return err
	}
	m.Poses = make([]InteractiveMarkerPose, size)
	for i := 0; i < size; i++ {
		if err = m.Poses[i].Deserialize(buf); err != nil {
			return err
		}
	}
	if size, err = ros.ReadLength(buf); err != nil {
		return err
	}
	m.Erases = make([]string, size)
	for i := 0; i < size; i++ {
		if m.Erases[i], err = ros.ReadString(buf); err != nil {
			return err
		}
	}
	return nil
}
