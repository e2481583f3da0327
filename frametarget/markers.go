package frametarget

import (
	"github.com/rosgo/frametarget/msgs/geometry_msgs"
	"github.com/rosgo/frametarget/msgs/std_msgs"
	vm "github.com/rosgo/frametarget/msgs/visualization_msgs"
)

const (
	TargetMarkerName = "interactive_target"
	MenuMarkerName   = "marker_menu"
	MenuControlName  = "menu_control"

	EntryStartTracking = "StartTracking"
	EntryStopTracking  = "StopTracking"
	EntryResetTracking = "ResetTracking"
)

// Control orientations are left unnormalized; visualization clients
// normalize them.
var (
	axisX = geometry_msgs.Quaternion{W: 1, X: 1}
	axisY = geometry_msgs.Quaternion{W: 1, Y: 1}
	axisZ = geometry_msgs.Quaternion{W: 1, Z: 1}
)

var targetControls = []struct {
	name string
	axis geometry_msgs.Quaternion
	mode uint8
}{
	{"move_3D", axisX, vm.InteractiveMarkerControl_MOVE_3D},
	{"move_x", axisX, vm.InteractiveMarkerControl_MOVE_AXIS},
	{"rotate_x", axisX, vm.InteractiveMarkerControl_ROTATE_AXIS},
	{"move_y", axisY, vm.InteractiveMarkerControl_MOVE_AXIS},
	{"rotate_y", axisY, vm.InteractiveMarkerControl_ROTATE_AXIS},
	{"move_z", axisZ, vm.InteractiveMarkerControl_MOVE_AXIS},
	{"rotate_z", axisZ, vm.InteractiveMarkerControl_ROTATE_AXIS},
}

func boxControl() vm.InteractiveMarkerControl {
	return vm.InteractiveMarkerControl{
		AlwaysVisible: true,
		Markers: []vm.Marker{{
			Type_: int32(vm.Marker_CUBE),
			Scale: geometry_msgs.Vector3{X: 0.1, Y: 0.1, Z: 0.1},
			Color: std_msgs.ColorRGBA{R: 0, G: 0.5, B: 0.5, A: 1},
		}},
	}
}

// newTargetMarker builds the draggable marker at pose: a box plus the
// free, axis and rotation handles.
func newTargetMarker(cfg Config, pose geometry_msgs.Pose) vm.InteractiveMarker {
	m := vm.InteractiveMarker{
		Header:      std_msgs.Header{FrameId: cfg.BaseFrame},
		Pose:        pose,
		Name:        TargetMarkerName,
		Description: cfg.TrackingFrame,
		Scale:       0.8,
		Controls:    []vm.InteractiveMarkerControl{boxControl()},
	}
	for _, c := range targetControls {
		m.Controls = append(m.Controls, vm.InteractiveMarkerControl{
			Name:            c.name,
			Orientation:     c.axis,
			InteractionMode: c.mode,
			AlwaysVisible:   true,
		})
	}
	return m
}

// newMenuMarker builds the marker that carries the tracking menu.
func newMenuMarker(cfg Config) vm.InteractiveMarker {
	return vm.InteractiveMarker{
		Header: std_msgs.Header{FrameId: cfg.BaseFrame},
		Pose: geometry_msgs.Pose{
			Position:    geometry_msgs.Point{Z: 1.2},
			Orientation: geometry_msgs.Quaternion{W: 1},
		},
		Name:        MenuMarkerName,
		Description: cfg.Namespace,
		Scale:       1,
		Controls: []vm.InteractiveMarkerControl{{
			Name:            MenuControlName,
			InteractionMode: vm.InteractiveMarkerControl_MENU,
			Description:     "InteractiveTargetMenu",
		}},
	}
}
