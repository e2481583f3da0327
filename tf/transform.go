package tf

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/rosgo/frametarget/msgs/geometry_msgs"
)

// transform maps points of a child frame into its parent frame:
// p_parent = rotation * p_child + translation.
type transform struct {
	translation mgl64.Vec3
	rotation    mgl64.Quat
}

func identity() transform {
	return transform{rotation: mgl64.QuatIdent()}
}

func transformFromMsg(m *geometry_msgs.Transform) transform {
	return transform{
		translation: mgl64.Vec3{m.Translation.X, m.Translation.Y, m.Translation.Z},
		rotation:    QuatFromMsg(&m.Rotation).Normalize(),
	}
}

func (t transform) toMsg() geometry_msgs.Transform {
	return geometry_msgs.Transform{
		Translation: geometry_msgs.Vector3{X: t.translation[0], Y: t.translation[1], Z: t.translation[2]},
		Rotation:    QuatToMsg(t.rotation),
	}
}

// compose returns t∘other: apply other first, then t.
func (t transform) compose(other transform) transform {
	return transform{
		translation: t.rotation.Rotate(other.translation).Add(t.translation),
		rotation:    t.rotation.Mul(other.rotation).Normalize(),
	}
}

func (t transform) inverse() transform {
	inv := t.rotation.Inverse()
	return transform{
		translation: inv.Rotate(t.translation).Mul(-1),
		rotation:    inv,
	}
}

// interpolate blends linearly in translation and spherically in rotation;
// ratio 0 yields t and 1 yields other.
func (t transform) interpolate(other transform, ratio float64) transform {
	return transform{
		translation: t.translation.Add(other.translation.Sub(t.translation).Mul(ratio)),
		rotation:    mgl64.QuatSlerp(t.rotation, other.rotation, ratio),
	}
}

func (t transform) valid() bool {
	for _, v := range []float64{
		t.translation[0], t.translation[1], t.translation[2],
		t.rotation.W, t.rotation.V[0], t.rotation.V[1], t.rotation.V[2],
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// QuatFromMsg converts a geometry_msgs quaternion.
func QuatFromMsg(q *geometry_msgs.Quaternion) mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

// QuatToMsg converts a quaternion to its message form.
func QuatToMsg(q mgl64.Quat) geometry_msgs.Quaternion {
	return geometry_msgs.Quaternion{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// QuaternionFromEuler returns the rotation for roll, pitch and yaw about the
// static x, y and z axes, applied in that order.
func QuaternionFromEuler(roll, pitch, yaw float64) geometry_msgs.Quaternion {
	return QuatToMsg(mgl64.AnglesToQuat(yaw, pitch, roll, mgl64.ZYX))
}
