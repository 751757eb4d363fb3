package geometry

// Pose is a rigid transform: a rotation followed by a translation. Anchors
// use it to define the local frame that drawings and measurements live in.
type Pose struct {
	Position Vector3
	Rotation Quaternion
}

// NewPose creates a pose from a position and a rotation
func NewPose(position Vector3, rotation Quaternion) Pose {
	return Pose{Position: position, Rotation: rotation.Normalize()}
}

// Translation creates an unrotated pose at position
func Translation(position Vector3) Pose {
	return Pose{Position: position, Rotation: IdentityQuaternion()}
}

// LocalToWorld maps a point from the pose's frame into world space
func (p Pose) LocalToWorld(local Vector3) Vector3 {
	return p.rotation().Rotate(local).Add(p.Position)
}

// WorldToLocal maps a world-space point into the pose's frame
func (p Pose) WorldToLocal(world Vector3) Vector3 {
	return p.rotation().Conjugate().Rotate(world.Sub(p.Position))
}

// RotateVector applies only the rotation part, as for directions and normals
func (p Pose) RotateVector(v Vector3) Vector3 {
	return p.rotation().Rotate(v)
}

// rotation treats the zero value as identity so that Pose{} is usable
func (p Pose) rotation() Quaternion {
	if p.Rotation == (Quaternion{}) {
		return IdentityQuaternion()
	}
	return p.Rotation
}
