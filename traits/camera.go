package traits

// Pose is a camera position and orientation. Orientation is a unit
// quaternion in (x, y, z, w) order.
type Pose struct {
	Position    [3]float64
	Orientation [4]float64
}

// Camera exposes get/set access to the active camera pose. Provided under
// plume.CapCamera.
type Camera interface {
	Pose() Pose
	SetPose(p Pose)
}
