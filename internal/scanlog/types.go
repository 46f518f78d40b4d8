// Package scanlog reads recorded drive logs: one CSV row per sample, each
// carrying a full LiDAR scan plus the vehicle pose at the time of the scan.
package scanlog

// LogRow is one time-ordered sample from a drive log.
type LogRow struct {
	// Ranges holds one distance reading (meters) per fixed angular step
	// across the sensor's field of view. The length is constant for a
	// given log; it defines the angular resolution.
	Ranges []float64

	// Position is the vehicle position (x, y, z) in meters. z is recorded
	// but unused by the top-down projection.
	Position [3]float64

	// Orientation is (roll, pitch, yaw) in radians. Only yaw drives the
	// projection.
	Orientation [3]float64

	// Motion holds the optional trailing scalar channels (steering angle,
	// steering angle velocity, speed, acceleration, jerk). They are kept
	// as raw field text and passed through untouched.
	Motion []string
}

// Yaw returns the row's heading in radians, counter-clockwise positive,
// zero along the +x axis.
func (r LogRow) Yaw() float64 { return r.Orientation[2] }

// MotionMeasurementIndex names positions within LogRow.Motion.
const (
	MotionSteeringAngle = iota
	MotionSteeringAngleVelocity
	MotionSpeed
	MotionAcceleration
	MotionJerk
)
