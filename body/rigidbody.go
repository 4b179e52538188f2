// Package body implements the rigid-body subsystem: state, the
// Newton-Euler integrator, force/torque application, and the derived
// data (world transform, world-space inverse inertia tensor) that
// must be refreshed whenever orientation or position change.
package body

import (
	"math"

	"github.com/google/uuid"

	"github.com/fenwick-labs/cyclone/arena"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// RigidBody is a 6-degree-of-freedom body: position, orientation,
// linear and angular velocity, plus the body-space inverse inertia
// tensor and the state the integrator derives from it.
type RigidBody struct {
	Position    vecmath.Vec3
	Orientation vecmath.Quat

	Velocity        vecmath.Vec3
	AngularVelocity vecmath.Vec3

	Acceleration        vecmath.Vec3 // constant per-frame linear bias, e.g. gravity
	AngularAcceleration vecmath.Vec3

	LinearDamping  vecmath.Real
	AngularDamping vecmath.Real

	InverseMass             vecmath.Real
	InverseInertiaTensor    vecmath.Mat3 // body space
	inverseInertiaWorld     vecmath.Mat3 // derived; call UpdateDerivedData after changing orientation
	transformMatrix         vecmath.Mat4 // derived

	forceAccum  vecmath.Vec3
	torqueAccum vecmath.Vec3

	Awake                  bool
	LastFrameAcceleration vecmath.Vec3

	Name string
	ID   uuid.UUID
}

// New constructs an awake rigid body with identity orientation at
// the origin. mass must be non-zero; inertiaTensor is the body-space
// inertia tensor (not its inverse) and must be non-singular.
func New(mass vecmath.Real, inertiaTensor vecmath.Mat3) *RigidBody {
	if mass == 0 {
		panic("body: mass must be non-zero")
	}
	inv := vecmath.Real(0)
	if !math.IsInf(float64(mass), 1) {
		inv = 1 / mass
	}

	rb := &RigidBody{
		Orientation:          vecmath.IdentityQuat,
		LinearDamping:        0.99,
		AngularDamping:       0.99,
		InverseMass:          inv,
		InverseInertiaTensor: inertiaTensor.Inverse(),
		Awake:                true,
		ID:                   uuid.New(),
	}
	rb.UpdateDerivedData()
	return rb
}

// SetInertiaTensor stores the inverse of inertiaTensor as the body's
// inverse inertia tensor; inertiaTensor must be non-singular.
func (rb *RigidBody) SetInertiaTensor(inertiaTensor vecmath.Mat3) {
	rb.InverseInertiaTensor = inertiaTensor.Inverse()
	rb.UpdateDerivedData()
}

// Mass returns the rigid body's mass, or +Inf if immovable.
func (rb *RigidBody) Mass() vecmath.Real {
	if rb.InverseMass == 0 {
		return vecmath.Real(math.Inf(1))
	}
	return 1 / rb.InverseMass
}

func (rb *RigidBody) Wake() { rb.Awake = true }
func (rb *RigidBody) Sleep() {
	rb.Awake = false
	rb.Velocity = vecmath.Zero
	rb.AngularVelocity = vecmath.Zero
}

// AddForce accumulates a force applied through the center of mass and
// wakes the body.
func (rb *RigidBody) AddForce(force vecmath.Vec3) {
	rb.forceAccum = rb.forceAccum.Add(force)
	rb.Awake = true
}

// AddTorque accumulates a torque directly and wakes the body.
func (rb *RigidBody) AddTorque(torque vecmath.Vec3) {
	rb.torqueAccum = rb.torqueAccum.Add(torque)
	rb.Awake = true
}

// AddForceAtPoint applies force at a point given in world
// coordinates, contributing both to the linear accumulator and, via
// the point's offset from the center of mass, to the torque
// accumulator.
func (rb *RigidBody) AddForceAtPoint(force vecmath.Vec3, pointWorld vecmath.Vec3) {
	rel := pointWorld.Sub(rb.Position)
	rb.forceAccum = rb.forceAccum.Add(force)
	rb.torqueAccum = rb.torqueAccum.Add(rel.Cross(force))
	rb.Awake = true
}

// AddForceAtBodyPoint applies force at a point given in the body's
// own local frame (e.g. a thruster fixed to a hull), transforming it
// to world space first.
func (rb *RigidBody) AddForceAtBodyPoint(force vecmath.Vec3, pointBody vecmath.Vec3) {
	rb.AddForceAtPoint(force, rb.GetPointInWorldSpace(pointBody))
}

func (rb *RigidBody) clearAccumulators() {
	rb.forceAccum = vecmath.Zero
	rb.torqueAccum = vecmath.Zero
}

// ClearAccumulators zeroes the force and torque accumulators without
// integrating, for a pipeline's start-of-frame reset.
func (rb *RigidBody) ClearAccumulators() {
	rb.clearAccumulators()
}

// TransformMatrix returns the derived world transform. Callers must
// have called UpdateDerivedData (directly, or via Integrate) since
// the last change to Position or Orientation.
func (rb *RigidBody) TransformMatrix() vecmath.Mat4 { return rb.transformMatrix }

// InverseInertiaTensorWorld returns the derived world-space inverse
// inertia tensor.
func (rb *RigidBody) InverseInertiaTensorWorld() vecmath.Mat3 { return rb.inverseInertiaWorld }

// GetPointInWorldSpace transforms a body-local point to world space.
func (rb *RigidBody) GetPointInWorldSpace(pointBody vecmath.Vec3) vecmath.Vec3 {
	return rb.transformMatrix.Transform(pointBody)
}

// GetPointInLocalSpace transforms a world-space point into the
// body's local frame.
func (rb *RigidBody) GetPointInLocalSpace(pointWorld vecmath.Vec3) vecmath.Vec3 {
	return rb.transformMatrix.TransformInverse(pointWorld)
}

// UpdateDerivedData normalizes the orientation, rebuilds the world
// transform from (orientation, position), and rotates the body-space
// inverse inertia tensor into world space. Call it after directly
// setting Position or Orientation outside of Integrate.
func (rb *RigidBody) UpdateDerivedData() {
	rb.Orientation = rb.Orientation.Normalized()
	rb.transformMatrix = vecmath.FromOrientationAndPosition(rb.Orientation, rb.Position)
	rb.inverseInertiaWorld = transportInertiaToWorld(rb.InverseInertiaTensor, rb.transformMatrix)
}

// transportInertiaToWorld computes R * iit * R^T, where R is the
// rotation block of transform.
func transportInertiaToWorld(iit vecmath.Mat3, transform vecmath.Mat4) vecmath.Mat3 {
	d := &transform.Data
	rot := vecmath.NewMat3(d[0], d[1], d[2], d[4], d[5], d[6], d[8], d[9], d[10])
	return rot.Mul(iit).Mul(rot.Transpose())
}

// Integrate advances position, orientation, velocity, and angular
// velocity by duration using explicit Newton-Euler integration, then
// refreshes derived data and clears the force/torque accumulators.
// Immovable bodies (InverseMass <= 0) are left untouched. duration
// must be strictly positive.
func (rb *RigidBody) Integrate(duration vecmath.Real) {
	if rb.InverseMass <= 0 {
		return
	}
	if duration <= 0 {
		panic("body: Integrate requires duration > 0")
	}

	linearAcc := rb.Acceleration.AddScaled(rb.forceAccum, rb.InverseMass)
	angularAcc := rb.AngularAcceleration.Add(rb.inverseInertiaWorld.Transform(rb.torqueAccum))

	linDamping := vecmath.Real(math.Pow(float64(rb.LinearDamping), float64(duration)))
	angDamping := vecmath.Real(math.Pow(float64(rb.AngularDamping), float64(duration)))

	rb.Velocity = rb.Velocity.Scale(linDamping).AddScaled(linearAcc, duration)
	rb.AngularVelocity = rb.AngularVelocity.Scale(angDamping).AddScaled(angularAcc, duration)

	rb.Position = rb.Position.AddScaled(rb.Velocity, duration)
	rb.Orientation = rb.Orientation.AddScaledVector(rb.AngularVelocity, duration)

	rb.UpdateDerivedData()
	rb.clearAccumulators()
	rb.LastFrameAcceleration = linearAcc
}

// Handle addresses a RigidBody stored in a Set.
type Handle = arena.Handle

// Set is a generational arena of rigid bodies.
type Set struct {
	arena.Arena[RigidBody]
}

func NewSet() *Set { return &Set{} }
