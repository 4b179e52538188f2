// Package cyclone is a small 3D rigid-body physics engine in the
// spirit of Ian Millington's Cyclone: particles and rigid bodies
// integrated by explicit Newton-Euler stepping, a dynamic BVH
// broad-phase, a Separating-Axis-Test narrow-phase for spheres,
// half-spaces, and cuboids, and sequential worst-first contact
// resolvers for both particles and rigid bodies.
//
// There is no scene graph or simulation loop owned by this package:
// callers hold their own particle.Set / body.Set, drive a pipeline
// (ppipeline.Pipeline for particles, system.PhysicsSystem for rigid
// bodies) one fixed step at a time, and wire broadphase/narrowphase
// themselves for rigid-body collision.
package cyclone

import "github.com/fenwick-labs/cyclone/vecmath"

// Gravity is Earth-standard gravitational acceleration, ready to
// assign to a Particle's or RigidBody's Acceleration field.
var Gravity = vecmath.Vec3{X: 0, Y: -9.81, Z: 0}

// HighGravity is double Gravity, useful for exercising the resting-
// contact and resolver code paths faster in tests.
var HighGravity = vecmath.Vec3{X: 0, Y: -19.62, Z: 0}
