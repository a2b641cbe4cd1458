// Package physics is a small rigid-body world for spheres falling through
// static triangle-mesh geometry.
//
// The world advances in fixed sub-steps driven by an accumulator. Each
// sub-step runs the registered pre-step hooks, integrates velocities and
// positions, collects sphere/sphere and sphere/trimesh contacts and resolves
// them with sequential impulses followed by a positional correction.
package physics
