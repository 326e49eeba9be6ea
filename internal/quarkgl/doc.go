// Package quarkgl is a small software renderer for point clouds.
//
// It draws two primitives: line segments and screen-facing discs ("sprites"),
// both given in world space and projected through a perspective Camera. The
// camera also answers the inverse question (which world ray lies under a screen
// position), which is what pointer picking needs.
//
// Pipeline (fixed):
//
//	Frame → View/Projection → perspective divide → Bresenham lines → discs, far to near.
//
// The renderer draws into a caller-provided Target and reuses its scratch
// buffers between frames.
package quarkgl
