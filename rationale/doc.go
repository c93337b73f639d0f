// Package rationale computes the connector curves that link board assets to a
// shared focal point.
//
// A [Tracker] is the per-frame driver. While visible it pulls every source's
// screen rectangle from a [RectProvider], resolves the focal point (the
// container centre, or the projection of a tracked 3D object), runs the
// [Builder] for each resolvable source and hands the list to a publisher,
// usually a [Reconciler]. Scheduling goes through an injected [TickSource] so
// the loop can be driven by the game's Update or by a test.
//
// Nothing here fails. Sources without a rectangle are skipped, a missing
// focal point falls back to the container centre, and unknown categories get
// the neutral colour.
package rationale
