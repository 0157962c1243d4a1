// Package reef renders an animated 2D aquarium on [Ebitengine]: creatures
// that wander between random targets and chase the pointer, a layered
// procedural wave field, a recycled field of rising bubbles and a gradient
// background.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	reef.Run(reef.RunConfig{
//		Title: "Aquarium", Width: 800, Height: 600, Resizable: true,
//	}, reef.DefaultConfig())
//
// For full control, build a [Scene] on any [Surface] and drive it yourself.
// The scene continues its own loop through a [Scheduler]; [TickScheduler]
// fires from ebiten.Game.Update:
//
//	surface := reef.NewImageSurface(800, 600)
//	scene, err := reef.NewScene(surface, reef.ConfigPatch{})
//	sched := reef.NewTickScheduler()
//	scene.SetScheduler(sched)
//	scene.Start()
//	// in Update: sched.Fire()
//
// # Frames
//
// Each frame updates and composites back to front: background, waves,
// bubbles, creatures. A surface that loses its image stops the loop with
// [ErrContextLost], reported by [Scene.Err].
//
// # Creatures
//
// Every agent is either autonomous, heading for a random target that is
// redrawn when its deadline passes, or pursuing the pointer. Pointer
// presence is checked before the deadline, so a pointer over the surface
// always wins. Agents never leave the surface inset by their size.
//
// # Configuration
//
// [Config] holds every tunable. [ConfigPatch] sets a subset of them, both at
// construction and at runtime through [Scene.Reconfigure], which rebuilds
// only what a change affects. [LoadConfig] reads a YAML file:
//
//	creatureCount: 5
//	retargetInterval: 2.5s
//	waveColors: ["#0077be80", "#48cae480"]
//
// # Observing
//
// [Scene.SetEventSink] attaches an [EventSink] that receives lifecycle
// events such as retargets and rebuilds. Package reef/ecs forwards them into
// a donburi world. [Scene.SetDebugMode] logs per-phase frame timings to
// stderr.
//
// [Ebitengine]: https://ebitengine.org
package reef
