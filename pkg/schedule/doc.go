// Package schedule provides delayed-callback primitives for the toast
// lifecycle.
//
// Every timer a toast owns (auto-dismiss, entry animation, progress start,
// detach after the exit animation) goes through a Scheduler, so the
// lifecycle code never touches time.AfterFunc directly.
//
// Loop is the real-time implementation: timers fire on runtime timers and
// are funnelled onto one dispatch goroutine, so callbacks never overlap.
//
//	loop := schedule.NewLoop()
//	loop.Start()
//	defer loop.Stop()
//
//	t := loop.Schedule(1600*time.Millisecond, dismiss)
//	t.Stop() // cancelled, dismiss never runs
//
// Fake is a manual clock for tests:
//
//	clock := schedule.NewFake()
//	clock.Schedule(time.Second, fn)
//	clock.Advance(time.Second) // fn runs here
package schedule
