// Package toast manages transient notifications ("toasts") in a host
// document.
//
// A Registry owns a mounting surface (the #toast-container element) and
// the set of toasts currently on screen. Show mounts a toast and returns a
// Handle right away; the entry animation, the progress bar and the
// auto-dismiss timer then run on a schedule.Scheduler.
//
// # Dismissal
//
// A toast can be dismissed by its timer, by its close button, by a click
// anywhere on it (when ClickToDismiss is set) or by Remove. All of these
// funnel into one path that first leaves the active set and starts the
// exit animation, then detaches the element after the exit delay. Whichever
// path gets there first wins; later attempts are no-ops.
//
//	doc := dom.NewDocument()
//	loop := schedule.NewLoop()
//	loop.Start()
//	defer loop.Stop()
//
//	reg := toast.New(doc, loop)
//	h := reg.Show("Saved successfully", toast.SeveritySuccess)
//	...
//	reg.Remove(h) // false if it already went away
//
// # Package-level helpers
//
// Show, Success, Error, Warning, Info and Primary use the registry returned
// by Default, which is created lazily on first use:
//
//	toast.Success("Changes saved!")
//	toast.Warning("This action cannot be undone", toast.WithDuration(0))
package toast
