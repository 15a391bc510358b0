// Package live serves a toast document to real browsers.
//
// The server renders the document into a page with a small client script.
// The script opens a websocket at /ws, receives a snapshot of <head> and
// <body> followed by one frame per document patch, and sends clicks on
// elements with bound handlers back to the server, where they are
// dispatched into the document.
//
//	doc := dom.NewDocument()
//	loop := schedule.NewLoop()
//	loop.Start()
//	reg := toast.New(doc, loop)
//
//	srv := live.NewServer(doc, reg, live.WithDispatcher(loop.Dispatch))
//	err := srv.ListenAndServe(ctx, "localhost:3100")
//
// A JSON API under /api/toasts shows, lists and dismisses toasts, and
// /metrics exposes Prometheus metrics when WithMetrics is set.
package live
