package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-toast/pkg/dom"
	"github.com/vango-dev/vango-toast/pkg/schedule"
	"github.com/vango-dev/vango-toast/pkg/toast"
	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// timeline collects lifecycle lines stamped with the fake clock offset.
type timeline struct {
	clock *schedule.Fake
	lines [][]string
}

// add records one line; fields[0] is the event kind.
func (t *timeline) add(fields ...string) {
	at := "+" + t.clock.Elapsed().String()
	t.lines = append(t.lines, append([]string{at}, fields...))
}

func (t *timeline) print(w io.Writer) {
	for _, line := range t.lines {
		fmt.Fprintf(w, "%-9s %-10s %s\n", line[0], line[1], strings.Join(line[2:], " "))
	}
}

func simulateCmd() *cobra.Command {
	var (
		message    string
		severity   string
		duration   time.Duration
		noProgress bool
		noClick    bool
		clickAt    time.Duration
		closeAt    time.Duration
		patches    bool
		ignoreStop bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one toast on a simulated clock",
		Long: `Show one toast on a simulated clock and print its lifecycle.

Clicks on the toast body or its close button can be scheduled.

Examples:
  vango-toast simulate
  vango-toast simulate --duration=3s --click-at=500ms
  vango-toast simulate --close-at=200ms --ignore-stop-propagation --patches`,
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := schedule.NewFake()
			var docOpts []dom.Option
			if ignoreStop {
				docOpts = append(docOpts, dom.WithIgnoreStopPropagation())
			}
			doc := dom.NewDocument(docOpts...)
			tl := &timeline{clock: clock}

			reg := toast.New(doc, clock, toast.WithObserver(toast.ObserverFuncs{
				Shown: func(h *toast.Handle) {
					tl.add("shown", string(h.Severity()), h.ID())
				},
				Dismissed: func(h *toast.Handle, trigger toast.Trigger) {
					tl.add("dismissed", trigger.String())
				},
				Detached: func(h *toast.Handle) {
					tl.add("detached")
				},
			}))

			if patches {
				unsubscribe := doc.Subscribe(func(p vdom.Patch) {
					switch p.Op {
					case vdom.PatchSetStyle:
						tl.add("patch", p.Op.String(), p.Key+": "+p.Value)
					case vdom.PatchInsertNode:
						tl.add("patch", p.Op.String(), p.ParentID)
					default:
						tl.add("patch", p.Op.String(), p.HID)
					}
				})
				defer unsubscribe()
			}

			h := reg.Show(message, toast.Severity(severity),
				toast.WithDuration(duration),
				toast.WithProgress(!noProgress),
				toast.WithClickToDismiss(!noClick),
			)

			if cmd.Flags().Changed("click-at") {
				clock.Schedule(clickAt, func() {
					tl.add("click", "toast")
					doc.Dispatch(h.Element(), "click")
				})
			}
			if cmd.Flags().Changed("close-at") {
				clock.Schedule(closeAt, func() {
					tl.add("click", "close button")
					doc.Dispatch(vdom.FindByClass(h.Element(), "toast-close"), "click")
				})
			}

			clock.RunAll(1000)
			if h.Active() {
				tl.add("still active")
			}
			tl.print(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "Hello from vango-toast", "Toast message")
	cmd.Flags().StringVarP(&severity, "severity", "s", string(toast.SeverityInfo), "success, error, warning, info or primary")
	cmd.Flags().DurationVarP(&duration, "duration", "d", toast.DefaultDuration, "Auto-dismiss delay; 0 disables it")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Omit the progress bar")
	cmd.Flags().BoolVar(&noClick, "no-click", false, "Disable click-to-dismiss")
	cmd.Flags().DurationVar(&clickAt, "click-at", 0, "Click the toast body at this offset")
	cmd.Flags().DurationVar(&closeAt, "close-at", 0, "Click the close button at this offset")
	cmd.Flags().BoolVar(&patches, "patches", false, "Include document patches")
	cmd.Flags().BoolVar(&ignoreStop, "ignore-stop-propagation", false, "Let clicks on the close button reach the toast body")

	return cmd
}
