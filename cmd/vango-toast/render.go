package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-toast/pkg/dom"
	"github.com/vango-dev/vango-toast/pkg/render"
	"github.com/vango-dev/vango-toast/pkg/schedule"
	"github.com/vango-dev/vango-toast/pkg/toast"
)

func renderCmd() *cobra.Command {
	var (
		severity   string
		duration   time.Duration
		noProgress bool
		noClick    bool
		entered    bool
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "render <message>",
		Short: "Print the markup of one toast",
		Long: `Mount one toast on an empty document and print its HTML.

Examples:
  vango-toast render "Saved" --severity=success
  vango-toast render "Disk full" --severity=error --duration=0 --pretty
  vango-toast render "Welcome" --entered`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := schedule.NewFake()
			doc := dom.NewDocument()
			reg := toast.New(doc, clock)

			h := reg.Show(args[0], toast.Severity(severity),
				toast.WithDuration(duration),
				toast.WithProgress(!noProgress),
				toast.WithClickToDismiss(!noClick),
			)
			if entered {
				clock.Advance(reg.Config().EntryDelay)
			}

			html, err := doc.RenderNode(h.Element(), render.RendererConfig{Pretty: pretty, OmitHIDs: true})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().StringVarP(&severity, "severity", "s", string(toast.SeverityInfo), "success, error, warning, info or primary")
	cmd.Flags().DurationVarP(&duration, "duration", "d", toast.DefaultDuration, "Auto-dismiss delay; 0 disables it")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Omit the progress bar")
	cmd.Flags().BoolVar(&noClick, "no-click", false, "Disable click-to-dismiss")
	cmd.Flags().BoolVar(&entered, "entered", false, "Render after the entry animation started")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")

	return cmd
}
