package toast

import (
	"strconv"
	"time"

	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// Inline styles of a freshly mounted toast, before the entry animation.
var initialStyles = []string{
	"opacity", "0",
	"transform", "translateY(-20px)",
	"transition", "all 0.4s cubic-bezier(0.68, -0.55, 0.265, 1.55)",
	"max-height", "0",
	"overflow", "hidden",
}

var entryStyles = []string{
	"opacity", "1",
	"transform", "translateY(0)",
	"max-height", "200px",
}

var exitStyles = []string{
	"opacity", "0",
	"transform", "translateY(-20px) scale(0.95)",
	"max-height", "0",
	"margin-bottom", "0",
	"pointer-events", "none",
}

// build creates the element tree for h and wires the close button and
// click-to-dismiss handlers back into the registry.
func (r *Registry) build(h *Handle) {
	theme := h.Theme()

	closeButton := vdom.Button(
		vdom.Type("button"),
		vdom.Class("btn-close", "toast-close"),
		vdom.AriaLabel("Close"),
		vdom.Styles("font-size", "0.7rem", "padding", "0.5rem"),
		vdom.OnClick(vdom.PreventDefault(vdom.StopPropagation(func() {
			r.dismiss(h, TriggerClose)
		}))),
	)

	var progress *vdom.VNode
	if h.options.Progress && h.options.AutoDismiss() {
		h.progress = vdom.Div(
			vdom.Class("progress-bar", "progress-animation"),
			vdom.Data("duration", strconv.FormatInt(h.options.Duration.Milliseconds(), 10)),
			vdom.Styles(
				"background", theme.Gradient,
				"width", "100%",
				"height", "100%",
				"border-radius", "2px",
			),
		)
		progress = vdom.Div(
			vdom.Class("progress", "mt-3"),
			vdom.Styles(
				"height", "3px",
				"border-radius", "2px",
				"background", "rgba(0,0,0,0.1)",
				"overflow", "hidden",
			),
			h.progress,
		)
	}

	content := vdom.Div(
		vdom.Class("toast-content", "glass-card", "p-3", "d-flex", "align-items-start"),
		vdom.Styles(
			"background", "rgba(255, 255, 255, 0.98)",
			"backdrop-filter", "blur(10px)",
			"border", "1px solid rgba(255, 255, 255, 0.3)",
			"border-radius", "12px",
			"box-shadow", "0 8px 32px rgba(0, 0, 0, 0.15)",
			"pointer-events", "auto",
			"border-left", "4px solid "+theme.Border,
		),
		vdom.Div(
			vdom.Class("icon-wrapper", "me-3"),
			vdom.Styles(
				"width", "40px",
				"height", "40px",
				"border-radius", "50%",
				"background", theme.Gradient,
				"display", "flex",
				"align-items", "center",
				"justify-content", "center",
				"flex-shrink", "0",
			),
			vdom.I(vdom.Class(theme.Icon, "fs-5", "text-white"), vdom.AriaHidden(true)),
		),
		vdom.Div(
			vdom.Class("flex-grow-1"),
			vdom.Div(
				vdom.Class("d-flex", "justify-content-between", "align-items-start", "mb-2"),
				vdom.H6(
					vdom.Class("toast-title", "mb-0", "fw-bold", theme.TextClass),
					vdom.Styles(
						"background", theme.Gradient,
						"-webkit-background-clip", "text",
						"-webkit-text-fill-color", "transparent",
						"background-clip", "text",
					),
					vdom.Text(h.severity.Title()),
				),
				closeButton,
			),
			vdom.P(
				vdom.Class("toast-message", "mb-0", "text-dark", "opacity-90"),
				vdom.Styles("font-size", "0.9rem"),
				vdom.Text(h.message),
			),
			progress,
		),
	)

	h.element = vdom.Div(
		vdom.Class("toast-notification"),
		vdom.Data("toast-id", h.id),
		vdom.Data("severity", string(h.severity)),
		vdom.Role("status"),
		vdom.AriaLive("polite"),
		vdom.Styles(initialStyles...),
		content,
	)
	if h.options.ClickToDismiss {
		h.element.Props["onclick"] = func() {
			r.dismiss(h, TriggerClick)
		}
	}
}

// containerStyles position the mounting surface.
var containerStyles = []string{
	"position", "fixed",
	"top", "20px",
	"right", "20px",
	"z-index", "9999",
	"display", "flex",
	"flex-direction", "column",
	"gap", "12px",
	"max-width", "400px",
	"width", "100%",
	"pointer-events", "none",
}

// StylesheetID is the id of the animation stylesheet added to <head>.
const StylesheetID = "toast-styles"

const stylesheet = `
.toast-notification {
    animation: toastSlideIn 0.4s cubic-bezier(0.68, -0.55, 0.265, 1.55) forwards;
}
@keyframes toastSlideIn {
    from { opacity: 0; transform: translateY(-20px) scale(0.95); }
    to { opacity: 1; transform: translateY(0) scale(1); }
}
.toast-notification.exit {
    animation: toastSlideOut 0.3s ease forwards;
}
@keyframes toastSlideOut {
    to { opacity: 0; transform: translateY(-20px) scale(0.95); max-height: 0; margin-bottom: 0; }
}
.toast-content:hover {
    transform: translateY(-2px) !important;
    box-shadow: 0 12px 40px rgba(0, 0, 0, 0.2) !important;
    transition: all 0.3s ease !important;
}
.toast-close {
    transition: all 0.2s ease;
}
.toast-close:hover {
    opacity: 0.8 !important;
    transform: scale(1.1) !important;
}
`

func formatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
