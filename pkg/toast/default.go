package toast

import (
	"sync"

	"github.com/vango-dev/vango-toast/pkg/dom"
	"github.com/vango-dev/vango-toast/pkg/schedule"
)

var (
	defaultMu  sync.Mutex
	defaultReg *Registry
)

// Default returns the process-wide registry, creating it on first use over
// a fresh dom.Document and a started schedule.Loop.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReg == nil {
		loop := schedule.NewLoop()
		loop.Start()
		defaultReg = New(dom.NewDocument(), loop)
	}
	return defaultReg
}

// SetDefault replaces the process-wide registry. Hosts that own a document,
// such as the live preview, install their registry here.
func SetDefault(r *Registry) {
	defaultMu.Lock()
	defaultReg = r
	defaultMu.Unlock()
}

// Show displays a toast on the default registry.
//
//	toast.Show("Saved successfully", toast.SeveritySuccess, toast.WithDuration(3*time.Second))
func Show(message string, severity Severity, opts ...Option) *Handle {
	return Default().Show(message, severity, opts...)
}

// Remove dismisses a toast shown on the default registry.
func Remove(h *Handle) bool {
	return Default().Remove(h)
}

// Success shows a success toast.
//
//	toast.Success("Changes saved!")
func Success(message string, opts ...Option) *Handle {
	return Show(message, SeveritySuccess, opts...)
}

// Error shows an error toast.
//
//	toast.Error("Failed to delete item")
func Error(message string, opts ...Option) *Handle {
	return Show(message, SeverityError, opts...)
}

// Warning shows a warning toast.
func Warning(message string, opts ...Option) *Handle {
	return Show(message, SeverityWarning, opts...)
}

// Info shows an info toast.
func Info(message string, opts ...Option) *Handle {
	return Show(message, SeverityInfo, opts...)
}

// Primary shows a primary toast.
func Primary(message string, opts ...Option) *Handle {
	return Show(message, SeverityPrimary, opts...)
}
