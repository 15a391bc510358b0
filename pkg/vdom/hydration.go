package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs for mounted elements.
type HIDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Current returns the current counter value without incrementing.
func (g *HIDGenerator) Current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// AssignAllHIDs assigns HIDs to every element node that does not have one.
// Elements keep their HID for as long as they live, so a detached and
// re-attached element stays addressable by the same ID.
func AssignAllHIDs(node *VNode, gen *HIDGenerator) {
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindElement && n.HID == "" {
			n.HID = gen.Next()
		}
		return true
	})
}

// CollectHIDs returns a map of HID to VNode for all nodes with HIDs.
func CollectHIDs(node *VNode) map[string]*VNode {
	out := make(map[string]*VNode)
	Walk(node, func(n *VNode) bool {
		if n.HID != "" {
			out[n.HID] = n
		}
		return true
	})
	return out
}
