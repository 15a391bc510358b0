package vdom

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText    PatchOp = 0x01 // Update text content
	PatchSetAttr    PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr PatchOp = 0x03 // Remove attribute
	PatchInsertNode PatchOp = 0x04 // Insert new node
	PatchRemoveNode PatchOp = 0x05 // Remove node
	PatchSetStyle   PatchOp = 0x06 // Set a single inline style property
	PatchAddClass   PatchOp = 0x07 // Add a class to the class list
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchSetStyle:
		return "SetStyle"
	case PatchAddClass:
		return "AddClass"
	default:
		return "Unknown"
	}
}

// Patch represents a single DOM operation to apply.
type Patch struct {
	Op       PatchOp // Operation type
	HID      string  // Target element's hydration ID
	Key      string  // Attribute or style property (for SetAttr/SetStyle)
	Value    string  // New value
	Node     *VNode  // For InsertNode
	Index    int     // Insert position
	ParentID string  // Parent for InsertNode
}
