package cheby

import "fmt"

// UnsupportedBusError names a bus protocol that is not recognized.
// Generate does not return this type: an unknown bus name on a Root
// or Submap reaches callers as busgen.UnsupportedBusError from
// busgen.NameToBusGen.
type UnsupportedBusError struct {
	Bus string
}

func (e UnsupportedBusError) Error() string {
	return fmt.Sprintf("unsupported bus %q", e.Bus)
}

// UnhandledNodeError is thrown when the tree contains a Node
// implementation none of the core's type switches recognize. This
// should be unreachable for trees built by LoadTree, and indicates a
// programming error rather than malformed input.
type UnhandledNodeError struct {
	Node Node
}

func (e UnhandledNodeError) Error() string {
	return fmt.Sprintf("unhandled node type %T", e.Node)
}

// InvariantViolationError is thrown when an address/size alignment or
// power-of-two assumption the layout pass is supposed to guarantee
// (§3.1) does not hold.
type InvariantViolationError struct {
	Node    Node
	Message string
}

func (e InvariantViolationError) Error() string {
	name := ""
	if e.Node != nil {
		name = e.Node.NodeName()
	}
	return fmt.Sprintf("invariant violated at %q: %s", name, e.Message)
}

// UnsupportedFeatureError is thrown for a feature that is
// syntactically present in the tree but not implemented by this
// generator: a bus-connected Submap with no slave wiring attached, an
// unknown interrupt-controller type, or an unknown register role. A
// CERN-BE-VME sub-map fails earlier, with busgen.UnsupportedSlaveError.
type UnsupportedFeatureError struct {
	Feature string
	Detail  string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unsupported feature: %s", e.Feature)
	}
	return fmt.Sprintf("unsupported feature: %s (%s)", e.Feature, e.Detail)
}
