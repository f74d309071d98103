package busgen

import "fmt"

// UnsupportedBusError is returned by NameToBusGen for a bus name it
// does not recognize.
type UnsupportedBusError struct {
	Bus string
}

func (e UnsupportedBusError) Error() string {
	return fmt.Sprintf("unsupported bus %q", e.Bus)
}

// UnsupportedSlaveError is returned by GenBusSlave for a protocol
// whose slave side this package does not implement (sram is
// slave-only and never fails GenBusSlave; cern-be-vme's slave side is
// simply not implemented, per spec §4.2).
type UnsupportedSlaveError struct {
	Bus    string
	Detail string
}

func (e UnsupportedSlaveError) Error() string {
	return fmt.Sprintf("unsupported feature: %s sub-map slave (%s)", e.Bus, e.Detail)
}
