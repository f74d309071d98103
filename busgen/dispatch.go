package busgen

import "strings"

// NameToBusGen is the single string-dispatch boundary mapping a bus
// name from the source tree to the strategy that implements it.
// Everything downstream of this call reaches a protocol only through
// the BusGen capability, never by re-switching on the name.
func NameToBusGen(name string) (BusGen, error) {
	switch name {
	case "wb-32-be":
		return NewWishbone(), nil
	case "axi4-lite-32":
		return NewAXI4Lite(), nil
	case "sram":
		return NewSRAM(), nil
	}

	if rest, ok := strings.CutPrefix(name, "cern-be-vme"); ok {
		buserr, split := false, false
		for rest != "" {
			switch {
			case strings.HasPrefix(rest, "-err"):
				buserr = true
				rest = rest[len("-err"):]
			case strings.HasPrefix(rest, "-split"):
				split = true
				rest = rest[len("-split"):]
			default:
				return nil, UnsupportedBusError{Bus: name}
			}
		}
		return NewCernBEVME(buserr, split), nil
	}

	return nil, UnsupportedBusError{Bus: name}
}
