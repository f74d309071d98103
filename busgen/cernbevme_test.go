package busgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheby-go/cheby/hdl"
)

func TestCernBEVME_ExpandBus_UnifiedAddressWhenNotSplit(t *testing.T) {
	m := hdl.NewModule("top")
	sig, err := NewCernBEVME(false, false).ExpandBus(RootInfo{WordBits: 32, AddrBits: 10}, m)
	require.NoError(t, err)
	assert.False(t, sig.BusSplit)
	assert.Equal(t, "vme_adr_i", sig.Adr)
	assert.Equal(t, sig.Adr, sig.AdrR)
	assert.Equal(t, sig.Adr, sig.AdrW)
}

func TestCernBEVME_ExpandBus_SplitAddressBuses(t *testing.T) {
	m := hdl.NewModule("top")
	sig, err := NewCernBEVME(false, true).ExpandBus(RootInfo{WordBits: 32, AddrBits: 10}, m)
	require.NoError(t, err)
	assert.True(t, sig.BusSplit)
	assert.Equal(t, "vme_adrr_i", sig.AdrR)
	assert.Equal(t, "vme_adrw_i", sig.AdrW)
}

func TestCernBEVME_ExpandBus_BusErrAddsErrorPorts(t *testing.T) {
	m := hdl.NewModule("top")
	_, err := NewCernBEVME(true, false).ExpandBus(RootInfo{WordBits: 32, AddrBits: 10}, m)
	require.NoError(t, err)

	var names []string
	for _, p := range m.Ports {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "vme_rderr_o")
	assert.Contains(t, names, "vme_wrerr_o")
}

func TestCernBEVME_ExpandBus_WithoutBusErrHasNoErrorPorts(t *testing.T) {
	m := hdl.NewModule("top")
	_, err := NewCernBEVME(false, false).ExpandBus(RootInfo{WordBits: 32, AddrBits: 10}, m)
	require.NoError(t, err)

	for _, p := range m.Ports {
		assert.NotEqual(t, "vme_rderr_o", p.Name)
		assert.NotEqual(t, "vme_wrerr_o", p.Name)
	}
}

func TestCernBEVME_GenBusSlave_NotImplemented(t *testing.T) {
	m := hdl.NewModule("top")
	_, err := NewCernBEVME(false, false).GenBusSlave(RootInfo{}, m, "sub", SubmapInfo{Name: "sub"})
	require.Error(t, err)
	var unsupported UnsupportedSlaveError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "cern-be-vme", unsupported.Bus)
}

func TestCernBEVME_WireBusSlave_PanicsBecauseUnreachable(t *testing.T) {
	assert.Panics(t, func() {
		NewCernBEVME(false, false).WireBusSlave(hdl.NewModule("top"), &SlavePorts{}, &Signals{})
	})
}
