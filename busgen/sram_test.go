package busgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheby-go/cheby/hdl"
)

func TestSRAM_ExpandBus_NotValidAsTopLevelBus(t *testing.T) {
	m := hdl.NewModule("top")
	_, err := NewSRAM().ExpandBus(RootInfo{}, m)
	require.Error(t, err)
	var unsupported UnsupportedBusError
	require.ErrorAs(t, err, &unsupported)
}

func TestSRAM_GenBusSlave_PortNamesPrefixed(t *testing.T) {
	m := hdl.NewModule("top")
	sp, err := NewSRAM().GenBusSlave(RootInfo{WordBits: 32}, m, "mem", SubmapInfo{BlkBits: 8})
	require.NoError(t, err)

	assert.Equal(t, "mem_addr_o", sp.Names["addr"])
	assert.Equal(t, "mem_data_i", sp.Names["data_i"])
	assert.Equal(t, "mem_we_o", sp.Names["we"])
	assert.Equal(t, 8, sp.AddrBits)
}

func TestSRAM_WriteBusSlave_AlwaysAcksImmediately(t *testing.T) {
	m := hdl.NewModule("top")
	sram := NewSRAM()
	sp, err := sram.GenBusSlave(RootInfo{WordBits: 32}, m, "mem", SubmapInfo{BlkBits: 8})
	require.NoError(t, err)

	proc := hdl.NewSyncProcess("clk_i", "rst_n_i")
	ack := sram.WriteBusSlave(proc, sp, &Signals{WrInt: "wr_int"})
	require.NotNil(t, ack)
	c, ok := ack.(*hdl.Const)
	require.True(t, ok)
	assert.Equal(t, uint64(1), c.Value)
}

func TestSRAM_ReadBusSlave_AlwaysAcksImmediately(t *testing.T) {
	m := hdl.NewModule("top")
	sram := NewSRAM()
	sp, err := sram.GenBusSlave(RootInfo{WordBits: 32}, m, "mem", SubmapInfo{BlkBits: 8})
	require.NoError(t, err)

	proc := hdl.NewCombProcess()
	_, _, ack := sram.ReadBusSlave(proc, sp, &Signals{RdInt: "rd_int"})
	c, ok := ack.(*hdl.Const)
	require.True(t, ok)
	assert.Equal(t, uint64(1), c.Value)
}
