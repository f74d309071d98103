package busgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheby-go/cheby/hdl"
)

func TestWishbone_ExpandBus(t *testing.T) {
	m := hdl.NewModule("top")
	sig, err := NewWishbone().ExpandBus(RootInfo{WordBits: 32, WordSize: 4, AddrBits: 10}, m)
	require.NoError(t, err)

	assert.False(t, sig.BusSplit)
	assert.Equal(t, "wb_adr_i", sig.Adr)
	assert.Equal(t, sig.Adr, sig.AdrR)
	assert.Equal(t, sig.Adr, sig.AdrW)
	assert.Equal(t, "rd_int", sig.RdInt)
	assert.Equal(t, "wr_int", sig.WrInt)

	var gotAck, gotStall bool
	for _, p := range m.Ports {
		if p.Name == "wb_ack_o" {
			gotAck = true
		}
		if p.Name == "wb_stall_o" {
			gotStall = true
		}
	}
	assert.True(t, gotAck, "expected a wb_ack_o port")
	assert.True(t, gotStall, "expected a wb_stall_o port")
}

func TestWishbone_GenBusSlave(t *testing.T) {
	m := hdl.NewModule("top")
	sp, err := NewWishbone().GenBusSlave(RootInfo{WordBits: 32, WordSize: 4}, m, "sub", SubmapInfo{BlkBits: 8})
	require.NoError(t, err)

	for _, logical := range []string{"cyc", "stb", "we", "sel", "adr", "dat_o", "dat_i", "ack", "stall"} {
		assert.Contains(t, sp.Names, logical)
		assert.Equal(t, "sub_"+logical, sp.Names[logical])
	}
	assert.Equal(t, 8, sp.AddrBits)
}

func TestWishbone_WriteBusSlave_PulsesAckOnce(t *testing.T) {
	sp := newSlavePorts("s", 8)
	sp.set("cyc", "s_cyc")
	sp.set("stb", "s_stb")
	sp.set("we", "s_we")
	sp.set("ack", "s_ack")
	sp.set("wrackdone", "s_wrackdone")

	isigs := &Signals{WrInt: "wr_int", RdInt: "rd_int"}
	proc := hdl.NewSyncProcess("clk_i", "rst_n_i")
	ack := NewWishbone().WriteBusSlave(proc, sp, isigs)

	require.NotNil(t, ack)
	assert.Len(t, proc.Body, 1)
}
