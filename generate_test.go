package cheby

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheby-go/cheby/busgen"
	"github.com/cheby-go/cheby/hdl"
)

func wbRoot() *RootNode {
	return &RootNode{
		Name:          "wbmap",
		Bus:           "wb-32-be",
		CWordBits:     32,
		CWordSize:     4,
		CAddrBits:     8,
		CAddrWordBits: 6,
		Children: []Node{
			&RegNode{
				Name: "ctrl", Access: AccessRW, CAddress: 0, CSize: 4,
				Fields: []*FieldNode{
					{Name: "enable", Lo: 0, Hi: 0, HDLType: HDLTypeReg},
				},
			},
			&RegNode{
				Name: "status", Access: AccessRO, CAddress: 4, CSize: 4,
				Fields: []*FieldNode{
					{Name: "busy", Lo: 0, Hi: 0, HDLType: HDLTypeWire},
				},
			},
		},
	}
}

func portNames(m *hdl.Module) []string {
	var names []string
	for _, p := range m.Ports {
		names = append(names, p.Name)
	}
	return names
}

func declNames(m *hdl.Module) []string {
	var names []string
	for _, d := range m.Decls {
		names = append(names, d.Name)
	}
	return names
}

func TestGenerate_WishboneTopLevelRegisters(t *testing.T) {
	m, err := Generate(wbRoot(), nil)
	require.NoError(t, err)

	assert.Equal(t, "wbmap", m.Name)
	names := portNames(m)
	assert.Contains(t, names, "wb_adr_i")
	assert.Contains(t, names, "wb_ack_o")
	assert.Contains(t, names, "status_busy_i")

	decls := declNames(m)
	assert.Contains(t, decls, "ctrl_enable_reg")
	assert.Contains(t, decls, "reg_rdat_int")
	assert.Contains(t, decls, "rd_ack1_int")

	// three processes: write (sync), read latch (sync), read mux (comb)
	var syncCount, combCount int
	for _, s := range m.Statements {
		switch s.(type) {
		case *hdl.SyncProcess:
			syncCount++
		case *hdl.CombProcess:
			combCount++
		}
	}
	assert.Equal(t, 2, syncCount)
	assert.Equal(t, 1, combCount)
}

func TestGenerate_UnknownBusErrors(t *testing.T) {
	root := &RootNode{Name: "M", Bus: "not-a-real-bus"}
	_, err := Generate(root, nil)
	require.Error(t, err)
	var unsup busgen.UnsupportedBusError
	assert.ErrorAs(t, err, &unsup)
}

func TestGenerate_RAMBackedRepeatAddsDPRAMInstance(t *testing.T) {
	root := &RootNode{
		Name: "wbmap", Bus: "wb-32-be",
		CWordBits: 32, CWordSize: 4, CAddrBits: 12, CAddrWordBits: 10,
		Children: []Node{
			&RepeatNode{
				Name: "buf", CAddress: 0, Count: 16, CElSize: 4,
				Child: &RegNode{Name: "buf", Access: AccessRW, CSize: 4},
			},
		},
	}
	m, err := Generate(root, nil)
	require.NoError(t, err)

	var foundInstance bool
	for _, s := range m.Statements {
		if inst, ok := s.(*hdl.Instance); ok {
			assert.Equal(t, "generic_dpram", inst.ModuleName)
			foundInstance = true
		}
	}
	assert.True(t, foundInstance, "expected a generic_dpram instance")
	assert.Contains(t, portNames(m), "buf_adr")
	assert.Contains(t, portNames(m), "buf_dat")
}

func TestGenerate_ProducesPrintableOutput(t *testing.T) {
	m, err := Generate(wbRoot(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hdl.Print(m, &buf))
	assert.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "wbmap")
}

func TestGenerate_NilConfigUsesDefaults(t *testing.T) {
	m, err := Generate(wbRoot(), nil)
	require.NoError(t, err)
	assert.NotNil(t, m)
}
