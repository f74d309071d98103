package cheby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheby-go/cheby/busgen"
	"github.com/cheby-go/cheby/hdl"
)

func TestBitsFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1}, {1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bitsFor(tt.n), "n=%d", tt.n)
	}
}

func TestMaterializeField_ReadWriteWirePorts(t *testing.T) {
	m := hdl.NewModule("top")
	sigs := sigTable{}
	reg := &RegNode{Name: "ctrl", Access: AccessRW}
	f := &FieldNode{Name: "enable", Lo: 0, Hi: 0, HDLType: HDLTypeWire}

	materializeField(reg, f, m, "", sigs)

	ns := sigs.get(f)
	assert.Equal(t, "ctrl_enable_i", ns.PortIn)
	assert.Equal(t, "ctrl_enable_o", ns.PortOut)
	require.Len(t, m.Ports, 2)
	assert.Equal(t, hdl.In, m.Ports[0].Dir)
	assert.Equal(t, hdl.Out, m.Ports[1].Dir)
}

func TestMaterializeField_RegTypeAddsDecl(t *testing.T) {
	m := hdl.NewModule("top")
	sigs := sigTable{}
	reg := &RegNode{Name: "ctrl", Access: AccessRW}
	f := &FieldNode{Name: "mode", Lo: 0, Hi: 3, HDLType: HDLTypeReg}

	materializeField(reg, f, m, "", sigs)

	ns := sigs.get(f)
	assert.Equal(t, "ctrl_mode_reg", ns.RegSig)
	require.Len(t, m.Decls, 1)
	assert.Equal(t, hdl.Reg, m.Decls[0].Kind)
	assert.Equal(t, 4, m.Decls[0].Width)
}

func TestMaterializeField_WriteStrobeAddsPort(t *testing.T) {
	m := hdl.NewModule("top")
	sigs := sigTable{}
	reg := &RegNode{Name: "ctrl", Access: AccessWO}
	f := &FieldNode{Name: "trigger", Lo: 0, Hi: 0, HDLWriteStrobe: true}

	materializeField(reg, f, m, "", sigs)

	ns := sigs.get(f)
	assert.Equal(t, "ctrl_trigger_wr", ns.PortWr)
}

func TestMaterializeField_ReadOnlyRegisterHasNoOutputPort(t *testing.T) {
	m := hdl.NewModule("top")
	sigs := sigTable{}
	reg := &RegNode{Name: "status", Access: AccessRO}
	f := &FieldNode{Name: "busy", Lo: 0, Hi: 0, HDLType: HDLTypeWire}

	materializeField(reg, f, m, "", sigs)

	ns := sigs.get(f)
	assert.Equal(t, "status_busy_i", ns.PortIn)
	assert.Empty(t, ns.PortOut)
	assert.Len(t, m.Ports, 1)
}

func TestMaterializeRAM_ReadWriteRegisterHasNoUserFacingWritePort(t *testing.T) {
	m := hdl.NewModule("top")
	sigs := sigTable{}
	rep := &RepeatNode{
		Name: "mem", Count: 16, CElSize: 4,
		Child: &RegNode{Name: "mem", Access: AccessRW, CSize: 4},
	}

	err := materializeRAM(rep, m, busgen.RootInfo{}, "", sigs)
	require.NoError(t, err)

	ns := sigs.get(rep)
	assert.Equal(t, "mem_adr", ns.RAMAdr)
	assert.Equal(t, "mem_dat", ns.RAMDat)
	assert.Equal(t, "mem_rd", ns.RAMRd)
	assert.Len(t, m.Ports, 3)
	for _, p := range m.Ports {
		assert.NotEqual(t, "mem_we", p.Name)
	}
}

func TestMaterializeRAM_NonRegChildIsInvariantViolation(t *testing.T) {
	m := hdl.NewModule("top")
	sigs := sigTable{}
	rep := &RepeatNode{Name: "blk", Count: 4, CElSize: 16, Child: &BlockNode{Name: "blk"}}

	err := materializeRAM(rep, m, busgen.RootInfo{}, "", sigs)
	require.Error(t, err)
	var viol InvariantViolationError
	require.ErrorAs(t, err, &viol)
}

func TestMaterializePorts_WalksNestedBlocksAndRepeats(t *testing.T) {
	root := &RootNode{
		Name: "M",
		Children: []Node{
			&BlockNode{
				Name: "grp",
				Children: []Node{
					&RegNode{
						Name: "ctrl", Access: AccessRW,
						Fields: []*FieldNode{{Name: "en", Lo: 0, Hi: 0, HDLType: HDLTypeWire}},
					},
				},
			},
			&RepeatNode{
				Name: "slots", Count: 4, CElSize: 4,
				Child: &RegNode{Name: "slots", Access: AccessRW, CSize: 4},
			},
		},
	}
	m := hdl.NewModule("top")
	sigs := sigTable{}
	err := materializePorts(root, m, busgen.RootInfo{}, &busgen.Signals{}, sigs)
	require.NoError(t, err)

	var names []string
	for _, p := range m.Ports {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "grp_ctrl_en_i")
	assert.Contains(t, names, "grp_ctrl_en_o")
	assert.Contains(t, names, "slots_adr")
}

func TestMaterializePorts_IncludedSubmapInlinesChildren(t *testing.T) {
	root := &RootNode{
		Name: "M",
		Children: []Node{
			&SubmapNode{
				Name:      "inc",
				Interface: "include",
				Root: &RootNode{
					Children: []Node{
						&RegNode{
							Name: "r", Access: AccessRW,
							Fields: []*FieldNode{{Name: "f", Lo: 0, Hi: 0, HDLType: HDLTypeWire}},
						},
					},
				},
			},
		},
	}
	m := hdl.NewModule("top")
	sigs := sigTable{}
	err := materializePorts(root, m, busgen.RootInfo{}, &busgen.Signals{}, sigs)
	require.NoError(t, err)

	var names []string
	for _, p := range m.Ports {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "r_f_i")
}
