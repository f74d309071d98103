package edge3

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Write_PadsColumnsToWidestCell(t *testing.T) {
	tbl := NewTable("#Block table definition", "name", "offset", "description")
	tbl.Append(Row{"name": "ctrl", "offset": "0x0", "description": "control register"})
	tbl.Append(Row{"name": "status", "offset": "0x4", "description": ""})

	var buf bytes.Buffer
	tbl.Write(&buf)
	out := buf.String()

	assert.Contains(t, out, "#Block table definition\n")
	// "offset" (6 chars) sets the column width; both rows' offset
	// cells right-pad to it.
	assert.Contains(t, out, "   ctrl,    0x0, control register\n")
	// status's description is empty, so the row ends right after the
	// comma with no trailing space.
	assert.Contains(t, out, " status,    0x4,\n")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n\n")), "expected a trailing blank line")
}

func TestTable_Write_EmptyDescriptionProducesNoTrailingCharacter(t *testing.T) {
	tbl := NewTable("#Roles table definition", "reg_role", "reg_name")
	tbl.Append(Row{"reg_role": "IRQ_V", "reg_name": "irq"})

	var buf bytes.Buffer
	tbl.Write(&buf)
	lines := bytes.Split(buf.Bytes(), []byte("\n"))
	// comment, header, one row, trailing blank, trailing split artifact
	assert.Equal(t, " reg_role, reg_name", string(lines[1]))
}

func TestTable_WriteIfNeeded_SkipsEmptyTable(t *testing.T) {
	tbl := NewTable("#Intc table definition", "intc_name")
	var buf bytes.Buffer
	tbl.WriteIfNeeded(&buf)
	assert.Empty(t, buf.Bytes())
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"single line", "single line"},
		{"first line\nsecond line", "first line"},
		{"has, a comma", "has  a comma"},
		{"line with cr\r\nsecond", "line with cr"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanString(tt.in))
	}
}
