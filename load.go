package cheby

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlNode mirrors §3.1's field names directly; `type` picks which
// concrete Node it decodes into. This is a convenience fixture format
// for tests and the CLI, not a front end: it performs no invariant
// checking, matching §4.6 (the layout pass that would normally
// compute c_address/c_size/etc. is assumed to have already run over
// whatever produced this YAML).
type yamlNode struct {
	Type        string      `yaml:"type"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	CAddress    int         `yaml:"c_address"`
	CSize       int         `yaml:"c_size"`
	CBlkBits    int         `yaml:"c_blk_bits"`
	CDepth      int         `yaml:"c_depth"`
	CElSize     int         `yaml:"c_elsize"`
	Count       int         `yaml:"count"`
	Access      string      `yaml:"access"`
	Bus         string      `yaml:"bus"`
	Interface   string      `yaml:"interface"`
	Filename    string      `yaml:"filename"`
	Lo          int         `yaml:"lo"`
	Hi          int         `yaml:"hi"`
	HDLType     string      `yaml:"hdl_type"`
	WriteStrobe bool        `yaml:"hdl_write_strobe"`
	CIOWidth    int         `yaml:"c_io_width"`
	CRWidth     int         `yaml:"c_rwidth"`
	CName       string      `yaml:"c_name"`
	Preset      *int        `yaml:"preset"`
	CWordBits   int         `yaml:"c_word_bits"`
	CWordSize   int         `yaml:"c_word_size"`
	CAddrBits   int         `yaml:"c_addr_bits"`
	CAddrWBits  int         `yaml:"c_addr_word_bits"`
	CSelBits    int         `yaml:"c_sel_bits"`
	Extensions  yaml.Node   `yaml:"extensions"`
	Children    []yamlNode  `yaml:"children"`
	Child       *yamlNode   `yaml:"child"`
	Inner       *yamlNode   `yaml:"inner"`
	Root        *yamlNode   `yaml:"root"`
	Fields      []yamlNode  `yaml:"fields"`
}

// LoadTree decodes a YAML fixture document into a *RootNode, per
// §4.6. It performs no validation beyond what decoding a well-typed
// tree requires; a malformed document surfaces as a plain decode
// error, not one of the taxonomy errors in errors.go.
func LoadTree(r io.Reader) (*RootNode, error) {
	var doc yamlNode
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}
	n, err := buildNode(&doc)
	if err != nil {
		return nil, err
	}
	root, ok := n.(*RootNode)
	if !ok {
		return nil, fmt.Errorf("fixture root has type %q, want \"root\"", doc.Type)
	}
	return root, nil
}

func buildNode(y *yamlNode) (Node, error) {
	ext, err := decodeExtensions(&y.Extensions)
	if err != nil {
		return nil, err
	}

	switch y.Type {
	case "root":
		children, err := buildChildren(y.Children)
		if err != nil {
			return nil, err
		}
		return &RootNode{
			Name:          y.Name,
			Description:   y.Description,
			Bus:           y.Bus,
			CWordBits:     y.CWordBits,
			CWordSize:     y.CWordSize,
			CAddrBits:     y.CAddrBits,
			CAddrWordBits: y.CAddrWBits,
			CSelBits:      y.CSelBits,
			CBlkBits:      y.CBlkBits,
			Children:      children,
			Extensions:    ext,
		}, nil

	case "block":
		children, err := buildChildren(y.Children)
		if err != nil {
			return nil, err
		}
		return &BlockNode{
			Name:        y.Name,
			Description: y.Description,
			CAddress:    y.CAddress,
			CBlkBits:    y.CBlkBits,
			Children:    children,
			Extensions:  ext,
		}, nil

	case "submap":
		var sub *RootNode
		if y.Root != nil {
			n, err := buildNode(y.Root)
			if err != nil {
				return nil, err
			}
			r, ok := n.(*RootNode)
			if !ok {
				return nil, fmt.Errorf("submap %q: root has type %q, want \"root\"", y.Name, y.Root.Type)
			}
			sub = r
		}
		return &SubmapNode{
			Name:        y.Name,
			Description: y.Description,
			CAddress:    y.CAddress,
			CBlkBits:    y.CBlkBits,
			Filename:    y.Filename,
			Interface:   y.Interface,
			Root:        sub,
			Extensions:  ext,
		}, nil

	case "repeat":
		if y.Child == nil {
			return nil, fmt.Errorf("repeat %q: missing child", y.Name)
		}
		child, err := buildNode(y.Child)
		if err != nil {
			return nil, err
		}
		return &RepeatNode{
			Name:        y.Name,
			Description: y.Description,
			CAddress:    y.CAddress,
			Count:       y.Count,
			CElSize:     y.CElSize,
			Child:       child,
			Extensions:  ext,
		}, nil

	case "memory":
		if y.Inner == nil {
			return nil, fmt.Errorf("memory %q: missing inner reg", y.Name)
		}
		n, err := buildNode(y.Inner)
		if err != nil {
			return nil, err
		}
		reg, ok := n.(*RegNode)
		if !ok {
			return nil, fmt.Errorf("memory %q: inner has type %q, want \"reg\"", y.Name, y.Inner.Type)
		}
		return &MemoryNode{
			Name:        y.Name,
			Description: y.Description,
			CAddress:    y.CAddress,
			CDepth:      y.CDepth,
			Inner:       reg,
			Extensions:  ext,
		}, nil

	case "reg":
		fields := make([]*FieldNode, len(y.Fields))
		for i := range y.Fields {
			n, err := buildNode(&y.Fields[i])
			if err != nil {
				return nil, err
			}
			f, ok := n.(*FieldNode)
			if !ok {
				return nil, fmt.Errorf("reg %q: child has type %q, want \"field\"", y.Name, y.Fields[i].Type)
			}
			fields[i] = f
		}
		return &RegNode{
			Name:        y.Name,
			Description: y.Description,
			Access:      Access(y.Access),
			CAddress:    y.CAddress,
			CSize:       y.CSize,
			Fields:      fields,
			Extensions:  ext,
		}, nil

	case "field":
		hdlType := HDLType(y.HDLType)
		if hdlType == "" {
			hdlType = HDLTypeWire
		}
		return &FieldNode{
			Name:           y.Name,
			Description:    y.Description,
			Lo:             y.Lo,
			Hi:             y.Hi,
			HDLType:        hdlType,
			Preset:         y.Preset,
			HDLWriteStrobe: y.WriteStrobe,
			CIOWidth:       y.CIOWidth,
			CRWidth:        y.CRWidth,
			CName:          y.CName,
			Extensions:     ext,
		}, nil

	default:
		return nil, fmt.Errorf("unknown node type %q", y.Type)
	}
}

func buildChildren(ys []yamlNode) ([]Node, error) {
	out := make([]Node, len(ys))
	for i := range ys {
		n, err := buildNode(&ys[i])
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// decodeExtensions turns the fixture's free-form `extensions` mapping
// into an Extensions value, preserving the scalar/list/map shape each
// key carries.
func decodeExtensions(n *yaml.Node) (Extensions, error) {
	ext := Extensions{}
	if n == nil || n.Kind == 0 {
		return ext, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("extensions: expected a mapping, got kind %d", n.Kind)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v, err := decodeExtValue(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("extensions.%s: %w", key, err)
		}
		ext[key] = v
	}
	return ext, nil
}

func decodeExtValue(n *yaml.Node) (ExtValue, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return ExtValue{}, err
			}
			return BoolExt(b), nil
		case "!!int":
			var i int
			if err := n.Decode(&i); err != nil {
				return ExtValue{}, err
			}
			return IntExt(i), nil
		default:
			var s string
			if err := n.Decode(&s); err != nil {
				return ExtValue{}, err
			}
			return StringExt(s), nil
		}
	case yaml.SequenceNode:
		out := make([]ExtValue, len(n.Content))
		for i, c := range n.Content {
			v, err := decodeExtValue(c)
			if err != nil {
				return ExtValue{}, err
			}
			out[i] = v
		}
		return ListExt(out), nil
	case yaml.MappingNode:
		out := map[string]ExtValue{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := decodeExtValue(n.Content[i+1])
			if err != nil {
				return ExtValue{}, err
			}
			out[n.Content[i].Value] = v
		}
		return MapExt(out), nil
	default:
		return ExtValue{}, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}
