package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cheby-go/cheby"
	"github.com/cheby-go/cheby/hdl"
)

const defaultWritePermission = 0644 // -rw-r--r--

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chebygen",
		Short: "Generate HDL and Edge3 driver tables from a register-map fixture",
	}
	root.AddCommand(newHDLCmd(), newEdge3Cmd(), newAllCmd())
	return root
}

func newHDLCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "hdl",
		Short: "Load a fixture and print its HDL AST as pseudo-RTL text",
		Run: func(cmd *cobra.Command, args []string) {
			tree := loadFixture(in)
			m, err := cheby.Generate(tree, cheby.NewConfig())
			if err != nil {
				log.Fatalf("generating hdl: %s", err)
			}
			w := &fileOrStdout{}
			if err := hdl.Print(m, w); err != nil {
				log.Fatalf("printing hdl: %s", err)
			}
			writeOutput(out, w.Bytes())
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "path to the fixture YAML file")
	cmd.Flags().StringVar(&out, "out", "/dev/stdout", "path to the output file")
	cmd.MarkFlagRequired("in")
	return cmd
}

func newEdge3Cmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "edge3",
		Short: "Load a fixture and write its Edge3 CSV driver tables",
		Run: func(cmd *cobra.Command, args []string) {
			tree := loadFixture(in)
			data, err := cheby.GenerateEdge3(tree, cheby.NewConfig())
			if err != nil {
				log.Fatalf("generating edge3: %s", err)
			}
			writeOutput(out, data)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "path to the fixture YAML file")
	cmd.Flags().StringVar(&out, "out", "/dev/stdout", "path to the output file")
	cmd.MarkFlagRequired("in")
	return cmd
}

func newAllCmd() *cobra.Command {
	var in, hdlOut, edge3Out string
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Load a fixture once and write both HDL and Edge3 output",
		Run: func(cmd *cobra.Command, args []string) {
			tree := loadFixture(in)

			m, err := cheby.Generate(tree, cheby.NewConfig())
			if err != nil {
				log.Fatalf("generating hdl: %s", err)
			}
			w := &fileOrStdout{}
			if err := hdl.Print(m, w); err != nil {
				log.Fatalf("printing hdl: %s", err)
			}
			writeOutput(hdlOut, w.Bytes())

			data, err := cheby.GenerateEdge3(tree, cheby.NewConfig())
			if err != nil {
				log.Fatalf("generating edge3: %s", err)
			}
			writeOutput(edge3Out, data)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "path to the fixture YAML file")
	cmd.Flags().StringVar(&hdlOut, "hdl-out", "", "path to the HDL output file")
	cmd.Flags().StringVar(&edge3Out, "edge3-out", "", "path to the Edge3 CSV output file")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("hdl-out")
	cmd.MarkFlagRequired("edge3-out")
	return cmd
}

func loadFixture(path string) *cheby.RootNode {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("can't open fixture: %s", err)
	}
	defer f.Close()
	tree, err := cheby.LoadTree(f)
	if err != nil {
		log.Fatalf("can't load fixture: %s", err)
	}
	return tree
}

func writeOutput(path string, data []byte) {
	if err := os.WriteFile(path, data, defaultWritePermission); err != nil {
		log.Fatalf("can't write output: %s", err)
	}
}

// fileOrStdout buffers a printer's output in memory; writeOutput then
// decides where it lands (a real file, or /dev/stdout by default).
type fileOrStdout struct {
	buf []byte
}

func (w *fileOrStdout) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *fileOrStdout) Bytes() []byte { return w.buf }
