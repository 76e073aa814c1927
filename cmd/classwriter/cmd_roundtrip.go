package main

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dhamidi/classwriter/classfile"
	"github.com/dhamidi/classwriter/classfile/attrwriter"
	"github.com/spf13/cobra"
)

func newRoundtripCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Parse a .class file, re-serialize its attributes, and report byte-identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := classfile.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}

			w := attrwriter.New()
			attrs := collectAttributes(cf)

			mismatches := 0
			for _, ai := range attrs {
				want := originalAttributeBytes(ai)
				got, err := w.WriteAttribute(attrwriter.FromAttributeInfo(ai, cf.ConstantPool))
				if err != nil {
					return fmt.Errorf("write %s: %w", cf.ConstantPool.GetUtf8(ai.NameIndex), err)
				}
				if !bytes.Equal(want, got) {
					mismatches++
					if verbose {
						fmt.Printf("MISMATCH %s: want % X, got % X\n", cf.ConstantPool.GetUtf8(ai.NameIndex), want, got)
					}
				}
			}

			fmt.Printf("%d attributes, %d mismatches\n", len(attrs), mismatches)
			if mismatches > 0 {
				return fmt.Errorf("roundtrip failed for %d attributes", mismatches)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "print each mismatching attribute")

	return cmd
}

// collectAttributes flattens every attribute JVMS §4.7 allows to be
// nested (inside Code and Record) alongside the class/field/method
// top-level ones, so roundtrip exercises the whole recursive writer.
func collectAttributes(cf *classfile.ClassFile) []classfile.AttributeInfo {
	var attrs []classfile.AttributeInfo
	attrs = append(attrs, cf.Attributes...)

	for i := range cf.Fields {
		attrs = append(attrs, cf.Fields[i].Attributes...)
	}
	for i := range cf.Methods {
		for _, a := range cf.Methods[i].Attributes {
			attrs = append(attrs, a)
			if code := a.AsCode(); code != nil {
				attrs = append(attrs, code.Attributes...)
			}
		}
	}
	for _, a := range cf.Attributes {
		if rec := a.AsRecord(); rec != nil {
			for _, c := range rec.Components {
				attrs = append(attrs, c.Attributes...)
			}
		}
	}

	return attrs
}

func originalAttributeBytes(ai classfile.AttributeInfo) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, ai.NameIndex)
	binary.Write(&buf, binary.BigEndian, uint32(len(ai.Info)))
	buf.Write(ai.Info)
	return buf.Bytes()
}
