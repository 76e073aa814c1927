package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/dhamidi/classwriter/classfile"
	"github.com/dhamidi/classwriter/classfile/attrwriter"
	"github.com/dhamidi/classwriter/classfile/instruction"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var outPath string
	var className string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Construct a small synthetic class in memory and write it out",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := buildSyntheticClass(className)
			if err != nil {
				return fmt.Errorf("build class: %w", err)
			}

			if outPath == "" {
				_, err = os.Stdout.Write(data)
			} else {
				err = os.WriteFile(outPath, data, 0644)
			}
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes\n", len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().StringVarP(&className, "class", "c", "Generated", "binary name of the class to emit")

	return cmd
}

// buildSyntheticClass assembles a minimal but valid class file: a
// public class extending java/lang/Object with a no-arg run()V method
// whose body is just return, plus a SourceFile attribute. The constant
// pool and the field/method headers are assembled by hand the same way
// classfile/parse_test.go's fixture builders do; only the attribute
// bodies route through attrwriter, which is the part this module exists
// to demonstrate.
func buildSyntheticClass(className string) ([]byte, error) {
	var pool [][]byte
	add := func(entry []byte) uint16 {
		pool = append(pool, entry)
		return uint16(len(pool))
	}
	utf8 := func(s string) uint16 {
		return add(append([]byte{byte(classfile.ConstantUtf8)}, utf8Entry(s)...))
	}
	class := func(nameIdx uint16) uint16 {
		return add([]byte{byte(classfile.ConstantClass), byte(nameIdx >> 8), byte(nameIdx)})
	}

	thisNameIdx := utf8(className)
	superNameIdx := utf8("java/lang/Object")
	thisClassIdx := class(thisNameIdx)
	superClassIdx := class(superNameIdx)
	runNameIdx := utf8("run")
	runDescIdx := utf8("()V")
	sourceFileNameIdx := utf8("SourceFile")
	sourceFileValueIdx := utf8(className + ".java")
	codeNameIdx := utf8("Code")

	w := attrwriter.New()

	code := attrwriter.NewCode(attrwriter.Ref(codeNameIdx), 0, 1)
	code.Instructions = []instruction.Instruction{{Opcode: instruction.Return}}
	codeBytes, err := w.WriteAttribute(code)
	if err != nil {
		return nil, err
	}

	sourceFile := attrwriter.NewSourceFile(attrwriter.Ref(sourceFileNameIdx), attrwriter.Ref(sourceFileValueIdx))
	sourceFileBytes, err := w.WriteAttribute(sourceFile)
	if err != nil {
		return nil, err
	}

	var method bytes.Buffer
	writeU2(&method, uint16(classfile.AccPublic))
	writeU2(&method, runNameIdx)
	writeU2(&method, runDescIdx)
	writeU2(&method, 1) // attributes_count
	method.Write(codeBytes)

	var buf bytes.Buffer
	writeU4(&buf, classfile.Magic)
	writeU2(&buf, 0)  // minor_version
	writeU2(&buf, 61) // major_version
	writeU2(&buf, uint16(len(pool)+1))
	for _, entry := range pool {
		buf.Write(entry)
	}
	writeU2(&buf, uint16(classfile.AccPublic)|uint16(classfile.AccSuper))
	writeU2(&buf, thisClassIdx)
	writeU2(&buf, superClassIdx)
	writeU2(&buf, 0) // interfaces_count
	writeU2(&buf, 0) // fields_count
	writeU2(&buf, 1) // methods_count
	buf.Write(method.Bytes())
	writeU2(&buf, 1) // attributes_count
	buf.Write(sourceFileBytes)

	return buf.Bytes(), nil
}

func utf8Entry(s string) []byte {
	var buf bytes.Buffer
	writeU2(&buf, uint16(len(s)))
	buf.WriteString(s)
	return buf.Bytes()
}

func writeU2(buf *bytes.Buffer, v uint16) {
	binary.Write(buf, binary.BigEndian, v)
}

func writeU4(buf *bytes.Buffer, v uint32) {
	binary.Write(buf, binary.BigEndian, v)
}
