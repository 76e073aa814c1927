package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classwriter/classfile"
)

type LineEncoder struct {
	w  io.Writer
	cf *classfile.ClassFile
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.cf

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", classKind(cf), cf.ClassName(), strings.Join(classModifiers(cf), ","))

	for i := range cf.Fields {
		f := &cf.Fields[i]
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n",
			f.Name(cf.ConstantPool),
			f.Descriptor(cf.ConstantPool),
			joinOrDash(fieldModifiers(f)),
		)
	}

	for i := range cf.Methods {
		m := &cf.Methods[i]
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\n",
			m.Name(cf.ConstantPool),
			m.Descriptor(cf.ConstantPool),
			joinOrDash(methodModifiers(m)),
		)
	}

	for i := range cf.Attributes {
		fmt.Fprintf(&sb, "attribute\t%s\n", cf.ConstantPool.GetUtf8(cf.Attributes[i].NameIndex))
	}

	return []byte(sb.String()), nil
}

func joinOrDash(mods []string) string {
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}
