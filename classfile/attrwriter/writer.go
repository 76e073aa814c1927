package attrwriter

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dhamidi/classwriter/classfile/annotation"
	"github.com/dhamidi/classwriter/classfile/instruction"
)

// Writer is the attribute dispatcher (§4.1). It owns the two external
// collaborators the Code and annotation attributes delegate to; every
// other attribute is self-contained.
type Writer struct {
	Instructions instruction.Writer
	Annotations  annotation.Writer
}

// New builds a Writer with the default delegates.
func New() *Writer {
	return &Writer{
		Instructions: instruction.DefaultWriter{},
		Annotations:  annotation.DefaultWriter{},
	}
}

// WriteAttribute produces the complete on-disk representation of a,
// including its 6-byte name_index+attribute_length header.
func (w *Writer) WriteAttribute(a Attribute) ([]byte, error) {
	if def, ok := a.(*DefaultAttribute); ok {
		var out bytes.Buffer
		if err := writeU2(&out, def.NameIndex()); err != nil {
			return nil, err
		}
		if err := writeU4(&out, uint32(len(def.Data))); err != nil {
			return nil, err
		}
		out.Write(def.Data)
		return out.Bytes(), nil
	}

	body, err := w.writeBody(a)
	if err != nil {
		return nil, fmt.Errorf("attrwriter: writing %T: %w", a, err)
	}

	var out bytes.Buffer
	if err := writeU2(&out, a.NameIndex()); err != nil {
		return nil, err
	}
	if err := writeU4(&out, uint32(len(body))); err != nil {
		return nil, err
	}
	out.Write(body)
	return out.Bytes(), nil
}

// writeBody selects the per-kind body emitter by the attribute's Go
// type — the tagged-sum-type analogue of the source's switch on the
// attribute's name string (see DESIGN.md).
func (w *Writer) writeBody(a Attribute) ([]byte, error) {
	var buf bytes.Buffer

	switch v := a.(type) {
	case *BootstrapMethodsAttribute:
		if err := writeU2(&buf, uint16(len(v.Methods))); err != nil {
			return nil, err
		}
		for _, m := range v.Methods {
			if err := writeU2(&buf, uint16(m.Method)); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, uint16(len(m.Arguments))); err != nil {
				return nil, err
			}
			for _, arg := range m.Arguments {
				if err := writeU2(&buf, uint16(arg)); err != nil {
					return nil, err
				}
			}
		}

	case *CodeAttribute:
		code, err := w.Instructions.Write(v.Instructions)
		if err != nil {
			return nil, err
		}
		if err := writeU2(&buf, v.MaxStack); err != nil {
			return nil, err
		}
		if err := writeU2(&buf, v.MaxLocals); err != nil {
			return nil, err
		}
		if err := writeU4(&buf, uint32(len(code))); err != nil {
			return nil, err
		}
		buf.Write(code)
		if err := writeU2(&buf, uint16(len(v.ExceptionTable))); err != nil {
			return nil, err
		}
		for _, h := range v.ExceptionTable {
			if err := writeU2(&buf, h.StartPC); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, h.EndPC); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, h.HandlerPC); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, h.CatchType.OrZero()); err != nil {
				return nil, err
			}
		}
		if err := writeU2(&buf, uint16(len(v.Attributes))); err != nil {
			return nil, err
		}
		for _, sub := range v.Attributes {
			subBytes, err := w.WriteAttribute(sub)
			if err != nil {
				return nil, err
			}
			buf.Write(subBytes)
		}

	case *ConstantValueAttribute:
		if err := writeU2(&buf, uint16(v.Value)); err != nil {
			return nil, err
		}

	case *EnclosingMethodAttribute:
		if err := writeU2(&buf, uint16(v.Class)); err != nil {
			return nil, err
		}
		if err := writeU2(&buf, v.Method.OrZero()); err != nil {
			return nil, err
		}

	case *ExceptionsAttribute:
		if err := writeU2(&buf, uint16(len(v.Classes))); err != nil {
			return nil, err
		}
		for _, c := range v.Classes {
			if err := writeU2(&buf, uint16(c)); err != nil {
				return nil, err
			}
		}

	case *InnerClassesAttribute:
		if err := writeU2(&buf, uint16(len(v.Classes))); err != nil {
			return nil, err
		}
		for _, ic := range v.Classes {
			if err := writeU2(&buf, uint16(ic.Inner)); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, ic.Outer.OrZero()); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, ic.InnerName.OrZero()); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, ic.AccessFlags); err != nil {
				return nil, err
			}
		}

	case *LineNumberTableAttribute:
		if err := writeU2(&buf, uint16(len(v.Entries))); err != nil {
			return nil, err
		}
		for _, e := range v.Entries {
			if err := writeU2(&buf, e.StartPC); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, e.LineNumber); err != nil {
				return nil, err
			}
		}

	case *LocalVariableTableAttribute:
		if err := writeU2(&buf, uint16(len(v.Entries))); err != nil {
			return nil, err
		}
		for _, e := range v.Entries {
			if err := writeLocalVariableEntry(&buf, e.StartPC, e.Length, uint16(e.Name), uint16(e.Descriptor), e.Index); err != nil {
				return nil, err
			}
		}

	case *LocalVariableTypeTableAttribute:
		if err := writeU2(&buf, uint16(len(v.Entries))); err != nil {
			return nil, err
		}
		for _, e := range v.Entries {
			if err := writeLocalVariableEntry(&buf, e.StartPC, e.Length, uint16(e.Name), uint16(e.Signature), e.Index); err != nil {
				return nil, err
			}
		}

	case *ModuleAttribute:
		if err := writeModuleAttribute(&buf, v); err != nil {
			return nil, err
		}

	case *NestHostAttribute:
		if err := writeU2(&buf, uint16(v.Host)); err != nil {
			return nil, err
		}

	case *NestMembersAttribute:
		if err := writeRefList(&buf, v.Classes); err != nil {
			return nil, err
		}

	case *RecordAttribute:
		if err := writeU2(&buf, uint16(len(v.Components))); err != nil {
			return nil, err
		}
		for _, c := range v.Components {
			if err := writeU2(&buf, uint16(c.Name)); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, uint16(c.Descriptor)); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, uint16(len(c.Attributes))); err != nil {
				return nil, err
			}
			for _, sub := range c.Attributes {
				subBytes, err := w.WriteAttribute(sub)
				if err != nil {
					return nil, err
				}
				buf.Write(subBytes)
			}
		}

	case *PermittedSubclassesAttribute:
		if err := writeRefList(&buf, v.Classes); err != nil {
			return nil, err
		}

	case *RuntimeVisibleAnnotationsAttribute:
		if err := w.Annotations.WriteAnnotations(&buf, v.Annotations); err != nil {
			return nil, err
		}

	case *RuntimeInvisibleAnnotationsAttribute:
		if err := w.Annotations.WriteAnnotations(&buf, v.Annotations); err != nil {
			return nil, err
		}

	case *RuntimeVisibleParameterAnnotationsAttribute:
		if err := w.Annotations.WriteParameterAnnotations(&buf, v.Parameters); err != nil {
			return nil, err
		}

	case *RuntimeInvisibleParameterAnnotationsAttribute:
		if err := w.Annotations.WriteParameterAnnotations(&buf, v.Parameters); err != nil {
			return nil, err
		}

	case *RuntimeVisibleTypeAnnotationsAttribute:
		if err := w.Annotations.WriteTypeAnnotations(&buf, v.Annotations); err != nil {
			return nil, err
		}

	case *RuntimeInvisibleTypeAnnotationsAttribute:
		if err := w.Annotations.WriteTypeAnnotations(&buf, v.Annotations); err != nil {
			return nil, err
		}

	case *AnnotationDefaultAttribute:
		if err := w.Annotations.WriteAnnotationDefault(&buf, v.Value); err != nil {
			return nil, err
		}

	case *SignatureAttribute:
		if err := writeU2(&buf, uint16(v.Value)); err != nil {
			return nil, err
		}

	case *SourceDebugExtensionAttribute:
		// No length prefix: attribute_length itself is the payload length.
		buf.Write(v.Data)

	case *SourceFileAttribute:
		if err := writeU2(&buf, uint16(v.Value)); err != nil {
			return nil, err
		}

	case *StackMapTableAttribute:
		if err := writeStackMapTable(&buf, v.Frames); err != nil {
			return nil, err
		}

	case *ModulePackagesAttribute:
		if err := writeRefList(&buf, v.Packages); err != nil {
			return nil, err
		}

	case *ModuleTargetAttribute:
		if err := writeU2(&buf, uint16(v.Platform)); err != nil {
			return nil, err
		}

	case *ModuleHashesAttribute:
		if err := writeU2(&buf, uint16(v.Algorithm)); err != nil {
			return nil, err
		}
		if err := writeU2(&buf, uint16(len(v.Hashes))); err != nil {
			return nil, err
		}
		for _, h := range v.Hashes {
			if err := writeU2(&buf, uint16(h.Module)); err != nil {
				return nil, err
			}
			if err := writeU2(&buf, uint16(len(h.Hash))); err != nil {
				return nil, err
			}
			buf.Write(h.Hash)
		}

	case *DeprecatedAttribute, *SyntheticAttribute, *MethodParametersAttribute,
		*SourceIDAttribute, *ModuleMainClassAttribute, *ModuleResolutionAttribute,
		*CharacterRangeTableAttribute, *CompilationIDAttribute:
		// Deliberately no body: the source writer never emits one for
		// these kinds even though several carry real JVMS content.

	default:
		return nil, fmt.Errorf("unsupported attribute kind %T", a)
	}

	return buf.Bytes(), nil
}

func writeModuleAttribute(buf *bytes.Buffer, v *ModuleAttribute) error {
	if err := writeU2(buf, uint16(v.Module)); err != nil {
		return err
	}
	if err := writeU2(buf, v.Flags); err != nil {
		return err
	}
	if err := writeU2(buf, v.Version.OrZero()); err != nil {
		return err
	}

	if err := writeU2(buf, uint16(len(v.Requires))); err != nil {
		return err
	}
	for _, r := range v.Requires {
		if err := writeU2(buf, uint16(r.Requires)); err != nil {
			return err
		}
		if err := writeU2(buf, r.Flags); err != nil {
			return err
		}
		if err := writeU2(buf, r.Version.OrZero()); err != nil {
			return err
		}
	}

	if err := writeU2(buf, uint16(len(v.Exports))); err != nil {
		return err
	}
	for _, e := range v.Exports {
		if err := writeU2(buf, uint16(e.Package)); err != nil {
			return err
		}
		if err := writeU2(buf, e.Flags); err != nil {
			return err
		}
		if err := writeRefList(buf, e.To); err != nil {
			return err
		}
	}

	if err := writeU2(buf, uint16(len(v.Opens))); err != nil {
		return err
	}
	for _, o := range v.Opens {
		if err := writeU2(buf, uint16(o.Package)); err != nil {
			return err
		}
		if err := writeU2(buf, o.Flags); err != nil {
			return err
		}
		if err := writeRefList(buf, o.To); err != nil {
			return err
		}
	}

	if err := writeRefList(buf, v.Uses); err != nil {
		return err
	}

	if err := writeU2(buf, uint16(len(v.Provides))); err != nil {
		return err
	}
	for _, p := range v.Provides {
		if err := writeU2(buf, uint16(p.Service)); err != nil {
			return err
		}
		if err := writeRefList(buf, p.With); err != nil {
			return err
		}
	}
	return nil
}

func writeLocalVariableEntry(buf *bytes.Buffer, startPC, length, name, typeRef, index uint16) error {
	for _, field := range []uint16{startPC, length, name, typeRef, index} {
		if err := writeU2(buf, field); err != nil {
			return err
		}
	}
	return nil
}

func writeRefList(buf *bytes.Buffer, refs []Ref) error {
	if err := writeU2(buf, uint16(len(refs))); err != nil {
		return err
	}
	for _, r := range refs {
		if err := writeU2(buf, uint16(r)); err != nil {
			return err
		}
	}
	return nil
}

func writeU2(buf *bytes.Buffer, v uint16) error {
	return binary.Write(buf, binary.BigEndian, v)
}

func writeU4(buf *bytes.Buffer, v uint32) error {
	return binary.Write(buf, binary.BigEndian, v)
}
