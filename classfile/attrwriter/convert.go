package attrwriter

import (
	"github.com/dhamidi/classwriter/classfile"
	"github.com/dhamidi/classwriter/classfile/annotation"
	"github.com/dhamidi/classwriter/classfile/instruction"
)

// FromAttributeInfo converts the parser's raw AttributeInfo into the
// tagged-union model WriteAttribute consumes. Any kind without a case
// below, including the ones the writer gives no body (Deprecated,
// MethodParameters, ModuleMainClass, ...), falls back to
// DefaultAttribute, which always round-trips since it echoes Info
// verbatim.
func FromAttributeInfo(info classfile.AttributeInfo, cp classfile.ConstantPool) Attribute {
	name := Ref(info.NameIndex)
	h := NewHeader(name)

	switch attrName := cp.GetUtf8(info.NameIndex); attrName {
	case "ConstantValue":
		if cv := info.AsConstantValue(); cv != nil {
			return &ConstantValueAttribute{header: h, Value: Ref(cv.ConstantValueIndex)}
		}
	case "SourceFile":
		if sf := info.AsSourceFile(); sf != nil {
			return &SourceFileAttribute{header: h, Value: Ref(sf.SourceFileIndex)}
		}
	case "Signature":
		if sig := info.AsSignature(); sig != nil {
			return &SignatureAttribute{header: h, Value: Ref(sig.SignatureIndex)}
		}
	case "Exceptions":
		if ex := info.AsExceptions(); ex != nil {
			return &ExceptionsAttribute{header: h, Classes: refsOf(ex.ExceptionIndexTable)}
		}
	case "NestHost":
		if nh := info.AsNestHost(); nh != nil {
			return &NestHostAttribute{header: h, Host: Ref(nh.HostClassIndex)}
		}
	case "NestMembers":
		if nm := info.AsNestMembers(); nm != nil {
			return &NestMembersAttribute{header: h, Classes: refsOf(nm.Classes)}
		}
	case "PermittedSubclasses":
		if ps := info.AsPermittedSubclasses(); ps != nil {
			return &PermittedSubclassesAttribute{header: h, Classes: refsOf(ps.Classes)}
		}
	case "ModulePackages":
		if mp := info.AsModulePackages(); mp != nil {
			return &ModulePackagesAttribute{header: h, Packages: refsOf(mp.PackageIndex)}
		}
	case "EnclosingMethod":
		if em := info.AsEnclosingMethod(); em != nil {
			method := NoRef
			if em.MethodIndex != 0 {
				method = RefOf(em.MethodIndex)
			}
			return &EnclosingMethodAttribute{header: h, Class: Ref(em.ClassIndex), Method: method}
		}
	case "LineNumberTable":
		if lnt := info.AsLineNumberTable(); lnt != nil {
			entries := make([]LineNumberEntry, len(lnt.LineNumberTable))
			for i, e := range lnt.LineNumberTable {
				entries[i] = LineNumberEntry{StartPC: e.StartPC, LineNumber: e.LineNumber}
			}
			return &LineNumberTableAttribute{header: h, Entries: entries}
		}
	case "LocalVariableTable":
		if lvt := info.AsLocalVariableTable(); lvt != nil {
			entries := make([]LocalVariableEntry, len(lvt.LocalVariableTable))
			for i, e := range lvt.LocalVariableTable {
				entries[i] = LocalVariableEntry{
					StartPC: e.StartPC, Length: e.Length,
					Name: Ref(e.NameIndex), Descriptor: Ref(e.DescriptorIndex), Index: e.Index,
				}
			}
			return &LocalVariableTableAttribute{header: h, Entries: entries}
		}
	case "LocalVariableTypeTable":
		if lvtt := info.AsLocalVariableTypeTable(); lvtt != nil {
			entries := make([]LocalVariableTypeEntry, len(lvtt.LocalVariableTypeTable))
			for i, e := range lvtt.LocalVariableTypeTable {
				entries[i] = LocalVariableTypeEntry{
					StartPC: e.StartPC, Length: e.Length,
					Name: Ref(e.NameIndex), Signature: Ref(e.SignatureIndex), Index: e.Index,
				}
			}
			return &LocalVariableTypeTableAttribute{header: h, Entries: entries}
		}
	case "InnerClasses":
		if ic := info.AsInnerClasses(); ic != nil {
			classes := make([]InnerClass, len(ic.Classes))
			for i, c := range ic.Classes {
				classes[i] = InnerClass{
					Inner:       Ref(c.InnerClassInfoIndex),
					Outer:       optionalOf(c.OuterClassInfoIndex),
					InnerName:   optionalOf(c.InnerNameIndex),
					AccessFlags: uint16(c.InnerClassAccessFlags),
				}
			}
			return &InnerClassesAttribute{header: h, Classes: classes}
		}
	case "BootstrapMethods":
		if bm := info.AsBootstrapMethods(); bm != nil {
			methods := make([]BootstrapMethod, len(bm.BootstrapMethods))
			for i, m := range bm.BootstrapMethods {
				methods[i] = BootstrapMethod{Method: Ref(m.BootstrapMethodRef), Arguments: refsOf(m.BootstrapArguments)}
			}
			return &BootstrapMethodsAttribute{header: h, Methods: methods}
		}
	case "StackMapTable":
		if smt := info.AsStackMapTable(); smt != nil {
			return &StackMapTableAttribute{header: h, Frames: smt.Entries}
		}
	case "SourceDebugExtension":
		if sde := info.AsSourceDebugExtension(); sde != nil {
			return &SourceDebugExtensionAttribute{header: h, Data: []byte(sde.DebugExtension)}
		}
	case "Record":
		if rec := info.AsRecord(); rec != nil {
			components := make([]RecordComponent, len(rec.Components))
			for i, c := range rec.Components {
				subs := make([]Attribute, len(c.Attributes))
				for j, sub := range c.Attributes {
					subs[j] = FromAttributeInfo(sub, cp)
				}
				components[i] = RecordComponent{Name: Ref(c.NameIndex), Descriptor: Ref(c.DescriptorIndex), Attributes: subs}
			}
			return &RecordAttribute{header: h, Components: components}
		}
	case "Code":
		if code := info.AsCode(); code != nil {
			table := make([]ExceptionHandler, len(code.ExceptionTable))
			for i, e := range code.ExceptionTable {
				table[i] = ExceptionHandler{
					StartPC: e.StartPC, EndPC: e.EndPC, HandlerPC: e.HandlerPC,
					CatchType: optionalOf(e.CatchType),
				}
			}
			subs := make([]Attribute, len(code.Attributes))
			for i, sub := range code.Attributes {
				subs[i] = FromAttributeInfo(sub, cp)
			}
			return &CodeAttribute{
				header: h, MaxStack: code.MaxStack, MaxLocals: code.MaxLocals,
				Instructions:   rawCodeAsInstructions(code.Code),
				ExceptionTable: table,
				Attributes:     subs,
			}
		}
	case "RuntimeVisibleAnnotations":
		if rva := info.AsRuntimeVisibleAnnotations(); rva != nil {
			return &RuntimeVisibleAnnotationsAttribute{header: h, Annotations: annotationsOf(rva.Annotations)}
		}
	case "RuntimeInvisibleAnnotations":
		if ria := info.AsRuntimeInvisibleAnnotations(); ria != nil {
			return &RuntimeInvisibleAnnotationsAttribute{header: h, Annotations: annotationsOf(ria.Annotations)}
		}
	case "AnnotationDefault":
		if ad := info.AsAnnotationDefault(); ad != nil {
			return &AnnotationDefaultAttribute{header: h, Value: elementValueOf(ad.DefaultValue)}
		}
	case "RuntimeVisibleParameterAnnotations":
		if rvpa := info.AsRuntimeVisibleParameterAnnotations(); rvpa != nil {
			return &RuntimeVisibleParameterAnnotationsAttribute{header: h, Parameters: parameterAnnotationsOf(rvpa.ParameterAnnotations)}
		}
	case "RuntimeInvisibleParameterAnnotations":
		if ripa := info.AsRuntimeInvisibleParameterAnnotations(); ripa != nil {
			return &RuntimeInvisibleParameterAnnotationsAttribute{header: h, Parameters: parameterAnnotationsOf(ripa.ParameterAnnotations)}
		}
	case "RuntimeVisibleTypeAnnotations":
		if rvta := info.AsRuntimeVisibleTypeAnnotations(); rvta != nil {
			return &RuntimeVisibleTypeAnnotationsAttribute{header: h, Annotations: typeAnnotationsOf(rvta.Annotations)}
		}
	case "RuntimeInvisibleTypeAnnotations":
		if rita := info.AsRuntimeInvisibleTypeAnnotations(); rita != nil {
			return &RuntimeInvisibleTypeAnnotationsAttribute{header: h, Annotations: typeAnnotationsOf(rita.Annotations)}
		}
	case "ModuleTarget":
		if mt := info.AsModuleTarget(); mt != nil {
			return &ModuleTargetAttribute{header: h, Platform: Ref(mt.PlatformIndex)}
		}
	case "ModuleHashes":
		if mh := info.AsModuleHashes(); mh != nil {
			hashes := make([]ModuleHash, len(mh.Hashes))
			for i, e := range mh.Hashes {
				hashes[i] = ModuleHash{Module: Ref(e.ModuleIndex), Hash: e.Hash}
			}
			return &ModuleHashesAttribute{header: h, Algorithm: Ref(mh.AlgorithmIndex), Hashes: hashes}
		}
	case "Module":
		if m := info.AsModule(); m != nil {
			return &ModuleAttribute{
				header:   h,
				Module:   Ref(m.ModuleNameIndex),
				Flags:    m.ModuleFlags,
				Version:  optionalOf(m.ModuleVersionIndex),
				Requires: moduleRequiresOf(m.Requires),
				Exports:  moduleExportsOf(m.Exports),
				Opens:    moduleOpensOf(m.Opens),
				Uses:     refsOf(m.Uses),
				Provides: moduleProvidesOf(m.Provides),
			}
		}
	}

	return &DefaultAttribute{header: h, Data: info.Info}
}

// rawCodeAsInstructions treats an already-assembled code[] array as a
// single pseudo-instruction: the first byte becomes its Opcode and every
// remaining byte its Operands. DefaultWriter writes Opcode and Operands
// back out verbatim, so this still round-trips bit-exact without the
// bridge needing its own opcode table.
func rawCodeAsInstructions(code []byte) []instruction.Instruction {
	if len(code) == 0 {
		return nil
	}
	return []instruction.Instruction{{Opcode: code[0], Operands: code[1:]}}
}

func refsOf(indices []uint16) []Ref {
	refs := make([]Ref, len(indices))
	for i, idx := range indices {
		refs[i] = Ref(idx)
	}
	return refs
}

func optionalOf(index uint16) OptionalRef {
	if index == 0 {
		return NoRef
	}
	return RefOf(index)
}

func annotationsOf(src []classfile.Annotation) []annotation.Annotation {
	out := make([]annotation.Annotation, len(src))
	for i, a := range src {
		out[i] = annotation.Annotation{TypeIndex: a.TypeIndex, Values: pairsOf(a.ElementValuePairs)}
	}
	return out
}

func pairsOf(src []classfile.ElementValuePair) []annotation.ElementValuePair {
	out := make([]annotation.ElementValuePair, len(src))
	for i, p := range src {
		out[i] = annotation.ElementValuePair{ElementNameIndex: p.ElementNameIndex, Value: elementValueOf(p.Value)}
	}
	return out
}

func parameterAnnotationsOf(src [][]classfile.Annotation) [][]annotation.Annotation {
	out := make([][]annotation.Annotation, len(src))
	for i, annotations := range src {
		out[i] = annotationsOf(annotations)
	}
	return out
}

func typeAnnotationsOf(src []classfile.TypeAnnotation) []annotation.TypeAnnotation {
	out := make([]annotation.TypeAnnotation, len(src))
	for i, ta := range src {
		path := make([]annotation.TypePathEntry, len(ta.TargetPath))
		for j, p := range ta.TargetPath {
			path[j] = annotation.TypePathEntry{TypePathKind: p.TypePathKind, TypeArgumentIndex: p.TypeArgumentIndex}
		}
		out[i] = annotation.TypeAnnotation{
			TargetType: ta.TargetType,
			TargetInfo: ta.TargetInfo,
			TargetPath: path,
			TypeIndex:  ta.TypeIndex,
			Values:     pairsOf(ta.ElementValuePairs),
		}
	}
	return out
}

func moduleRequiresOf(src []classfile.ModuleRequires) []ModuleRequires {
	out := make([]ModuleRequires, len(src))
	for i, r := range src {
		out[i] = ModuleRequires{Requires: Ref(r.RequiresIndex), Flags: r.RequiresFlags, Version: optionalOf(r.RequiresVersionIndex)}
	}
	return out
}

func moduleExportsOf(src []classfile.ModuleExports) []ModuleExports {
	out := make([]ModuleExports, len(src))
	for i, e := range src {
		out[i] = ModuleExports{Package: Ref(e.ExportsIndex), Flags: e.ExportsFlags, To: refsOf(e.ExportsToIndex)}
	}
	return out
}

func moduleOpensOf(src []classfile.ModuleOpens) []ModuleOpens {
	out := make([]ModuleOpens, len(src))
	for i, o := range src {
		out[i] = ModuleOpens{Package: Ref(o.OpensIndex), Flags: o.OpensFlags, To: refsOf(o.OpensToIndex)}
	}
	return out
}

func moduleProvidesOf(src []classfile.ModuleProvides) []ModuleProvides {
	out := make([]ModuleProvides, len(src))
	for i, p := range src {
		out[i] = ModuleProvides{Service: Ref(p.ProvidesIndex), With: refsOf(p.ProvidesWithIndex)}
	}
	return out
}

func elementValueOf(ev classfile.ElementValue) annotation.ElementValue {
	out := annotation.ElementValue{Tag: ev.Tag}
	switch v := ev.Value.(type) {
	case uint16:
		switch ev.Tag {
		case annotation.TagClass:
			out.ClassInfoIndex = v
		default:
			out.ConstValueIndex = v
		}
	case classfile.EnumConstValue:
		out.TypeNameIndex = v.TypeNameIndex
		out.ConstNameIndex = v.ConstNameIndex
	case classfile.Annotation:
		out.AnnotationValue = annotation.Annotation{TypeIndex: v.TypeIndex, Values: pairsOf(v.ElementValuePairs)}
	case classfile.ArrayValue:
		values := make([]annotation.ElementValue, len(v.Values))
		for i, ev2 := range v.Values {
			values[i] = elementValueOf(ev2)
		}
		out.Values = values
	}
	return out
}
