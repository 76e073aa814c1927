package attrwriter

import (
	"github.com/dhamidi/classwriter/classfile"
	"github.com/dhamidi/classwriter/classfile/annotation"
	"github.com/dhamidi/classwriter/classfile/instruction"
)

// Attribute is the tagged union over every standard JVMS §4.7 kind.
// The concrete Go type plays the role the source's class hierarchy
// played: WriteAttribute dispatches on it directly instead of matching
// the on-disk name string, since in a statically typed sum type the
// type already carries that information.
type Attribute interface {
	// NameIndex is the pool index of the attribute's own name, filled
	// in by whatever built the constant pool; attrwriter only echoes it.
	NameIndex() uint16
}

type header struct {
	Name Ref
}

func (h header) NameIndex() uint16 { return uint16(h.Name) }

// DefaultAttribute carries a raw, already-encoded body for any kind the
// dispatcher doesn't recognize; JVMS forward-compatibility depends on
// preserving it byte for byte.
type DefaultAttribute struct {
	header
	Data []byte
}

type BootstrapMethod struct {
	Method    Ref
	Arguments []Ref
}

type BootstrapMethodsAttribute struct {
	header
	Methods []BootstrapMethod
}

type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType OptionalRef // absent/zero means "any" (finally handler)
}

type CodeAttribute struct {
	header
	MaxStack       uint16
	MaxLocals      uint16
	Instructions   []instruction.Instruction
	ExceptionTable []ExceptionHandler
	Attributes     []Attribute
}

type ConstantValueAttribute struct {
	header
	Value Ref
}

type EnclosingMethodAttribute struct {
	header
	Class  Ref
	Method OptionalRef
}

type ExceptionsAttribute struct {
	header
	Classes []Ref
}

type InnerClass struct {
	Inner       Ref
	Outer       OptionalRef
	InnerName   OptionalRef
	AccessFlags uint16
}

type InnerClassesAttribute struct {
	header
	Classes []InnerClass
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LineNumberTableAttribute struct {
	header
	Entries []LineNumberEntry
}

type LocalVariableEntry struct {
	StartPC    uint16
	Length     uint16
	Name       Ref
	Descriptor Ref
	Index      uint16
}

type LocalVariableTableAttribute struct {
	header
	Entries []LocalVariableEntry
}

type LocalVariableTypeEntry struct {
	StartPC   uint16
	Length    uint16
	Name      Ref
	Signature Ref
	Index     uint16
}

type LocalVariableTypeTableAttribute struct {
	header
	Entries []LocalVariableTypeEntry
}

type ModuleRequires struct {
	Requires Ref
	Flags    uint16
	Version  OptionalRef
}

type ModuleExports struct {
	Package Ref
	Flags   uint16
	To      []Ref
}

type ModuleOpens struct {
	Package Ref
	Flags   uint16
	To      []Ref
}

type ModuleProvides struct {
	Service Ref
	With    []Ref
}

type ModuleAttribute struct {
	header
	Module   Ref
	Flags    uint16
	Version  OptionalRef
	Requires []ModuleRequires
	Exports  []ModuleExports
	Opens    []ModuleOpens
	Uses     []Ref
	Provides []ModuleProvides
}

type NestHostAttribute struct {
	header
	Host Ref
}

type NestMembersAttribute struct {
	header
	Classes []Ref
}

type RecordComponent struct {
	Name       Ref
	Descriptor Ref
	Attributes []Attribute
}

type RecordAttribute struct {
	header
	Components []RecordComponent
}

type PermittedSubclassesAttribute struct {
	header
	Classes []Ref
}

type RuntimeVisibleAnnotationsAttribute struct {
	header
	Annotations []annotation.Annotation
}

type RuntimeInvisibleAnnotationsAttribute struct {
	header
	Annotations []annotation.Annotation
}

type RuntimeVisibleParameterAnnotationsAttribute struct {
	header
	Parameters [][]annotation.Annotation
}

type RuntimeInvisibleParameterAnnotationsAttribute struct {
	header
	Parameters [][]annotation.Annotation
}

type RuntimeVisibleTypeAnnotationsAttribute struct {
	header
	Annotations []annotation.TypeAnnotation
}

type RuntimeInvisibleTypeAnnotationsAttribute struct {
	header
	Annotations []annotation.TypeAnnotation
}

type AnnotationDefaultAttribute struct {
	header
	Value annotation.ElementValue
}

type SignatureAttribute struct {
	header
	Value Ref
}

type SourceDebugExtensionAttribute struct {
	header
	Data []byte
}

type SourceFileAttribute struct {
	header
	Value Ref
}

type StackMapTableAttribute struct {
	header
	Frames []classfile.StackMapFrame
}

type ModulePackagesAttribute struct {
	header
	Packages []Ref
}

type ModuleTargetAttribute struct {
	header
	Platform Ref
}

type ModuleHash struct {
	Module Ref
	Hash   []byte
}

// ModuleHashesAttribute preserves Hashes in insertion order; the
// ordered-map requirement from the source model maps directly onto a
// Go slice.
type ModuleHashesAttribute struct {
	header
	Algorithm Ref
	Hashes    []ModuleHash
}

// Several of the remaining standard attributes carry real JVMS content,
// but the source writer emits only their 6-byte header and no body for
// any of them (see DESIGN.md); attrwriter preserves that behavior rather than
// the JVMS-correct one, matching the source exactly.
type DeprecatedAttribute struct{ header }
type SyntheticAttribute struct{ header }
type MethodParametersAttribute struct{ header }
type SourceIDAttribute struct{ header }
type ModuleMainClassAttribute struct{ header }
type ModuleResolutionAttribute struct{ header }
type CharacterRangeTableAttribute struct{ header }
type CompilationIDAttribute struct{ header }

// NewHeader constructs a header for any concrete attribute type
// above, binding the pool index of its own name.
func NewHeader(nameIndex Ref) header { return header{Name: nameIndex} }
