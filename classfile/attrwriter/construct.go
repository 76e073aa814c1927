package attrwriter

import (
	"github.com/dhamidi/classwriter/classfile"
	"github.com/dhamidi/classwriter/classfile/annotation"
)

// The constructors below are the public surface other packages (the CLI)
// use to build attributes, since the header field is unexported. Code
// inside this package, such as FromAttributeInfo and the tests, also
// builds attributes as struct literals with NewHeader.

func NewConstantValue(name, value Ref) *ConstantValueAttribute {
	return &ConstantValueAttribute{header: NewHeader(name), Value: value}
}

func NewSourceFile(name, value Ref) *SourceFileAttribute {
	return &SourceFileAttribute{header: NewHeader(name), Value: value}
}

func NewSignature(name, value Ref) *SignatureAttribute {
	return &SignatureAttribute{header: NewHeader(name), Value: value}
}

func NewExceptions(name Ref, classes []Ref) *ExceptionsAttribute {
	return &ExceptionsAttribute{header: NewHeader(name), Classes: classes}
}

func NewLineNumberTable(name Ref, entries []LineNumberEntry) *LineNumberTableAttribute {
	return &LineNumberTableAttribute{header: NewHeader(name), Entries: entries}
}

func NewEnclosingMethod(name, class Ref, method OptionalRef) *EnclosingMethodAttribute {
	return &EnclosingMethodAttribute{header: NewHeader(name), Class: class, Method: method}
}

func NewPermittedSubclasses(name Ref, classes []Ref) *PermittedSubclassesAttribute {
	return &PermittedSubclassesAttribute{header: NewHeader(name), Classes: classes}
}

func NewStackMapTable(name Ref, frames []classfile.StackMapFrame) *StackMapTableAttribute {
	return &StackMapTableAttribute{header: NewHeader(name), Frames: frames}
}

func NewDefault(name Ref, data []byte) *DefaultAttribute {
	return &DefaultAttribute{header: NewHeader(name), Data: data}
}

func NewCode(name Ref, maxStack, maxLocals uint16) *CodeAttribute {
	return &CodeAttribute{header: NewHeader(name), MaxStack: maxStack, MaxLocals: maxLocals}
}

func NewBootstrapMethods(name Ref, methods []BootstrapMethod) *BootstrapMethodsAttribute {
	return &BootstrapMethodsAttribute{header: NewHeader(name), Methods: methods}
}

func NewInnerClasses(name Ref, classes []InnerClass) *InnerClassesAttribute {
	return &InnerClassesAttribute{header: NewHeader(name), Classes: classes}
}

func NewLocalVariableTable(name Ref, entries []LocalVariableEntry) *LocalVariableTableAttribute {
	return &LocalVariableTableAttribute{header: NewHeader(name), Entries: entries}
}

func NewLocalVariableTypeTable(name Ref, entries []LocalVariableTypeEntry) *LocalVariableTypeTableAttribute {
	return &LocalVariableTypeTableAttribute{header: NewHeader(name), Entries: entries}
}

func NewNestHost(name, host Ref) *NestHostAttribute {
	return &NestHostAttribute{header: NewHeader(name), Host: host}
}

func NewNestMembers(name Ref, classes []Ref) *NestMembersAttribute {
	return &NestMembersAttribute{header: NewHeader(name), Classes: classes}
}

func NewRecord(name Ref, components []RecordComponent) *RecordAttribute {
	return &RecordAttribute{header: NewHeader(name), Components: components}
}

func NewSourceDebugExtension(name Ref, data []byte) *SourceDebugExtensionAttribute {
	return &SourceDebugExtensionAttribute{header: NewHeader(name), Data: data}
}

func NewRuntimeVisibleAnnotations(name Ref, annotations []annotation.Annotation) *RuntimeVisibleAnnotationsAttribute {
	return &RuntimeVisibleAnnotationsAttribute{header: NewHeader(name), Annotations: annotations}
}

func NewRuntimeInvisibleAnnotations(name Ref, annotations []annotation.Annotation) *RuntimeInvisibleAnnotationsAttribute {
	return &RuntimeInvisibleAnnotationsAttribute{header: NewHeader(name), Annotations: annotations}
}

func NewRuntimeVisibleParameterAnnotations(name Ref, parameters [][]annotation.Annotation) *RuntimeVisibleParameterAnnotationsAttribute {
	return &RuntimeVisibleParameterAnnotationsAttribute{header: NewHeader(name), Parameters: parameters}
}

func NewRuntimeInvisibleParameterAnnotations(name Ref, parameters [][]annotation.Annotation) *RuntimeInvisibleParameterAnnotationsAttribute {
	return &RuntimeInvisibleParameterAnnotationsAttribute{header: NewHeader(name), Parameters: parameters}
}

func NewRuntimeVisibleTypeAnnotations(name Ref, annotations []annotation.TypeAnnotation) *RuntimeVisibleTypeAnnotationsAttribute {
	return &RuntimeVisibleTypeAnnotationsAttribute{header: NewHeader(name), Annotations: annotations}
}

func NewRuntimeInvisibleTypeAnnotations(name Ref, annotations []annotation.TypeAnnotation) *RuntimeInvisibleTypeAnnotationsAttribute {
	return &RuntimeInvisibleTypeAnnotationsAttribute{header: NewHeader(name), Annotations: annotations}
}

func NewAnnotationDefault(name Ref, value annotation.ElementValue) *AnnotationDefaultAttribute {
	return &AnnotationDefaultAttribute{header: NewHeader(name), Value: value}
}

func NewModulePackages(name Ref, packages []Ref) *ModulePackagesAttribute {
	return &ModulePackagesAttribute{header: NewHeader(name), Packages: packages}
}

func NewModuleTarget(name, platform Ref) *ModuleTargetAttribute {
	return &ModuleTargetAttribute{header: NewHeader(name), Platform: platform}
}

func NewModuleHashes(name, algorithm Ref, hashes []ModuleHash) *ModuleHashesAttribute {
	return &ModuleHashesAttribute{header: NewHeader(name), Algorithm: algorithm, Hashes: hashes}
}

func NewModule(name, module Ref, flags uint16, version OptionalRef, requires []ModuleRequires, exports []ModuleExports, opens []ModuleOpens, uses []Ref, provides []ModuleProvides) *ModuleAttribute {
	return &ModuleAttribute{
		header:   NewHeader(name),
		Module:   module,
		Flags:    flags,
		Version:  version,
		Requires: requires,
		Exports:  exports,
		Opens:    opens,
		Uses:     uses,
		Provides: provides,
	}
}

// NewDeprecated, NewSynthetic, NewMethodParameters, NewModuleMainClass,
// NewModuleResolution, NewCharacterRangeTable, NewCompilationID, and
// NewSourceID are omitted: the source writer never gives any of these
// kinds a body (see writer.go), so their header is all NewHeader itself
// already provides — a struct literal naming the header is no less
// consistent than calling a constructor with no other field to pass.
