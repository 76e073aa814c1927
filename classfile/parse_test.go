package classfile

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// The fixtures below build class files byte-by-byte instead of shipping
// compiled .class binaries, since this package ships no testdata. Each
// helper mirrors the layout Parse expects so the synthetic bytes exercise
// the real reader, not a mock of it.

func u2(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u4(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

type poolBuilder struct {
	entries [][]byte
}

func (b *poolBuilder) add(tag byte, payload []byte) uint16 {
	entry := append([]byte{tag}, payload...)
	b.entries = append(b.entries, entry)
	return uint16(len(b.entries))
}

func (b *poolBuilder) utf8(s string) uint16 {
	payload := append(u2(uint16(len(s))), []byte(s)...)
	return b.add(1, payload)
}

func (b *poolBuilder) integer(v int32) uint16 {
	return b.add(3, u4(uint32(v)))
}

func (b *poolBuilder) long(v int64) uint16 {
	idx := b.add(5, append(u4(uint32(v>>32)), u4(uint32(v))...))
	b.entries = append(b.entries, nil)
	return idx
}

func (b *poolBuilder) double(bits uint64) uint16 {
	idx := b.add(6, append(u4(uint32(bits>>32)), u4(uint32(bits))...))
	b.entries = append(b.entries, nil)
	return idx
}

func (b *poolBuilder) float(bits uint32) uint16 {
	return b.add(4, u4(bits))
}

func (b *poolBuilder) class(nameIndex uint16) uint16 {
	return b.add(7, u2(nameIndex))
}

func (b *poolBuilder) nameAndType(nameIndex, descIndex uint16) uint16 {
	return b.add(12, append(u2(nameIndex), u2(descIndex)...))
}

func (b *poolBuilder) methodref(classIndex, ntIndex uint16) uint16 {
	return b.add(10, append(u2(classIndex), u2(ntIndex)...))
}

type classBuilder struct {
	pool        poolBuilder
	accessFlags uint16
	thisClass   uint16
	superClass  uint16
	interfaces  []uint16
	fields      [][]byte
	methods     [][]byte
	attributes  [][]byte
}

func (c *classBuilder) encode() []byte {
	var buf bytes.Buffer
	buf.Write(u4(Magic))
	buf.Write(u2(0))
	buf.Write(u2(61))
	buf.Write(u2(uint16(len(c.pool.entries) + 1)))
	for _, e := range c.pool.entries {
		if e != nil {
			buf.Write(e)
		}
	}
	buf.Write(u2(c.accessFlags))
	buf.Write(u2(c.thisClass))
	buf.Write(u2(c.superClass))
	buf.Write(u2(uint16(len(c.interfaces))))
	for _, i := range c.interfaces {
		buf.Write(u2(i))
	}
	buf.Write(u2(uint16(len(c.fields))))
	for _, f := range c.fields {
		buf.Write(f)
	}
	buf.Write(u2(uint16(len(c.methods))))
	for _, m := range c.methods {
		buf.Write(m)
	}
	buf.Write(u2(uint16(len(c.attributes))))
	for _, a := range c.attributes {
		buf.Write(a)
	}
	return buf.Bytes()
}

func attrBytes(nameIndex uint16, body []byte) []byte {
	out := append(u2(nameIndex), u4(uint32(len(body)))...)
	return append(out, body...)
}

func member(accessFlags, nameIndex, descIndex uint16, attrs [][]byte) []byte {
	out := append(u2(accessFlags), u2(nameIndex)...)
	out = append(out, u2(descIndex)...)
	out = append(out, u2(uint16(len(attrs)))...)
	for _, a := range attrs {
		out = append(out, a...)
	}
	return out
}

func codeBody(maxStack, maxLocals uint16, code []byte, excTable []ExceptionTableEntry, attrs [][]byte) []byte {
	var buf bytes.Buffer
	buf.Write(u2(maxStack))
	buf.Write(u2(maxLocals))
	buf.Write(u4(uint32(len(code))))
	buf.Write(code)
	buf.Write(u2(uint16(len(excTable))))
	for _, e := range excTable {
		buf.Write(u2(e.StartPC))
		buf.Write(u2(e.EndPC))
		buf.Write(u2(e.HandlerPC))
		buf.Write(u2(e.CatchType))
	}
	buf.Write(u2(uint16(len(attrs))))
	for _, a := range attrs {
		buf.Write(a)
	}
	return buf.Bytes()
}

func refList(indices ...uint16) []byte {
	out := u2(uint16(len(indices)))
	for _, i := range indices {
		out = append(out, u2(i)...)
	}
	return out
}

// buildBasicClass assembles a small class with a handful of fields and
// methods, close to what a single hand-written Java source file compiles
// to: a ConstantValue field, a private field, a protected field, two
// constructors, a couple of regular methods and a SourceFile attribute.
func buildBasicClass() *classBuilder {
	c := &classBuilder{}
	p := &c.pool

	thisName := p.utf8("TestClass")
	thisClass := p.class(thisName)
	superName := p.utf8("java/lang/Object")
	superClass := p.class(superName)
	ifaceName := p.utf8("java/lang/Runnable")
	ifaceClass := p.class(ifaceName)

	constName := p.utf8("CONSTANT_VALUE")
	intDesc := p.utf8("I")
	constValueName := p.utf8("ConstantValue")
	constValue := p.integer(42)

	nameFieldName := p.utf8("name")
	stringDesc := p.utf8("Ljava/lang/String;")

	countFieldName := p.utf8("count")

	initName := p.utf8("<init>")
	voidDesc := p.utf8("()V")

	getNameName := p.utf8("getName")
	getNameDesc := p.utf8("()Ljava/lang/String;")

	setNameName := p.utf8("setName")
	setNameDesc := p.utf8("(Ljava/lang/String;)V")

	helperName := p.utf8("helper")
	helperDesc := p.utf8("(II)I")

	runName := p.utf8("run")

	codeName := p.utf8("Code")
	sourceFileName := p.utf8("SourceFile")
	sourceFileValue := p.utf8("TestClass.java")

	c.accessFlags = uint16(AccPublic) | uint16(AccSuper)
	c.thisClass = thisClass
	c.superClass = superClass
	c.interfaces = []uint16{ifaceClass}

	c.fields = [][]byte{
		member(uint16(AccPublic)|uint16(AccStatic)|uint16(AccFinal), constName, intDesc,
			[][]byte{attrBytes(constValueName, u2(constValue))}),
		member(uint16(AccPrivate), nameFieldName, stringDesc, nil),
		member(uint16(AccProtected), countFieldName, intDesc, nil),
	}

	trivialReturn := codeBody(1, 1, []byte{0xb1}, nil, nil) // return
	areturn := codeBody(1, 1, []byte{0xb0}, nil, nil)       // areturn

	c.methods = [][]byte{
		member(uint16(AccPublic), initName, voidDesc, [][]byte{attrBytes(codeName, trivialReturn)}),
		member(uint16(AccPublic), initName, setNameDesc, [][]byte{attrBytes(codeName, trivialReturn)}),
		member(uint16(AccPublic), getNameName, getNameDesc, [][]byte{attrBytes(codeName, areturn)}),
		member(uint16(AccPublic), setNameName, setNameDesc, [][]byte{attrBytes(codeName, trivialReturn)}),
		member(uint16(AccPrivate)|uint16(AccStatic), helperName, helperDesc, [][]byte{attrBytes(codeName, trivialReturn)}),
		member(uint16(AccPublic), runName, voidDesc, [][]byte{attrBytes(codeName, trivialReturn)}),
	}

	c.attributes = [][]byte{
		attrBytes(sourceFileName, u2(sourceFileValue)),
	}

	return c
}

func parseBytes(t *testing.T, data []byte) *ClassFile {
	t.Helper()
	cf, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cf
}

func TestParseClassFile(t *testing.T) {
	cf := parseBytes(t, buildBasicClass().encode())

	t.Run("class name", func(t *testing.T) {
		expected := "TestClass"
		if got := cf.ClassName(); got != expected {
			t.Errorf("ClassName() = %q, want %q", got, expected)
		}
	})

	t.Run("super class", func(t *testing.T) {
		expected := "java/lang/Object"
		if got := cf.SuperClassName(); got != expected {
			t.Errorf("SuperClassName() = %q, want %q", got, expected)
		}
	})

	t.Run("interfaces", func(t *testing.T) {
		interfaces := cf.InterfaceNames()
		if len(interfaces) != 1 {
			t.Fatalf("Expected 1 interface, got %d", len(interfaces))
		}
		expected := "java/lang/Runnable"
		if interfaces[0] != expected {
			t.Errorf("Interface[0] = %q, want %q", interfaces[0], expected)
		}
	})

	t.Run("is class", func(t *testing.T) {
		if !cf.IsClass() {
			t.Error("Expected IsClass() to be true")
		}
		if cf.IsInterface() {
			t.Error("Expected IsInterface() to be false")
		}
	})

	t.Run("access flags", func(t *testing.T) {
		if !cf.AccessFlags.IsPublic() {
			t.Error("Expected class to be public")
		}
		if cf.AccessFlags.IsFinal() {
			t.Error("Expected class to not be final")
		}
	})

	t.Run("fields", func(t *testing.T) {
		if len(cf.Fields) != 3 {
			t.Fatalf("Expected 3 fields, got %d", len(cf.Fields))
		}

		constantValue := cf.GetField("CONSTANT_VALUE")
		if constantValue == nil {
			t.Fatal("Expected to find CONSTANT_VALUE field")
		}
		if !constantValue.IsPublic() || !constantValue.IsStatic() || !constantValue.IsFinal() {
			t.Error("CONSTANT_VALUE should be public static final")
		}
		if constantValue.Descriptor(cf.ConstantPool) != "I" {
			t.Errorf("CONSTANT_VALUE descriptor = %q, want %q", constantValue.Descriptor(cf.ConstantPool), "I")
		}

		nameField := cf.GetField("name")
		if nameField == nil {
			t.Fatal("Expected to find name field")
		}
		if !nameField.IsPrivate() {
			t.Error("name field should be private")
		}
		if nameField.Descriptor(cf.ConstantPool) != "Ljava/lang/String;" {
			t.Errorf("name descriptor = %q, want %q", nameField.Descriptor(cf.ConstantPool), "Ljava/lang/String;")
		}

		countField := cf.GetField("count")
		if countField == nil {
			t.Fatal("Expected to find count field")
		}
		if !countField.IsProtected() {
			t.Error("count field should be protected")
		}
	})

	t.Run("methods", func(t *testing.T) {
		constructors := cf.GetMethods("<init>")
		if len(constructors) != 2 {
			t.Fatalf("Expected 2 constructors, got %d", len(constructors))
		}

		getNameMethod := cf.GetMethod("getName", "()Ljava/lang/String;")
		if getNameMethod == nil {
			t.Fatal("Expected to find getName method")
		}
		if !getNameMethod.IsPublic() {
			t.Error("getName should be public")
		}

		setNameMethod := cf.GetMethod("setName", "(Ljava/lang/String;)V")
		if setNameMethod == nil {
			t.Fatal("Expected to find setName method")
		}

		helperMethod := cf.GetMethod("helper", "(II)I")
		if helperMethod == nil {
			t.Fatal("Expected to find helper method")
		}
		if !helperMethod.IsPrivate() || !helperMethod.IsStatic() {
			t.Error("helper should be private static")
		}

		runMethod := cf.GetMethod("run", "()V")
		if runMethod == nil {
			t.Fatal("Expected to find run method")
		}
	})

	t.Run("method code attribute", func(t *testing.T) {
		getNameMethod := cf.GetMethod("getName", "()Ljava/lang/String;")
		if getNameMethod == nil {
			t.Fatal("Expected to find getName method")
		}

		codeAttr := getNameMethod.GetCodeAttribute(cf.ConstantPool)
		if codeAttr == nil {
			t.Fatal("Expected getName to have Code attribute")
		}

		if codeAttr.MaxStack == 0 {
			t.Error("MaxStack should be > 0")
		}
		if codeAttr.MaxLocals == 0 {
			t.Error("MaxLocals should be > 0")
		}
		if len(codeAttr.Code) == 0 {
			t.Error("Code should not be empty")
		}
	})

	t.Run("source file attribute", func(t *testing.T) {
		sourceFileAttr := cf.GetAttribute("SourceFile")
		if sourceFileAttr == nil {
			t.Fatal("Expected SourceFile attribute")
		}
		sf := sourceFileAttr.AsSourceFile()
		if sf == nil {
			t.Fatal("Expected parsed SourceFile")
		}
		sourceName := cf.ConstantPool.GetUtf8(sf.SourceFileIndex)
		if sourceName != "TestClass.java" {
			t.Errorf("SourceFile = %q, want %q", sourceName, "TestClass.java")
		}
	})
}

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc       string
		baseType   string
		className  string
		arrayDepth int
	}{
		{"I", "int", "", 0},
		{"Z", "boolean", "", 0},
		{"Ljava/lang/String;", "", "java/lang/String", 0},
		{"[I", "int", "", 1},
		{"[[D", "double", "", 2},
		{"[Ljava/lang/Object;", "", "java/lang/Object", 1},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ft := ParseFieldDescriptor(tt.desc)
			if ft == nil {
				t.Fatalf("ParseFieldDescriptor(%q) returned nil", tt.desc)
			}
			if ft.BaseType != tt.baseType {
				t.Errorf("BaseType = %q, want %q", ft.BaseType, tt.baseType)
			}
			if ft.ClassName != tt.className {
				t.Errorf("ClassName = %q, want %q", ft.ClassName, tt.className)
			}
			if ft.ArrayDepth != tt.arrayDepth {
				t.Errorf("ArrayDepth = %d, want %d", ft.ArrayDepth, tt.arrayDepth)
			}
		})
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc        string
		numParams   int
		returnsVoid bool
		returnType  string
	}{
		{"()V", 0, true, ""},
		{"()I", 0, false, "int"},
		{"(I)V", 1, true, ""},
		{"(II)I", 2, false, "int"},
		{"(Ljava/lang/String;)V", 1, true, ""},
		{"(IDLjava/lang/Thread;)Ljava/lang/Object;", 3, false, "java/lang/Object"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md := ParseMethodDescriptor(tt.desc)
			if md == nil {
				t.Fatalf("ParseMethodDescriptor(%q) returned nil", tt.desc)
			}
			if len(md.Parameters) != tt.numParams {
				t.Errorf("len(Parameters) = %d, want %d", len(md.Parameters), tt.numParams)
			}
			if tt.returnsVoid {
				if md.ReturnType != nil {
					t.Error("Expected nil ReturnType for void")
				}
			} else {
				if md.ReturnType == nil {
					t.Error("Expected non-nil ReturnType")
				} else {
					if md.ReturnType.BaseType != "" && md.ReturnType.BaseType != tt.returnType {
						t.Errorf("ReturnType.BaseType = %q, want %q", md.ReturnType.BaseType, tt.returnType)
					}
					if md.ReturnType.ClassName != "" && md.ReturnType.ClassName != tt.returnType {
						t.Errorf("ReturnType.ClassName = %q, want %q", md.ReturnType.ClassName, tt.returnType)
					}
				}
			}
		})
	}
}

func TestConstantPoolGetters(t *testing.T) {
	cf := parseBytes(t, buildBasicClass().encode())

	className := cf.ConstantPool.GetClassName(cf.ThisClass)
	if className != "TestClass" {
		t.Errorf("GetClassName() = %q, want %q", className, "TestClass")
	}

	superClassName := cf.ConstantPool.GetClassName(cf.SuperClass)
	if superClassName != "java/lang/Object" {
		t.Errorf("GetClassName(super) = %q, want %q", superClassName, "java/lang/Object")
	}
}

// buildAnnotatedClass builds a class carrying the "richer" metadata
// attributes: annotations, a generic Signature, InnerClasses, Deprecated,
// NestMembers, a method-level Exceptions attribute and a LineNumberTable
// nested under Code.
func buildAnnotatedClass() *classBuilder {
	c := &classBuilder{}
	p := &c.pool

	thisName := p.utf8("AnnotatedClass")
	thisClass := p.class(thisName)
	superName := p.utf8("java/lang/Object")
	superClass := p.class(superName)

	annTypeName := p.utf8("LAnn;")
	rva := p.utf8("RuntimeVisibleAnnotations")
	ria := p.utf8("RuntimeInvisibleAnnotations")

	sigName := p.utf8("Signature")
	sigValue := p.utf8("Ljava/lang/Object;Ljava/lang/Comparable<Ljava/lang/Object;>;")

	innerName := p.utf8("InnerClasses")
	innerClassName := p.utf8("AnnotatedClass$InnerClass")
	innerClass := p.class(innerClassName)
	innerSimpleName := p.utf8("InnerClass")

	deprecatedName := p.utf8("Deprecated")

	nestMembersName := p.utf8("NestMembers")

	getValueName := p.utf8("getValue")
	getValueDesc := p.utf8("()Ljava/lang/Comparable;")
	codeName := p.utf8("Code")
	lntName := p.utf8("LineNumberTable")

	methodWithExceptionName := p.utf8("methodWithException")
	voidDesc := p.utf8("()V")
	exceptionsName := p.utf8("Exceptions")
	exA := p.class(p.utf8("java/io/IOException"))
	exB := p.class(p.utf8("java/lang/InterruptedException"))

	c.accessFlags = uint16(AccPublic) | uint16(AccSuper)
	c.thisClass = thisClass
	c.superClass = superClass

	annotationBody := func() []byte {
		// one annotation, no element-value pairs
		var buf bytes.Buffer
		buf.Write(u2(1)) // num_annotations
		buf.Write(u2(annTypeName))
		buf.Write(u2(0)) // num_element_value_pairs
		return buf.Bytes()
	}

	lnt := codeBody(1, 1, []byte{0xb0}, nil, [][]byte{
		attrBytes(lntName, append(u2(1), append(u2(0), u2(1)...)...)),
	})

	c.methods = [][]byte{
		member(uint16(AccPublic), getValueName, getValueDesc, [][]byte{attrBytes(codeName, lnt)}),
		member(uint16(AccPublic), methodWithExceptionName, voidDesc,
			[][]byte{attrBytes(exceptionsName, refList(exA, exB))}),
	}

	c.attributes = [][]byte{
		attrBytes(rva, annotationBody()),
		attrBytes(ria, annotationBody()),
		attrBytes(sigName, u2(sigValue)),
		attrBytes(innerName, append(u2(1), append(u2(innerClass), append(u2(0), append(u2(innerSimpleName), u2(uint16(AccPublic))...)...)...)...)),
		attrBytes(deprecatedName, nil),
		attrBytes(nestMembersName, refList(innerClass)),
	}

	return c
}

func TestAnnotatedClassAttributes(t *testing.T) {
	cf := parseBytes(t, buildAnnotatedClass().encode())

	t.Run("RuntimeVisibleAnnotations", func(t *testing.T) {
		attr := cf.GetAttribute("RuntimeVisibleAnnotations")
		if attr == nil {
			t.Fatal("Expected RuntimeVisibleAnnotations attribute")
		}
		rva := attr.AsRuntimeVisibleAnnotations()
		if rva == nil || len(rva.Annotations) == 0 {
			t.Fatal("Expected at least one runtime visible annotation")
		}
	})

	t.Run("RuntimeInvisibleAnnotations", func(t *testing.T) {
		attr := cf.GetAttribute("RuntimeInvisibleAnnotations")
		if attr == nil {
			t.Fatal("Expected RuntimeInvisibleAnnotations attribute")
		}
		ria := attr.AsRuntimeInvisibleAnnotations()
		if ria == nil || len(ria.Annotations) == 0 {
			t.Fatal("Expected at least one runtime invisible annotation")
		}
	})

	t.Run("Signature", func(t *testing.T) {
		attr := cf.GetAttribute("Signature")
		if attr == nil {
			t.Fatal("Expected Signature attribute (generics)")
		}
		sig := attr.AsSignature()
		if sig == nil || cf.ConstantPool.GetUtf8(sig.SignatureIndex) == "" {
			t.Error("Expected non-empty signature")
		}
	})

	t.Run("InnerClasses", func(t *testing.T) {
		attr := cf.GetAttribute("InnerClasses")
		if attr == nil {
			t.Fatal("Expected InnerClasses attribute")
		}
		ic := attr.AsInnerClasses()
		if ic == nil || len(ic.Classes) == 0 {
			t.Error("Expected at least one inner class entry")
		}
	})

	t.Run("Deprecated attribute", func(t *testing.T) {
		attr := cf.GetAttribute("Deprecated")
		if attr == nil {
			t.Fatal("Expected Deprecated attribute")
		}
		if attr.AsDeprecated() == nil {
			t.Error("Expected parsed Deprecated attribute")
		}
	})

	t.Run("Method LineNumberTable", func(t *testing.T) {
		method := cf.GetMethod("getValue", "()Ljava/lang/Comparable;")
		if method == nil {
			t.Fatal("Expected to find getValue method")
		}
		codeAttr := method.GetCodeAttribute(cf.ConstantPool)
		if codeAttr == nil {
			t.Fatal("Expected Code attribute on getValue")
		}
		lnt := codeAttr.GetAttribute(cf.ConstantPool, "LineNumberTable")
		if lnt == nil {
			t.Fatal("Expected LineNumberTable in Code attribute")
		}
		if parsed := lnt.AsLineNumberTable(); parsed == nil || len(parsed.LineNumberTable) == 0 {
			t.Error("Expected non-empty LineNumberTable")
		}
	})

	t.Run("Method Exceptions", func(t *testing.T) {
		method := cf.GetMethod("methodWithException", "()V")
		if method == nil {
			t.Fatal("Expected to find methodWithException")
		}
		attr := method.GetAttribute(cf.ConstantPool, "Exceptions")
		if attr == nil {
			t.Fatal("Expected Exceptions attribute on methodWithException")
		}
		ex := attr.AsExceptions()
		if ex == nil || len(ex.ExceptionIndexTable) < 2 {
			t.Errorf("Expected at least 2 declared exceptions")
		}
	})

	t.Run("NestMembers", func(t *testing.T) {
		attr := cf.GetAttribute("NestMembers")
		if attr == nil {
			t.Fatal("Expected NestMembers attribute")
		}
		nm := attr.AsNestMembers()
		if nm == nil || len(nm.Classes) == 0 {
			t.Error("Expected at least one nest member")
		}
	})
}

// CodeAttribute doesn't expose a GetAttribute helper of its own in
// classfile; this small wrapper mirrors FieldInfo/MethodInfo's helper so
// the tests above read the same way.
func (c *CodeAttribute) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	for i := range c.Attributes {
		if cp.GetUtf8(c.Attributes[i].NameIndex) == name {
			return &c.Attributes[i]
		}
	}
	return nil
}

func TestNestHostAndEnclosingMethod(t *testing.T) {
	c := &classBuilder{}
	p := &c.pool

	outerName := p.utf8("AnnotatedClass")
	outerClass := p.class(outerName)
	superName := p.utf8("java/lang/Object")
	superClass := p.class(superName)
	nestHostName := p.utf8("NestHost")

	c.accessFlags = uint16(AccPublic)
	c.thisClass = outerClass
	c.superClass = superClass
	c.attributes = [][]byte{attrBytes(nestHostName, u2(outerClass))}

	cf := parseBytes(t, c.encode())
	attr := cf.GetAttribute("NestHost")
	if attr == nil {
		t.Fatal("Expected NestHost attribute")
	}
	nh := attr.AsNestHost()
	if nh == nil {
		t.Fatal("Expected parsed NestHost")
	}
	if got := cf.ConstantPool.GetClassName(nh.HostClassIndex); got != "AnnotatedClass" {
		t.Errorf("NestHost = %q, want %q", got, "AnnotatedClass")
	}

	// A separate anonymous-class file carrying EnclosingMethod, pointing
	// back at the outer class above.
	anon := &classBuilder{}
	ap := &anon.pool
	anonThisName := ap.utf8("AnnotatedClass$1")
	anonThis := ap.class(anonThisName)
	anonSuperName := ap.utf8("java/lang/Object")
	anonSuper := ap.class(anonSuperName)
	anonOuterName := ap.utf8("AnnotatedClass")
	anonOuterClass := ap.class(anonOuterName)
	enclosingMethodName := ap.utf8("EnclosingMethod")

	anon.accessFlags = uint16(AccSuper)
	anon.thisClass = anonThis
	anon.superClass = anonSuper
	anon.attributes = [][]byte{
		attrBytes(enclosingMethodName, append(u2(anonOuterClass), u2(0)...)),
	}

	anonCf := parseBytes(t, anon.encode())
	emAttr := anonCf.GetAttribute("EnclosingMethod")
	if emAttr == nil {
		t.Fatal("Expected EnclosingMethod attribute on anonymous class")
	}
	em := emAttr.AsEnclosingMethod()
	if em == nil {
		t.Fatal("Expected parsed EnclosingMethod")
	}
	if got := anonCf.ConstantPool.GetClassName(em.ClassIndex); got != "AnnotatedClass" {
		t.Errorf("EnclosingMethod class = %q, want %q", got, "AnnotatedClass")
	}
}

func TestRecordAttribute(t *testing.T) {
	c := &classBuilder{}
	p := &c.pool

	thisName := p.utf8("RecordClass")
	thisClass := p.class(thisName)
	superName := p.utf8("java/lang/Record")
	superClass := p.class(superName)

	recordName := p.utf8("Record")
	nameFieldName := p.utf8("name")
	stringDesc := p.utf8("Ljava/lang/String;")
	valueFieldName := p.utf8("value")
	intDesc := p.utf8("I")

	c.accessFlags = uint16(AccPublic) | uint16(AccFinal)
	c.thisClass = thisClass
	c.superClass = superClass

	recordBody := func() []byte {
		var buf bytes.Buffer
		buf.Write(u2(2))
		buf.Write(u2(nameFieldName))
		buf.Write(u2(stringDesc))
		buf.Write(u2(0))
		buf.Write(u2(valueFieldName))
		buf.Write(u2(intDesc))
		buf.Write(u2(0))
		return buf.Bytes()
	}

	c.attributes = [][]byte{attrBytes(recordName, recordBody())}

	cf := parseBytes(t, c.encode())
	attr := cf.GetAttribute("Record")
	if attr == nil {
		t.Fatal("Expected Record attribute")
	}
	rec := attr.AsRecord()
	if rec == nil {
		t.Fatal("Expected parsed Record")
	}
	if len(rec.Components) != 2 {
		t.Fatalf("Expected 2 record components, got %d", len(rec.Components))
	}
	names := []string{
		cf.ConstantPool.GetUtf8(rec.Components[0].NameIndex),
		cf.ConstantPool.GetUtf8(rec.Components[1].NameIndex),
	}
	if names[0] != "name" || names[1] != "value" {
		t.Errorf("Component names = %v, want [name value]", names)
	}
}

func TestPermittedSubclassesAttribute(t *testing.T) {
	c := &classBuilder{}
	p := &c.pool

	thisName := p.utf8("SealedClass")
	thisClass := p.class(thisName)
	superName := p.utf8("java/lang/Object")
	superClass := p.class(superName)

	sub1 := p.class(p.utf8("SubClass1"))
	sub2 := p.class(p.utf8("SubClass2"))
	permittedName := p.utf8("PermittedSubclasses")

	c.accessFlags = uint16(AccPublic) | uint16(AccFinal)
	c.thisClass = thisClass
	c.superClass = superClass
	c.attributes = [][]byte{attrBytes(permittedName, refList(sub1, sub2))}

	cf := parseBytes(t, c.encode())
	attr := cf.GetAttribute("PermittedSubclasses")
	if attr == nil {
		t.Fatal("Expected PermittedSubclasses attribute on sealed class")
	}
	ps := attr.AsPermittedSubclasses()
	if ps == nil || len(ps.Classes) != 2 {
		t.Fatalf("Expected 2 permitted subclasses")
	}
	hasSub1, hasSub2 := false, false
	for _, idx := range ps.Classes {
		switch cf.ConstantPool.GetClassName(idx) {
		case "SubClass1":
			hasSub1 = true
		case "SubClass2":
			hasSub2 = true
		}
	}
	if !hasSub1 || !hasSub2 {
		t.Error("Expected SubClass1 and SubClass2 in permitted subclasses")
	}
}

func TestConstantPoolAdvanced(t *testing.T) {
	c := &classBuilder{}
	p := &c.pool

	thisName := p.utf8("ConstantPoolTest")
	thisClass := p.class(thisName)
	superName := p.utf8("java/lang/Object")
	superClass := p.class(superName)

	longFieldName := p.utf8("LONG_CONST")
	longDesc := p.utf8("J")
	longValue := p.long(9223372036854775807)

	doubleFieldName := p.utf8("DOUBLE_CONST")
	doubleDesc := p.utf8("D")
	doubleValue := p.double(0x7FEFFFFFFFFFFFFF) // ~1.7976931348623157E308

	floatFieldName := p.utf8("FLOAT_CONST")
	floatDesc := p.utf8("F")
	floatValue := p.float(0x7F7FFFFF) // ~3.4028235E38

	intFieldName := p.utf8("INT_CONST")
	intDesc := p.utf8("I")
	intValue := p.integer(2147483647)

	constantValueName := p.utf8("ConstantValue")

	bootstrapMethodsName := p.utf8("BootstrapMethods")
	mhName := p.utf8("dummy")
	mhDesc := p.utf8("()V")
	nt := p.nameAndType(mhName, mhDesc)
	mref := p.methodref(thisClass, nt)

	c.accessFlags = uint16(AccPublic)
	c.thisClass = thisClass
	c.superClass = superClass

	c.fields = [][]byte{
		member(uint16(AccStatic)|uint16(AccFinal), longFieldName, longDesc,
			[][]byte{attrBytes(constantValueName, u2(longValue))}),
		member(uint16(AccStatic)|uint16(AccFinal), doubleFieldName, doubleDesc,
			[][]byte{attrBytes(constantValueName, u2(doubleValue))}),
		member(uint16(AccStatic)|uint16(AccFinal), floatFieldName, floatDesc,
			[][]byte{attrBytes(constantValueName, u2(floatValue))}),
		member(uint16(AccStatic)|uint16(AccFinal), intFieldName, intDesc,
			[][]byte{attrBytes(constantValueName, u2(intValue))}),
	}

	c.attributes = [][]byte{
		attrBytes(bootstrapMethodsName, append(u2(1), append(u2(mref), u2(0)...)...)),
	}

	cf := parseBytes(t, c.encode())

	t.Run("Long constant", func(t *testing.T) {
		field := cf.GetField("LONG_CONST")
		cv := field.GetAttribute(cf.ConstantPool, "ConstantValue").AsConstantValue()
		val, ok := cf.ConstantPool.GetLong(cv.ConstantValueIndex)
		if !ok || val != 9223372036854775807 {
			t.Errorf("Long value = %d, want 9223372036854775807", val)
		}
	})

	t.Run("Double constant", func(t *testing.T) {
		field := cf.GetField("DOUBLE_CONST")
		cv := field.GetAttribute(cf.ConstantPool, "ConstantValue").AsConstantValue()
		val, ok := cf.ConstantPool.GetDouble(cv.ConstantValueIndex)
		if !ok || val < 1.0e308 {
			t.Errorf("Double value = %e, expected around 1.7976931348623157E308", val)
		}
	})

	t.Run("Float constant", func(t *testing.T) {
		field := cf.GetField("FLOAT_CONST")
		cv := field.GetAttribute(cf.ConstantPool, "ConstantValue").AsConstantValue()
		val, ok := cf.ConstantPool.GetFloat(cv.ConstantValueIndex)
		if !ok || val < 3.0e38 {
			t.Errorf("Float value = %e, expected around 3.4028235E38", val)
		}
	})

	t.Run("Integer constant", func(t *testing.T) {
		field := cf.GetField("INT_CONST")
		cv := field.GetAttribute(cf.ConstantPool, "ConstantValue").AsConstantValue()
		val, ok := cf.ConstantPool.GetInteger(cv.ConstantValueIndex)
		if !ok || val != 2147483647 {
			t.Errorf("Integer value = %d, want 2147483647", val)
		}
	})

	t.Run("BootstrapMethods attribute", func(t *testing.T) {
		attr := cf.GetAttribute("BootstrapMethods")
		if attr == nil {
			t.Fatal("Expected BootstrapMethods attribute")
		}
		bm := attr.AsBootstrapMethods()
		if bm == nil || len(bm.BootstrapMethods) == 0 {
			t.Error("Expected at least one bootstrap method")
		}
	})

	t.Run("Constant pool entry types", func(t *testing.T) {
		tagCounts := make(map[ConstantTag]int)
		for _, entry := range cf.ConstantPool {
			if entry != nil {
				tagCounts[entry.Tag()]++
			}
		}
		requiredTags := []ConstantTag{
			ConstantUtf8, ConstantClass, ConstantMethodref,
			ConstantNameAndType,
		}
		for _, tag := range requiredTags {
			if tagCounts[tag] == 0 {
				t.Errorf("Expected at least one constant pool entry with tag %d", tag)
			}
		}
	})
}

func TestConstantPoolAccessorBoundaryConditions(t *testing.T) {
	cf := parseBytes(t, buildBasicClass().encode())

	t.Run("GetUtf8 with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetUtf8(0); result != "" {
			t.Error("Expected empty string for index 0")
		}
		if result := cf.ConstantPool.GetUtf8(65535); result != "" {
			t.Error("Expected empty string for out-of-bounds index")
		}
	})

	t.Run("GetClassName with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetClassName(0); result != "" {
			t.Error("Expected empty string for index 0")
		}
	})

	t.Run("GetNameAndType with invalid index", func(t *testing.T) {
		name, desc := cf.ConstantPool.GetNameAndType(0)
		if name != "" || desc != "" {
			t.Error("Expected empty strings for index 0")
		}
	})

	t.Run("GetString with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetString(0); result != "" {
			t.Error("Expected empty string for index 0")
		}
	})

	t.Run("GetInteger with invalid index", func(t *testing.T) {
		if _, ok := cf.ConstantPool.GetInteger(0); ok {
			t.Error("Expected false for index 0")
		}
	})

	t.Run("GetLong with invalid index", func(t *testing.T) {
		if _, ok := cf.ConstantPool.GetLong(0); ok {
			t.Error("Expected false for index 0")
		}
	})

	t.Run("GetFloat with invalid index", func(t *testing.T) {
		if _, ok := cf.ConstantPool.GetFloat(0); ok {
			t.Error("Expected false for index 0")
		}
	})

	t.Run("GetDouble with invalid index", func(t *testing.T) {
		if _, ok := cf.ConstantPool.GetDouble(0); ok {
			t.Error("Expected false for index 0")
		}
	})

	t.Run("GetFieldref with invalid index", func(t *testing.T) {
		cn, n, d := cf.ConstantPool.GetFieldref(0)
		if cn != "" || n != "" || d != "" {
			t.Error("Expected empty strings for index 0")
		}
	})

	t.Run("GetMethodref with invalid index", func(t *testing.T) {
		cn, n, d := cf.ConstantPool.GetMethodref(0)
		if cn != "" || n != "" || d != "" {
			t.Error("Expected empty strings for index 0")
		}
	})

	t.Run("GetInterfaceMethodref with invalid index", func(t *testing.T) {
		cn, n, d := cf.ConstantPool.GetInterfaceMethodref(0)
		if cn != "" || n != "" || d != "" {
			t.Error("Expected empty strings for index 0")
		}
	})

	t.Run("GetMethodHandle with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetMethodHandle(0); result != nil {
			t.Error("Expected nil for index 0")
		}
	})

	t.Run("GetMethodType with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetMethodType(0); result != "" {
			t.Error("Expected empty string for index 0")
		}
	})

	t.Run("GetDynamic with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetDynamic(0); result != nil {
			t.Error("Expected nil for index 0")
		}
	})

	t.Run("GetInvokeDynamic with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetInvokeDynamic(0); result != nil {
			t.Error("Expected nil for index 0")
		}
	})

	t.Run("GetModuleName with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetModuleName(0); result != "" {
			t.Error("Expected empty string for index 0")
		}
	})

	t.Run("GetPackageName with invalid index", func(t *testing.T) {
		if result := cf.ConstantPool.GetPackageName(0); result != "" {
			t.Error("Expected empty string for index 0")
		}
	})
}

func TestAttributeAsMethodsReturnNil(t *testing.T) {
	cf := parseBytes(t, buildBasicClass().encode())

	sourceFileAttr := cf.GetAttribute("SourceFile")
	if sourceFileAttr == nil {
		t.Fatal("Expected SourceFile attribute")
	}

	if sourceFileAttr.AsCode() != nil {
		t.Error("AsCode should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsLineNumberTable() != nil {
		t.Error("AsLineNumberTable should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsLocalVariableTable() != nil {
		t.Error("AsLocalVariableTable should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsConstantValue() != nil {
		t.Error("AsConstantValue should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsExceptions() != nil {
		t.Error("AsExceptions should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsInnerClasses() != nil {
		t.Error("AsInnerClasses should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsSignature() != nil {
		t.Error("AsSignature should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsBootstrapMethods() != nil {
		t.Error("AsBootstrapMethods should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsEnclosingMethod() != nil {
		t.Error("AsEnclosingMethod should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsSynthetic() != nil {
		t.Error("AsSynthetic should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsDeprecated() != nil {
		t.Error("AsDeprecated should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsSourceDebugExtension() != nil {
		t.Error("AsSourceDebugExtension should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsLocalVariableTypeTable() != nil {
		t.Error("AsLocalVariableTypeTable should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsMethodParameters() != nil {
		t.Error("AsMethodParameters should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsNestHost() != nil {
		t.Error("AsNestHost should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsNestMembers() != nil {
		t.Error("AsNestMembers should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsRecord() != nil {
		t.Error("AsRecord should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsPermittedSubclasses() != nil {
		t.Error("AsPermittedSubclasses should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsStackMapTable() != nil {
		t.Error("AsStackMapTable should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsRuntimeVisibleAnnotations() != nil {
		t.Error("AsRuntimeVisibleAnnotations should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsRuntimeInvisibleAnnotations() != nil {
		t.Error("AsRuntimeInvisibleAnnotations should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsRuntimeVisibleParameterAnnotations() != nil {
		t.Error("AsRuntimeVisibleParameterAnnotations should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsRuntimeInvisibleParameterAnnotations() != nil {
		t.Error("AsRuntimeInvisibleParameterAnnotations should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsRuntimeVisibleTypeAnnotations() != nil {
		t.Error("AsRuntimeVisibleTypeAnnotations should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsRuntimeInvisibleTypeAnnotations() != nil {
		t.Error("AsRuntimeInvisibleTypeAnnotations should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsAnnotationDefault() != nil {
		t.Error("AsAnnotationDefault should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsModule() != nil {
		t.Error("AsModule should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsModulePackages() != nil {
		t.Error("AsModulePackages should return nil for SourceFile attribute")
	}
	if sourceFileAttr.AsModuleMainClass() != nil {
		t.Error("AsModuleMainClass should return nil for SourceFile attribute")
	}
}

func TestConstantPoolTagMethods(t *testing.T) {
	tests := []struct {
		entry ConstantPoolEntry
		tag   ConstantTag
	}{
		{&ConstantUtf8Info{Value: "test"}, ConstantUtf8},
		{&ConstantIntegerInfo{Value: 42}, ConstantInteger},
		{&ConstantFloatInfo{Value: 3.14}, ConstantFloat},
		{&ConstantLongInfo{Value: 12345}, ConstantLong},
		{&ConstantDoubleInfo{Value: 2.718}, ConstantDouble},
		{&ConstantClassInfo{NameIndex: 1}, ConstantClass},
		{&ConstantStringInfo{StringIndex: 1}, ConstantString},
		{&ConstantFieldrefInfo{ClassIndex: 1, NameAndTypeIndex: 2}, ConstantFieldref},
		{&ConstantMethodrefInfo{ClassIndex: 1, NameAndTypeIndex: 2}, ConstantMethodref},
		{&ConstantInterfaceMethodrefInfo{ClassIndex: 1, NameAndTypeIndex: 2}, ConstantInterfaceMethodref},
		{&ConstantNameAndTypeInfo{NameIndex: 1, DescriptorIndex: 2}, ConstantNameAndType},
		{&ConstantMethodHandleInfo{ReferenceKind: RefInvokeVirtual, ReferenceIndex: 1}, ConstantMethodHandle},
		{&ConstantMethodTypeInfo{DescriptorIndex: 1}, ConstantMethodType},
		{&ConstantDynamicInfo{BootstrapMethodAttrIndex: 0, NameAndTypeIndex: 1}, ConstantDynamic},
		{&ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: 0, NameAndTypeIndex: 1}, ConstantInvokeDynamic},
		{&ConstantModuleInfo{NameIndex: 1}, ConstantModule},
		{&ConstantPackageInfo{NameIndex: 1}, ConstantPackage},
	}

	for _, tt := range tests {
		if got := tt.entry.Tag(); got != tt.tag {
			t.Errorf("Tag() = %d, want %d for %T", got, tt.tag, tt.entry)
		}
	}
}

func TestSyntheticAndBridgeMethods(t *testing.T) {
	c := buildBasicClass()
	p := &c.pool
	bridgeName := p.utf8("bridge")
	voidDesc := p.utf8("()V")
	c.methods = append(c.methods, member(uint16(AccPublic)|uint16(AccBridge)|uint16(AccSynthetic), bridgeName, voidDesc, nil))

	cf := parseBytes(t, c.encode())
	hasSyntheticOrBridge := false
	for _, method := range cf.Methods {
		if method.AccessFlags.IsSynthetic() || method.AccessFlags.IsBridge() {
			hasSyntheticOrBridge = true
			break
		}
	}
	if !hasSyntheticOrBridge {
		t.Error("Expected at least one synthetic or bridge method")
	}
}
