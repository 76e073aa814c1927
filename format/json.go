package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/classwriter/classfile"
)

type JSONEncoder struct {
	w  io.Writer
	cf *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClass struct {
	Name       string       `json:"name"`
	SuperClass string       `json:"superClass,omitempty"`
	Interfaces []string     `json:"interfaces,omitempty"`
	Kind       string       `json:"kind"`
	Modifiers  []string     `json:"modifiers,omitempty"`
	Version    jsonVersion  `json:"version"`
	Fields     []jsonField  `json:"fields,omitempty"`
	Methods    []jsonMethod `json:"methods,omitempty"`
	Attributes []string     `json:"attributes,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonField struct {
	Name       string   `json:"name"`
	Descriptor string   `json:"descriptor"`
	Modifiers  []string `json:"modifiers,omitempty"`
}

type jsonMethod struct {
	Name       string   `json:"name"`
	Descriptor string   `json:"descriptor"`
	Modifiers  []string `json:"modifiers,omitempty"`
	HasCode    bool     `json:"hasCode"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	cf := e.cf
	data := jsonClass{
		Name:       cf.ClassName(),
		SuperClass: cf.SuperClassName(),
		Interfaces: cf.InterfaceNames(),
		Kind:       classKind(cf),
		Modifiers:  classModifiers(cf),
		Version:    jsonVersion{Major: cf.MajorVersion, Minor: cf.MinorVersion},
	}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		data.Fields = append(data.Fields, jsonField{
			Name:       f.Name(cf.ConstantPool),
			Descriptor: f.Descriptor(cf.ConstantPool),
			Modifiers:  fieldModifiers(f),
		})
	}

	for i := range cf.Methods {
		m := &cf.Methods[i]
		data.Methods = append(data.Methods, jsonMethod{
			Name:       m.Name(cf.ConstantPool),
			Descriptor: m.Descriptor(cf.ConstantPool),
			Modifiers:  methodModifiers(m),
			HasCode:    m.GetCodeAttribute(cf.ConstantPool) != nil,
		})
	}

	for i := range cf.Attributes {
		data.Attributes = append(data.Attributes, cf.ConstantPool.GetUtf8(cf.Attributes[i].NameIndex))
	}

	return data
}

func classKind(cf *classfile.ClassFile) string {
	switch {
	case cf.IsAnnotation():
		return "annotation"
	case cf.IsInterface():
		return "interface"
	case cf.IsEnum():
		return "enum"
	case cf.IsModule():
		return "module"
	default:
		return "class"
	}
}

func classModifiers(cf *classfile.ClassFile) []string {
	var mods []string
	f := cf.AccessFlags
	if f.IsPublic() {
		mods = append(mods, "public")
	}
	if f.IsFinal() {
		mods = append(mods, "final")
	}
	if f.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if f.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	return mods
}

func fieldModifiers(f *classfile.FieldInfo) []string {
	var mods []string
	switch {
	case f.IsPublic():
		mods = append(mods, "public")
	case f.IsPrivate():
		mods = append(mods, "private")
	case f.IsProtected():
		mods = append(mods, "protected")
	}
	if f.IsStatic() {
		mods = append(mods, "static")
	}
	if f.IsFinal() {
		mods = append(mods, "final")
	}
	if f.IsVolatile() {
		mods = append(mods, "volatile")
	}
	if f.IsTransient() {
		mods = append(mods, "transient")
	}
	return mods
}

func methodModifiers(m *classfile.MethodInfo) []string {
	var mods []string
	switch {
	case m.IsPublic():
		mods = append(mods, "public")
	case m.IsPrivate():
		mods = append(mods, "private")
	case m.IsProtected():
		mods = append(mods, "protected")
	}
	if m.IsStatic() {
		mods = append(mods, "static")
	}
	if m.IsFinal() {
		mods = append(mods, "final")
	}
	if m.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if m.IsSynchronized() {
		mods = append(mods, "synchronized")
	}
	if m.IsNative() {
		mods = append(mods, "native")
	}
	return mods
}
