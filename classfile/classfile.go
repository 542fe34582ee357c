// Package classfile reads the declaration-level contents of compiled Java
// classes: the class name, supertypes, access flags, and the names and
// descriptors of fields and methods. Bytecode and most attributes are
// skipped.
package classfile

import "strings"

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  AccessFlags
	// Names are in internal form, e.g. java/lang/Object.
	Name       string
	SuperName  string
	Interfaces []string
	Fields     []Member
	Methods    []Member
}

// Member is a field or method.
type Member struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	// Exceptions lists the checked exceptions a method declares.
	Exceptions []string
}

// SourceName returns the dotted name of the class.
func (cf *ClassFile) SourceName() string {
	return InternalToSourceName(cf.Name)
}

// Package returns the dotted package name, or "" for the unnamed package.
func (cf *ClassFile) Package() string {
	if i := strings.LastIndexByte(cf.Name, '/'); i >= 0 {
		return InternalToSourceName(cf.Name[:i])
	}
	return ""
}

// SimpleName returns the class name without its package.
func (cf *ClassFile) SimpleName() string {
	return cf.Name[strings.LastIndexByte(cf.Name, '/')+1:]
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

// IsNested reports whether the class is a member, local or anonymous
// class, which javac names Outer$Inner.
func (cf *ClassFile) IsNested() bool {
	return strings.ContainsRune(cf.SimpleName(), '$')
}

func (cf *ClassFile) Field(name string) *Member {
	for i := range cf.Fields {
		if cf.Fields[i].Name == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// Method finds a method by name and, if descriptor is not empty, by
// descriptor.
func (cf *ClassFile) Method(name, descriptor string) *Member {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name && (descriptor == "" || cf.Methods[i].Descriptor == descriptor) {
			return &cf.Methods[i]
		}
	}
	return nil
}

func (m *Member) IsConstructor() bool {
	return m.Name == "<init>"
}

func (m *Member) IsStaticInitializer() bool {
	return m.Name == "<clinit>"
}
