package classfile

import (
	"fmt"
	"strings"
)

// FieldType is a parsed field descriptor. Exactly one of Base and
// ClassName is set.
type FieldType struct {
	// Base is the descriptor character of a primitive type: B C D F I J S Z.
	Base       byte
	ClassName  string
	ArrayDepth int
}

func (ft FieldType) String() string {
	var name string
	if ft.ClassName != "" {
		name = InternalToSourceName(ft.ClassName)
	} else {
		name = baseTypeNames[ft.Base]
	}
	return name + strings.Repeat("[]", ft.ArrayDepth)
}

var baseTypeNames = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// MethodDescriptor is a parsed method descriptor. Return is nil for void.
type MethodDescriptor struct {
	Params []FieldType
	Return *FieldType
}

func ParseFieldDescriptor(desc string) (FieldType, error) {
	ft, n, err := parseFieldType(desc, 0)
	if err == nil && n != len(desc) {
		err = fmt.Errorf("descriptor %q: trailing characters", desc)
	}
	return ft, err
}

func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if !strings.HasPrefix(desc, "(") {
		return nil, fmt.Errorf("descriptor %q: missing (", desc)
	}
	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, n, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		md.Params = append(md.Params, ft)
		i += n
	}
	if i >= len(desc) {
		return nil, fmt.Errorf("descriptor %q: missing )", desc)
	}
	i++
	if desc[i:] == "V" {
		return md, nil
	}
	ret, n, err := parseFieldType(desc, i)
	if err != nil {
		return nil, err
	}
	if i+n != len(desc) {
		return nil, fmt.Errorf("descriptor %q: trailing characters", desc)
	}
	md.Return = &ret
	return md, nil
}

// parseFieldType parses the field type starting at desc[start] and
// returns it with the number of bytes it took.
func parseFieldType(desc string, start int) (FieldType, int, error) {
	var ft FieldType
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return ft, 0, fmt.Errorf("descriptor %q: unexpected end", desc)
	}
	if _, ok := baseTypeNames[desc[i]]; ok {
		ft.Base = desc[i]
		return ft, i - start + 1, nil
	}
	if desc[i] != 'L' {
		return ft, 0, fmt.Errorf("descriptor %q: unexpected %q at %d", desc, desc[i], i)
	}
	semicolon := strings.IndexByte(desc[i:], ';')
	if semicolon < 2 {
		return ft, 0, fmt.Errorf("descriptor %q: bad class name at %d", desc, i)
	}
	ft.ClassName = desc[i+1 : i+semicolon]
	return ft, i - start + semicolon + 1, nil
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
