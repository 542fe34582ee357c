package classfile

import "fmt"

// constant is a constant pool entry. Only UTF-8 text and class references
// are kept; other entries are recorded by tag so indexes stay aligned.
type constant struct {
	tag   ConstantTag
	text  string
	index uint16
}

// ConstantPool is indexed from 1; index 0 and the slot after each long or
// double constant are unused.
type ConstantPool []constant

func (cp ConstantPool) entry(index uint16, tag ConstantTag) (constant, error) {
	if index == 0 || int(index) >= len(cp) {
		return constant{}, fmt.Errorf("constant pool index %d out of range", index)
	}
	if c := cp[index]; c.tag == tag {
		return c, nil
	}
	return constant{}, fmt.Errorf("constant pool entry %d has tag %d, want %d", index, cp[index].tag, tag)
}

// Utf8 returns the text of a CONSTANT_Utf8 entry.
func (cp ConstantPool) Utf8(index uint16) (string, error) {
	c, err := cp.entry(index, ConstantUtf8)
	return c.text, err
}

// ClassName returns the internal name a CONSTANT_Class entry refers to.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	c, err := cp.entry(index, ConstantClass)
	if err != nil {
		return "", err
	}
	return cp.Utf8(c.index)
}
