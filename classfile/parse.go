package classfile

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// reader is sticky: after the first error every read returns zero.
type reader struct {
	r   io.Reader
	err error
}

func (r *reader) u1() uint8 {
	var buf [1]byte
	r.read(buf[:])
	return buf[0]
}

func (r *reader) u2() uint16 {
	var buf [2]byte
	r.read(buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) u4() uint32 {
	var buf [4]byte
	r.read(buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) bytes(n int) []byte {
	buf := make([]byte, n)
	r.read(buf)
	return buf
}

func (r *reader) read(buf []byte) {
	if r.err == nil {
		_, r.err = io.ReadFull(r.r, buf)
	}
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class file: %w", err)
	}
	defer f.Close()
	cf, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	if magic := r.u4(); r.err == nil && magic != Magic {
		return nil, fmt.Errorf("invalid magic number 0x%X", magic)
	}
	cf := &ClassFile{MinorVersion: r.u2(), MajorVersion: r.u2()}
	if r.err != nil {
		return nil, fmt.Errorf("read header: %w", r.err)
	}

	cp, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}

	cf.AccessFlags = AccessFlags(r.u2())
	thisClass, superClass := r.u2(), r.u2()
	interfaces := make([]uint16, r.u2())
	for i := range interfaces {
		interfaces[i] = r.u2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("read class info: %w", r.err)
	}
	if cf.Name, err = cp.ClassName(thisClass); err != nil {
		return nil, fmt.Errorf("this class: %w", err)
	}
	if superClass != 0 {
		if cf.SuperName, err = cp.ClassName(superClass); err != nil {
			return nil, fmt.Errorf("super class: %w", err)
		}
	}
	for _, idx := range interfaces {
		name, err := cp.ClassName(idx)
		if err != nil {
			return nil, fmt.Errorf("interface: %w", err)
		}
		cf.Interfaces = append(cf.Interfaces, name)
	}

	if cf.Fields, err = readMembers(r, cp); err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}
	if cf.Methods, err = readMembers(r, cp); err != nil {
		return nil, fmt.Errorf("read methods: %w", err)
	}
	if _, err := readAttributes(r, cp, nil); err != nil {
		return nil, fmt.Errorf("read class attributes: %w", err)
	}
	return cf, nil
}

func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.u2()
	if r.err != nil {
		return nil, fmt.Errorf("read constant pool count: %w", r.err)
	}
	cp := make(ConstantPool, count)
	for i := 1; i < int(count); i++ {
		tag := ConstantTag(r.u1())
		switch tag {
		case ConstantUtf8:
			cp[i] = constant{tag: tag, text: decodeModifiedUtf8(r.bytes(int(r.u2())))}
		case ConstantClass:
			cp[i] = constant{tag: tag, index: r.u2()}
		default:
			size, ok := operandSizes[tag]
			if !ok {
				if r.err != nil {
					break
				}
				return nil, fmt.Errorf("constant pool entry %d: unknown tag %d", i, tag)
			}
			r.bytes(size)
			cp[i] = constant{tag: tag}
			if tag == ConstantLong || tag == ConstantDouble {
				i++
			}
		}
		if r.err != nil {
			return nil, fmt.Errorf("read constant pool entry %d: %w", i, r.err)
		}
	}
	return cp, nil
}

func readMembers(r *reader, cp ConstantPool) ([]Member, error) {
	members := make([]Member, r.u2())
	for i := range members {
		m := &members[i]
		m.AccessFlags = AccessFlags(r.u2())
		nameIndex, descIndex := r.u2(), r.u2()
		if r.err != nil {
			return nil, r.err
		}
		var err error
		if m.Name, err = cp.Utf8(nameIndex); err != nil {
			return nil, err
		}
		if m.Descriptor, err = cp.Utf8(descIndex); err != nil {
			return nil, err
		}
		if m.Exceptions, err = readAttributes(r, cp, m); err != nil {
			return nil, fmt.Errorf("%s: %w", m.Name, err)
		}
	}
	return members, r.err
}

// readAttributes skips an attribute table. For members it returns the
// class names listed by an Exceptions attribute.
func readAttributes(r *reader, cp ConstantPool, m *Member) ([]string, error) {
	var exceptions []string
	count := r.u2()
	for i := 0; i < int(count) && r.err == nil; i++ {
		nameIndex := r.u2()
		info := r.bytes(int(r.u4()))
		if r.err != nil {
			break
		}
		name, err := cp.Utf8(nameIndex)
		if err != nil {
			return nil, err
		}
		if m == nil || name != "Exceptions" {
			continue
		}
		ar := &reader{r: bytes.NewReader(info)}
		n := ar.u2()
		for j := 0; j < int(n); j++ {
			class, err := cp.ClassName(ar.u2())
			if ar.err != nil {
				return nil, fmt.Errorf("Exceptions attribute: %w", ar.err)
			}
			if err != nil {
				return nil, err
			}
			exceptions = append(exceptions, class)
		}
	}
	return exceptions, r.err
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8, in which NUL is
// two bytes and supplementary characters are surrogate pairs.
func decodeModifiedUtf8(b []byte) string {
	var sb strings.Builder
	var high rune
	for i := 0; i < len(b); {
		var r rune
		switch {
		case b[i]&0x80 == 0:
			r = rune(b[i])
			i++
		case b[i]&0xE0 == 0xC0 && i+1 < len(b):
			r = rune(b[i]&0x1F)<<6 | rune(b[i+1]&0x3F)
			i += 2
		case b[i]&0xF0 == 0xE0 && i+2 < len(b):
			r = rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			i += 3
		default:
			r = rune(b[i])
			i++
		}
		switch {
		case r >= 0xD800 && r <= 0xDBFF:
			high = r
			continue
		case r >= 0xDC00 && r <= 0xDFFF && high != 0:
			r = 0x10000 + (high-0xD800)<<10 + (r - 0xDC00)
		}
		high = 0
		sb.WriteRune(r)
	}
	return sb.String()
}

// ReadJar parses the top-level classes of a jar or zip archive, sorted
// by name. Nested classes and module descriptors are skipped.
func ReadJar(path string) ([]*ClassFile, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	var classes []*ClassFile
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || filepath.Ext(f.Name) != ".class" {
			continue
		}
		base := filepath.Base(f.Name)
		if strings.ContainsRune(base, '$') || base == "module-info.class" || base == "package-info.class" {
			continue
		}
		cf, err := readZipEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%s!%s: %w", path, f.Name, err)
		}
		classes = append(classes, cf)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

func readZipEntry(f *zip.File) (*ClassFile, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc)
}
