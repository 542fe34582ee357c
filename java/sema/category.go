package sema

import "strings"

// Category classifies declarations. Lookups take a Category mask and only
// match declarations whose category is in the mask.
type Category uint

const (
	CategoryPackage Category = 1 << iota
	CategoryClass
	CategoryInterface
	CategoryField
	CategoryMethod
	CategoryConstructor
	CategoryLocal
	CategoryFormal
)

const (
	CategoryType     = CategoryClass | CategoryInterface
	CategoryMember   = CategoryField | CategoryMethod | CategoryConstructor
	CategoryVariable = CategoryField | CategoryLocal | CategoryFormal
	CategoryAny      = CategoryPackage | CategoryType | CategoryMember | CategoryLocal | CategoryFormal
)

var categoryNames = []struct {
	cat  Category
	name string
}{
	{CategoryPackage, "package"},
	{CategoryClass, "class"},
	{CategoryInterface, "interface"},
	{CategoryField, "field"},
	{CategoryMethod, "method"},
	{CategoryConstructor, "constructor"},
	{CategoryLocal, "local"},
	{CategoryFormal, "parameter"},
}

// Matches reports whether c and mask have a category in common.
func (c Category) Matches(mask Category) bool {
	return c&mask != 0
}

func (c Category) String() string {
	switch c {
	case CategoryAny:
		return "any"
	case CategoryType:
		return "type"
	case CategoryMember:
		return "member"
	case CategoryVariable:
		return "variable"
	}
	var parts []string
	for _, entry := range categoryNames {
		if c&entry.cat != 0 {
			parts = append(parts, entry.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " or ")
}
