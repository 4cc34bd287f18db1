package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Field struct {
	Name   string
	Column string
}

type Struct struct {
	Name   string
	File   string
	Fields []Field

	OriginalFieldsList []*ast.Field
	resolving          bool
}

// fieldLines lists "Struct.Field<TAB>column" for every exported struct field
// found in the Go files matching glob.
func fieldLines(glob, tagKey string, convert converter, logger *zap.Logger) ([]string, error) {
	files, err := filepath.Glob(glob)
	if err != nil {
		return nil, errors.Wrapf(err, "can't expand %q", glob)
	}

	structs := make(map[string]*Struct)
	for _, file := range files {
		parsed, err := ParseGoFile(file)
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed go file", zap.String("file", file), zap.Int("structs", len(parsed)))

		for _, st := range parsed {
			structs[st.Name] = st
		}
	}

	names := lo.Keys(structs)
	slices.Sort(names)

	var lines []string
	for _, name := range names {
		st := structs[name]
		if !ast.IsExported(st.Name) {
			continue
		}
		st.ResolveFields(structs, tagKey, convert)
		for _, f := range st.Fields {
			lines = append(lines, fmt.Sprintf("%s.%s\t%s", st.Name, f.Name, f.Column))
		}
	}

	return lines, nil
}

// ParseGoFile collects the struct types declared in filename. Unexported
// ones are kept since their fields are promoted when embedded.
func ParseGoFile(filename string) ([]*Struct, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrapf(err, "can't parse %s", filename)
	}

	var structs []*Struct
	ast.Inspect(node, func(n ast.Node) bool {
		decl, ok := n.(*ast.GenDecl)
		if !ok || decl.Tok != token.TYPE {
			return true
		}
		for _, spec := range decl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if structType, ok := typeSpec.Type.(*ast.StructType); ok {
				structs = append(structs, &Struct{
					Name:               typeSpec.Name.Name,
					File:               filename,
					OriginalFieldsList: structType.Fields.List,
				})
			}
		}

		return true
	})

	return structs, nil
}

// ResolveFields fills Fields, flattening embedded structs known to all.
// Fields declared on s shadow embedded fields with the same name.
func (s *Struct) ResolveFields(all map[string]*Struct, tagKey string, convert converter) {
	if len(s.Fields) > 0 || s.resolving {
		return
	}
	s.resolving = true
	defer func() { s.resolving = false }()

	firstLevelNames := lo.FlatMap(s.OriginalFieldsList, func(field *ast.Field, _ int) []string {
		return lo.Map(field.Names, func(name *ast.Ident, _ int) string {
			return name.Name
		})
	})

	var fields []Field
	for _, field := range s.OriginalFieldsList {
		if len(field.Names) == 0 {
			embedded, found := all[embeddedTypeName(field.Type)]
			if !found {
				continue
			}
			embedded.ResolveFields(all, tagKey, convert)

			fields = append(fields, lo.Filter(embedded.Fields, func(f Field, _ int) bool {
				return !lo.Contains(firstLevelNames, f.Name)
			})...)
			continue
		}

		tag := tagName(field.Tag, tagKey)
		if tag == "-" {
			continue
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			column := tag
			if column == "" {
				column, _ = convert(name.Name)
			}
			fields = append(fields, Field{Name: name.Name, Column: column})
		}
	}
	s.Fields = fields
}

// embeddedTypeName returns the local type name of an embedded field, or ""
// for types declared in another package.
func embeddedTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedTypeName(t.X)
	default:
		return ""
	}
}

// tagName extracts the name part of a struct tag,
// e.g. `json:"name,omitempty"` -> "name"
func tagName(tag *ast.BasicLit, key string) string {
	if tag == nil {
		return ""
	}

	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return ""
	}
	value, ok := reflect.StructTag(raw).Lookup(key)
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(value, ",")

	return name
}
