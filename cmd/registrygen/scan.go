package main

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

const (
	typeAnnotationTag      = "wirebox:type"
	interfaceAnnotationTag = "wirebox:interface"
)

type (
	constructorDef struct {
		FnName     string
		ResultType string
		ParamNames []string
	}

	interfaceDef struct {
		TypeName string
	}

	scanResult struct {
		packageName  string
		constructors []constructorDef
		interfaces   []interfaceDef
	}
)

func (r *scanResult) merge(other scanResult) {
	if r.packageName == "" {
		r.packageName = other.packageName
	}
	r.constructors = append(r.constructors, other.constructors...)
	r.interfaces = append(r.interfaces, other.interfaces...)
}

func scanPackage(logger *zerolog.Logger, pkg *packages.Package) scanResult {
	var result scanResult
	for _, file := range pkg.Syntax {
		result.merge(scanFile(logger, pkg.Fset, file))
	}
	return result
}

func scanFile(logger *zerolog.Logger, fset *token.FileSet, file *ast.File) scanResult {
	result := scanResult{packageName: file.Name.Name}

	ast.Inspect(file, func(n ast.Node) bool {
		switch decl := n.(type) {
		case *ast.FuncDecl:
			if decl.Doc == nil || !strings.Contains(decl.Doc.Text(), typeAnnotationTag) {
				return true
			}
			if decl.Type.Results == nil || len(decl.Type.Results.List) == 0 {
				logger.Warn().Str("func", decl.Name.Name).Msg("Annotated constructor returns nothing, skipping")
				return true
			}

			logger.Debug().Str("func", decl.Name.Name).Msg("=> Found constructor")
			result.constructors = append(result.constructors, constructorDef{
				FnName:     decl.Name.Name,
				ResultType: renderExpr(fset, decl.Type.Results.List[0].Type),
				ParamNames: paramNames(decl.Type.Params),
			})

		case *ast.GenDecl:
			if decl.Tok != token.TYPE || decl.Doc == nil || !strings.Contains(decl.Doc.Text(), interfaceAnnotationTag) {
				return true
			}
			for _, spec := range decl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, isInterface := typeSpec.Type.(*ast.InterfaceType); !isInterface {
					logger.Warn().Str("type", typeSpec.Name.Name).Msg("Annotated type is not an interface, skipping")
					continue
				}
				logger.Debug().Str("type", typeSpec.Name.Name).Msg("=> Found interface")
				result.interfaces = append(result.interfaces, interfaceDef{TypeName: typeSpec.Name.Name})
			}
		}
		return true
	})

	return result
}

func paramNames(params *ast.FieldList) []string {
	if params == nil {
		return nil
	}
	var names []string
	for _, field := range params.List {
		if len(field.Names) == 0 {
			names = append(names, "")
			continue
		}
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

func renderExpr(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return ""
	}
	return buf.String()
}
