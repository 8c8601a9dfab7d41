package main

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

const registryTemplate = `// Code generated by registrygen. DO NOT EDIT.

package {{ .PackageName }}

import (
	"github.com/wirebox/wirebox"
)

// RegisterTypes registers every annotated type of this package.
func RegisterTypes(reg *wirebox.TypeRegistry) error {
{{- range .Constructors }}
	if _, err := wirebox.RegisterType[{{ .ResultType }}](reg, {{ .FnName }}{{ paramOpts .ParamNames }}); err != nil {
		return err
	}
{{- end }}
{{- range .Interfaces }}
	wirebox.RegisterInterface[{{ .TypeName }}](reg)
{{- end }}
	return nil
}
`

func generate(outputPath string, scanned scanResult) error {
	tmpl, err := template.New("registry").Funcs(template.FuncMap{
		"paramOpts": renderParamOpts,
	}).Parse(registryTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse registry template: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	defer func() { _ = out.Close() }()

	return tmpl.Execute(out, struct {
		PackageName  string
		Constructors []constructorDef
		Interfaces   []interfaceDef
	}{
		PackageName:  scanned.packageName,
		Constructors: scanned.constructors,
		Interfaces:   scanned.interfaces,
	})
}

func renderParamOpts(names []string) string {
	if len(names) == 0 {
		return ""
	}
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf(", wirebox.WithParamNames(%s)", strings.Join(quoted, ", "))
}
