package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
)

const tmpl = `package scripts

import (
	"xrplay/internal/engine"

	"go.uber.org/zap"
)

type {{.Name}} struct {
	engine.BaseComponent
	Speed float32
}

func (s *{{.Name}}) Start() {
	if g := s.GetGameObject(); g != nil {
		logger("{{.Log}}").Debug("started", zap.String("object", g.Name))
	}
}

func (s *{{.Name}}) Update(deltaTime float32) {
	g := s.GetGameObject()
	if g == nil {
		return
	}
}

func init() {
	engine.RegisterScriptWithApplier("{{.Name}}", {{.Lower}}Factory, {{.Lower}}Serializer, {{.Lower}}Applier)
}

func {{.Lower}}Factory(props map[string]any) engine.Component {
	return &{{.Name}}{Speed: engine.PropFloat(props, "speed", 1)}
}

func {{.Lower}}Serializer(c engine.Component) map[string]any {
	s, ok := c.(*{{.Name}})
	if !ok {
		return nil
	}
	return map[string]any{
		"speed": s.Speed,
	}
}

func {{.Lower}}Applier(c engine.Component, propName string, value any) bool {
	s, ok := c.(*{{.Name}})
	if !ok || propName != "speed" {
		return false
	}
	s.Speed = engine.PropFloat(map[string]any{propName: value}, propName, s.Speed)
	return true
}
`

func main() {
	var dir string
	cmd := &cobra.Command{
		Use:   "newscript <ScriptName>",
		Short: "Scaffold a gameplay script that registers itself with the engine",
		Example: "  go run ./cmd/newscript PressurePlate\n" +
			"  go run ./cmd/newscript --dir internal/scripts Lever",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath, err := scaffold(dir, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s\n", outPath)
			fmt.Fprintf(out, "Script %q registered. Add it to a scene object:\n\n", args[0])
			fmt.Fprintf(out, "  - type: Script\n")
			fmt.Fprintf(out, "    name: %s\n", args[0])
			fmt.Fprintf(out, "    props: {speed: 1}\n")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "internal/scripts", "directory of the scripts package")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var errBadName = errors.New("script name must be a Go identifier starting with an uppercase letter")

// scaffold writes the script file for name into dir and returns its path.
func scaffold(dir, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	outPath := filepath.Join(dir, toSnakeCase(name)+".go")
	if _, err := os.Stat(outPath); err == nil {
		return "", fmt.Errorf("%s already exists", outPath)
	}
	if err := os.WriteFile(outPath, []byte(render(name)), 0o644); err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}
	return outPath, nil
}

func validName(name string) error {
	if name == "" || !unicode.IsUpper([]rune(name)[0]) {
		return errBadName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return errBadName
		}
	}
	return nil
}

func render(name string) string {
	lower := string(unicode.ToLower([]rune(name)[0])) + name[1:]
	content := tmpl
	content = strings.ReplaceAll(content, "{{.Name}}", name)
	content = strings.ReplaceAll(content, "{{.Lower}}", lower)
	content = strings.ReplaceAll(content, "{{.Log}}", strings.ToLower(name))
	return content
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}
