package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
)

//go:embed templates/*.tmpl
var templates embed.FS

// scaffold maps template files to their place in a new project.
var scaffold = map[string]string{
	"templates/logo.yml.tmpl":  "logo.yml",
	"templates/main.logo.tmpl": filepath.Join("src", "main.logo"),
	"templates/gitignore.tmpl": ".gitignore",
}

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Scaffold a new Logo project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		fmt.Printf("↪ scaffolding new project %q ...\n", name)
		cobra.CheckErr(scaffoldProject(name, filepath.Base(name)))
		fmt.Printf("✔︎ created %s (try: logo run %s)\n", name, filepath.Join(name, "src", "main.logo"))
	},
}

func scaffoldProject(dir, name string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s already exists", dir)
	}
	data := struct{ Name string }{Name: name}
	for src, dst := range scaffold {
		tmpl, err := template.ParseFS(templates, src)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, dst)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := tmpl.Execute(f, data); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
