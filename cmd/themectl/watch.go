package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	theme "github.com/davidroman0O/firm-theme"
	"github.com/davidroman0O/firm-theme/dom"
	"github.com/davidroman0O/firm-theme/internal/firm"
)

// script is a replayable sequence of document mutations
type script struct {
	// RootProperties are custom properties on :root before mounting
	RootProperties map[string]string `yaml:"rootProperties"`
	Steps          []step            `yaml:"steps"`
}

// step is one mutation batch: every change in it is delivered together
type step struct {
	Name    string            `yaml:"name"`
	Changes []change          `yaml:"changes"`
	Theme   *theme.Descriptor `yaml:"theme"`
	Hydrate bool              `yaml:"hydrate"`
}

type change struct {
	Target string            `yaml:"target"`
	Set    map[string]string `yaml:"set"`
	Remove []string          `yaml:"remove"`
}

func newWatchCmd(root *rootFlags) *cobra.Command {
	var server bool

	cmd := &cobra.Command{
		Use:   "watch SCRIPT",
		Short: "Replay scripted mutations and print every published theme value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			s, err := loadScript(args[0])
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), cfg, root.logger(), s, server)
		},
	}

	cmd.Flags().BoolVar(&server, "server", false, "start in server execution; a step with hydrate: true switches to the client")
	return cmd
}

func loadScript(path string) (script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return script{}, fmt.Errorf("reading script %s: %w", path, err)
	}
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return script{}, fmt.Errorf("parsing script %s: %w", path, err)
	}
	return s, nil
}

// switchableEnvironment lets a script hydrate a server-rendered provider
type switchableEnvironment struct {
	client bool
	doc    dom.Document
}

func (e *switchableEnvironment) IsClient() bool { return e.client }

func (e *switchableEnvironment) Document() dom.Document {
	if !e.client {
		return nil
	}
	return e.doc
}

func replay(w io.Writer, cfg theme.Config, logger *slog.Logger, s script, server bool) error {
	doc := dom.NewMemory()
	for name, value := range s.RootProperties {
		doc.SetRootProperty(name, value)
	}
	env := &switchableEnvironment{client: !server, doc: doc}

	var err error
	dispose := firm.Root(func(owner *firm.Owner) firm.CleanUp {
		p := theme.Mount(owner, env, theme.Props{}, theme.WithConfig(cfg), theme.WithLogger(logger))
		fmt.Fprintf(w, "mounted: %s\n", summary(p.Value()))

		current := ""
		unsubscribe := p.Subscribe(func(v theme.Value) {
			fmt.Fprintf(w, "%s: %s\n", current, summary(v))
		})
		defer unsubscribe()

		for i, st := range s.Steps {
			current = st.Name
			if current == "" {
				current = fmt.Sprintf("step %d", i+1)
			}
			if err = applyStep(doc, env, p, st); err != nil {
				return nil
			}
			doc.Flush()
		}
		return nil
	})
	dispose()
	return err
}

func applyStep(doc *dom.Memory, env *switchableEnvironment, p *theme.Provider, st step) error {
	if st.Hydrate {
		env.client = true
		p.Hydrate()
	}
	if st.Theme != nil {
		p.SetTheme(st.Theme)
	}

	for _, c := range st.Changes {
		var el dom.Element
		switch c.Target {
		case "root", "html", "":
			el = doc.DocumentElement()
		case "body":
			el = doc.Body()
		default:
			return fmt.Errorf("step %q: unknown target %q (want root or body)", st.Name, c.Target)
		}
		for _, name := range sortedNames(c.Set) {
			el.SetAttribute(name, c.Set[name])
		}
		for _, name := range c.Remove {
			el.RemoveAttribute(name)
		}
	}
	return nil
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
