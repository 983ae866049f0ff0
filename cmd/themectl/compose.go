package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	theme "github.com/davidroman0O/firm-theme"
	"github.com/davidroman0O/firm-theme/dom"
	"github.com/davidroman0O/firm-theme/internal/firm"
)

type composeFlags struct {
	tokensPath     string
	themeName      string
	className      string
	classTokenPath string
	format         string
	server         bool
}

func newComposeCmd(root *rootFlags) *cobra.Command {
	flags := &composeFlags{}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Print the theme value a provider publishes",
		Example: `  themectl compose --theme dark
  themectl compose --tokens overrides.yaml --format yaml
  themectl compose --class ocean-theme --class-tokens ocean.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			value, err := compose(cfg, root.logger(), flags)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flags.format, value)
		},
	}

	cmd.Flags().StringVar(&flags.tokensPath, "tokens", "", "YAML tokens exposed on the document root")
	cmd.Flags().StringVar(&flags.themeName, "theme", "", "data-theme asserted on the document root")
	cmd.Flags().StringVar(&flags.className, "class", "", "user theme class name")
	cmd.Flags().StringVar(&flags.classTokenPath, "class-tokens", "", "YAML tokens carried by the user theme")
	cmd.Flags().StringVarP(&flags.format, "format", "o", formatSwatch, "output format: swatch or yaml")
	cmd.Flags().BoolVar(&flags.server, "server", false, "compose as during server rendering")
	return cmd
}

func compose(cfg theme.Config, logger *slog.Logger, flags *composeFlags) (theme.Value, error) {
	doc := dom.NewMemory()

	if flags.tokensPath != "" {
		tokens, err := theme.LoadTokens(flags.tokensPath)
		if err != nil {
			return theme.Value{}, err
		}
		for name, value := range theme.TokenProperties(tokens, cfg.TokenPrefix) {
			doc.SetRootProperty(name, value)
		}
	}
	if flags.themeName != "" {
		doc.DocumentElement().SetAttribute(dom.AttrDataTheme, flags.themeName)
	}

	var props theme.Props
	if flags.className != "" {
		descriptor := &theme.Descriptor{ClassName: flags.className}
		if flags.classTokenPath != "" {
			tokens, err := theme.LoadTokens(flags.classTokenPath)
			if err != nil {
				return theme.Value{}, err
			}
			descriptor.Tokens = tokens
		}
		props.Theme = descriptor
	}

	env := theme.ClientEnvironment(doc)
	if flags.server {
		env = theme.ServerEnvironment()
	}

	var value theme.Value
	dispose := firm.Root(func(owner *firm.Owner) firm.CleanUp {
		p := theme.Mount(owner, env, props, theme.WithConfig(cfg), theme.WithLogger(logger))
		doc.Flush()
		value = p.Value()
		return nil
	})
	dispose()

	return value, nil
}
