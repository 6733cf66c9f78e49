package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/observability"
	"github.com/mcbanners/banners/pkg/pipeline"
	"github.com/mcbanners/banners/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file path
	format string // png or jpeg; inferred from output when empty
	id     string // value for the banner type's identifier key
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [type] [key=value...]",
		Short: "Render a banner to an image file",
		Long: `Render a banner to an image file.

Settings are given as key=value pairs. Identifier keys start with an
underscore (for example _author_id or _server_host); everything else is a
style setting such as background=ocean or hide_rating=true. Without a type,
an interactive picker is shown.`,
		Example: `  banners render spigot_author --id 1
  banners render minecraft_server _server_host=play.example.com background=forest -o server.jpg
  banners render modrinth_resource _resource_id=sodium hide_version=true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, settings, err := c.bannerArgs(args, opts.id)
			if err != nil {
				return err
			}
			format, err := outputFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), t, settings, format, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <type>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), jpeg")
	cmd.Flags().StringVar(&opts.id, "id", "", "value for the banner type's identifier key")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, t backend.BannerType, settings map[string]string, format sink.Format, output string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close(ctx)

	res, err := withSpinner(ctx, "Rendering "+strings.ToLower(string(t))+"...", func() (*pipeline.Result, error) {
		return runner.Render(ctx, t, settings, format)
	})
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.ToLower(string(t)) + "." + format.Extension()
	}
	return writeResult(res, output)
}

// withSpinner runs produce while a stage spinner follows its pipeline events.
func withSpinner(ctx context.Context, message string, produce func() (*pipeline.Result, error)) (*pipeline.Result, error) {
	spinner := newStageSpinner(ctx, os.Stderr, message)
	observability.SetPipelineHooks(spinner)
	defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})

	spinner.Start()
	res, err := produce()
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return nil, err
		}
		spinner.Fail(errors.UserMessage(err))
		return nil, err
	}
	spinner.Stop()
	return res, nil
}

func writeResult(res *pipeline.Result, output string) error {
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(output, res.Image, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %s", res.Resolved.Type)
	printFile(output)
	printStats(res.Stats, len(res.Image))
	return nil
}

// bannerArgs turns positional arguments into a banner type and settings.
// With no arguments the type comes from the interactive picker.
func (c *CLI) bannerArgs(args []string, id string) (backend.BannerType, map[string]string, error) {
	var t backend.BannerType
	if len(args) == 0 {
		picked, err := pickBannerType()
		if err != nil {
			return "", nil, err
		}
		t = picked
	} else {
		parsed, err := backend.ParseBannerType(args[0])
		if err != nil {
			return "", nil, errors.Wrap(errors.ErrCodeInvalidType, err, "unknown banner type %q (see 'banners types')", args[0])
		}
		t, args = parsed, args[1:]
	}

	settings, err := parseSettings(args)
	if err != nil {
		return "", nil, err
	}
	if id != "" {
		keys := t.RequiredKeys()
		if len(keys) == 0 {
			return "", nil, errors.New(errors.ErrCodeInvalidSettings, "%s takes no identifier", t)
		}
		settings[keys[0]] = id
	}
	return t, settings, nil
}

// parseSettings parses key=value pairs. Later pairs win.
func parseSettings(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidSettings, "setting %q is not key=value", arg)
		}
		out[k] = v
	}
	return out, nil
}

// outputFormat picks the format from the flag, then the output extension.
func outputFormat(flag, output string) (sink.Format, error) {
	if flag != "" {
		return sink.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return sink.ParseFormat(ext)
	}
	return sink.PNG, nil
}

// pickBannerType runs the interactive banner type picker.
func pickBannerType() (backend.BannerType, error) {
	final, err := tea.NewProgram(NewTypePickerModel(backend.BannerTypes()), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("type picker: %w", err)
	}
	m, ok := final.(TypePickerModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no banner type selected")
	}
	return m.Selected, nil
}
