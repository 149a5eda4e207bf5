package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teranos/stackgrid/am"
	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/extract"
	"github.com/teranos/stackgrid/grid"
	"github.com/teranos/stackgrid/instance"
	"github.com/teranos/stackgrid/layout"
	"github.com/teranos/stackgrid/logger"
	"github.com/teranos/stackgrid/palette"
	"github.com/teranos/stackgrid/render"
)

// loadConfig loads the configuration cascade, applies command flags on top
// and validates the result. The cached config is copied, never mutated.
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	loaded, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	cfg := *loaded

	flags := cmd.Flags()
	if flags.Changed("signature") {
		cfg.Instance.Signature, _ = flags.GetString("signature")
	}
	if flags.Changed("strict") {
		cfg.Extract.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("format") {
		cfg.Render.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		cfg.Render.Output, _ = flags.GetString("output")
	}
	cfg.Render.Format = strings.ToLower(cfg.Render.Format)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &cfg, nil
}

// stackAtoms loads an instance and returns the atoms of the stack signature
func stackAtoms(cfg *am.Config, path string) (*instance.Instance, []instance.Atom, error) {
	inst, err := instance.Load(path)
	if err != nil {
		return nil, nil, err
	}
	sig, err := inst.Signature(cfg.Instance.Signature)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "instance %s", path)
	}
	return inst, sig.Atoms(), nil
}

// plan loads an instance and lays out every stack in it
func plan(cfg *am.Config, path string) (*layout.Result, error) {
	inst, atoms, err := stackAtoms(cfg, path)
	if err != nil {
		return nil, err
	}

	logger.Infow("Loaded instance",
		logger.FieldFile, path,
		logger.FieldSignature, cfg.Instance.Signature,
		logger.FieldCount, len(atoms))

	ctx := layout.Context{
		Grid:    layout.GridConfigFor(cfg.Grid, len(atoms)),
		Palette: palette.New(cfg.Palette.Tech, cfg.Palette.Quality),
		Logger:  logger.ComponentLogger("layout"),
		Trace:   logger.TraceEnabled(),
	}
	return layout.Plan(ctx, atoms, extract.NewResolver(inst, cfg.Extract.Strict)), nil
}

// draw places a planned layout on a grid and renders it to w
func draw(w io.Writer, res *layout.Result, format string) error {
	surface, err := render.SurfaceFor(format)
	if err != nil {
		return err
	}

	g, err := grid.New(res.Config)
	if err != nil {
		return err
	}
	if err := layout.Apply(g, res); err != nil {
		return errors.Wrap(err, "failed to apply layout")
	}

	stage := render.NewStage()
	stage.Add(g)
	stage.Record(res)
	return stage.Render(w, surface)
}

// renderInstance runs the whole pipeline, writing to cfg.Render.Output or
// stdout when no output is configured
func renderInstance(cfg *am.Config, path string, stdout io.Writer) (*layout.Result, error) {
	res, err := plan(cfg, path)
	if err != nil {
		return nil, err
	}

	if cfg.Render.Output == "" {
		return res, draw(stdout, res, cfg.Render.Format)
	}
	return res, writeFileAtomic(cfg.Render.Output, func(w io.Writer) error {
		return draw(w, res, cfg.Render.Format)
	})
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place, so watchers of the output never see a partial file
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}
