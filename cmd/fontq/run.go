package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fontset/config"
	"fontset/css"
	"fontset/descriptor"
	"fontset/face"
	"fontset/resolver"
	"fontset/state"
)

func runParse(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return errors.New("expected exactly two arguments: KIND VALUE")
	}
	kind, value := cmd.Args().Get(0), cmd.Args().Get(1)

	switch strings.ToLower(kind) {
	case "style":
		st, err := descriptor.ParseStyle(value)
		if err != nil {
			return err
		}
		fmt.Printf("style: %s\n", st)
	case "weight":
		r, err := descriptor.ParseWeight(value)
		if err != nil {
			return err
		}
		fmt.Printf("weight: %s\n", r)
	case "stretch":
		r, err := descriptor.ParseStretch(value)
		if err != nil {
			return err
		}
		fmt.Printf("stretch: %s\n", r)
	default:
		return fmt.Errorf("unknown descriptor kind %q, expected style, weight or stretch", kind)
	}
	return nil
}

func requestedDescriptor(cmd *cli.Command) descriptor.Descriptor {
	return descriptor.Descriptor{
		Style:   cmd.String("style"),
		Weight:  cmd.String("weight"),
		Stretch: cmd.String("stretch"),
	}
}

// seedFromStylesheets registers every @font-face of the given files, in file
// order, into a fresh in-memory set.
func seedFromStylesheets(ctx context.Context, log *zap.Logger, files []string) (*face.MemorySet, error) {
	parser := css.NewParser(log)
	set := face.NewMemorySet()

	for _, fname := range files {
		data, err := os.ReadFile(fname)
		if err != nil {
			return nil, fmt.Errorf("unable to read stylesheet '%s': %w", fname, err)
		}
		sheet := parser.Parse(data, fname)
		for _, w := range sheet.Warnings {
			log.Warn("Stylesheet oddity", zap.String("stylesheet", fname), zap.String("warning", w))
		}
		for _, url := range sheet.Imports {
			log.Info("Ignoring @import, fetch layer not wired into this tool", zap.String("stylesheet", fname), zap.String("url", url))
		}
		for _, f := range sheet.Faces() {
			if _, err := set.Add(ctx, f); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func printFace(f *face.Face) {
	fmt.Printf("matched face %s\n", f.ID)
	fmt.Printf("  family:  %s\n", f.Family)
	if f.Source != "" {
		fmt.Printf("  source:  %s\n", f.Source)
	}
	for _, d := range []struct{ name, val string }{
		{"style", f.Style}, {"weight", f.Weight}, {"stretch", f.Stretch},
	} {
		if d.val != "" {
			fmt.Printf("  %s:  %s\n", d.name, d.val)
		}
	}
	fmt.Printf("  status:  %s\n", f.Status)
}

func runFind(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("expected at least one stylesheet to scan")
	}
	set, err := seedFromStylesheets(ctx, env.Log, cmd.Args().Slice())
	if err != nil {
		return err
	}

	r := resolver.New(set, nil, env.Log)
	m, err := r.Require(ctx, cmd.String("family"), requestedDescriptor(cmd))
	if err != nil {
		return err
	}
	printFace(m)
	return nil
}

func runLoad(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	dbPath := cmd.String("db")
	if dbPath == "" {
		dbPath = env.Cfg.Store.Path
	}
	if dbPath == "" {
		return errors.New("no face store configured, use --db or the store.path configuration key")
	}

	store, err := face.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if er := store.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close face store: %w", er))
		}
	}()

	family, d := cmd.String("family"), requestedDescriptor(cmd)
	r := resolver.New(store, face.NewFileLoader(env.Log), env.Log)

	source := cmd.String("source")
	if source == "" {
		// resolve-only when no source is offered
		m, err := r.Require(ctx, family, d)
		if err != nil {
			return err
		}
		printFace(m)
		return nil
	}

	m, err := r.FindOrLoad(ctx, family, source, d)
	if err != nil {
		return err
	}
	printFace(m)
	return nil
}

func runDumpConfig(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	cfg := env.Cfg
	if cmd.Bool("default") {
		cfg = config.Default()
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return err
	}

	out := os.Stdout
	if fname := cmd.Args().Get(0); len(fname) > 0 {
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
