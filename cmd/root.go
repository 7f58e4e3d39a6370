package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/schemadoc"
	"github.com/reoring/bounded/sequence"
	"github.com/reoring/bounded/sweep"
)

// errNotBounded makes `check` exit non-zero after printing its report.
var errNotBounded = errors.New("schema is not bounded")

// Execute runs the CLI root command
func Execute() {
	root, err := newRootCmd(os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, error) {
	cfg, err := loadEnv()
	if err != nil {
		return nil, err
	}
	var (
		logLevel string
		sf       schemaFlags
	)
	root := &cobra.Command{
		Use:          "bounded",
		Short:        "Boundedness checks and unit-hypercube sampling for schema documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", logLevel)
			}
			logrus.SetLevel(level)
			logrus.SetOutput(errOut)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&sf.pointer, "pointer", "", "JSON Pointer of the schema inside the document (e.g. /components/schemas/Config)")
	pf.StringVar(&sf.name, "name", "", "Schema name (defaults to title, CRD kind or pointer token)")
	pf.StringVar(&sf.crdKind, "crd-kind", "", "Import the CRD with this spec.names.kind from a multi-document bundle")
	pf.StringVar(&sf.overrides, "overrides", "", "Override file mapping dotted paths to {ge, le, gt, lt, default}")
	pf.BoolVar(&sf.strict, "strict", false, "Reject constants: every field must be bounded on its own")

	root.AddCommand(
		newCheckCmd(&sf),
		newDimsCmd(&sf),
		newSampleCmd(&sf, cfg),
		newExportCmd(&sf),
	)
	return root, nil
}

func newCheckCmd(sf *schemaFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report whether every field is bounded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, opt, err := sf.load(args[0])
			if err != nil {
				return err
			}
			if path, ok := bounded.FirstUnbounded(s, opt); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not bounded: %s\n", s.Name, path)
				return errNotBounded
			}
			dims, err := bounded.ModelDimensions(s, opt)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: bounded (%d dimensions)\n", s.Name, dims)
			return nil
		},
	}
}

func newDimsCmd(sf *schemaFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dims FILE",
		Short: "Print the number of unit values one sample consumes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, opt, err := sf.load(args[0])
			if err != nil {
				return err
			}
			dims, err := bounded.ModelDimensions(s, opt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dims)
			return nil
		},
	}
}

func newSampleCmd(sf *schemaFlags, cfg envConfig) *cobra.Command {
	var (
		n       int
		method  string
		seed    int64
		skip    int
		workers int
		format  string
	)
	c := &cobra.Command{
		Use:   "sample FILE",
		Short: "Print one instance per point of a unit-hypercube sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (json, yaml)", format)
			}
			s, opt, err := sf.load(args[0])
			if err != nil {
				return err
			}
			dims, err := bounded.ModelDimensions(s, opt)
			if err != nil {
				return err
			}
			gen, err := sequence.New(sequence.Method(method), dims, seed)
			if err != nil {
				return err
			}
			if corners, ok := gen.(*sequence.Corners); ok && !cmd.Flags().Changed("count") {
				n = corners.Len()
			}
			logrus.Infof("sampling %s: %d points, method=%s, dims=%d", s.Name, n, method, dims)
			samples, err := sweep.Run(cmd.Context(), sweep.Config{
				Schema: s, Generator: gen, N: n, Skip: skip, Workers: workers, Opt: opt,
			})
			if err != nil {
				return err
			}
			return writeSamples(cmd.OutOrStdout(), samples, format)
		},
	}
	fl := c.Flags()
	fl.IntVarP(&n, "count", "n", 1, "Number of samples (corners defaults to all 2^d corners)")
	fl.StringVar(&method, "method", cfg.Method, "Point sequence (sobol, halton, uniform, corners)")
	fl.Int64Var(&seed, "seed", 42, "Seed for the uniform method")
	fl.IntVar(&skip, "skip", 0, "Number of leading sequence points to discard")
	fl.IntVar(&workers, "workers", cfg.Workers, "Parallel workers (0 uses GOMAXPROCS)")
	fl.StringVar(&format, "format", cfg.Format, "Output format (json, yaml)")
	return c
}

func newExportCmd(sf *schemaFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Print the imported schema as normalized JSON Schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := sf.load(args[0])
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(schemadoc.Export(s), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}

// writeSamples prints JSON lines, or a YAML stream with one document per sample.
func writeSamples(w io.Writer, samples []sweep.Sample, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, s := range samples {
			if err := enc.Encode(s.Object); err != nil {
				return err
			}
		}
		return enc.Close()
	}
	for _, s := range samples {
		b, err := json.Marshal(s.Object)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, string(b)); err != nil {
			return err
		}
	}
	return nil
}
