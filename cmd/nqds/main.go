package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal/config"
	"nqdsheat/internal/container"
	"nqdsheat/internal/errors"
	"nqdsheat/internal/present"
	"nqdsheat/internal/session"
	"nqdsheat/internal/testkit"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:          "nqds",
		Short:        "Aggregate NQDS misfit exports into heatmap matrices",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newViewCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newController loads configuration and the input file into a fresh session
func newController(path string) (*session.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	return c.Session, nil
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [file|-]",
		Short: "Show iterations, wells, attributes and model range of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, err := newController(firstArg(args))
			if err != nil {
				return err
			}
			iterations, err := controller.Iterations()
			if err != nil {
				return err
			}
			summary, err := controller.Summary()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			panel := present.Filters(summary)
			selector := present.Iterations(iterations)
			fmt.Fprintf(out, "Iterations: %v (default %v)\n", selector.Options, selector.Selected)
			fmt.Fprintf(out, "Models:     %d..%d\n", panel.Models.Min, panel.Models.Max)
			fmt.Fprintf(out, "Wells:      %s\n", strings.Join(panel.Wells.Options, ", "))
			fmt.Fprintf(out, "Attributes: %s\n", strings.Join(panel.Attributes.Options, ", "))
			return nil
		},
	}
}

func newViewCmd() *cobra.Command {
	var (
		presetPath string
		kind       string
		mode       string
		order      string
		iterations []int
		transposed bool
		wells      []string
		attributes []string
		models     string
	)

	cmd := &cobra.Command{
		Use:   "view [file|-]",
		Short: "Build and print one pivoted view per selected iteration",
		Long: `Build pivoted views of an NQDS file.

Example: nqds view runs.txt --kind wells-models --mode avg --iteration 1 --models 1:50 --order descend`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset := &ViewPreset{}
			if presetPath != "" {
				var err error
				if preset, err = LoadPreset(presetPath); err != nil {
					return err
				}
			}
			applyFlags(cmd, preset, kind, mode, order, iterations, transposed)

			req, err := preset.Request()
			if err != nil {
				return err
			}

			controller, err := newController(firstArg(args))
			if err != nil {
				return err
			}
			if err := defaultFilters(controller, &req); err != nil {
				return err
			}
			if err := addFlagFilters(&req, wells, attributes, models); err != nil {
				return err
			}

			selected := preset.Iterations
			if len(selected) == 0 {
				first, err := controller.DefaultIteration()
				if err != nil {
					return err
				}
				selected = []int{first}
			}

			views, err := controller.BuildViews(cmd.Context(), req, selected)
			if err != nil {
				return err
			}
			for i, m := range views {
				printHeatmap(cmd.OutOrStdout(), selected[i], present.Describe(m, ""))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&presetPath, "preset", "", "YAML view preset")
	cmd.Flags().StringVar(&kind, "kind", "", "View kind: wells-models, attributes-models, wells-attributes")
	cmd.Flags().StringVar(&mode, "mode", "", "Reduction: min, max, avg")
	cmd.Flags().StringVar(&order, "order", "", "Row order: default, ascend, descend")
	cmd.Flags().IntSliceVar(&iterations, "iteration", nil, "Iterations to build (default: first loaded)")
	cmd.Flags().BoolVar(&transposed, "transpose", false, "Swap rows and columns")
	cmd.Flags().StringSliceVar(&wells, "wells", nil, "Wells to keep")
	cmd.Flags().StringSliceVar(&attributes, "attributes", nil, "Attributes to keep")
	cmd.Flags().StringVar(&models, "models", "", "Inclusive model range lo:hi")

	return cmd
}

// applyFlags overrides preset fields with flags the user set explicitly
func applyFlags(cmd *cobra.Command, p *ViewPreset, kind, mode, order string, iterations []int, transposed bool) {
	flags := cmd.Flags()
	if flags.Changed("kind") {
		p.Kind = kind
	}
	if flags.Changed("mode") {
		p.Mode = mode
	}
	if flags.Changed("order") {
		p.Order = order
	}
	if flags.Changed("iteration") {
		p.Iterations = iterations
	}
	if flags.Changed("transpose") {
		p.Transposed = transposed
	}
}

// defaultFilters starts from the full filter panel of the loaded data and
// overlays the request's own filters on it.
func defaultFilters(controller *session.Controller, req *session.ViewRequest) error {
	summary, err := controller.Summary()
	if err != nil {
		return err
	}
	sel, err := present.Filters(summary).Selection()
	if err != nil {
		return err
	}
	for axis, f := range req.Filters {
		sel[axis] = f
	}
	req.Filters = sel
	return nil
}

func addFlagFilters(req *session.ViewRequest, wells, attributes []string, models string) error {
	if len(wells) == 0 && len(attributes) == 0 && models == "" {
		return nil
	}
	if req.Filters == nil {
		req.Filters = misfit.Selection{}
	}
	if len(wells) > 0 {
		req.Filters[misfit.AxisWells] = misfit.ExactSet(wells...)
	}
	if len(attributes) > 0 {
		req.Filters[misfit.AxisAttributes] = misfit.ExactSet(attributes...)
	}
	if models != "" {
		r, err := parseModelRange(models)
		if err != nil {
			return err
		}
		req.Filters[misfit.AxisModels] = r
	}
	return nil
}

func parseModelRange(s string) (misfit.AxisFilter, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return misfit.AxisFilter{}, fmt.Errorf("model range must look like lo:hi, got %q", s)
	}
	l, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return misfit.AxisFilter{}, fmt.Errorf("invalid model range start %q", lo)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return misfit.AxisFilter{}, fmt.Errorf("invalid model range end %q", hi)
	}
	r, err := misfit.NewModelRange(l, h)
	if err != nil {
		return misfit.AxisFilter{}, errors.FromDomain(err)
	}
	return r, nil
}

func newSampleCmd() *cobra.Command {
	var (
		output      string
		seed        int64
		models      int
		iterations  []int
		missingRate float64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic NQDS file",
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := testkit.DefaultNQDSConfig()
			gc.Seed = seed
			gc.Models = models
			gc.Iterations = iterations
			gc.MissingRate = missingRate
			gen := testkit.NewNQDSGenerator(gc)

			if output == "" || output == "-" {
				_, err := gen.WriteTo(cmd.OutOrStdout())
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			if _, err := gen.WriteTo(f); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			log.Printf("[sample] Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	cmd.Flags().IntVar(&models, "models", 10, "Number of models per iteration")
	cmd.Flags().IntSliceVar(&iterations, "iterations", []int{0, 1}, "Iteration ids to generate")
	cmd.Flags().Float64Var(&missingRate, "missing-rate", 0, "Probability of dropping a record")

	return cmd
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
