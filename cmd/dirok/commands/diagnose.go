package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dirok/internal/diagnosis/service"
	"dirok/internal/inference/models"
	"dirok/internal/knowledgebase"
)

const (
	formatAuto = "auto"
	formatText = "text"
	formatJSON = "json"
)

type diagnoseOptions struct {
	input  string
	kbPath string
	format string
}

func newDiagnoseCmd(root *rootOptions) *cobra.Command {
	opts := &diagnoseOptions{}
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose a single request file",
		Long: `Run the full pipeline (inference, risk adjustment, summary) on a request
file and print the result. Nothing is persisted.

With --format auto (the default) a terminal gets the text report and a pipe
gets JSON.

Examples:
  dirok diagnose --input request.yaml
  dirok diagnose --input request.json --kb custom-kb.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to the request file (YAML or JSON)")
	cmd.Flags().StringVar(&opts.kbPath, "kb", "", "Path to a knowledge base file (default: built-in)")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatAuto, "Output format (auto, text, json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runDiagnose(cmd *cobra.Command, root *rootOptions, opts *diagnoseOptions) error {
	out := cmd.OutOrStdout()
	format, err := resolveFormat(opts.format, out)
	if err != nil {
		return err
	}

	profile, observations, err := loadRequest(opts.input)
	if err != nil {
		return err
	}

	kb, err := knowledgebase.Load(opts.kbPath)
	if err != nil {
		return err
	}

	svc, err := service.New(kb, nil, service.WithLogger(root.logger()))
	if err != nil {
		return err
	}

	rec, err := svc.Diagnose(cmd.Context(), profile, observations)
	if err != nil {
		return err
	}

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec.Summary)
	}
	return writeSummary(out, rec.Summary)
}

func resolveFormat(format string, out io.Writer) (string, error) {
	switch format {
	case formatText, formatJSON:
		return format, nil
	case formatAuto:
		if isTerminal(out) {
			return formatText, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want auto, text or json)", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// reportStyles colours the text report. The renderer inspects out, so pipes
// and buffers get plain text.
type reportStyles struct {
	heading lipgloss.Style
	risk    map[models.RiskLevel]lipgloss.Style
	urgent  lipgloss.Style
}

func newReportStyles(out io.Writer) reportStyles {
	r := lipgloss.NewRenderer(out)
	return reportStyles{
		heading: r.NewStyle().Bold(true),
		risk: map[models.RiskLevel]lipgloss.Style{
			models.RiskLow:      r.NewStyle().Foreground(lipgloss.Color("#10B981")),
			models.RiskModerate: r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
			models.RiskHigh:     r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
			models.RiskVeryHigh: r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		},
		urgent: r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}
}

func writeSummary(out io.Writer, s models.Summary) error {
	st := newReportStyles(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if s.Profile.Name != "" {
		fmt.Fprintln(tw, st.heading.Render("Diagnosis for "+s.Profile.Name))
	}
	level := st.risk[s.RiskFactor.Level].Render(string(s.RiskFactor.Level))
	fmt.Fprintf(tw, "Risk level:\t%s (score %d, multiplier %.4f, %.1f pack-years)\n",
		level, s.RiskFactor.Score, s.RiskFactor.Multiplier, s.RiskFactor.PackYears)
	if s.Primary == nil {
		fmt.Fprintln(tw, "Primary diagnosis:\tnone (no matching symptoms)")
	} else {
		fmt.Fprintf(tw, "Primary diagnosis:\t%s\t%.2f%%\t%s\n",
			s.Primary.Disease.Name, s.Primary.Percentage, s.Primary.Interpretation.Description)
	}
	for _, d := range s.Secondary {
		fmt.Fprintf(tw, "Also possible:\t%s\t%.2f%%\t%s\n", d.Disease.Name, d.Percentage, d.Interpretation.Description)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, st.heading.Render("Recommendations"))
	for _, r := range s.Recommendations {
		title := r.Title
		if r.Priority == models.PriorityUrgent {
			title = st.urgent.Render(title)
		}
		fmt.Fprintf(tw, "  [%s]\t%s\t%s\n", r.Priority, title, r.Description)
	}
	return tw.Flush()
}
