package cmd

import (
	"github.com/spf13/pflag"

	"github.com/lethe222/lottie-preview-huanfu/internal/flags/enum"
	"github.com/lethe222/lottie-preview-huanfu/internal/normalisation"
	"github.com/lethe222/lottie-preview-huanfu/internal/render"
)

const (
	// TargetKeyFlag names an object field that is rewritten when it holds null. Repeatable.
	TargetKeyFlag = "target-key"
	// PolicyFlag selects what happens to a null target field.
	PolicyFlag = "policy"
	// ReplacementFlag is the JSON value stored by the replace policy.
	ReplacementFlag = "replacement"
	// ReplacementDefault is the zero vector used for spatial tangents.
	ReplacementDefault = "[0,0,0]"
	// IndentFlag switches to indented output using the given string per level.
	IndentFlag = "indent"
	// CanonicalFlag writes RFC 8785 canonical JSON.
	CanonicalFlag = "canonical"
	// ReportFlag selects how the summary of processed files is printed.
	ReportFlag = "report"
	// QuietFlag suppresses the summary and the completion message.
	QuietFlag = "quiet"
	// SuffixFlag is added to the input file name to derive an output path.
	SuffixFlag = "suffix"
)

// RegisterNormalisationFlags registers the flags shared by all commands that
// normalise documents.
func RegisterNormalisationFlags(flags *pflag.FlagSet) {
	flags.StringSliceP(TargetKeyFlag, "k", normalisation.DefaultTargetKeys,
		"object field that is rewritten when its value is null (repeatable)")
	enum.Var(flags, PolicyFlag, []enum.Option{
		{Name: normalisation.PolicyDelete, Help: "remove the field from its object"},
		{Name: normalisation.PolicyReplace, Help: "store the --" + ReplacementFlag + " value instead"},
	}, "what to do with a null target field")
	flags.String(ReplacementFlag, ReplacementDefault, "JSON value stored by the replace policy, implies --policy replace")
	flags.String(IndentFlag, "", "indent nested levels of the output with this string instead of writing compact JSON")
	flags.Bool(CanonicalFlag, false, "write RFC 8785 canonical JSON (sorts object keys)")
	enum.VarP(flags, ReportFlag, "o", []enum.Option{
		{Name: render.FormatTable, Help: "one row per document, with totals for several documents"},
		{Name: render.FormatJSON, Help: "list of summaries as indented JSON"},
		{Name: render.FormatYAML, Help: "list of summaries as YAML"},
		{Name: render.FormatNone, Help: "print nothing"},
	}, "format of the summary printed after processing")
	flags.BoolP(QuietFlag, "q", false, "do not print the summary or the completion message")
}
