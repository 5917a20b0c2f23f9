// Package generator provides the command converting property declarations
// into typed configuration classes.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/goaux/contextvalue"
	"github.com/goaux/stacktrace/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/takumakei/typed-extconf-gen/classgen"
	"github.com/takumakei/typed-extconf-gen/execpipe"
	"github.com/takumakei/typed-extconf-gen/gosource"
	"github.com/takumakei/typed-extconf-gen/phpsource"
	"github.com/takumakei/typed-extconf-gen/propfile"
)

// Flag names, also the keys of the settings file.
const (
	flagIn                 = "in"
	flagOut                = "out"
	flagExtension          = "extension"
	flagClass              = "class"
	flagLang               = "lang"
	flagPackage            = "package"
	flagAttributeNamespace = "attribute-namespace"
	flagFormatter          = "formatter"
	flagVerbose            = "verbose"
)

const stdio = "-"

// Main runs the command and exits with status 1 on failure.
func Main(ctx context.Context, config Config) {
	if err := Execute(ctx, config, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err.Error())
		os.Exit(1)
	}
}

// Execute runs the command with args.
func Execute(ctx context.Context, config Config, args []string) error {
	cmd := NewCommand(config)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(contextvalue.With(ctx, &config))
}

// NewCommand builds the root command. Its context must carry the *Config
// through contextvalue, as Execute does.
func NewCommand(config Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     config.Use,
		Short:   config.Short,
		Long:    render(config.Long),
		Version: config.Version,
		Args:    cobra.NoArgs,
		RunE:    run,

		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.SortFlags = false
	pf.StringP(flagIn, "i", config.DefaultInput, "Input `filename.yaml`, - for stdin")
	pf.StringP(flagExtension, "e", "", "Extension `key`, overrides the document")
	pf.StringP(flagClass, "c", "", "Class `name`, overrides the document")
	pf.BoolP(flagVerbose, "v", false, "Log progress to stderr")

	fl := cmd.Flags()
	fl.SortFlags = false
	fl.StringP(flagOut, "o", config.DefaultOutput, "Output `filename`, - for stdout")
	fl.StringP(flagLang, "l", defaultString(config.DefaultLanguage, string(LangPHP)), "Output `language`: php or go")
	fl.StringP(flagPackage, "p", "", "Go `package` name (lang go)")
	fl.String(flagAttributeNamespace, defaultString(config.DefaultAttributeNamespace, classgen.DefaultAttributeNamespace), "Dotted `namespace` of the mapping attributes")
	fl.StringP(flagFormatter, "F", config.DefaultFormatter, "Pipe the output through `command`")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.MarkPersistentFlagFilename(flagIn, "yaml", "yml", "json")
	cmd.MarkFlagFilename(flagOut, "php", "go")
	cmd.RegisterFlagCompletionFunc(flagLang, func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return []cobra.Completion{string(LangPHP), string(LangGo)}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc(flagPackage, func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(newInspectCommand())
	return cmd
}

func render(usage string) string {
	if isTTY(os.Stdout) {
		r, err := glamour.NewTermRenderer(
			glamour.WithEnvironmentConfig(),
			glamour.WithWordWrap(100),
		)
		if err == nil { // if NO error
			if s, err := r.Render(usage); err == nil { // if NO error
				return s
			}
		}
	}
	return usage
}

func run(cmd *cobra.Command, _ []string) error {
	config, ok := contextvalue.From[*Config](cmd.Context())
	if !ok {
		panic("never")
	}
	v, err := settings(cmd, config)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), v.GetBool(flagVerbose))

	cin := cmd.InOrStdin()
	if v.GetString(flagIn) == "" && isTTY(cin) {
		return pflag.ErrHelp
	}

	model, err := readModel(cmd, v)
	if err != nil {
		return err
	}
	logSkipped(logger, model.Request.Properties)

	gen := classgen.New(builder(model), classgen.WithAttributeNamespace(model.Gen.AttributeNamespace))
	src, err := gen.GenerateRequest(model.Request)
	if err != nil {
		return err
	}
	logger.Debug("generated",
		"class", model.Request.ClassName,
		"namespace", classgen.DeriveNamespace(model.Request.ExtensionKey),
		"language", model.Output.Language)

	if f := model.Output.Formatter; f != "" {
		if err := execpipe.CheckCommand(f); err != nil {
			return fmt.Errorf("formatter %q was not found, consider using `--formatter=`: %w", f, err)
		}
		if src, err = execpipe.Filter(cmd.Context(), src, f); err != nil {
			return err
		}
	}

	if model.Output.Path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), src)
		return err
	}
	if err := stacktrace.Trace(os.WriteFile(model.Output.Path, []byte(src), 0o644)); err != nil {
		return err
	}
	logger.Info("wrote", "file", model.Output.Path)
	reportWritten(cmd.ErrOrStderr(), model)
	return nil
}

// readModel reads the input document and resolves every setting of the run.
func readModel(cmd *cobra.Command, v *viper.Viper) (*Model, error) {
	input, err := readInput(cmd.InOrStdin(), v.GetString(flagIn))
	if err != nil {
		return nil, err
	}
	lang := Language(strings.ToLower(v.GetString(flagLang)))
	if lang != LangPHP && lang != LangGo {
		return nil, fmt.Errorf("unsupported language %q (supported: php, go)", lang)
	}
	model := &Model{
		Gen: Gen{
			Name:               cmd.Root().Name(),
			AttributeNamespace: v.GetString(flagAttributeNamespace),
		},
		Input:   *input,
		Request: request(input.Document, v),
		Output: Output{
			Language:  lang,
			Package:   v.GetString(flagPackage),
			Formatter: v.GetString(flagFormatter),
		},
	}
	model.Output.Path = outputPath(v.GetString(flagOut), input.Path, model.Request.ClassName, lang)
	if lang == LangGo && model.Output.Package == "" && model.Output.Path != "" {
		pkg, err := readPackageName(filepath.Dir(model.Output.Path))
		if err != nil {
			return nil, err
		}
		model.Output.Package = pkg
	}
	return model, nil
}

func readInput(cin io.Reader, path string) (*Input, error) {
	if path == "" || path == stdio {
		doc, err := propfile.Decode(cin)
		return &Input{Path: "(stdin)", Document: doc}, err
	}
	abs, err := stacktrace.Trace2(filepath.Abs(path))
	if err != nil {
		return nil, err
	}
	doc, err := propfile.Load(abs)
	if err != nil {
		return nil, stacktrace.Trace(err)
	}
	return &Input{Path: abs, Document: doc}, nil
}

// request merges the document with the extension and class flags, flags
// taking precedence.
func request(doc *propfile.Document, v *viper.Viper) classgen.Request {
	req := doc.Request()
	if s := v.GetString(flagExtension); s != "" {
		req.ExtensionKey = s
	}
	if s := v.GetString(flagClass); s != "" {
		req.ClassName = s
	}
	return req
}

// outputPath returns the file to write, empty for stdout. Without an
// explicit output, stdin input goes to stdout and file input to a file named
// after the class next to the input.
func outputPath(out, input, className string, lang Language) string {
	switch {
	case out == stdio:
		return ""
	case out != "":
		return out
	case input == "(stdin)" || className == "":
		return ""
	}
	name := className + ".php"
	if lang == LangGo {
		name = strings.ToLower(className) + ".go"
	}
	return filepath.Join(filepath.Dir(input), name)
}

func builder(model *Model) classgen.BuilderFunc {
	if model.Output.Language == LangGo {
		return gosource.Factory(
			gosource.WithPackage(model.Output.Package),
			gosource.WithHeader(fmt.Sprintf("Code generated by %s. DO NOT EDIT.", model.Gen.Name)),
		)
	}
	return phpsource.NewBuilder
}

// settings layers flags over environment variables over the settings file.
func settings(cmd *cobra.Command, config *Config) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(config.configName())
	v.SetConfigType("yaml")
	for _, p := range config.configPaths() {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(config.envPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}
	return v, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logSkipped reports the properties generation leaves out; the generator
// itself drops them silently.
func logSkipped(logger *slog.Logger, props []classgen.PropertySpec) {
	for i, p := range props {
		if !p.Valid() {
			logger.Warn("skipping property without string name and type", "index", i, "name", p[classgen.KeyName])
		}
	}
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func isTTY(io any) bool {
	if f, ok := io.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}
