package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"psnreval/evaluator"
	"psnreval/scanner"
)

// DefaultLogFile is where --debug writes when --logfile is not given
const DefaultLogFile = "psnreval.log"

// Arguments holds the parsed command line
type Arguments struct {
	Reference string
	Target    string

	Extensions       []string
	Recursive        bool
	Quiet            bool
	Delimiter        string
	DropSuffixRef    int
	DropSuffixTarget int
	dropTargetSet    bool
	IgnoreCase       bool

	Debug    bool
	LogFile  string
	Database string

	Help bool
}

// UsageError is a command line the parser rejected
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

type optionKind int

const (
	boolOption optionKind = iota
	valueOption
	listOption
)

type longOption struct {
	name string
	kind optionKind
	help string
}

var longOptions = []longOption{
	{"help", boolOption, "show this help message and exit"},
	{"extensions", listOption, "image extensions to include (default: .png .jpg .jpeg .bmp)"},
	{"recursive", boolOption, "scan directories recursively"},
	{"quiet", boolOption, "only print the average PSNR"},
	{"match-delimiter", valueOption, "delimiter used when dropping suffix segments (default: _)"},
	{"match-drop-suffix-ref", valueOption, "number of trailing segments to drop from reference stems (default: 0)"},
	{"match-drop-suffix-target", valueOption, "number of trailing segments to drop from target stems (default: same as ref)"},
	{"match-ignore-case", boolOption, "match filenames case-insensitively"},
	{"debug", boolOption, "write a debug log"},
	{"logfile", valueOption, "debug log path (default: " + DefaultLogFile + ")"},
	{"database", valueOption, "record the run and its pair results in this SQLite file"},
}

// lookupOption resolves a long option name, accepting any unique prefix
func lookupOption(name string) (*longOption, error) {
	var candidates []*longOption
	for i := range longOptions {
		opt := &longOptions[i]
		if opt.name == name {
			return opt, nil
		}
		if strings.HasPrefix(opt.name, name) {
			candidates = append(candidates, opt)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, usageErrorf("unrecognized arguments: --%s", name)
	case 1:
		return candidates[0], nil
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = "--" + c.name
	}
	return nil, usageErrorf("ambiguous option: --%s could match %s", name, strings.Join(names, ", "))
}

// looksLikeOption reports whether arg would be taken as an option rather
// than a value. Negative numbers and a lone dash are values.
func looksLikeOption(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(arg, 64); err == nil {
		return false
	}
	return true
}

// ParseArguments parses the command line, without the program name.
// Positionals may appear anywhere; "--" ends option parsing.
func ParseArguments(argv []string) (*Arguments, error) {
	args := &Arguments{
		Extensions: append([]string(nil), scanner.DefaultExtensions...),
		Delimiter:  "_",
		LogFile:    DefaultLogFile,
	}

	var positionals []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		if arg == "--" {
			positionals = append(positionals, argv[i+1:]...)
			break
		}
		if arg == "-h" {
			args.Help = true
			continue
		}
		if !looksLikeOption(arg) {
			positionals = append(positionals, arg)
			continue
		}
		if !strings.HasPrefix(arg, "--") {
			return nil, usageErrorf("unrecognized arguments: %s", arg)
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		opt, err := lookupOption(name)
		if err != nil {
			return nil, err
		}

		switch opt.kind {
		case boolOption:
			if hasValue {
				return nil, usageErrorf("argument --%s: ignored explicit argument '%s'", opt.name, value)
			}
			if err := args.setFlag(opt.name); err != nil {
				return nil, err
			}

		case valueOption:
			if !hasValue {
				if i+1 >= len(argv) || looksLikeOption(argv[i+1]) {
					return nil, usageErrorf("argument --%s: expected one argument", opt.name)
				}
				i++
				value = argv[i]
			}
			if err := args.setValue(opt.name, value); err != nil {
				return nil, err
			}

		case listOption:
			values := []string{}
			if hasValue {
				values = append(values, value)
			} else {
				for i+1 < len(argv) && !looksLikeOption(argv[i+1]) {
					i++
					values = append(values, argv[i])
				}
			}
			args.Extensions = values
		}
	}

	if args.Help {
		return args, nil
	}

	switch {
	case len(positionals) == 0:
		return nil, usageErrorf("the following arguments are required: reference, target")
	case len(positionals) == 1:
		return nil, usageErrorf("the following arguments are required: target")
	case len(positionals) > 2:
		return nil, usageErrorf("unrecognized arguments: %s", strings.Join(positionals[2:], " "))
	}
	args.Reference, args.Target = positionals[0], positionals[1]

	if !args.dropTargetSet {
		args.DropSuffixTarget = args.DropSuffixRef
	}
	return args, nil
}

func (a *Arguments) setFlag(name string) error {
	switch name {
	case "help":
		a.Help = true
	case "recursive":
		a.Recursive = true
	case "quiet":
		a.Quiet = true
	case "match-ignore-case":
		a.IgnoreCase = true
	case "debug":
		a.Debug = true
	default:
		return usageErrorf("unrecognized arguments: --%s", name)
	}
	return nil
}

func (a *Arguments) setValue(name, value string) error {
	switch name {
	case "match-delimiter":
		a.Delimiter = value
	case "match-drop-suffix-ref":
		n, err := parseCount(name, value)
		if err != nil {
			return err
		}
		a.DropSuffixRef = n
	case "match-drop-suffix-target":
		n, err := parseCount(name, value)
		if err != nil {
			return err
		}
		a.DropSuffixTarget = n
		a.dropTargetSet = true
	case "logfile":
		a.LogFile = value
	case "database":
		a.Database = value
	default:
		return usageErrorf("unrecognized arguments: --%s", name)
	}
	return nil
}

func parseCount(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, usageErrorf("argument --%s: invalid int value: '%s'", name, value)
	}
	return n, nil
}

// BuildOptions turns parsed arguments into evaluator options
func BuildOptions(args *Arguments) evaluator.Options {
	return evaluator.Options{
		ReferenceDir:     args.Reference,
		TargetDir:        args.Target,
		Extensions:       args.Extensions,
		Recursive:        args.Recursive,
		Quiet:            args.Quiet,
		Delimiter:        args.Delimiter,
		DropSuffixRef:    args.DropSuffixRef,
		DropSuffixTarget: args.DropSuffixTarget,
		IgnoreCase:       args.IgnoreCase,
	}
}

// ProgramName returns the name the program was invoked as
func ProgramName() string {
	return filepath.Base(os.Args[0])
}

// PrintUsage outputs the one-line usage summary
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [-h] [--extensions [EXTENSIONS ...]] [--recursive] [--quiet]\n", ProgramName())
	fmt.Fprintf(w, "       [--match-delimiter MATCH_DELIMITER] [--match-drop-suffix-ref N]\n")
	fmt.Fprintf(w, "       [--match-drop-suffix-target N] [--match-ignore-case]\n")
	fmt.Fprintf(w, "       [--debug] [--logfile PATH] [--database PATH]\n")
	fmt.Fprintf(w, "       reference target\n")
}

// PrintHelp outputs the usage summary and a description of every argument
func PrintHelp(w io.Writer) {
	PrintUsage(w)
	fmt.Fprintf(w, "\nCompute PSNR between image pairs in two directories.\n")
	fmt.Fprintf(w, "\npositional arguments:\n")
	fmt.Fprintf(w, "  %-28s %s\n", "reference", "reference image directory")
	fmt.Fprintf(w, "  %-28s %s\n", "target", "directory of images to evaluate")
	fmt.Fprintf(w, "\noptions:\n")
	for _, opt := range longOptions {
		name := "--" + opt.name
		if opt.name == "help" {
			name = "-h, --help"
		}
		fmt.Fprintf(w, "  %-28s %s\n", name, opt.help)
	}
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s data/gt results/sr --match-drop-suffix-target 1\n", ProgramName())
	fmt.Fprintf(w, "  %s ref out --extensions png tif --recursive --quiet\n", ProgramName())
}

// PrintUsageError outputs a rejected command line the way argparse does
func PrintUsageError(w io.Writer, err error) {
	PrintUsage(w)
	fmt.Fprintf(w, "%s: error: %v\n", ProgramName(), err)
}
