package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bware/jimpl/internal/cli"
	"github.com/bware/jimpl/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("jimpl", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	var (
		jarFlag        = flags.Bool("jar", false, "Compile the generated source and package it into a jar")
		sourcePathFlag = flags.String("sourcepath", "", "Source roots to resolve types against (path-list separated, defaults to .)")
		javacFlag      = flags.String("javac", "", "Compiler executable used in jar mode (defaults to javac)")
		configFlag     = flags.String("config", "", "Path to a jimpl.toml configuration file")
		verboseFlag    = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag      = flags.Bool("quiet", false, "Only show errors")
	)

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jimpl [options] <qualified-type-name> <output-path>\n\n")
		fmt.Fprintf(os.Stderr, "Java Stub Implementation Generator\n")
		fmt.Fprintf(os.Stderr, "Generates a compilable <Type>Impl class for an abstract class or interface.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  qualified-type-name    Fully-qualified name of the subject, e.g. com.example.Service\n")
		fmt.Fprintf(os.Stderr, "  output-path            Directory for the generated source, or the jar file in -jar mode\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  jimpl com.example.Service ./out                  # Generate ./out/com/example/ServiceImpl.java\n")
		fmt.Fprintf(os.Stderr, "  jimpl -jar com.example.Service ./service.jar     # Generate, compile and package\n")
		fmt.Fprintf(os.Stderr, "  jimpl -sourcepath src%cvendor com.example.Service ./out\n", os.PathListSeparator)
	}

	if err := flags.Parse(args); err != nil {
		return 1
	}

	positional := flags.Args()
	if len(positional) != 2 {
		fmt.Fprintf(os.Stderr, "Error: expected a qualified type name and an output path\n\n")
		flags.Usage()
		return 1
	}
	typeName, outputPath := positional[0], positional[1]
	if typeName == "" || outputPath == "" {
		fmt.Fprintf(os.Stderr, "Error: arguments must not be empty\n")
		return 1
	}

	config, err := cli.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *sourcePathFlag != "" {
		config.SourcePath = strings.Split(*sourcePathFlag, string(os.PathListSeparator))
	}
	if *javacFlag != "" {
		config.Javac = *javacFlag
	}
	if *verboseFlag {
		config.Verbose = true
	}
	if *quietFlag {
		config.Quiet = true
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case config.Quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case config.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("jimpl")
	if config.Verbose {
		diagnostics.List("Subject: %s", typeName)
		diagnostics.List("Output: %s", outputPath)
		diagnostics.List("Source path: %s", strings.Join(config.SourcePath, string(os.PathListSeparator)))
	}

	implementor := cli.NewImplementor(config, diagnostics)

	if *jarFlag {
		if err := implementor.ImplementJar(typeName, outputPath); err != nil {
			diagnostics.Error("%v", err)
			return 1
		}
		diagnostics.Success("Packaged implementation of %s", typeName)
		return 0
	}

	if _, err := implementor.Implement(typeName, outputPath); err != nil {
		diagnostics.Error("%v", err)
		return 1
	}
	diagnostics.Success("Generated implementation of %s", typeName)
	return 0
}
