// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tvetkov/treegen/internal/config"
	"github.com/tvetkov/treegen/internal/engine"
	"github.com/tvetkov/treegen/internal/manifest"
	"github.com/tvetkov/treegen/internal/scan"
	"github.com/tvetkov/treegen/internal/services/clipboard"
	"github.com/tvetkov/treegen/internal/styles"
	"github.com/tvetkov/treegen/internal/types"
	"github.com/tvetkov/treegen/internal/utils"
)

const (
	styleFlagName     = "style"
	depthFlagName     = "depth"
	ignoreFlagName    = "ignore"
	noFilesFlagName   = "no-files"
	sizesFlagName     = "sizes"
	slashFlagName     = "slash"
	statsFlagName     = "stats"
	listFlagName      = "list"
	outputFlagName    = "output"
	clipboardFlagName = "clipboard"
	configFlagName    = "config"
	versionFlagName   = "version"
	globalFlagName    = "global"
	forceFlagName     = "force"

	versionTemplate      = "treegen version: %s\n"
	defaultPath          = "."
	rootUse              = "treegen"
	rootShortDescription = "treegen command line interface"
	rootLongDescription  = `treegen turns a directory snapshot into a decorated text tree.
It supports box-drawing, ASCII, minimal, indent, emoji, and structured output,
with segment-based filtering, depth limiting, and aggregate statistics.`
	versionFlagDescription = "display application version"

	renderUse              = "render [paths...]"
	renderAlias            = "r"
	renderShortDescription = "render a directory tree (" + renderAlias + ")"
	renderLongDescription  = `Render one or more directories (or a path-list manifest) as a tree.
Use --style to select the output style and --depth to limit rendering depth.`
	renderUsageExample = `  # Render the current directory with sizes
  treegen render --sizes .

  # Exclude node_modules and emit structured JSON
  treegen render --ignore node_modules --style structured .

  # Render a pre-materialized path list
  treegen render --list snapshot.yaml`

	stylesUse              = "styles"
	stylesShortDescription = "list available styles with samples"

	configUse              = "config"
	configShortDescription = "manage treegen configuration"
	configInitUse          = "init"
	configInitShort        = "write a default configuration file"

	styleFlagDescription     = "output style (classic, ascii, minimal, indent, emoji, structured)"
	depthFlagDescription     = "maximum rendered depth, 0 for unlimited (root is depth 0)"
	ignoreFlagDescription    = "ignore any path containing this segment (repeatable, exact match)"
	noFilesFlagDescription   = "omit file lines from the output"
	sizesFlagDescription     = "append human-readable size suffixes"
	slashFlagDescription     = "append a trailing slash to directory names"
	statsFlagDescription     = "print a statistics line after the tree"
	listFlagDescription      = "render a YAML path-list manifest instead of walking a directory"
	outputFlagDescription    = "write the rendered tree to a file instead of stdout"
	clipboardFlagDescription = "copy the rendered tree to the system clipboard"
	configFlagDescription    = "path to a configuration file"
	globalFlagDescription    = "write the global configuration file"
	forceFlagDescription     = "overwrite an existing configuration file"

	invalidStyleMessage         = "invalid style value %q"
	invalidDepthMessage         = "depth must not be negative, got %d"
	cancellationMarker          = "[generation cancelled]"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	writeOutputErrorFormat      = "writing output to %s: %w"
	configurationWrittenFormat  = "configuration written to %s\n"
	outputFilePermissions       = 0o644

	sampleStyleSeparator = "--- %s ---\n"
)

// renderOptions stores flag values for the render command.
type renderOptions struct {
	style           string
	maximumDepth    int
	ignoreSegments  []string
	noFiles         bool
	showSizes       bool
	trailingSlash   bool
	showStats       bool
	listPath        string
	outputPath      string
	copyToClipboard bool
	configPath      string
}

// Execute runs the treegen application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createRenderCommand(logger),
		createStylesCommand(),
		createConfigCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createRenderCommand returns the render subcommand.
func createRenderCommand(logger *zap.Logger) *cobra.Command {
	var options renderOptions

	renderCommand := &cobra.Command{
		Use:     renderUse,
		Aliases: []string{renderAlias},
		Short:   renderShortDescription,
		Long:    renderLongDescription,
		Example: renderUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			return runRender(command, arguments, options, logger)
		},
	}

	renderCommand.Flags().StringVar(&options.style, styleFlagName, types.StyleClassic, styleFlagDescription)
	renderCommand.Flags().IntVar(&options.maximumDepth, depthFlagName, 0, depthFlagDescription)
	renderCommand.Flags().StringArrayVar(&options.ignoreSegments, ignoreFlagName, nil, ignoreFlagDescription)
	renderCommand.Flags().BoolVar(&options.noFiles, noFilesFlagName, false, noFilesFlagDescription)
	renderCommand.Flags().BoolVar(&options.showSizes, sizesFlagName, false, sizesFlagDescription)
	renderCommand.Flags().BoolVar(&options.trailingSlash, slashFlagName, false, slashFlagDescription)
	renderCommand.Flags().BoolVar(&options.showStats, statsFlagName, false, statsFlagDescription)
	renderCommand.Flags().StringVar(&options.listPath, listFlagName, "", listFlagDescription)
	renderCommand.Flags().StringVar(&options.outputPath, outputFlagName, "", outputFlagDescription)
	renderCommand.Flags().BoolVar(&options.copyToClipboard, clipboardFlagName, false, clipboardFlagDescription)
	renderCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	return renderCommand
}

// runRender resolves configuration, obtains the path snapshots, and executes
// one engine pass per snapshot.
func runRender(command *cobra.Command, arguments []string, options renderOptions, logger *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}

	resolved := resolveRenderOptions(command, options, applicationConfiguration.Render)
	if !types.IsSupportedStyle(resolved.style) {
		return fmt.Errorf(invalidStyleMessage, resolved.style)
	}
	if resolved.maximumDepth < 0 {
		return fmt.Errorf(invalidDepthMessage, resolved.maximumDepth)
	}

	ctx, stopSignalHandling := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSignalHandling()

	snapshots, snapshotError := collectSnapshots(ctx, resolved, arguments, workingDirectory)
	if snapshotError != nil {
		return snapshotError
	}

	controller := engine.NewController(logger, engine.Options{})
	var renderedSections []string

	for _, snapshot := range snapshots {
		ignoredSegments, ignoreError := snapshotIgnoreSegments(snapshot, resolved.ignoreSegments)
		if ignoreError != nil {
			return ignoreError
		}
		request := engine.Request{
			Entries: snapshot.Entries,
			Configuration: types.Configuration{
				RootName:        snapshot.RootName,
				Style:           resolved.style,
				MaxDepth:        resolved.maximumDepth,
				IgnoredSegments: ignoredSegments,
				ShowFiles:       !resolved.noFiles,
				ShowSizes:       resolved.showSizes,
				TrailingSlash:   resolved.trailingSlash,
				ShowStats:       resolved.showStats,
			},
		}

		outcome := controller.Run(ctx, request)
		switch outcome.Status {
		case engine.StatusCancelled:
			fmt.Fprintln(os.Stderr, cancellationMarker)
			return nil
		case engine.StatusFailed:
			return outcome.Err
		}

		section := outcome.Result.Text
		if resolved.showStats {
			statistics := outcome.Result.Statistics
			section += utils.FormatStatisticsLine(statistics.DirectoryCount, statistics.FileCount, statistics.TotalBytes) + "\n"
		}
		renderedSections = append(renderedSections, section)
	}

	renderedText := strings.Join(renderedSections, "\n")
	return deliverOutput(renderedText, resolved)
}

// snapshotIgnoreSegments merges the resolved ignore segments with the
// snapshot root's local ignore file, when the snapshot came from a scan.
func snapshotIgnoreSegments(snapshot *scan.Snapshot, configuredSegments []string) ([]string, error) {
	if snapshot.RootPath == "" {
		return configuredSegments, nil
	}
	localSegments, loadError := config.LoadIgnoreSegments(filepath.Join(snapshot.RootPath, config.IgnoreFileName))
	if loadError != nil {
		return nil, loadError
	}
	return utils.DeduplicateSegments(append(append([]string{}, configuredSegments...), localSegments...)), nil
}

// resolveRenderOptions overlays configuration defaults onto flags. A flag the
// user set explicitly always wins over the configuration file.
func resolveRenderOptions(command *cobra.Command, options renderOptions, defaults config.RenderConfiguration) renderOptions {
	resolved := options
	flags := command.Flags()

	if !flags.Changed(styleFlagName) && defaults.Style != "" {
		resolved.style = defaults.Style
	}
	if !flags.Changed(depthFlagName) && defaults.MaxDepth != nil {
		resolved.maximumDepth = *defaults.MaxDepth
	}
	if !flags.Changed(noFilesFlagName) && defaults.ShowFiles != nil {
		resolved.noFiles = !*defaults.ShowFiles
	}
	if !flags.Changed(sizesFlagName) && defaults.ShowSizes != nil {
		resolved.showSizes = *defaults.ShowSizes
	}
	if !flags.Changed(slashFlagName) && defaults.TrailingSlash != nil {
		resolved.trailingSlash = *defaults.TrailingSlash
	}
	if !flags.Changed(statsFlagName) && defaults.ShowStats != nil {
		resolved.showStats = *defaults.ShowStats
	}
	if !flags.Changed(clipboardFlagName) && defaults.Clipboard != nil {
		resolved.copyToClipboard = *defaults.Clipboard
	}
	resolved.ignoreSegments = utils.DeduplicateSegments(append(append([]string{}, defaults.Ignore...), options.ignoreSegments...))
	return resolved
}

// collectSnapshots obtains path snapshots from the manifest or by scanning the
// argument directories concurrently. Directory scans also pick up the local
// ignore file of each root.
func collectSnapshots(ctx context.Context, resolved renderOptions, arguments []string, workingDirectory string) ([]*scan.Snapshot, error) {
	if resolved.listPath != "" {
		snapshot, manifestError := manifest.Load(resolved.listPath)
		if manifestError != nil {
			return nil, manifestError
		}
		return []*scan.Snapshot{snapshot}, nil
	}

	rootPaths := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		if filepath.IsAbs(argument) {
			rootPaths = append(rootPaths, argument)
			continue
		}
		rootPaths = append(rootPaths, filepath.Join(workingDirectory, argument))
	}
	return scan.Directories(ctx, rootPaths)
}

// deliverOutput sends the rendered text to the configured destinations.
func deliverOutput(renderedText string, resolved renderOptions) error {
	if resolved.outputPath != "" {
		if writeError := os.WriteFile(resolved.outputPath, []byte(renderedText), outputFilePermissions); writeError != nil {
			return fmt.Errorf(writeOutputErrorFormat, resolved.outputPath, writeError)
		}
	} else {
		fmt.Print(renderedText)
	}
	if resolved.copyToClipboard {
		return clipboard.NewService().Copy(renderedText)
	}
	return nil
}

// createStylesCommand returns the styles subcommand, which renders a small
// fixed snapshot in every style.
func createStylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   stylesUse,
		Short: stylesShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			sampleEntries := []types.PathEntry{
				{RelativePath: "project/src/main.go", SizeBytes: 2048},
				{RelativePath: "project/src/util.go", SizeBytes: 512},
				{RelativePath: "project/README.md", SizeBytes: 120},
			}
			controller := engine.NewController(nil, engine.Options{})
			for _, styleName := range styles.Names() {
				outcome := controller.Run(command.Context(), engine.Request{
					Entries: sampleEntries,
					Configuration: types.Configuration{
						RootName:  "project",
						Style:     styleName,
						ShowFiles: true,
					},
				})
				if outcome.Status != engine.StatusSuccess {
					return outcome.Err
				}
				fmt.Printf(sampleStyleSeparator, styleName)
				fmt.Print(outcome.Result.Text)
				fmt.Println()
			}
			return nil
		},
	}
}

// createConfigCommand returns the config subcommand tree.
func createConfigCommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
	}

	var writeGlobal bool
	var force bool
	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShort,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  force,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Printf(configurationWrittenFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)

	configCommand.AddCommand(initCommand)
	return configCommand
}

