package cmd

import (
	"errors"
	"fmt"
	"github.com/carlmjohnson/versioninfo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/shelf/internal"
	"github.com/robinovitch61/shelf/internal/chunk"
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/constants"
	"github.com/robinovitch61/shelf/internal/keymap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// Version is public so users can optionally specify or override the version
	// at build time by passing in ldflags, e.g.
	//   go build -ldflags "-X github.com/robinovitch61/shelf/cmd.Version=vX.Y.Z"
	Version = ""
)

type arg struct {
	cliShort, cfgFileEnvVar, description, defaultString string
	isBool, isInt, defaultIfBool                        bool
	defaultIfInt                                        int
}

var (
	rootNameToArg = map[string]arg{
		"buffer-size": {
			cfgFileEnvVar: "buffer-size",
			description:   `Number of items loaded beyond each side of the visible range`,
			isInt:         true,
			defaultIfInt:  constants.DefaultBufferSize,
		},
		"chunk-size": {
			cfgFileEnvVar: "chunk-size",
			description:   `Number of items per chunk`,
			isInt:         true,
			defaultIfInt:  constants.DefaultChunkSize,
		},
		"config": {
			cfgFileEnvVar: "config",
			description:   `Config file path. Defaults to $HOME/.config/shelf/config.yaml`,
		},
		"desc": {
			cliShort:      "d",
			cfgFileEnvVar: "desc",
			description:   `If present, start with the list in descending order. Default false`,
			isBool:        true,
		},
		"file": {
			cliShort:      "f",
			cfgFileEnvVar: "file",
			description:   `Collection file to browse (.json, .yaml or .yml). Defaults to generated demo items`,
		},
		"filter": {
			cfgFileEnvVar: "filter",
			description:   `Start with this filter applied`,
		},
		"generate": {
			cliShort:      "g",
			cfgFileEnvVar: "generate",
			description:   `Number of demo items to generate when no file is given`,
			isInt:         true,
			defaultIfInt:  constants.DefaultGenerateCount,
		},
		"help": {
			description: `Print usage`,
		},
		"load-trigger-percent": {
			cfgFileEnvVar: "load-trigger-percent",
			description:   `How far through the loaded items, in percent, before the next chunk is preloaded`,
			isInt:         true,
			defaultIfInt:  constants.DefaultLoadTriggerPercent,
		},
		"max-chunks": {
			cfgFileEnvVar: "max-chunks",
			description:   `Maximum number of chunks kept loaded`,
			isInt:         true,
			defaultIfInt:  constants.DefaultMaxChunksInMemory,
		},
		"regex": {
			cliShort:      "r",
			cfgFileEnvVar: "regex",
			description:   `If present, treat the starting filter as a regular expression. Default false`,
			isBool:        true,
		},
		"sort": {
			cliShort:      "s",
			cfgFileEnvVar: "sort",
			description:   `Starting sort field: none, title, year or category. Default none`,
		},
		"threshold": {
			cfgFileEnvVar: "threshold",
			description:   `Minimum number of items before the list is chunked`,
			isInt:         true,
			defaultIfInt:  constants.DefaultThreshold,
		},
	}

	description = fmt.Sprintf(`shelf %s

shelf is an interactive browser for large collections that only keeps the part of the list near the screen in memory`,
		getVersion(),
	)

	rootCmd = &cobra.Command{
		Use:   "shelf",
		Short: "shelf: collection browser",
		Long:  description,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, rootNameToArg)
		},
		Run:     mainEntrypoint,
		Version: getVersion(),
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// init is called once when the cmd package is loaded
// https://golangdocs.com/init-function-in-golang
func init() {
	addFlags(rootCmd)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if c := rootNameToArg[f.Name]; c.cfgFileEnvVar != "" {
			_ = viper.BindPFlag(c.cfgFileEnvVar, f)
		}
	})
	rootCmd.SetVersionTemplate(`{{printf "shelf %s\n" .Version}}`)
	rootCmd.Flags().BoolP("version", "v", false, "Show shelf version")
}

func addFlags(cmd *cobra.Command) {
	cliLong := "help"
	cmd.PersistentFlags().BoolP(cliLong, rootNameToArg[cliLong].cliShort, rootNameToArg[cliLong].defaultIfBool, rootNameToArg[cliLong].description)

	for _, cliLong = range []string{
		"buffer-size",
		"chunk-size",
		"config",
		"desc",
		"file",
		"filter",
		"generate",
		"load-trigger-percent",
		"max-chunks",
		"regex",
		"sort",
		"threshold",
	} {
		c := rootNameToArg[cliLong]
		if c.isBool {
			cmd.PersistentFlags().BoolP(cliLong, c.cliShort, c.defaultIfBool, c.description)
		} else if c.isInt {
			cmd.PersistentFlags().IntP(cliLong, c.cliShort, c.defaultIfInt, c.description)
		} else {
			cmd.PersistentFlags().StringP(cliLong, c.cliShort, c.defaultString, c.description)
		}
	}
}

func initConfig(cmd *cobra.Command, nameToArg map[string]arg) error {
	// bind viper to env vars, e.g. SHELF_CHUNK_SIZE
	viper.SetEnvPrefix("shelf")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// only complain about a missing config file if it was explicitly specified
	cfgFile := viper.GetString("config")
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = filepath.Join(homeDir(), ".config", "shelf", "config.yaml")
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return fmt.Errorf("error reading config file %s: %w", cfgFile, err)
	}

	return bindFlags(cmd, nameToArg)
}

func bindFlags(cmd *cobra.Command, nameToArg map[string]arg) error {
	v := viper.GetViper()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Determine the naming convention of the flags when represented in the config file
		cliLong := f.Name
		viperName := nameToArg[cliLong].cfgFileEnvVar
		if viperName == "" || bindErr != nil {
			return
		}

		// Apply the viper config value to the flag when the flag is not manually specified
		// and viper has a value from the config file or env var
		if !f.Changed && v.IsSet(viperName) {
			val := v.Get(viperName)
			if err := cmd.Flags().Set(cliLong, fmt.Sprintf("%v", val)); err != nil {
				bindErr = fmt.Errorf("error setting flag %s: %w", cliLong, err)
			}
		}
	})
	return bindErr
}

func mainEntrypoint(cmd *cobra.Command, _ []string) {
	config, err := getConfig(cmd)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	program := tea.NewProgram(internal.InitialModel(config), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Printf("error on shelf startup: %v", err)
		os.Exit(1)
	}
}

func getVersion() string {
	if Version != "" {
		return Version
	}
	return versioninfo.Short()
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return os.Getenv("USERPROFILE") // Windows
}

func getInt(cmd *cobra.Command, name string) (int, error) {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", name, err)
	}
	return v, nil
}

func getBool(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Lookup(name).Value.String() == "true"
}

func getChunkConfig(cmd *cobra.Command) (chunk.Config, error) {
	var c chunk.Config
	var errs []error
	for name, dest := range map[string]*int{
		"chunk-size":           &c.ChunkSize,
		"buffer-size":          &c.BufferSize,
		"threshold":            &c.Threshold,
		"load-trigger-percent": &c.LoadTriggerPercent,
		"max-chunks":           &c.MaxChunksInMemory,
	} {
		v, err := getInt(cmd, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*dest = v
	}
	if err := errors.Join(errs...); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func getFile(cmd *cobra.Command) (string, error) {
	file := cmd.Flags().Lookup("file").Value.String()
	if file == "" {
		return "", nil
	}
	if strings.HasPrefix(file, "~") {
		file = homeDir() + strings.TrimPrefix(file, "~")
	}
	if _, err := os.Stat(file); err != nil {
		return "", fmt.Errorf("collection file: %w", err)
	}
	return file, nil
}

func getQuery(cmd *cobra.Command) (collection.Query, error) {
	sortField, err := collection.ParseSortField(cmd.Flags().Lookup("sort").Value.String())
	if err != nil {
		return collection.Query{}, err
	}
	return collection.Query{
		Text:       cmd.Flags().Lookup("filter").Value.String(),
		IsRegex:    getBool(cmd, "regex"),
		Sort:       sortField,
		Descending: getBool(cmd, "desc"),
	}, nil
}

func getConfig(cmd *cobra.Command) (internal.Config, error) {
	chunkConfig, err := getChunkConfig(cmd)
	if err != nil {
		return internal.Config{}, err
	}
	file, err := getFile(cmd)
	if err != nil {
		return internal.Config{}, err
	}
	generateCount, err := getInt(cmd, "generate")
	if err != nil {
		return internal.Config{}, err
	}
	if generateCount < 0 {
		return internal.Config{}, fmt.Errorf("generate must be non-negative, got %d", generateCount)
	}
	query, err := getQuery(cmd)
	if err != nil {
		return internal.Config{}, err
	}
	return internal.Config{
		KeyMap:        keymap.DefaultKeyMap(),
		Chunk:         chunkConfig,
		File:          file,
		GenerateCount: generateCount,
		Query:         query,
		Version:       getVersion(),
	}, nil
}
