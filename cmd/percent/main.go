// Command percent reports, for a precomputed perfect-clear path table, what
// fraction of setups can save toward one or more wanted-save expressions.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pcsaves/pkg/pcsaves"
	"pcsaves/pkg/pcsaves/cache"
)

func main() {
	cfg, err := pcsaves.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !pcsaves.IsUserFacing(err) {
			os.Exit(1)
		}
		return
	}

	var (
		wantedSaves  []string
		keys         []string
		all          bool
		bestSave     bool
		build        string
		leftover     string
		pcNum        int
		leftoverLen  int
		height       int
		width        int
		hold         int
		treeDepth    int
		pathFile     string
		logPath      string
		savesPath    string
		noPrint      bool
		includeFails bool
		overSolves   bool
		cacheDir     string
		rowCacheDir  string
	)

	root := &cobra.Command{
		Use:   "percent",
		Short: "Report the percentage of setups that can save toward wanted-save expressions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(keys) == 0 && len(wantedSaves) == 0 {
				return &pcsaves.ValidationError{Msg: "expected -k, -w, or -a to be set"}
			}

			var pcNumPtr, leftoverLenPtr *int
			if cmd.Flags().Changed("pc-num") {
				pcNumPtr = &pcNum
			}
			if cmd.Flags().Changed("leftover-length") {
				leftoverLenPtr = &leftoverLen
			}
			var buildPtr *string
			if cmd.Flags().Changed("build") {
				buildPtr = &build
			}

			resolvedLeftover, resolvedBuild, err := pcsaves.ParseLeftoverBuild(leftover, leftoverLenPtr, buildPtr, pcNumPtr, hold)
			if err != nil {
				return err
			}

			logFile, err := os.Create(logPath)
			if err != nil {
				return err
			}
			defer logFile.Close()

			var percentCache *cache.PercentCache
			var cacheKey cache.Key
			if cacheDir != "" || rowCacheDir != "" {
				cacheKey, err = deriveCacheKey(pathFile, resolvedBuild, resolvedLeftover, width, height, hold)
				if err != nil {
					return err
				}
			}
			if cacheDir != "" {
				if err := os.MkdirAll(cacheDir, 0o755); err != nil {
					return err
				}
				percentCache, err = cache.OpenPercentCache(filepath.Join(cacheDir, "percent.db"))
				if err != nil {
					return err
				}
				defer percentCache.Close()
			}

			reader, err := pcsaves.NewPathReader(pathFile, resolvedBuild, resolvedLeftover, width, height, hold)
			if err != nil {
				return err
			}
			defer reader.Close()

			opts := pcsaves.PercentOptions{IncludeFails: includeFails, OverSolves: overSolves, TreeDepth: treeDepth}
			if rowCacheDir != "" {
				rowCache, err := cache.NewSaveRowCache(rowCacheDir)
				if err != nil {
					return err
				}
				opts.RowCache = rowCache
				opts.RowCacheKey = cacheKey
			}

			if all {
				opts.AllSaves = true
				return runCached(percentCache, cacheKey, []string{"--all"}, []string{"--all"}, opts, treeDepth, logFile, !noPrint, func() (*pcsaves.PercentResult, error) {
					return pcsaves.Percent(reader, nil, nil, opts)
				})
			}

			resolvedWanted, labels, err := pcsaves.ResolveWantedSaves(keys, wantedSaves, savesPath)
			if err != nil {
				return err
			}

			if bestSave {
				return runCached(percentCache, cacheKey, resolvedWanted, labels, opts, treeDepth, logFile, !noPrint, func() (*pcsaves.PercentResult, error) {
					return pcsaves.Percent(reader, resolvedWanted, labels, opts)
				})
			}

			for i := range resolvedWanted {
				wanted, label := resolvedWanted[i:i+1], labels[i:i+1]
				if err := runCached(percentCache, cacheKey, wanted, label, opts, treeDepth, logFile, !noPrint, func() (*pcsaves.PercentResult, error) {
					return pcsaves.Percent(reader, wanted, label, opts)
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags := root.Flags()
	flags.StringSliceVarP(&wantedSaves, "wanted-saves", "w", nil, "the save expression")
	flags.StringSliceVarP(&keys, "key", "k", nil, "use preset wanted saves in the saves json")
	flags.BoolVarP(&all, "all", "a", false, "output all of the saves and corresponding percents")
	flags.BoolVar(&bestSave, "best-save", false, "prioritize wanted saves in order instead of listing each separately")
	flags.StringVarP(&build, "build", "b", "", "pieces in the build of the setup")
	flags.StringVarP(&leftover, "leftover", "l", "", "leftover pieces for this pc")
	flags.IntVar(&pcNum, "pc-num", 0, "pc number for setup")
	flags.IntVar(&leftoverLen, "leftover-length", 0, "length of leftover, alternative to --pc-num")
	flags.IntVar(&height, "height", cfg.Height, "height of pc")
	flags.IntVar(&width, "width", cfg.Width, "width of pc")
	flags.IntVar(&hold, "hold", cfg.Hold, "number of hold")
	flags.IntVar(&treeDepth, "tree-depth", 0, "tree depth of pieces in percent")
	flags.StringVarP(&pathFile, "path-file", "f", "output/path.csv", "path filepath")
	flags.StringVar(&logPath, "log-path", "output/last_output.txt", "output filepath")
	flags.StringVar(&savesPath, "saves-path", cfg.SavesPath, "path to json file with preset wanted saves")
	flags.BoolVar(&noPrint, "no-print", false, "don't log to terminal")
	flags.BoolVar(&includeFails, "fails", false, "include the fail queues for saves in output")
	flags.BoolVar(&overSolves, "over-solves", false, "have the percents be out of when setup is solvable")
	flags.StringVar(&cacheDir, "cache-dir", "", "directory holding a sqlite percent-result cache; disabled when empty")
	flags.StringVar(&rowCacheDir, "row-cache-dir", "", "directory holding a parquet derived-save-row cache; disabled when empty")

	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !pcsaves.IsUserFacing(err) {
			os.Exit(1)
		}
	}
}

// deriveCacheKey derives a cache.Key from the path file's content hash plus
// the geometry the reader was configured with, so a regenerated path table
// or a changed build/leftover/geometry invalidates prior cache entries for
// both PercentCache and SaveRowCache automatically.
func deriveCacheKey(pathFile, build, leftover string, width, height, hold int) (cache.Key, error) {
	data, err := os.ReadFile(pathFile)
	if err != nil {
		return cache.Key{}, err
	}
	return cache.Key{
		PathFileHash: cache.HashPathFile(data),
		Build:        build,
		Leftover:     leftover,
		Width:        width,
		Height:       height,
		Hold:         hold,
	}, nil
}

func wantedHash(wanted, labels []string) string {
	h := sha256.New()
	for _, w := range wanted {
		h.Write([]byte(w))
		h.Write([]byte{0})
	}
	for _, l := range labels {
		h.Write([]byte(l))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// runCached checks percentCache (when non-nil) for a rendered result before
// calling compute, storing compute's rendered output back on a miss.
func runCached(percentCache *cache.PercentCache, key cache.Key, wanted, labels []string, opts pcsaves.PercentOptions, treeDepth int, logFile *os.File, console bool, compute func() (*pcsaves.PercentResult, error)) error {
	hash := wantedHash(wanted, labels)
	if opts.IncludeFails || opts.OverSolves || opts.TreeDepth != 0 {
		hash += fmt.Sprintf("|f%v|o%v|t%d", opts.IncludeFails, opts.OverSolves, opts.TreeDepth)
	}

	if percentCache != nil {
		if output, hit, err := percentCache.Get(key, hash); err == nil && hit {
			return writeOutput(output, logFile, console)
		}
	}

	result, err := compute()
	if err != nil {
		return err
	}
	output := pcsaves.PrintPercent(result, treeDepth)

	if percentCache != nil {
		_ = percentCache.Put(key, hash, output)
	}
	return writeOutput(output, logFile, console)
}

func writeOutput(output string, logFile *os.File, console bool) error {
	if _, err := logFile.WriteString(output); err != nil {
		return err
	}
	if console {
		fmt.Print(output)
	}
	return nil
}
