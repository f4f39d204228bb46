// Command filter keeps only the path-table fumens that satisfy a
// wanted-save expression, then reduces the result to a minimal covering
// set, a single combined fumen, or a filtered CSV file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pcsaves/pkg/pcsaves"
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
		wantedSaves       []string
		keys              []string
		index             int
		bestSave          bool
		build             string
		leftover          string
		pcNum             int
		leftoverLen       int
		height            int
		width             int
		hold              int
		pathFile          string
		logPath           string
		savesPath         string
		filteredPath      string
		noPrint           bool
		cumulative        bool
		solveMode         string
		tinyurl           bool
	)

	root := &cobra.Command{
		Use:   "filter",
		Short: "Filter a path table down to the solves satisfying a wanted-save expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(keys) == 0 && len(wantedSaves) == 0 {
				return &pcsaves.ValidationError{Msg: "expected -k or -w to be set"}
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

			resolvedWanted, labels, err := pcsaves.ResolveWantedSaves(keys, wantedSaves, savesPath)
			if err != nil {
				return err
			}

			if !bestSave {
				if index < -len(resolvedWanted) || index >= len(resolvedWanted) {
					return &pcsaves.ValidationError{Msg: "index out of bounds for wanted saves"}
				}
				if index < 0 {
					index += len(resolvedWanted)
				}
				resolvedWanted = resolvedWanted[index : index+1]
				labels = labels[index : index+1]
			}

			reader, err := pcsaves.NewPathReader(pathFile, resolvedBuild, resolvedLeftover, width, height, hold)
			if err != nil {
				return err
			}
			defer reader.Close()

			mode := pcsaves.FilterOutputMinimal
			switch solveMode {
			case "unique":
				mode = pcsaves.FilterOutputUnique
			case "file":
				mode = pcsaves.FilterOutputFile
			}

			opts := pcsaves.FilterOptions{
				OutputMode:        mode,
				CumulativePercent: cumulative,
			}
			if tinyurl {
				opts.Shortener = pcsaves.TinyURLShortener{}
			}

			result, err := pcsaves.Filter(reader, filteredPath, resolvedWanted, labels, opts)
			if err != nil {
				return err
			}

			var output string
			switch mode {
			case pcsaves.FilterOutputUnique:
				output = result.UniqueFumen + "\n"
			case pcsaves.FilterOutputMinimal:
				output = result.MinimalLine + "\n"
			}
			if output != "" {
				if _, err := logFile.WriteString(output); err != nil {
					return err
				}
				if !noPrint {
					fmt.Print(output)
				}
			}
			return nil
		},
	}

	flags := root.Flags()
	flags.StringSliceVarP(&wantedSaves, "wanted-saves", "w", nil, "the save expression")
	flags.StringSliceVarP(&keys, "key", "k", nil, "use preset wanted saves in the saves json")
	flags.IntVarP(&index, "index", "i", 0, "index of -k or -w to pick which expression to filter by")
	flags.BoolVar(&bestSave, "best-save", false, "prioritize wanted saves in order instead of picking one by index")
	flags.StringVarP(&build, "build", "b", "", "pieces in the build of the setup")
	flags.StringVarP(&leftover, "leftover", "l", "", "leftover pieces for this pc")
	flags.IntVar(&pcNum, "pc-num", 0, "pc number for setup")
	flags.IntVar(&leftoverLen, "leftover-length", 0, "length of leftover, alternative to --pc-num")
	flags.IntVar(&height, "height", cfg.Height, "height of pc")
	flags.IntVar(&width, "width", cfg.Width, "width of pc")
	flags.IntVar(&hold, "hold", cfg.Hold, "number of hold")
	flags.StringVarP(&pathFile, "path-file", "f", "output/path.csv", "path filepath")
	flags.StringVar(&logPath, "log-path", "output/last_output.txt", "output filepath")
	flags.StringVar(&savesPath, "saves-path", cfg.SavesPath, "path to json file with preset wanted saves")
	flags.StringVar(&filteredPath, "filtered-path", "output/filtered_path.csv", "output filtered path file")
	flags.BoolVar(&noPrint, "no-print", false, "don't log to terminal")
	flags.BoolVarP(&cumulative, "cumulative", "c", false, "gives percents cumulatively in fumens of a minimal set")
	flags.StringVarP(&solveMode, "solve", "s", "minimal", "how to output solve: minimal, unique, or file")
	flags.BoolVarP(&tinyurl, "tinyurl", "t", cfg.TinyURL, "output the link with tinyurl if possible")

	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !pcsaves.IsUserFacing(err) {
			os.Exit(1)
		}
	}
}
