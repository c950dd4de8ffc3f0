package cmd

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ropolomx/jcvi/config"
	"github.com/ropolomx/jcvi/internal/lobstr"
	"github.com/ropolomx/jcvi/internal/str"
	"github.com/ropolomx/jcvi/internal/strdb"
)

// indexCmd builds a lobSTR reference index from refined repeats.
var indexCmd = &cobra.Command{
	Use:   "index [trf.bed] [genome.fa]",
	Short: "Make a lobSTR index from TRF repeats",
	Long: `Refine and filter a TRF bed file (see "str filter") and prepare the
lobSTR reference index from the result.

The FASTA must be all upper case. The refined bed is written to
[trf.bed].new; the lobstr_index.py and GetSTRInfo.py invocations are
printed, or executed with --run. With --db the retained repeats are
also saved to a SQLite database for region queries.`,
	Args: cobra.ExactArgs(2),
	Run:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) {
	conf := config.New()
	bedPath, fastaPath := args[0], args[1]

	newBed := bedPath + ".new"
	res, err := refineBed(bedPath, fastaPath, newBed, conf)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	stderr.Printf("Retained: %s", res.Percentage())

	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		if err := saveToDB(dbPath, newBed); err != nil {
			stderr.Fatalf("%v", err)
		}
		stderr.Printf("saved %d repeats to %s", res.Retained, dbPath)
	}

	// output directory named after the reference, as lobSTR expects
	outdir := strings.SplitN(fastaPath, ".", 2)[0]
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		stderr.Fatalf("%v", err)
	}

	index := lobstr.Index(newBed, fastaPath, outdir, conf.LobSTR.Home)
	info := lobstr.StrInfo(newBed, fastaPath, conf.LobSTR.Home)

	if run, _ := cmd.Flags().GetBool("run"); !run {
		stderr.Printf("%s", strings.Join(index.Args, " "))
		stderr.Printf("%s > %s.tab", strings.Join(info.Args, " "), outdir)
		return
	}

	if err := index.Run(); err != nil {
		stderr.Fatalf("lobstr_index.py: %v", err)
	}
	tab, err := os.Create(outdir + ".tab")
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	info.Stdout = tab
	if err := info.Run(); err != nil {
		stderr.Fatalf("GetSTRInfo.py: %v", err)
	}
	if err := tab.Close(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

// saveToDB parses the refined bed back into records and stores them.
func saveToDB(dbPath, bedPath string) error {
	db, err := strdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	in, err := os.Open(bedPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var recs []*str.Record
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		r, err := str.Parse(sc.Text())
		if err != nil {
			return err
		}
		recs = append(recs, r)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	return db.Save(context.Background(), recs)
}

// set flags
func init() {
	RootCmd.AddCommand(indexCmd)

	indexCmd.Flags().String("db", "", "also save retained repeats to a SQLite database")
	indexCmd.Flags().Bool("run", false, "execute the lobSTR index scripts instead of printing them")
}
