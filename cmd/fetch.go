package cmd

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ropolomx/jcvi/config"
	"github.com/ropolomx/jcvi/internal/entrez"
)

// fetchCmd pulls sequence records from NCBI by accession.
var fetchCmd = &cobra.Command{
	Use:   "fetch [accession...]",
	Short: "Fetch records from a list of GenBank accessions",
	Long: `Fetch sequence records from NCBI for each accession, either passed as
arguments or listed one per line in the --in file. Failed requests are
retried with backoff; accessions with no match are logged and skipped.

Records are concatenated to stdout unless --out names a file. NCBI
asks for a contact email on every request; set one with --email or the
entrez.email setting.`,
	Run: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) {
	conf := config.New()

	terms := args
	if in, _ := cmd.Flags().GetString("in"); in != "" {
		fileTerms, err := readTerms(in)
		if err != nil {
			stderr.Fatalf("%v", err)
		}
		terms = append(terms, fileTerms...)
	}
	if len(terms) == 0 {
		cmd.Help()
		stderr.Fatalln("\nno accessions passed.")
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		fh, err := os.Create(path)
		if err != nil {
			stderr.Fatalf("%v", err)
		}
		defer fh.Close()
		out = fh
	}

	client := entrez.NewClient(conf.Entrez.Email)
	client.DB = conf.Entrez.DB
	client.RetMax = conf.Entrez.RetMax
	client.RetType = conf.Entrez.RetType

	err := client.Fetch(context.Background(), terms, func(r entrez.Result) error {
		_, err := out.Write(r.Data)
		return err
	})
	if err != nil {
		stderr.Fatalf("%v", err)
	}
}

func readTerms(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var terms []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		term := strings.TrimSpace(sc.Text())
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms, sc.Err()
}

// set flags
func init() {
	RootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringP("in", "i", "", "file with one accession per line")
	fetchCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	fetchCmd.Flags().String("email", "", "contact email sent to NCBI")
	viper.BindPFlag("entrez.email", fetchCmd.Flags().Lookup("email"))
}
