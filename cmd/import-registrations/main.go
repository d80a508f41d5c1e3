package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ibam-church/membership/forms"
	"github.com/ibam-church/membership/services"
)

func main() {
	var file = flag.String("file", "", "Semicolon separated CSV with one paper registration per row")
	var endpoint = flag.String("endpoint", "", "Public intake URL (e.g. 'https://host/public-register')")
	var dryRun = flag.Bool("dry-run", false, "Only validate the rows, do not submit")
	flag.Parse()

	if *file == "" || (*endpoint == "" && !*dryRun) {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Cannot open %s: %v", *file, err)
	}
	defer f.Close()

	table, err := services.ReadCSV(f)
	if err != nil {
		log.Fatalf("Cannot read %s: %v", *file, err)
	}

	submitter := forms.NewHTTPSubmitter(*endpoint)
	var sent, failed int

	for i, row := range table.Rows {
		line := i + 2
		q := forms.FromAnswers(answersFromRow(table.Headers, row))

		if *dryRun {
			if verr := q.Validate(); verr != nil {
				fmt.Printf("line %d: %s\n", line, verr.Message)
				failed++
				continue
			}
			fmt.Printf("line %d: ok\n", line)
			sent++
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		out, err := q.Submit(ctx, submitter)
		cancel()

		switch {
		case err == nil:
			fmt.Printf("line %d: registered %s\n", line, out.ID)
			sent++
		case errors.Is(err, forms.ErrTransient):
			fmt.Printf("line %d: %s (%v)\n", line, out.Message, err)
			failed++
		default:
			fmt.Printf("line %d: %s\n", line, out.Message)
			failed++
		}
	}

	fmt.Printf("\n%d ok, %d failed\n", sent, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
