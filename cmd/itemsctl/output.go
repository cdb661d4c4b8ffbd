package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lzjever/mbos-items/internal/core"
)

func printResult(v interface{}) {
	if output == "json" {
		json.NewEncoder(os.Stdout).Encode(v)
		return
	}
	printTable(v)
}

func printTable(v interface{}) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	switch data := v.(type) {
	case []core.Item:
		if len(data) == 0 {
			fmt.Println("No items found.")
			return
		}
		fmt.Fprintln(w, "ID\tNAME")
		for _, it := range data {
			fmt.Fprintf(w, "%d\t%s\n", it.ID, truncate(it.Name, 60))
		}
	case core.Item:
		fmt.Fprintf(w, "ID:\t%d\n", data.ID)
		fmt.Fprintf(w, "Name:\t%s\n", data.Name)
	default:
		json.NewEncoder(os.Stdout).Encode(v)
	}
	w.Flush()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
