//go:build ignore
// +build ignore

// This script reads and displays the contents of a mount report for verification.
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	path := "sample_mount_report.xlsx"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer f.Close()

	fmt.Println("📊 Sheets:", f.GetSheetList())

	for _, sheet := range f.GetSheetList() {
		fmt.Printf("\n=== %s ===\n", sheet)
		rows, err := f.GetRows(sheet)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		for i, row := range rows {
			fmt.Printf("%3d: %v\n", i+1, row)
		}
	}
}
