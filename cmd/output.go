package cmd

import (
	"bytes"

	"github.com/cfan/cfan/cmd/global"
	"github.com/cfan/cfan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

func tableConfig() *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}

// renderTable returns the given table as a string, skipping tables without rows
func renderTable(tab table.Table) string {
	if tab.Rows == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := tab.WriteTable(&buf, tableConfig()); err != nil {
		ui.Fatal("Error printing table: %v", err)
	}
	return buf.String()
}
