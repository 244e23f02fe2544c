package main

import (
	"fmt"
	"io"
	"strconv"

	"whispersrt/internal/language"
	"whispersrt/internal/srt"
)

const previewTextWidth = 60

// printPreview renders the first and last recognized segments as a table.
func printPreview(out io.Writer, preview *srt.Preview) {
	rows := previewRows(preview)
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(out, renderTable([]column{
		{Header: "#", Align: alignRight},
		{Header: "Start"},
		{Header: "End"},
		{Header: "Text", MaxWidth: previewTextWidth},
	}, rows))
}

func previewRows(preview *srt.Preview) [][]string {
	if preview == nil || preview.Total() == 0 {
		return nil
	}
	head := preview.Head()
	tail := preview.Tail()
	if len(head) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(head)+len(tail)+1)
	for i, seg := range head {
		rows = append(rows, previewRow(i+1, seg))
	}
	firstTail := preview.Total() - len(tail) + 1
	if firstTail > len(head)+1 {
		rows = append(rows, []string{"…", "", "", ""})
	}
	for i, seg := range tail {
		position := firstTail + i
		if position <= len(head) {
			continue
		}
		rows = append(rows, previewRow(position, seg))
	}
	return rows
}

func previewRow(position int, seg srt.Segment) []string {
	return []string{
		strconv.Itoa(position),
		srt.FormatTimestamp(seg.Start),
		srt.FormatTimestamp(seg.End),
		truncate(seg.TrimmedText(), previewTextWidth),
	}
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-1]) + "…"
}

func displayLanguage(code string) string {
	if code == "" {
		return "auto"
	}
	return language.DisplayName(code)
}
