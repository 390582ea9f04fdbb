package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	jsoniter "github.com/json-iterator/go"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/feed"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Out is where every Print function writes
var Out io.Writer = color.Output

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
)

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	switch config.GetString("output.format") {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "table" || format == "text"
}

// PrintVideos prints one page of videos in the configured format
func PrintVideos(page int, items []feed.VideoItem, hasMore bool) error {
	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(struct {
			Page    int              `json:"page"`
			Videos  []feed.VideoItem `json:"videos"`
			HasMore bool             `json:"has_more"`
		}{page, items, hasMore})
	case FormatTable:
		rows := make([][]string, 0, len(items))
		for _, v := range items {
			rows = append(rows, []string{
				v.ID, v.Owner, truncate(v.Title, 40),
				strconv.Itoa(v.Stats.Likes), strconv.Itoa(v.Stats.Comments), strconv.Itoa(v.Stats.Shares),
			})
		}
		printTable([]string{"ID", "OWNER", "TITLE", "LIKES", "COMMENTS", "SHARES"}, rows, 4, 5, 6)
		return nil
	default:
		bold := color.New(color.Bold)
		bold.Fprintf(Out, "Page %d (%d videos)\n", page, len(items))
		for i, v := range items {
			fmt.Fprintf(Out, "%3d. ", i+1)
			printVideoLine(v)
		}
		if hasMore {
			fmt.Fprintln(Out, color.CyanString("More videos available, use --page %d", page+1))
		} else {
			fmt.Fprintln(Out, color.YellowString("End of feed"))
		}
		return nil
	}
}

// PrintVideo prints a single video in the configured format
func PrintVideo(v feed.VideoItem) error {
	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(v)
	default:
		return PrintRecord(v.ID, map[string]interface{}{
			"title":    v.Title,
			"owner":    v.Owner,
			"media":    v.MediaURL,
			"duration": fmt.Sprintf("%.0fs", v.DurationSeconds),
			"liked":    v.IsLiked,
			"likes":    v.Stats.Likes,
			"comments": v.Stats.Comments,
			"shares":   v.Stats.Shares,
			"views":    v.Stats.Views,
		})
	}
}

// PrintRecord outputs a single record in the configured format, keys sorted
func PrintRecord(title string, record map[string]interface{}) error {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(record)
	case FormatTable:
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, []string{k, fmt.Sprintf("%v", record[k])})
		}
		printTable([]string{"Field", "Value"}, rows)
		return nil
	default:
		if title != "" {
			fmt.Fprintf(Out, "%s:\n", title)
		}
		bold := color.New(color.Bold)
		for _, k := range keys {
			bold.Fprint(Out, "  "+k+": ")
			fmt.Fprintf(Out, "%v\n", record[k])
		}
		return nil
	}
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(Out, msg+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(Out, "Error: "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(Out, msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(Out, "Warning: "+msg+"\n", args...)
}

// Helper functions

func printVideoLine(v feed.VideoItem) {
	heart := " "
	if v.IsLiked {
		heart = color.RedString("♥")
	}
	fmt.Fprintf(Out, "%s %s %s %s\n",
		color.New(color.Bold).Sprint(v.ID),
		heart,
		truncate(v.Title, 50),
		color.HiBlackString("@%s  %d likes  %d comments  %d shares", v.Owner, v.Stats.Likes, v.Stats.Comments, v.Stats.Shares),
	)
}

func printJSON(data interface{}) error {
	out, err := FormatAsPrettyJSON(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Out, out)
	return err
}

// printTable renders a rounded table; columns listed in right are
// right-aligned (1-based)
func printTable(headers []string, rows [][]string, right ...int) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(right))
	for _, n := range right {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	fmt.Fprintln(Out, tw.Render())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// FormatAsJSON converts data to JSON string (convenience function)
func FormatAsJSON(data interface{}) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// FormatAsPrettyJSON converts data to pretty JSON string (convenience function)
func FormatAsPrettyJSON(data interface{}) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}
