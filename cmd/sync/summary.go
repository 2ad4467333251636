package sync

import (
	"fmt"
	"io"

	"github.com/buger/goterm"

	"github.com/Art0r/settings-automation/pkg/config"
	"github.com/Art0r/settings-automation/pkg/errors"
	"github.com/Art0r/settings-automation/pkg/sync"
	"github.com/Art0r/settings-automation/pkg/transfer"
)

type fileStatus struct {
	color int
	phase string
	msg   string
}

func (s fileStatus) String() string {
	msg := s.phase
	if s.msg != "" {
		msg += ": " + s.msg
	}
	return goterm.Color(msg, s.color)
}

func resultStatus(res transfer.Result) fileStatus {
	if res.Err == nil {
		return fileStatus{color: goterm.GREEN, phase: "Copied",
			msg: fmt.Sprintf("%d bytes", res.Bytes)}
	}

	msg := res.Err.Error()
	var notFound errors.FileNotFound
	if errors.As(res.Err, &notFound) {
		msg = notFound.Path + " does not exist"
	}
	return fileStatus{color: goterm.RED, phase: "Failed", msg: msg}
}

var skipped = fileStatus{color: goterm.YELLOW, phase: "Skipped"}

func stepStatus(done bool) fileStatus {
	if done {
		return fileStatus{color: goterm.GREEN, phase: "Done"}
	}
	return fileStatus{color: goterm.RED, phase: "Not done"}
}

// printSummary prints the outcome of every file in the FileMap. Files that
// weren't reached because an earlier step failed are shown as skipped.
func printSummary(out io.Writer, files config.FileMap, report sync.Report) {
	results := map[string]transfer.Result{}
	for _, res := range report.Files {
		results[res.Name] = res
	}

	table := goterm.NewTable(0, 4, 2, ' ', 0)
	for _, f := range files.Entries() {
		status := skipped
		if res, ok := results[f.Name]; ok {
			status = resultStatus(res)
		}
		fmt.Fprintf(table, "  %s\t%s\t%s\n", f.Name, f.Path(), status)
	}

	if report.Mode == sync.ModeUpload {
		fmt.Fprintf(table, "  commit\t\t%s\n", stepStatus(report.Committed))
		fmt.Fprintf(table, "  push\t\t%s\n", stepStatus(report.Pushed))
	}
	if !report.CleanedUp {
		fmt.Fprintf(table, "  cleanup\t%s\t%s\n", report.WorkDir, stepStatus(false))
	}

	fmt.Fprintf(out, "\nSync summary (%s %s):\n", report.Mode, report.Repo)
	fmt.Fprint(out, table.String())
}
