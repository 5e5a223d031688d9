package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/uniadmin/internal/dashboard"
	"github.com/yigit/uniadmin/internal/export"
	"github.com/yigit/uniadmin/internal/pkg/filestorage"
)

var (
	topN         int
	exportFormat string
	exportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report <kind>",
	Short: "Run a report",
	Long:  "Reports: " + reportNames() + ".",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := dashboard.ParseReport(args[0])
		if err != nil {
			return err
		}
		deps.Dashboard.TopN = topN

		t, err := deps.Dashboard.Report(cmd.Context(), kind)
		if err != nil {
			return err
		}
		renderTables(cmd.OutOrStdout(), t)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <section>",
	Short: "Export a section as CSV or XLSX",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	reportCmd.Flags().IntVarP(&topN, "top", "n", 10, "top-courses: number of courses, 0 for all")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default <export.dir>/<section>.<format>)")
	exportCmd.Flags().StringVar(&filterCourse, "course", "", "enrollments: only this course name")
	exportCmd.Flags().StringVar(&filterStudent, "student", "", "enrollments: only this student name")
	exportCmd.Flags().StringVar(&filterGrade, "grade", "All", "enrollments: All, Graded, Ungraded or a grade")
}

func reportNames() string {
	names := make([]string, 0, len(dashboard.Reports()))
	for _, r := range dashboard.Reports() {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

func runExport(cmd *cobra.Command, args []string) error {
	tables, err := sectionTables(cmd, args[0])
	if err != nil {
		return err
	}

	format := strings.ToLower(exportFormat)
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unsupported export format %q", exportFormat)
	}

	dir, name := deps.Config.Export.Dir, strings.ToLower(args[0])+"."+format
	if exportOut != "" {
		dir, name = filepath.Dir(exportOut), filepath.Base(exportOut)
	}
	storage, err := filestorage.NewLocalStorage(dir, deps.Logger)
	if err != nil {
		return err
	}

	if format == "xlsx" {
		info, err := storage.Save(name, func(w io.Writer) error { return export.WriteXLSX(w, tables...) })
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Wrote %s", info.Path)
		return nil
	}

	// CSV holds one table per file; extra tables get a suffixed name.
	for i, t := range tables {
		file := name
		if i > 0 {
			ext := filepath.Ext(name)
			file = strings.TrimSuffix(name, ext) + "-" + slug(t.Name) + ext
		}
		info, err := storage.Save(file, func(w io.Writer) error { return export.WriteCSV(w, t) })
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Wrote %s", info.Path)
	}
	return nil
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
