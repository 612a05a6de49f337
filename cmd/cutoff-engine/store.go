// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cutoff-engine/internal/export"
	"github.com/pdiddy/cutoff-engine/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Seed and query the cutoff database",
	Long: `Store manages a local SQLite database of parsed cutoffs. Use subcommands
to seed it from parse output, query eligibility by percentile, list raw
cutoffs, or list course names.`,
}

// --- seed subcommand ---

var storeSeedCmd = &cobra.Command{
	Use:   "seed <colleges.json>",
	Short: "Load parsed colleges into the database",
	Long: `Seed reads the JSON (or YAML) written by parse and inserts its colleges,
courses, stages, and cutoffs. Records already present are kept, so seeding
the same file twice adds nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreSeed,
}

func runStoreSeed(cmd *cobra.Command, args []string) error {
	colleges, err := export.LoadFile(args[0])
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Seed(context.Background(), colleges, os.Stdout)
	return err
}

// --- query subcommand ---

var storeQueryCmd = &cobra.Command{
	Use:   "query [college]",
	Short: "Query cutoffs and eligibility",
	Long: `Query pages through colleges whose name or code contains the query text
and prints their cutoffs, optionally narrowed to courses (--course, by name
substring or choice code) and one category. With --percent each row reports
whether that percentile meets the cutoff.`,
	RunE: runStoreQuery,
}

func runStoreQuery(cmd *cobra.Command, args []string) error {
	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	page, err := s.QueryCutoffs(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(page, jsonOutput)
}

func formatQueryOutput(page store.QueryPage, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(page)
	}

	if len(page.Results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-30s  %-9s  %-8s  %8s  %s\n",
		"College", "Course", "Stage", "Category", "Required", "Eligible")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 115))

	for _, r := range page.Results {
		eligible := "-"
		if r.YourPercent != nil {
			eligible = strconv.FormatBool(r.Eligible)
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-30s  %-9s  %-8s  %8.2f  %s\n",
			clip(r.CollegeName, 40), clip(r.CourseName, 30), r.Stage, r.Category,
			r.RequiredPercent, eligible)
	}

	printPagination(page.Pagination, len(page.Results), "colleges")
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored cutoffs page by page",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	pageNr, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	page, err := s.ListCutoffs(context.Background(), pageNr, pageSize)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(page)
	}
	if len(page.Results) == 0 {
		fmt.Println("No cutoffs stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-6s  %-9s  %-8s  %8s  %s\n",
		"ID", "Stage", "Name", "Category", "Rank", "Percent")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 60))
	for _, r := range page.Results {
		fmt.Fprintf(os.Stdout, "%-6d  %-6d  %-9s  %-8s  %8d  %.2f\n",
			r.ID, r.StageID, r.Stage, r.Category, r.Rank, r.Percent)
	}

	printPagination(page.Pagination, len(page.Results), "cutoffs")
	return nil
}

// --- courses subcommand ---

var storeCoursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List distinct course names",
	RunE:  runStoreCourses,
}

func runStoreCourses(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.CourseNames(context.Background())
	if err != nil {
		return err
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(names)
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

// --- shared helpers ---

func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.NewStore(cfg.Store)
}

// addQueryFlags registers the eligibility query flags on cmd.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "college name or code substring")
	cmd.Flags().StringArray("course", nil, "course name substring or choice code (repeatable)")
	cmd.Flags().String("category", "", "category code, e.g. GOPEN or LOBC")
	cmd.Flags().Float64("percent", -1, "your percentile, 0 to 100")
	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("page-size", 0, "colleges per page (0 = use default)")
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (store.QueryOptions, error) {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	courses, _ := cmd.Flags().GetStringArray("course")
	category, _ := cmd.Flags().GetString("category")
	pageNr, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	opts := store.QueryOptions{
		Query:    queryText,
		Courses:  courses,
		Category: strings.ToUpper(category),
		Page:     pageNr,
		PageSize: pageSize,
	}
	if cmd.Flags().Changed("percent") {
		p, _ := cmd.Flags().GetFloat64("percent")
		opts.Percent = &p
	}
	return opts, opts.Validate()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPagination(p store.Pagination, rows int, unit string) {
	fmt.Fprintf(os.Stdout, "\n%d rows, page %d of %d (%d %s)\n",
		rows, p.Page, max(p.TotalPages, 1), p.Total, unit)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	addQueryFlags(storeQueryCmd)
	storeQueryCmd.Flags().Bool("json", false, "output results as JSON")

	storeListCmd.Flags().Int("page", 1, "page number")
	storeListCmd.Flags().Int("page-size", 0, "cutoffs per page (0 = use default)")
	storeListCmd.Flags().Bool("json", false, "output results as JSON")

	storeCoursesCmd.Flags().Bool("json", false, "output names as JSON")

	storeCmd.AddCommand(storeSeedCmd)
	storeCmd.AddCommand(storeQueryCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeCoursesCmd)

	rootCmd.AddCommand(storeCmd)
}
