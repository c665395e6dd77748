package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giftscout/giftscout/internal/model"
)

func findCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find \"description\"",
		Short: "Find gifts for a free-text description",
		Long: `One-shot gift search from the command line. The description is parsed
into structured criteria, the local catalog is searched, and the candidate
sources are consulted when the catalog comes up short.

Example:
  giftscout find "birthday gift for my brother who loves gaming, under £50"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFind,
	}

	cmd.Flags().Bool("json", false, "Print results as JSON")
	cmd.Flags().Bool("criteria-only", false, "Extract and print the criteria without searching")

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	description := strings.Join(args, " ")

	jsonOut, _ := cmd.Flags().GetBool("json")
	criteriaOnly, _ := cmd.Flags().GetBool("criteria-only")

	extractor, closeExtractor, err := buildExtractor()
	if err != nil {
		return err
	}
	defer closeExtractor()

	criteria := extractor.Extract(ctx, description)

	if criteriaOnly {
		return printJSON(criteria)
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	sources, err := buildSources()
	if err != nil {
		return err
	}

	gifts := buildFinder(store, sources).FindGifts(ctx, criteria)

	if jsonOut {
		return printJSON(struct {
			Criteria model.Criteria  `json:"criteria"`
			Gifts    []model.Listing `json:"gifts"`
		}{criteria, gifts})
	}

	printCriteria(criteria)
	if len(gifts) == 0 {
		fmt.Println("No gifts found.")
		return nil
	}

	fmt.Printf("Found %d gifts:\n\n", len(gifts))
	for _, gift := range gifts {
		fmt.Printf("  £%.2f  %s  [%s]\n", gift.Price, gift.Name, gift.Source)
		if gift.Category != "" {
			fmt.Printf("          category: %s", gift.Category)
			if len(gift.Tags) > 0 {
				fmt.Printf("  tags: %s", strings.Join(gift.Tags, ", "))
			}
			fmt.Println()
		}
		if gift.AffiliateLink != "" {
			fmt.Printf("          %s\n", gift.AffiliateLink)
		}
	}
	return nil
}

func printCriteria(criteria model.Criteria) {
	fmt.Println("Extracted criteria:")
	if criteria.Age != nil {
		fmt.Printf("  age:          %d\n", *criteria.Age)
	}
	if criteria.MaxPrice != nil {
		fmt.Printf("  max price:    %.2f\n", *criteria.MaxPrice)
	}
	if criteria.Gender != "" {
		fmt.Printf("  gender:       %s\n", criteria.Gender)
	}
	if criteria.Occasion != "" {
		fmt.Printf("  occasion:     %s\n", criteria.Occasion)
	}
	if criteria.Relationship != "" {
		fmt.Printf("  relationship: %s\n", criteria.Relationship)
	}
	if len(criteria.Interests) > 0 {
		fmt.Printf("  interests:    %s\n", strings.Join(criteria.Interests, ", "))
	}
	if len(criteria.Categories) > 0 {
		fmt.Printf("  categories:   %s\n", strings.Join(criteria.Categories, ", "))
	}
	fmt.Println()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
