package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"mealboard/internal/clipper"
	"mealboard/internal/config"
	"mealboard/internal/database"
	"mealboard/internal/importer"
	"mealboard/internal/mealplan"
	"mealboard/internal/prep"
	"mealboard/internal/recipe"
	"mealboard/internal/widget"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	widgets := widget.NewRepository(db.SQL)
	recipeRepo := recipe.NewRepository(db.SQL)
	store := mealplan.NewStore(widgets, cfg.MemberID)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "import":
		importCmd := flag.NewFlagSet("import", flag.ExitOnError)
		file := importCmd.String("file", "", "Read the plan from a file instead of stdin")
		week := importCmd.String("week", "", "Week start date (YYYY-MM-DD, defaults to this week's Sunday)")
		importCmd.Parse(os.Args[2:])
		if err := runImport(ctx, store, *file, *week); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
	case "today":
		day, err := store.TodayPlan(ctx, time.Now())
		if err != nil {
			log.Fatalf("Failed to load today's plan: %v", err)
		}
		printDay(time.Now().Format(mealplan.DateFormat), day)
	case "week":
		week, err := store.Week(ctx, mealplan.WeekStart(time.Now()))
		if err != nil {
			log.Fatalf("Failed to load week: %v", err)
		}
		for _, dated := range week {
			printDay(dated.Date, dated.Plan)
		}
	case "prep":
		if err := runPrep(ctx, store, recipeRepo, cfg.MemberID); err != nil {
			log.Fatalf("Failed to derive prep schedule: %v", err)
		}
	case "shopping":
		week, err := store.Week(ctx, mealplan.WeekStart(time.Now()))
		if err != nil {
			log.Fatalf("Failed to load week: %v", err)
		}
		for _, item := range mealplan.ShoppingItems(week) {
			fmt.Println(item)
		}
	case "clip":
		if len(os.Args) < 3 {
			log.Fatal("Usage: mealboard clip <url>")
		}
		if err := runClip(ctx, recipeRepo, cfg.MemberID, os.Args[2]); err != nil {
			log.Fatalf("Clip failed: %v", err)
		}
	case "recipes":
		recipes, err := recipeRepo.ListForMealPlan(ctx, cfg.MemberID)
		if err != nil {
			log.Fatalf("Failed to list recipes: %v", err)
		}
		for _, rec := range recipes {
			line := rec.Name
			if rec.Protein != nil {
				line += fmt.Sprintf(" (%.0fg protein)", *rec.Protein)
			}
			if rec.RequiresPrep {
				line += " [prep ahead]"
			}
			fmt.Println(line)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runImport(ctx context.Context, store *mealplan.Store, file, week string) error {
	var src io.Reader = os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer f.Close()
		src = f
	}

	text, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read plan text: %w", err)
	}

	weekStart := mealplan.WeekStart(time.Now())
	if week != "" {
		parsed, err := time.Parse(mealplan.DateFormat, week)
		if err != nil {
			return fmt.Errorf("invalid -week date %q: %w", week, err)
		}
		weekStart = mealplan.WeekStart(parsed)
	}

	days := importer.Parse(string(text))
	added, err := importer.Apply(ctx, store, weekStart, days)
	if err != nil {
		return err
	}
	if added == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}
	fmt.Printf("Imported %d item(s) across %d day(s) into the week of %s.\n",
		added, len(days), weekStart.Format(mealplan.DateFormat))
	return nil
}

func runPrep(ctx context.Context, store *mealplan.Store, recipeRepo *recipe.Repository, memberID string) error {
	week, err := store.Week(ctx, mealplan.WeekStart(time.Now()))
	if err != nil {
		return err
	}
	recipes, err := recipeRepo.ListForMealPlan(ctx, memberID)
	if err != nil {
		return err
	}

	schedule := prep.Schedule(week, recipe.NewLookup(recipes))
	if len(schedule) == 0 {
		fmt.Println("No prep needed this week.")
		return nil
	}

	dates := make([]string, 0, len(schedule))
	for date := range schedule {
		if date != prep.BeforeWeek {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	if _, ok := schedule[prep.BeforeWeek]; ok {
		dates = append([]string{prep.BeforeWeek}, dates...)
	}

	for _, date := range dates {
		bucket := schedule[date]
		fmt.Printf("%s (for %s):\n", date, bucket.ForDate)
		for _, item := range bucket.Items {
			if item.PrepInstructions != "" {
				fmt.Printf("  - %s: %s\n", item.RecipeName, item.PrepInstructions)
			} else {
				fmt.Printf("  - %s\n", item.RecipeName)
			}
		}
	}
	return nil
}

func runClip(ctx context.Context, recipeRepo *recipe.Repository, memberID, url string) error {
	rec, err := clipper.New().ClipURL(ctx, url)
	if err != nil {
		return err
	}
	if err := recipeRepo.Save(ctx, memberID, *rec); err != nil {
		return err
	}
	fmt.Printf("Saved recipe %q", rec.Name)
	if rec.Protein != nil {
		fmt.Printf(" (%.0fg protein)", *rec.Protein)
	}
	fmt.Println()
	return nil
}

func printDay(date string, day mealplan.DayPlan) {
	if day.IsEmpty() {
		fmt.Printf("%s: nothing planned\n", date)
		return
	}
	fmt.Printf("%s:\n", date)
	for _, variant := range mealplan.Variants {
		slots := day.VariantSlots(variant)
		if len(slots) == 0 {
			continue
		}
		fmt.Printf("  %s:\n", variant)
		for _, mt := range mealplan.MealTypes {
			slot, ok := slots[mt]
			if !ok || len(slot.Items) == 0 {
				continue
			}
			check := ""
			if slot.Completed {
				check = " [done]"
			}
			fmt.Printf("    %s: %s%s\n", mt, strings.Join(slot.Items, ", "), check)
		}
	}
}

func printUsage() {
	fmt.Println("Usage: mealboard <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  import [-file plan.txt] [-week YYYY-MM-DD]  Import a pasted weekly plan")
	fmt.Println("  today                                       Show today's plan")
	fmt.Println("  week                                        Show this week's plan")
	fmt.Println("  prep                                        Show this week's prep schedule")
	fmt.Println("  shopping                                    Flatten this week's items for shopping")
	fmt.Println("  clip <url>                                  Clip a recipe page into the catalog")
	fmt.Println("  recipes                                     List the recipe catalog")
}
