package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"mealboard/internal/clipper"
	"mealboard/internal/config"
	"mealboard/internal/importer"
	"mealboard/internal/mealplan"
	"mealboard/internal/prep"
	"mealboard/internal/recipe"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the meal-plan store. Pasted weekly
// plans are imported, URLs are clipped into the recipe catalog, and slash
// commands read the derived views.
type Bot struct {
	api        *tgbotapi.BotAPI
	store      *mealplan.Store
	recipeRepo *recipe.Repository
	clipper    *clipper.Clipper
	cfg        *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, store *mealplan.Store, recipeRepo *recipe.Repository, clip *clipper.Clipper) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:        bot,
		store:      store,
		recipeRepo: recipeRepo,
		clipper:    clip,
		cfg:        cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/today":
		b.handleToday(msg.Chat.ID)
	case text == "/prep":
		b.handlePrep(msg.Chat.ID)
	case text == "/shopping":
		b.handleShopping(msg.Chat.ID)
	case text == "/recipes":
		b.handleRecipes(msg.Chat.ID)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClipRequest(msg.Chat.ID, text)
	default:
		b.handleImportRequest(msg.Chat.ID, text)
	}
}

func (b *Bot) handleImportRequest(chatID int64, text string) {
	ctx := context.Background()

	days := importer.Parse(text)
	added, err := importer.Apply(ctx, b.store, mealplan.WeekStart(time.Now()), days)
	if err != nil {
		b.sendError(chatID, "Error importing plan", err)
		return
	}
	if added == 0 {
		b.send(chatID, "🤷 *Nothing to import.*\nPaste a weekly plan, e.g.\n```\nMonday\nBreakfast: Oatmeal, Toast\nKids Lunch: Chicken Nuggets\n```")
		return
	}
	b.send(chatID, fmt.Sprintf("✅ *Imported %d item(s)* across %d day(s).", added, len(days)))
}

func (b *Bot) handleClipRequest(chatID int64, url string) {
	b.send(chatID, "✂️ *Clipping recipe...*")

	ctx := context.Background()
	rec, err := b.clipper.ClipURL(ctx, url)
	if err != nil {
		b.sendError(chatID, "Error clipping recipe", err)
		return
	}
	if err := b.recipeRepo.Save(ctx, b.cfg.MemberID, *rec); err != nil {
		b.sendError(chatID, "Error saving recipe", err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ *Recipe Saved!*\n\n*Title:* %s", rec.Name)
	if rec.Protein != nil {
		fmt.Fprintf(&sb, "\n*Protein:* %.0fg", *rec.Protein)
	}
	if rec.RequiresPrep {
		fmt.Fprintf(&sb, "\n*Prep ahead:* %s", rec.PrepInstructions)
	}
	b.send(chatID, sb.String())
}

func (b *Bot) handleToday(chatID int64) {
	ctx := context.Background()
	day, err := b.store.TodayPlan(ctx, time.Now())
	if err != nil {
		b.sendError(chatID, "Error loading today's plan", err)
		return
	}
	b.send(chatID, formatDayMarkdown(time.Now().Format(mealplan.DateFormat), day))
}

func (b *Bot) handlePrep(chatID int64) {
	ctx := context.Background()
	week, err := b.store.Week(ctx, mealplan.WeekStart(time.Now()))
	if err != nil {
		b.sendError(chatID, "Error loading week", err)
		return
	}
	lookup, err := b.lookup(ctx)
	if err != nil {
		b.sendError(chatID, "Error loading recipes", err)
		return
	}
	b.send(chatID, formatPrepMarkdown(prep.Schedule(week, lookup)))
}

func (b *Bot) handleShopping(chatID int64) {
	ctx := context.Background()
	week, err := b.store.Week(ctx, mealplan.WeekStart(time.Now()))
	if err != nil {
		b.sendError(chatID, "Error loading week", err)
		return
	}

	items := mealplan.ShoppingItems(week)
	if len(items) == 0 {
		b.send(chatID, "🛒 Nothing planned this week yet.")
		return
	}
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s\n", item)
	}
	b.send(chatID, sb.String())
}

func (b *Bot) handleRecipes(chatID int64) {
	ctx := context.Background()
	recipes, err := b.recipeRepo.ListForMealPlan(ctx, b.cfg.MemberID)
	if err != nil {
		b.sendError(chatID, "Error loading recipes", err)
		return
	}
	if len(recipes) == 0 {
		b.send(chatID, "📖 No recipes yet. Send a recipe URL to clip one.")
		return
	}
	var sb strings.Builder
	sb.WriteString("📖 *Recipes*\n\n")
	for _, rec := range recipes {
		fmt.Fprintf(&sb, "- %s", rec.Name)
		if rec.Protein != nil {
			fmt.Fprintf(&sb, " (%.0fg protein)", *rec.Protein)
		}
		if rec.RequiresPrep {
			sb.WriteString(" ⏳")
		}
		sb.WriteString("\n")
	}
	b.send(chatID, sb.String())
}

func (b *Bot) lookup(ctx context.Context) (recipe.Lookup, error) {
	recipes, err := b.recipeRepo.ListForMealPlan(ctx, b.cfg.MemberID)
	if err != nil {
		return nil, err
	}
	return recipe.NewLookup(recipes), nil
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) sendError(chatID int64, label string, err error) {
	log.Printf("%s: %v", label, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.send(chatID, fmt.Sprintf("❌ *%s:*\n```\n%v\n```", label, safeErr))
}

func formatDayMarkdown(date string, day mealplan.DayPlan) string {
	if day.IsEmpty() {
		return fmt.Sprintf("📅 Nothing planned for *%s* yet.", date)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 *Plan for %s*\n", date)
	for _, variant := range mealplan.Variants {
		slots := day.VariantSlots(variant)
		if len(slots) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n*%s*\n", strings.ToUpper(string(variant)[:1])+string(variant)[1:])
		for _, mt := range mealplan.MealTypes {
			slot, ok := slots[mt]
			if !ok || len(slot.Items) == 0 {
				continue
			}
			check := ""
			if slot.Completed {
				check = " ✅"
			}
			fmt.Fprintf(&sb, "- _%s_: %s%s\n", mt, strings.Join(slot.Items, ", "), check)
		}
	}
	return sb.String()
}

func formatPrepMarkdown(schedule map[string]prep.Bucket) string {
	if len(schedule) == 0 {
		return "👨‍🍳 No prep needed this week."
	}

	// before-week first, then calendar order
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

	var sb strings.Builder
	sb.WriteString("👨‍🍳 *Prep Schedule*\n")
	for _, date := range dates {
		bucket := schedule[date]
		fmt.Fprintf(&sb, "\n*%s* (for %s)\n", date, bucket.ForDate)
		for _, item := range bucket.Items {
			fmt.Fprintf(&sb, "- %s", item.RecipeName)
			if item.PrepInstructions != "" {
				fmt.Fprintf(&sb, ": _%s_", item.PrepInstructions)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
