package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageName
	stageCategory
	stagePriority
	stageFrequency
)

const (
	cbTogglePrefix = "toggle:"
	cbItemPrefix   = "item:"
)

const (
	btnCancelDialog  = "⏪ Cancel"
	menuLabelBoard   = "📊 Dashboard"
	menuLabelTasks   = "📋 Tasks"
	menuLabelNewTask = "➕ New task"
	menuLabelTracker = "🗂 Trackers"
)

type conversationState struct {
	stage conversationStage
	input service.TaskInput
}

// Bot is the Telegram front end. It answers a single owner chat only.
type Bot struct {
	api         *tgbotapi.BotAPI
	ownerID     int64
	taskSvc     *service.TaskService
	subtrackers *service.SubtrackerService
	trackers    *service.TrackerService
	log         *slog.Logger
	loc         *time.Location

	mu           sync.Mutex
	conversation *conversationState
}

func New(token string, ownerID int64, taskSvc *service.TaskService, subtrackers *service.SubtrackerService, trackers *service.TrackerService, log *slog.Logger, loc *time.Location) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}

	log.Info("bot authorized", "account", api.Self.UserName, "owner", ownerID)

	return &Bot{
		api:         api,
		ownerID:     ownerID,
		taskSvc:     taskSvc,
		subtrackers: subtrackers,
		trackers:    trackers,
		log:         log,
		loc:         loc,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.log.Error("handle callback", "err", err)
			}
		case update.Message != nil:
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.Error("handle message", "err", err)
			}
		}
	}

	return ctx.Err()
}

func (b *Bot) isOwner(chatID int64, from *tgbotapi.User) bool {
	return from != nil && from.ID == b.ownerID && chatID == b.ownerID
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.Chat == nil || !b.isOwner(msg.Chat.ID, msg.From) {
		return nil
	}

	if !msg.IsCommand() && strings.EqualFold(strings.TrimSpace(msg.Text), btnCancelDialog) {
		b.clearConversation()
		return b.sendText(msg.Chat.ID, "⏪ Cancelled.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		b.log.Debug("command", "name", msg.Command(), "args", msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation() {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "Send /newtask to add a task or /help for the command list.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.sendText(msg.Chat.ID, formatDashboard(b.taskSvc.Statuses(), service.RandomQuote()))
	case "dashboard":
		return b.sendText(msg.Chat.ID, formatDashboard(b.taskSvc.Statuses(), ""))
	case "help":
		return b.handleHelp(msg)
	case "tasks":
		return b.handleListTasks(msg)
	case "newtask":
		return b.startNewTaskConversation(msg)
	case "toggle":
		return b.handleToggle(ctx, msg)
	case "trackers":
		return b.sendTrackers(ctx, msg.Chat.ID)
	case "progress":
		return b.handleProgress(ctx, msg)
	case "contest":
		return b.handleContest(ctx, msg)
	case "additem":
		return b.handleAddItem(ctx, msg)
	case "cancel":
		b.clearConversation()
		return b.sendText(msg.Chat.ID, "⏪ Cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Commands</b>\n" +
		"• /dashboard — status of every category\n" +
		"• /tasks [category] — list tasks with toggle buttons\n" +
		"• /newtask — add a task step by step\n" +
		"• /toggle &lt;n&gt; — mark task n done or open\n" +
		"• /trackers — progress trackers, contests, hackathons, courses, projects\n" +
		"• /progress &lt;n&gt; &lt;value&gt; — set progress tracker n\n" +
		"• /contest &lt;n&gt; &lt;count&gt; — set solved questions for platform n\n" +
		"• /additem &lt;kind&gt; &lt;YYYY-MM-DD&gt; &lt;name&gt; — add a hackathon, course or project\n" +
		"• /cancel — abort the current input"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleListTasks(msg *tgbotapi.Message) error {
	var only model.Category
	if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
		c, err := model.ParseCategory(args)
		if err != nil {
			return b.sendText(msg.Chat.ID, "Category must be one of Study/Work, Health, Social, Spiritual.")
		}
		only = c
	}
	return b.sendTaskList(msg.Chat.ID, only)
}

func (b *Bot) sendTaskList(chatID int64, only model.Category) error {
	tasks := numberedTasks(b.taskSvc.Tasks())
	text := formatTaskList(tasks, only)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, task := range tasks {
		if only != "" && task.Category != only {
			continue
		}
		label := fmt.Sprintf("%s %d · %s", iconOpen, i+1, shortTitle(task.Name, 24))
		if task.Completed {
			label = fmt.Sprintf("%s %d · %s", iconDone, i+1, shortTitle(task.Name, 24))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbTogglePrefix+task.ID),
		))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	} else {
		msg.ReplyMarkup = mainMenuKeyboard()
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) startNewTaskConversation(msg *tgbotapi.Message) error {
	b.setConversation(&conversationState{stage: stageName})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 New task.\n<b>Step 1:</b> what should it be called?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation()
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageName:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The name cannot be empty. Try again.", cancelKeyboard())
		}
		state.input.Name = text
		state.stage = stageCategory
		return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 Which category?", categoryKeyboard())
	case stageCategory:
		c, err := model.ParseCategory(stripIcon(text))
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Pick one of the categories below.", categoryKeyboard())
		}
		state.input.Category = c
		state.stage = stagePriority
		return b.sendWithReplyMarkup(msg.Chat.ID, "❗ Priority?", priorityKeyboard())
	case stagePriority:
		p, err := model.ParsePriority(text)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Priority is High, Medium or Low.", priorityKeyboard())
		}
		state.input.Priority = p
		state.stage = stageFrequency
		return b.sendWithReplyMarkup(msg.Chat.ID, "🔁 How often?", frequencyKeyboard())
	case stageFrequency:
		f, err := model.ParseFrequency(text)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Frequency is One-time, Daily, Weekly or Monthly.", frequencyKeyboard())
		}
		state.input.Frequency = f
		b.clearConversation()
		return b.finishTaskCreation(ctx, msg.Chat.ID, state.input)
	default:
		b.clearConversation()
		return b.sendText(msg.Chat.ID, "Input reset. Start again with /newtask.")
	}
}

func (b *Bot) finishTaskCreation(ctx context.Context, chatID int64, input service.TaskInput) error {
	task, err := b.taskSvc.AddTask(ctx, input)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not save the task: %s", escape(err.Error())))
	}
	if task == nil {
		return b.sendText(chatID, "Nothing saved: the name was empty.")
	}

	b.log.Info("task created", "id", task.ID, "category", task.Category)
	text := fmt.Sprintf("✅ <b>Saved</b> %s in %s · %s · %s",
		escape(task.Name), escape(string(task.Category)), escape(string(task.Priority)), escape(string(task.Frequency)))
	if err := b.sendText(chatID, text); err != nil {
		return err
	}
	return b.sendTaskList(chatID, task.Category)
}

func (b *Bot) handleToggle(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		return b.sendText(msg.Chat.ID, "Give the task number: /toggle 3")
	}
	tasks := numberedTasks(b.taskSvc.Tasks())
	if n > len(tasks) {
		return b.sendText(msg.Chat.ID, "Task not found.")
	}
	return b.toggleAndReport(ctx, msg.Chat.ID, tasks[n-1].ID)
}

func (b *Bot) toggleAndReport(ctx context.Context, chatID int64, id string) error {
	task, err := b.taskSvc.ToggleTask(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			return b.sendText(chatID, "Task not found.")
		}
		return b.sendText(chatID, fmt.Sprintf("Error: %s", escape(err.Error())))
	}

	state := "open again"
	if task.Completed {
		state = "done"
	}
	st := b.taskSvc.Status(task.Category)
	text := fmt.Sprintf("%s «%s» is %s.\n%s %s %d/%d",
		iconDone, escape(task.Name), state, statusIcon(st.Status), escape(string(st.Category)), st.Completed, st.Total)
	return b.sendText(chatID, text)
}

func (b *Bot) handleProgress(ctx context.Context, msg *tgbotapi.Message) error {
	n, value, err := parseIndexValue(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Usage: /progress 1 4.5")
	}
	list, err := b.subtrackers.List(ctx)
	if err != nil {
		return err
	}
	if n > len(list) {
		return b.sendText(msg.Chat.ID, "Tracker not found.")
	}
	st, err := b.subtrackers.SetProgress(ctx, list[n-1].ID, value)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Error: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, formatSubtrackers([]model.Subtracker{*st}))
}

func (b *Bot) handleContest(ctx context.Context, msg *tgbotapi.Message) error {
	n, count, err := parseIndexCount(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Usage: /contest 1 120")
	}
	contests, err := b.trackers.Contests(ctx)
	if err != nil {
		return err
	}
	if n > len(contests) {
		return b.sendText(msg.Chat.ID, "Platform not found.")
	}
	c, err := b.trackers.SetContestProgress(ctx, contests[n-1].ID, count)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Error: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, formatContests([]model.ContestTracker{*c}, b.loc))
}

func (b *Bot) handleAddItem(ctx context.Context, msg *tgbotapi.Message) error {
	fields := strings.Fields(msg.CommandArguments())
	if len(fields) < 3 {
		return b.sendText(msg.Chat.ID, "Usage: /additem course 2025-11-30 Distributed systems")
	}
	kind, err := model.ParseTrackerKind(fields[0])
	if err != nil {
		return b.sendText(msg.Chat.ID, "Kind is hackathon, course or project.")
	}
	item, err := b.trackers.AddItem(ctx, kind, service.TrackerItemInput{
		Name:     strings.Join(fields[2:], " "),
		Deadline: fields[1],
	})
	if err != nil {
		return b.sendText(msg.Chat.ID, escape(err.Error()))
	}
	if item == nil {
		return b.sendText(msg.Chat.ID, "Name and deadline are required.")
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("🗂 Added %s to %s.", escape(item.Name), escape(kind.Title())))
}

func (b *Bot) sendTrackers(ctx context.Context, chatID int64) error {
	subtrackers, err := b.subtrackers.List(ctx)
	if err != nil {
		return err
	}
	contests, err := b.trackers.Contests(ctx)
	if err != nil {
		return err
	}

	var text strings.Builder
	text.WriteString(formatSubtrackers(subtrackers))
	text.WriteByte('\n')
	text.WriteString(formatContests(contests, b.loc))

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, kind := range model.TrackerKinds() {
		items, err := b.trackers.Items(ctx, kind)
		if err != nil {
			return err
		}
		text.WriteByte('\n')
		text.WriteString(formatTrackerItems(kind, items))
		for _, it := range items {
			if it.Status == model.TrackerCompleted {
				continue
			}
			row := []tgbotapi.InlineKeyboardButton{}
			if it.Status == model.TrackerNotStarted {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData("⏳ "+shortTitle(it.Name, 18), itemCallback(kind, it.ID, model.TrackerInProgress)))
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(iconDone+" "+shortTitle(it.Name, 18), itemCallback(kind, it.ID, model.TrackerCompleted)))
			rows = append(rows, row)
		}
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(text.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.Message == nil || cb.Message.Chat == nil || !b.isOwner(cb.Message.Chat.ID, cb.From) {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Warn("callback ack", "err", err)
	}

	chatID := cb.Message.Chat.ID
	switch {
	case strings.HasPrefix(cb.Data, cbTogglePrefix):
		return b.toggleAndReport(ctx, chatID, strings.TrimPrefix(cb.Data, cbTogglePrefix))
	case strings.HasPrefix(cb.Data, cbItemPrefix):
		kind, id, status, err := parseItemCallback(cb.Data)
		if err != nil {
			return nil
		}
		item, err := b.trackers.SetItemStatus(ctx, kind, id, status)
		if err != nil {
			if errors.Is(err, service.ErrItemNotFound) {
				return b.sendText(chatID, "Item not found.")
			}
			return err
		}
		return b.sendText(chatID, fmt.Sprintf("%s %s is now %s.", trackerStatusIcon(item.Status), escape(item.Name), escape(string(item.Status))))
	default:
		return nil
	}
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	switch strings.TrimSpace(msg.Text) {
	case menuLabelBoard:
		return true, b.sendText(msg.Chat.ID, formatDashboard(b.taskSvc.Statuses(), ""))
	case menuLabelTasks:
		return true, b.sendTaskList(msg.Chat.ID, "")
	case menuLabelNewTask:
		return true, b.startNewTaskConversation(msg)
	case menuLabelTracker:
		return true, b.sendTrackers(ctx, msg.Chat.ID)
	default:
		return false, nil
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) setConversation(state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversation = state
}

func (b *Bot) getConversation() *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversation
}

func (b *Bot) hasConversation() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversation != nil
}

func (b *Bot) clearConversation() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversation = nil
}

func parseIndexValue(args string) (int, float64, error) {
	n, raw, err := splitIndexArgs(args)
	if err != nil {
		return 0, 0, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad value %q", raw)
	}
	return n, value, nil
}

// parseIndexCount is parseIndexValue for whole-number counts.
func parseIndexCount(args string) (int, int, error) {
	n, raw, err := splitIndexArgs(args)
	if err != nil {
		return 0, 0, err
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("bad count %q", raw)
	}
	return n, count, nil
}

func splitIndexArgs(args string) (int, string, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("expected two arguments")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, "", fmt.Errorf("bad index %q", fields[0])
	}
	return n, fields[1], nil
}

var statusCodes = map[model.TrackerStatus]string{
	model.TrackerNotStarted: "n",
	model.TrackerInProgress: "p",
	model.TrackerCompleted:  "c",
}

// itemCallback stays under Telegram's 64-byte callback limit by using a
// one-letter status code.
func itemCallback(kind model.TrackerKind, id string, status model.TrackerStatus) string {
	return fmt.Sprintf("%s%s:%s:%s", cbItemPrefix, kind, id, statusCodes[status])
}

func parseItemCallback(data string) (model.TrackerKind, string, model.TrackerStatus, error) {
	parts := strings.Split(strings.TrimPrefix(data, cbItemPrefix), ":")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("malformed callback %q", data)
	}
	kind, err := model.ParseTrackerKind(parts[0])
	if err != nil {
		return "", "", "", err
	}
	for status, code := range statusCodes {
		if code == parts[2] {
			return kind, parts[1], status, nil
		}
	}
	return "", "", "", fmt.Errorf("unknown status code %q", parts[2])
}

// stripIcon drops a leading emoji label added by the category keyboard.
func stripIcon(text string) string {
	if i := strings.IndexByte(text, ' '); i > 0 && !strings.ContainsAny(text[:i], "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return strings.TrimSpace(text[i+1:])
	}
	return text
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelBoard),
			tgbotapi.NewKeyboardButton(menuLabelTasks),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNewTask),
			tgbotapi.NewKeyboardButton(menuLabelTracker),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton
	for _, c := range model.Categories() {
		row = append(row, tgbotapi.NewKeyboardButton(categoryIcon(c)+" "+string(c)))
		if len(row) == 2 {
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
			row = nil
		}
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func priorityKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var row []tgbotapi.KeyboardButton
	for _, p := range model.Priorities() {
		row = append(row, tgbotapi.NewKeyboardButton(string(p)))
	}
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(row...),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func frequencyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var row []tgbotapi.KeyboardButton
	for _, f := range model.Frequencies() {
		row = append(row, tgbotapi.NewKeyboardButton(string(f)))
	}
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(row...),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
