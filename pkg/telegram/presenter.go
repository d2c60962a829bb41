package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/flightroster/pkg/logger"
	"github.com/korjavin/flightroster/pkg/models"
	"github.com/korjavin/flightroster/pkg/storage"
	"github.com/korjavin/flightroster/pkg/token"
	"github.com/korjavin/flightroster/pkg/wizard"
)

const summaryKeyPrefix = "summary:"

// Presenter renders wizard steps, public schedule displays and the
// active-schedule summary as Telegram messages. It implements
// wizard.Presenter and schedule.Publisher.
type Presenter struct {
	bot    *Bot
	store  *storage.Store
	logger *logger.Logger
}

// NewPresenter creates a new presenter
func NewPresenter(bot *Bot, store *storage.Store) *Presenter {
	return &Presenter{
		bot:    bot,
		store:  store,
		logger: logger.New("presenter"),
	}
}

// EventFromCallback converts a callback query into a transport-neutral
// interaction event
func EventFromCallback(cb *tgbotapi.CallbackQuery) wizard.Event {
	ev := wizard.Event{
		Token:       cb.Data,
		ActorID:     strconv.FormatInt(cb.From.ID, 10),
		ActorName:   displayName(cb.From),
		CallbackRef: cb.ID,
	}
	if cb.Message != nil {
		ev.ChannelRef = strconv.FormatInt(cb.Message.Chat.ID, 10)
		ev.MessageRef = strconv.Itoa(cb.Message.MessageID)
	}
	return ev
}

func displayName(user *tgbotapi.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.UserName
	}
	return name
}

func parseRefs(channelRef, messageRef string) (int64, int, error) {
	chatID, err := strconv.ParseInt(channelRef, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad channel ref %q: %w", channelRef, err)
	}
	messageID, err := strconv.Atoi(messageRef)
	if err != nil {
		return 0, 0, fmt.Errorf("bad message ref %q: %w", messageRef, err)
	}
	return chatID, messageID, nil
}

func stepKeyboard(view wizard.StepView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, choice := range view.Choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice.Label, choice.Token),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func stepText(view wizard.StepView) string {
	if len(view.Lines) == 0 {
		return view.Prompt
	}
	return view.Prompt + "\n\n" + strings.Join(view.Lines, "\n")
}

// BeginWizard opens a fresh wizard message in the chat the event came from
func (p *Presenter) BeginWizard(ev wizard.Event, view wizard.StepView) error {
	chatID, _, err := parseRefs(ev.ChannelRef, ev.MessageRef)
	if err != nil {
		return err
	}

	_, err = p.bot.SendMessageWithKeyboard(chatID, stepText(view), stepKeyboard(view))
	if err != nil {
		return fmt.Errorf("failed to open wizard message: %w", err)
	}
	return nil
}

// ShowStep edits the wizard message in place with the next step
func (p *Presenter) ShowStep(ev wizard.Event, view wizard.StepView) error {
	chatID, messageID, err := parseRefs(ev.ChannelRef, ev.MessageRef)
	if err != nil {
		return err
	}

	_, err = p.bot.EditMessageWithKeyboard(chatID, messageID, stepText(view), stepKeyboard(view))
	if err != nil {
		return fmt.Errorf("failed to edit wizard message: %w", err)
	}
	return nil
}

// Dismiss deletes the wizard message
func (p *Presenter) Dismiss(ev wizard.Event) error {
	chatID, messageID, err := parseRefs(ev.ChannelRef, ev.MessageRef)
	if err != nil {
		return err
	}
	return p.bot.DeleteMessage(chatID, messageID)
}

// Acknowledge answers the callback query with a transient toast
func (p *Presenter) Acknowledge(ev wizard.Event, text string) error {
	if ev.CallbackRef == "" {
		return nil
	}
	return p.bot.AnswerCallbackQuery(ev.CallbackRef, text)
}

// PublishSchedule posts the public schedule message with its board, leave
// and end buttons, and returns the display reference
func (p *Presenter) PublishSchedule(ev wizard.Event, s *models.Schedule) (string, string, error) {
	chatID, _, err := parseRefs(ev.ChannelRef, ev.MessageRef)
	if err != nil {
		return "", "", err
	}

	msg, err := p.bot.SendMessageWithKeyboard(chatID, formatScheduleCard(s), scheduleKeyboard(s.ID))
	if err != nil {
		return "", "", fmt.Errorf("failed to publish schedule message: %w", err)
	}

	return strconv.FormatInt(chatID, 10), strconv.Itoa(msg.MessageID), nil
}

// RefreshDisplay re-renders a schedule's public message
func (p *Presenter) RefreshDisplay(s *models.Schedule) error {
	if s.Display == nil {
		return fmt.Errorf("schedule %s has no display", s.ID)
	}
	chatID, messageID, err := parseRefs(s.Display.ChannelRef, s.Display.MessageRef)
	if err != nil {
		return err
	}

	_, err = p.bot.EditMessageWithKeyboard(chatID, messageID, formatScheduleCard(s), scheduleKeyboard(s.ID))
	if err != nil {
		return fmt.Errorf("failed to refresh schedule message: %w", err)
	}
	return nil
}

// RemoveDisplay deletes a schedule's public message
func (p *Presenter) RemoveDisplay(s *models.Schedule) error {
	if s.Display == nil {
		return nil
	}
	chatID, messageID, err := parseRefs(s.Display.ChannelRef, s.Display.MessageRef)
	if err != nil {
		return err
	}
	return p.bot.DeleteMessage(chatID, messageID)
}

// EnsureSummary creates or refreshes the summary message of a chat. The
// summary carries the wizard entry button.
func (p *Presenter) EnsureSummary(chatID int64, active []*models.Schedule) error {
	chatRef := strconv.FormatInt(chatID, 10)
	key := summaryKeyPrefix + chatRef

	var messageID int
	if err := p.store.Get(key, &messageID); err == nil {
		_, err := p.bot.EditMessageWithKeyboard(chatID, messageID, formatSummary(active), summaryKeyboard())
		if err == nil {
			return nil
		}
		// The stored message may have been deleted by hand; fall through
		// and post a fresh one.
		p.logger.Warn("Failed to edit summary message in chat %d: %v", chatID, err)
	}

	msg, err := p.bot.SendMessageWithKeyboard(chatID, formatSummary(active), summaryKeyboard())
	if err != nil {
		return fmt.Errorf("failed to send summary message: %w", err)
	}
	return p.store.Set(key, msg.MessageID)
}

// RefreshSummary re-renders the summary message of every chat that has one
func (p *Presenter) RefreshSummary(active []*models.Schedule) error {
	keys, err := p.store.List(summaryKeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to list summary messages: %w", err)
	}

	for _, key := range keys {
		chatRef := strings.TrimPrefix(key, summaryKeyPrefix)
		chatID, err := strconv.ParseInt(chatRef, 10, 64)
		if err != nil {
			p.logger.Error("Bad summary key %q: %v", key, err)
			continue
		}

		var messageID int
		if err := p.store.Get(key, &messageID); err != nil {
			p.logger.Error("Failed to load summary message id for chat %d: %v", chatID, err)
			continue
		}

		if _, err := p.bot.EditMessageWithKeyboard(chatID, messageID, formatSummary(active), summaryKeyboard()); err != nil {
			p.logger.Error("Failed to refresh summary in chat %d: %v", chatID, err)
		}
	}
	return nil
}

func scheduleKeyboard(scheduleID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛫 Board", token.Encode(token.ActionBoard, scheduleID)),
			tgbotapi.NewInlineKeyboardButtonData("🛬 Leave", token.Encode(token.ActionLeave, scheduleID)),
			tgbotapi.NewInlineKeyboardButtonData("🏁 End", token.Encode(token.ActionEnd, scheduleID)),
		),
	)
}

func summaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✈️ New schedule", token.Encode(token.ActionNew)),
		),
	)
}
