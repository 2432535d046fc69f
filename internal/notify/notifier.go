package notify

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rotation_bot/internal/exchange"
	"rotation_bot/internal/journal"
	"rotation_bot/internal/models"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

const journalTail = 10

// Telegram: пассивный нотифайер + команды /positions и /journal.
type Telegram struct {
	bot     *tgbot.BotAPI
	chatID  int64
	ex      exchange.Client
	history journal.Store
	log     *zap.Logger

	cancel context.CancelFunc
}

func NewTelegram(token string, chatID int64, ex exchange.Client, history journal.Store, log *zap.Logger) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if history == nil {
		history = journal.Nop{}
	}
	return &Telegram{
		bot:     b,
		chatID:  chatID,
		ex:      ex,
		history: history,
		log:     log,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		t.log.Warn("telegram send failed", zap.Error(err))
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// /positions: открытые позиции на бирже
func (t *Telegram) handlePositions(ctx context.Context) {
	if t.ex == nil {
		t.Send("❗️ Клиент биржи не инициализирован")
		return
	}
	positions, err := t.ex.Positions(ctx)
	if err != nil {
		t.Sendf("❗️ Ошибка получения позиций: %v", err)
		return
	}
	t.Send(FormatPositions(positions))
}

// FormatPositions: текст ответа на /positions.
func FormatPositions(positions []models.Position) string {
	if len(positions) == 0 {
		return "📭 Открытых позиций нет"
	}

	var b strings.Builder
	b.WriteString("📊 Открытые позиции:\n")
	for _, p := range positions {
		fmt.Fprintf(&b, "- %s [%s] size=%s @ %s\n", p.Symbol, p.Side.Tag(), p.Size, p.EntryPrice)
	}
	return b.String()
}

// /journal: последние действия ротации
func (t *Telegram) handleJournal(ctx context.Context) {
	entries, err := t.history.Recent(ctx, journalTail)
	if err != nil {
		t.Sendf("❗️ Ошибка чтения журнала: %v", err)
		return
	}
	t.Send(FormatJournal(entries))
}

func FormatJournal(entries []models.JournalEntry) string {
	if len(entries) == 0 {
		return "📭 Журнал пуст"
	}

	var b strings.Builder
	b.WriteString("🧾 Последние действия:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s %s [%s] qty=%s",
			e.CreatedAt.UTC().Format("01-02 15:04:05"), e.Action, e.Symbol, e.Side.Tag(), e.Quantity)
		if e.Reason != "" {
			fmt.Fprintf(&b, " (%s)", e.Reason)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Start: long-polling для команд из нашего чата.
func (t *Telegram) Start(parent context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				if upd.Message != nil && upd.Message.Chat != nil &&
					upd.Message.Chat.ID == t.chatID && upd.Message.IsCommand() {

					switch upd.Message.Command() {
					case "positions":
						go t.handlePositions(ctx)
					case "journal":
						go t.handleJournal(ctx)
					}
				}
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {
	if t == nil || t.bot == nil {
		return
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.bot.StopReceivingUpdates()
}

// Stdout используется без Telegram, всё уходит в лог.
type Stdout struct {
	log *zap.Logger
}

func NewStdout(log *zap.Logger) *Stdout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stdout{log: log}
}

func (s *Stdout) Send(msg string)                  { s.log.Info(msg) }
func (s *Stdout) Sendf(format string, args ...any) { s.log.Info(fmt.Sprintf(format, args...)) }
