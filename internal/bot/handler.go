// Package bot implements the command-dispatch layer: it routes incoming
// Telegram updates to the menu flows, the per-user conversational state
// machine (games, gifts, admin panel), and the global chat. Dot-prefixed
// messages are handed to the relay dispatcher; everything else is local
// UI against the sender's own chat.
//
// The package talks to Telegram through the narrow Sender contract and to
// the relay through Broadcaster, so the whole state machine is testable
// with fakes.
package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/iman0037/PotyBot/internal/domain"
	"github.com/iman0037/PotyBot/internal/markup"
	"github.com/iman0037/PotyBot/internal/relay"
	"github.com/iman0037/PotyBot/internal/repo"
	"github.com/iman0037/PotyBot/internal/services"
)

// Sender is the slice of the Telegram adapter the handler needs.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, keyboard interface{}) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	DisplayName(ctx context.Context, chatID int64) (string, error)
	ResolveChatID(ctx context.Context, identifier string) (int64, error)
}

// Broadcaster fans one global-chat message out to every recipient.
type Broadcaster interface {
	Broadcast(ctx context.Context, author int64, body string, emphasized bool, replyRef int) []relay.DeliveryResult
}

// Handler routes updates. All fields are required.
type Handler struct {
	DB     *gorm.DB
	Sender Sender
	Relay  Broadcaster
	Wallet *services.WalletService
	Games  *services.GameService

	Admins        map[int64]struct{}
	InitialWallet int64
}

// isAdmin reports whether chatID is in the admin allowlist.
func (h *Handler) isAdmin(chatID int64) bool {
	_, ok := h.Admins[chatID]
	return ok
}

// HandleUpdate processes one webhook update. Failures are logged, never
// returned: the webhook must always be acknowledged.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Text == "" {
		return
	}
	uid := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	user, err := repo.EnsureUser(ctx, h.DB, uid, h.InitialWallet)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", uid).Msg("ensure user failed")
		return
	}

	switch {
	case text == "/start":
		h.handleStart(ctx, user)
	case text == btnBack:
		h.resetToMenu(ctx, user, "بازگشت به منوی اصلی")
	case strings.HasPrefix(text, "."):
		h.handleGlobalChat(ctx, user, msg)
	case h.handleMenu(ctx, user, text):
	case h.handleState(ctx, user, text):
	default:
		h.send(ctx, uid,
			"برای بازی با ربات از دکمه ها استفاده کن 🔣\n\nدر صورت نبودن دکمه ها /start رو بزن❗\n\n🌐 برای ارسال پیام در چت جهانی کافیه اول پیامتون نقطه بزارید. مثال:\n.سلام به همگی",
			mainKeyboard(h.isAdmin(uid)))
	}
}

// send is a logging wrapper over Sender.SendText.
func (h *Handler) send(ctx context.Context, chatID int64, text string, kb interface{}) int {
	mid, err := h.Sender.SendText(ctx, chatID, text, kb)
	if err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
	return mid
}

func (h *Handler) saveUser(ctx context.Context, u *domain.User) {
	if err := repo.SaveUser(ctx, h.DB, u); err != nil {
		log.Error().Err(err).Int64("chat_id", u.ChatID).Msg("save user failed")
	}
}

func (h *Handler) handleStart(ctx context.Context, u *domain.User) {
	u.State = domain.StateNone
	u.BetAmount = 0
	u.GiftTarget = 0
	h.saveUser(ctx, u)
	h.send(ctx, u.ChatID,
		"سلام! به ربات PotyBot <tg-spoiler>(نسخه آزمایشی)</tg-spoiler> خوش اومدی 🌹\n\n🌐 برای ارسال پیام در چت جهانی کافیه اول پیامتون نقطه بزارید. مثال:\n.سلام به همگی",
		mainKeyboard(h.isAdmin(u.ChatID)))
}

func (h *Handler) resetToMenu(ctx context.Context, u *domain.User, text string) {
	u.State = domain.StateNone
	u.BetAmount = 0
	u.GiftTarget = 0
	u.AdminTarget = 0
	h.saveUser(ctx, u)
	h.send(ctx, u.ChatID, text, mainKeyboard(h.isAdmin(u.ChatID)))
}

// handleMenu routes top-level menu buttons; it reports whether text matched.
func (h *Handler) handleMenu(ctx context.Context, u *domain.User, text string) bool {
	uid := u.ChatID
	switch text {
	case btnBalance:
		h.send(ctx, uid, "💰 موجودی شما: "+markup.FormatAmount(u.Wallet), mainKeyboard(h.isAdmin(uid)))

	case btnAbout:
		h.send(ctx, uid,
			"<b>• PotyBot •</b>\n\n🧑🏻‍🚀 سازنده: @iman_h37\n\n🤖 لینک ربات پاتی بات: @PotyBot_Robot\n\n<tg-spoiler>نسخه آزمایشی</tg-spoiler>",
			mainKeyboard(h.isAdmin(uid)))

	case btnDice:
		u.State = domain.StateAwaitBetAmount
		mid := h.send(ctx, uid, "🪙 مقدار شرط رو وارد کن:\n💰موجودی شما: "+markup.FormatAmount(u.Wallet), betKeyboard())
		u.PendingMsgID = mid
		h.saveUser(ctx, u)

	case btnPick:
		u.State = domain.StateAwaitPickAmount
		mid := h.send(ctx, uid, "🪙 مقدار شرط رو وارد کن:\n💰موجودی شما: "+markup.FormatAmount(u.Wallet), betKeyboard())
		u.PendingMsgID = mid
		h.saveUser(ctx, u)

	case btnGift:
		u.State = domain.StateAwaitGiftTarget
		u.GiftTarget = 0
		h.saveUser(ctx, u)
		h.send(ctx, uid, "آیدی فرد گیرنده سکه را وارد کنید:", backKeyboard())

	case btnTop:
		h.showLeaderboard(ctx, u)

	case btnMembers:
		h.showMemberCount(ctx, u)

	case btnAdmin:
		if !h.isAdmin(uid) {
			return false
		}
		u.State = domain.StateNone
		u.AdminTarget = 0
		h.saveUser(ctx, u)
		h.send(ctx, uid, "به پنل مدیریت خوش اومدی\n\nیک گزینه را انتخاب کن:", manageKeyboard())

	case btnShowBal:
		if !h.isAdmin(uid) {
			return false
		}
		u.State = domain.StateAwaitAdminShow
		u.AdminTarget = 0
		h.saveUser(ctx, u)
		h.send(ctx, uid, "آیدی کاربر موردنظر را وارد کن:", backKeyboard())

	case btnSetCoins:
		if !h.isAdmin(uid) {
			return false
		}
		u.State = domain.StateAwaitAdminTarget
		u.AdminTarget = 0
		h.saveUser(ctx, u)
		h.send(ctx, uid, "آیدی کاربر موردنظر را وارد یا «خودم» را انتخاب کن:", adminTargetKeyboard())

	default:
		return false
	}
	return true
}

// showLeaderboard renders the five richest non-admin users.
func (h *Handler) showLeaderboard(ctx context.Context, u *domain.User) {
	top, err := h.Wallet.Top(ctx, 5)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard query failed")
		return
	}
	if len(top) == 0 {
		h.send(ctx, u.ChatID, "هنوز کاربری ثبت نشده است.", mainKeyboard(h.isAdmin(u.ChatID)))
		return
	}
	lines := []string{"🏆 5 نفر برتر بیشترین سکه:\n"}
	for i, row := range top {
		name, err := h.Sender.DisplayName(ctx, row.ChatID)
		if err != nil || name == "" {
			name = markup.UnknownName
		}
		lines = append(lines, strconv.Itoa(i+1)+". "+name+"  —  "+markup.FormatAmount(row.Wallet)+" 🪙")
	}
	h.send(ctx, u.ChatID, strings.Join(lines, "\n"), mainKeyboard(h.isAdmin(u.ChatID)))
}

// showMemberCount probes every roster entry with a send-and-delete ping and
// reports how many sessions are still reachable.
func (h *Handler) showMemberCount(ctx context.Context, u *domain.User) {
	uid := u.ChatID
	progress := h.send(ctx, uid, "درحال دریافت ...", nil)

	ids, err := repo.ListUserIDs(ctx, h.DB)
	if err != nil {
		log.Error().Err(err).Msg("roster list failed")
		return
	}
	reachable := 0
	for _, id := range ids {
		if id == uid {
			continue
		}
		mid, err := h.Sender.SendText(ctx, id, ".", nil)
		if err != nil {
			continue
		}
		if err := h.Sender.DeleteMessage(ctx, id, mid); err != nil {
			log.Debug().Err(err).Int64("chat_id", id).Msg("probe cleanup failed")
		}
		reachable++
	}
	if err := h.Sender.EditText(ctx, uid, progress, "👥️️ تعداد عضوهای چت جهانی: "+markup.FormatAmount(int64(reachable+1))); err != nil {
		log.Warn().Err(err).Msg("member count edit failed")
	}
}

// parseBetInput resolves the half/max shorthands against the wallet.
func parseBetInput(text string, wallet int64) (int64, bool) {
	switch text {
	case btnHalf:
		return wallet / 2, true
	case btnMax:
		return wallet, true
	}
	return markup.ParseAmount(text)
}

// handleState advances the conversational state machine; it reports
// whether the text was consumed by a pending state.
func (h *Handler) handleState(ctx context.Context, u *domain.User, text string) bool {
	switch u.State {
	case domain.StateAwaitBetAmount:
		h.handleBetAmount(ctx, u, text, domain.StateAwaitDiceChoice, diceKeyboard(),
			"🪙 مقدار شرط: %s \n نوع شرط رو انتخاب کن 👇")
	case domain.StateAwaitPickAmount:
		h.handleBetAmount(ctx, u, text, domain.StateAwaitPickChoice, pickKeyboard(),
			"🪙 مقدار شرط: %s \n حدس بزن گل تو کدوم دست رباته 👇")
	case domain.StateAwaitDiceChoice:
		h.handleDiceChoice(ctx, u, text)
	case domain.StateAwaitPickChoice:
		h.handlePickChoice(ctx, u, text)
	case domain.StateAwaitGiftTarget:
		h.handleGiftTarget(ctx, u, text)
	case domain.StateAwaitGiftAmount:
		h.handleGiftAmount(ctx, u, text)
	case domain.StateAwaitAdminShow:
		h.handleAdminShow(ctx, u, text)
	case domain.StateAwaitAdminTarget:
		h.handleAdminTarget(ctx, u, text)
	case domain.StateAwaitAdminAmount:
		h.handleAdminAmount(ctx, u, text)
	default:
		return false
	}
	return true
}

// handleBetAmount validates a wager and moves to the choice state.
func (h *Handler) handleBetAmount(ctx context.Context, u *domain.User, text, nextState string, kb tgbotapi.ReplyKeyboardMarkup, promptFmt string) {
	amount, ok := parseBetInput(text, u.Wallet)
	if !ok || amount <= 0 {
		h.send(ctx, u.ChatID, "مقدار معتبر نیست ❌", betKeyboard())
		return
	}
	if amount > u.Wallet {
		h.send(ctx, u.ChatID, "❌ موجودی شما کافی نیست\n\n💰موجودی شما: "+markup.FormatAmount(u.Wallet), betKeyboard())
		return
	}
	u.BetAmount = amount
	u.State = nextState
	h.saveUser(ctx, u)

	prompt := strings.Replace(promptFmt, "%s", markup.FormatAmount(amount), 1)
	if u.PendingMsgID != 0 {
		if err := h.Sender.EditText(ctx, u.ChatID, u.PendingMsgID, prompt); err == nil {
			h.send(ctx, u.ChatID, "انتخاب کن:", kb)
			return
		}
	}
	mid := h.send(ctx, u.ChatID, prompt, kb)
	u.PendingMsgID = mid
	h.saveUser(ctx, u)
}

// renderOutcome builds the win/lose settlement text shared by both games.
func renderOutcome(out *services.GameOutcome, withRoll bool) string {
	var b strings.Builder
	if out.Won {
		b.WriteString("شما برنده شدید🙂✅\n\n➕")
		b.WriteString(markup.FormatAmount(out.Delta))
		b.WriteString(" سکه به شما اضافه شد")
	} else {
		b.WriteString("شما بازنده شدید🥺❌\n\n➖")
		b.WriteString(markup.FormatAmount(-out.Delta))
		b.WriteString(" سکه از شما کم شد")
	}
	if withRoll {
		b.WriteString("\n\n🎲 تاس رو شده: ")
		b.WriteString(strconv.Itoa(out.Roll))
	}
	b.WriteString("\n\n🪙موجودی قبلی شما : ")
	b.WriteString(markup.FormatAmount(out.Previous))
	b.WriteString("\n=============================\n🪙موجودی فعلی شما : ")
	b.WriteString(markup.FormatAmount(out.Wallet))
	return b.String()
}

// finishGame resets the flow state and shows the settlement.
func (h *Handler) finishGame(ctx context.Context, u *domain.User, out *services.GameOutcome, withRoll bool) {
	text := renderOutcome(out, withRoll)
	if u.PendingMsgID == 0 || h.Sender.EditText(ctx, u.ChatID, u.PendingMsgID, text) != nil {
		h.send(ctx, u.ChatID, text, nil)
	}
	u.State = domain.StateNone
	u.BetAmount = 0
	u.PendingMsgID = 0
	u.Wallet = out.Wallet
	h.saveUser(ctx, u)
	h.send(ctx, u.ChatID, "برگشت به منوی اصلی", mainKeyboard(h.isAdmin(u.ChatID)))
}

func (h *Handler) handleDiceChoice(ctx context.Context, u *domain.User, text string) {
	var (
		out *services.GameOutcome
		err error
	)
	switch {
	case text == btnEven || text == btnOdd:
		out, err = h.Games.PlayDiceParity(ctx, u.ChatID, u.BetAmount, text == btnEven)
	default:
		face, convErr := strconv.Atoi(text)
		if convErr != nil || face < 1 || face > 6 {
			h.send(ctx, u.ChatID, "انتخاب نامعتبر است.", diceKeyboard())
			return
		}
		out, err = h.Games.PlayDiceExact(ctx, u.ChatID, u.BetAmount, face)
	}
	if err != nil {
		log.Warn().Err(err).Int64("chat_id", u.ChatID).Msg("dice settlement failed")
		h.resetToMenu(ctx, u, "برگشت به منوی اصلی")
		return
	}
	h.finishGame(ctx, u, out, true)
}

func (h *Handler) handlePickChoice(ctx context.Context, u *domain.User, text string) {
	if text != btnLeft && text != btnRight {
		h.send(ctx, u.ChatID, "انتخاب نامعتبر است.", pickKeyboard())
		return
	}
	out, err := h.Games.PlayPickHand(ctx, u.ChatID, u.BetAmount, text == btnLeft)
	if err != nil {
		log.Warn().Err(err).Int64("chat_id", u.ChatID).Msg("pick settlement failed")
		h.resetToMenu(ctx, u, "برگشت به منوی اصلی")
		return
	}
	h.finishGame(ctx, u, out, false)
}

func (h *Handler) handleGiftTarget(ctx context.Context, u *domain.User, text string) {
	rec, err := h.Sender.ResolveChatID(ctx, text)
	if err != nil {
		h.send(ctx, u.ChatID, "آیدی نامعتبر است", backKeyboard())
		return
	}
	if rec == u.ChatID {
		h.resetToMenu(ctx, u, "نمی‌توانید به خودتان گیفت بزنید.")
		return
	}
	exists, err := repo.UserExists(ctx, h.DB, rec)
	if err != nil || !exists {
		h.resetToMenu(ctx, u, "گیرنده در دیتابیس موجود نیست — گیرنده باید ابتدا /start رو بزنه تا حسابش ساخته بشه.")
		return
	}
	u.GiftTarget = rec
	u.State = domain.StateAwaitGiftAmount
	h.saveUser(ctx, u)
	h.send(ctx, u.ChatID, "مقدار سکه رو وارد کن:\n💰 موجودی شما: "+markup.FormatAmount(u.Wallet), betKeyboard())
}

func (h *Handler) handleGiftAmount(ctx context.Context, u *domain.User, text string) {
	amount, ok := parseBetInput(text, u.Wallet)
	if !ok {
		h.send(ctx, u.ChatID, "مقدار نامعتبر است.", betKeyboard())
		return
	}
	rec := u.GiftTarget
	if rec == 0 {
		h.resetToMenu(ctx, u, "گیرنده مشخص نشده، لطفا دوباره از گزینهٔ گیفت استفاده کنید.")
		return
	}

	res, err := h.Wallet.Gift(ctx, u.ChatID, rec, amount)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidAmount):
		h.send(ctx, u.ChatID, "مقدار باید بزرگتر از صفر باشد.", betKeyboard())
		return
	case errors.Is(err, services.ErrInsufficientFunds):
		h.send(ctx, u.ChatID, "موجودی کافی نیست. موجودی شما: "+markup.FormatAmount(u.Wallet), mainKeyboard(h.isAdmin(u.ChatID)))
		return
	default:
		log.Warn().Err(err).Int64("chat_id", u.ChatID).Msg("gift transfer failed")
		h.resetToMenu(ctx, u, "انتقال انجام نشد.")
		return
	}

	u.State = domain.StateNone
	u.GiftTarget = 0
	u.Wallet = res.SenderWallet
	h.saveUser(ctx, u)

	senderName, err := h.Sender.DisplayName(ctx, u.ChatID)
	if err != nil || senderName == "" {
		senderName = markup.UnknownName
	}
	recName, err := h.Sender.DisplayName(ctx, rec)
	if err != nil || recName == "" {
		recName = markup.UnknownName
	}

	h.send(ctx, u.ChatID,
		"🎁گیفت با موفقیت انجام شد✅\n\n🔄انتقال "+markup.FormatAmount(res.Amount)+" 🪙\n↗️از: "+senderName+"\n↙️به: "+recName+
			"\n\n➖"+markup.FormatAmount(res.Amount)+" سکه از شما کم شد\n\n🪙موجودی فرد مقابل : "+markup.FormatAmount(res.RecipientWallet)+
			"\n=============================\n🪙موجودی شما : "+markup.FormatAmount(res.SenderWallet),
		mainKeyboard(h.isAdmin(u.ChatID)))

	h.send(ctx, rec,
		"<b>🎁 رسید گیفت:\n🔄 انتقال: "+markup.FormatAmount(res.Amount)+" 🪙\n↗️ از: "+senderName+"\n↙️ به: "+recName+
			"\n\n🪙موجودی شما : "+markup.FormatAmount(res.RecipientWallet)+"</b>",
		mainKeyboard(h.isAdmin(rec)))
}

func (h *Handler) handleAdminShow(ctx context.Context, u *domain.User, text string) {
	if !h.isAdmin(u.ChatID) {
		return
	}
	rec, err := h.Sender.ResolveChatID(ctx, cleanIdentifier(text))
	if err != nil {
		h.send(ctx, u.ChatID, "آیدی نامعتبر است. دوباره وارد کن یا «بازگشت ↪️» بزن.", backKeyboard())
		return
	}
	target, err := repo.GetUser(ctx, h.DB, rec)
	if err != nil {
		u.State = domain.StateNone
		h.saveUser(ctx, u)
		h.send(ctx, u.ChatID, "کاربر در دیتابیس موجود نیست — کاربر باید ابتدا /start را بزند تا حسابش ساخته شود.", manageKeyboard())
		return
	}
	name, nerr := h.Sender.DisplayName(ctx, rec)
	if nerr != nil || name == "" {
		name = markup.UnknownName
	}
	u.State = domain.StateNone
	u.AdminTarget = 0
	h.saveUser(ctx, u)
	h.send(ctx, u.ChatID, "💰 موجودی کاربر "+name+":\n"+markup.FormatAmount(target.Wallet)+" 🪙", manageKeyboard())
}

func (h *Handler) handleAdminTarget(ctx context.Context, u *domain.User, text string) {
	if !h.isAdmin(u.ChatID) {
		return
	}
	var rec int64
	if text == btnMyself {
		rec = u.ChatID
	} else {
		id, err := h.Sender.ResolveChatID(ctx, cleanIdentifier(text))
		if err != nil {
			h.send(ctx, u.ChatID, "آیدی نامعتبر است. دوباره وارد کن یا «بازگشت ↪️» بزن.", backKeyboard())
			return
		}
		rec = id
	}
	target, err := repo.EnsureUser(ctx, h.DB, rec, h.InitialWallet)
	if err != nil {
		log.Error().Err(err).Msg("admin target lookup failed")
		return
	}
	u.AdminTarget = rec
	u.State = domain.StateAwaitAdminAmount
	h.saveUser(ctx, u)
	name, nerr := h.Sender.DisplayName(ctx, rec)
	if nerr != nil || name == "" {
		name = markup.UnknownName
	}
	h.send(ctx, u.ChatID,
		"💰موجودی فعلی کاربر "+name+":\n"+markup.FormatAmount(target.Wallet)+" 🪙\n\nمقدار جدید سکه کاربر را وارد کنید:",
		backKeyboard())
}

func (h *Handler) handleAdminAmount(ctx context.Context, u *domain.User, text string) {
	if !h.isAdmin(u.ChatID) {
		return
	}
	amount, ok := markup.ParseAmount(text)
	if !ok {
		h.send(ctx, u.ChatID, "مقدار نامعتبر است.", backKeyboard())
		return
	}
	rec := u.AdminTarget
	if rec == 0 {
		h.resetToMenu(ctx, u, "کاربر مشخص نشده، دوباره از گزینهٔ تغییر سکه استفاده کن.")
		return
	}
	prev, err := h.Wallet.SetWallet(ctx, rec, amount)
	if err != nil {
		log.Warn().Err(err).Int64("target", rec).Msg("admin wallet override failed")
		h.resetToMenu(ctx, u, "تغییر سکه انجام نشد.")
		return
	}
	u.State = domain.StateNone
	u.AdminTarget = 0
	h.saveUser(ctx, u)
	name, nerr := h.Sender.DisplayName(ctx, rec)
	if nerr != nil || name == "" {
		name = markup.UnknownName
	}
	h.send(ctx, u.ChatID,
		"✅ تغییر سکه انجام شد.\n\nآیدی کاربر: "+name+"\nموجودی قبلی: "+markup.FormatAmount(prev)+" 🪙\nموجودی جدید: "+markup.FormatAmount(amount)+" 🪙",
		mainKeyboard(true))
}

// cleanIdentifier strips spaces and directional marks pasted with ids.
func cleanIdentifier(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "‏", "")
	s = strings.ReplaceAll(s, "‎", "")
	return s
}

// handleGlobalChat routes a dot-prefixed message into the relay. The
// user's raw message is deleted so only the relayed copy remains.
func (h *Handler) handleGlobalChat(ctx context.Context, u *domain.User, msg *tgbotapi.Message) {
	uid := u.ChatID
	if err := h.Sender.DeleteMessage(ctx, uid, msg.MessageID); err != nil {
		log.Debug().Err(err).Int64("chat_id", uid).Msg("source message delete failed")
	}

	body := strings.TrimSpace(strings.TrimPrefix(msg.Text, "."))

	replyRef := 0
	if msg.ReplyToMessage != nil {
		replyRef = msg.ReplyToMessage.MessageID
	}

	// Official balance broadcast: emphasized body rendered by the bot so
	// it cannot be faked by typing the same text.
	if body == "موجودی" || body == "موجودی من" {
		h.Relay.Broadcast(ctx, uid, markup.BalanceBody(u.Wallet), true, replyRef)
		return
	}

	// Forgery guard: a plain message that normalizes to the official
	// balance text is dropped with a short-lived warning.
	if markup.NormalizeForCheck(body) == markup.NormalizeForCheck(markup.OfficialBalanceText(u.Wallet)) {
		alert := h.send(ctx, uid, "⚠️ تلاش جعل موجودی شناسایی شد — ارسال شما پخش نخواهد شد.", mainKeyboard(h.isAdmin(uid)))
		if alert != 0 {
			go func() {
				time.Sleep(3 * time.Second)
				if err := h.Sender.DeleteMessage(context.Background(), uid, alert); err != nil {
					log.Debug().Err(err).Msg("forgery alert cleanup failed")
				}
			}()
		}
		return
	}

	h.Relay.Broadcast(ctx, uid, markup.SanitizeBody(body), false, replyRef)
}
