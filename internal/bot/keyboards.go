// Package bot – reply keyboards
//
// Menu rendering for the Telegram client. Button labels double as the
// routing keys in the handler, so they live here as constants.
package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button labels. The handler matches incoming text against these verbatim.
const (
	btnDice     = "🎲 تاس"
	btnPick     = "🌱 گل یا پوچ"
	btnBalance  = "💰 موجودی"
	btnGift     = "🎁 گیفت"
	btnTop      = "🏆 برترین‌ها"
	btnMembers  = "👥️️ تعداد اعضای چت جهانی"
	btnAbout    = "ℹ️ درباره ما"
	btnAdmin    = "👩‍🚀 پنل مدیریت"
	btnBack     = "بازگشت ↪️"
	btnHalf     = "نصف"
	btnMax      = "مکس"
	btnEven     = "زوج"
	btnOdd      = "فرد"
	btnLeft     = "چپ 🤚"
	btnRight    = "راست ✋"
	btnMyself   = "خودم"
	btnSetCoins = "🪙 تغییر سکه"
	btnShowBal  = "💰 نمایش موجودی"
)

// mainKeyboard is the persistent main menu; admins get the panel button.
func mainKeyboard(isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnDice), tgbotapi.NewKeyboardButton(btnPick)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBalance), tgbotapi.NewKeyboardButton(btnGift)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnTop), tgbotapi.NewKeyboardButton(btnMembers)),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAbout), tgbotapi.NewKeyboardButton(btnAdmin)))
	} else {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAbout)))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// manageKeyboard is the admin panel menu.
func manageKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSetCoins), tgbotapi.NewKeyboardButton(btnShowBal)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// backKeyboard offers only the return-to-menu button.
func backKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// betKeyboard offers the half/max shorthands while entering a wager.
func betKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnHalf), tgbotapi.NewKeyboardButton(btnMax)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// diceKeyboard offers the dice choices: parity or an exact face.
func diceKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnEven), tgbotapi.NewKeyboardButton(btnOdd)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("1"), tgbotapi.NewKeyboardButton("2"), tgbotapi.NewKeyboardButton("3")),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("4"), tgbotapi.NewKeyboardButton("5"), tgbotapi.NewKeyboardButton("6")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// pickKeyboard offers the left/right hands.
func pickKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnLeft), tgbotapi.NewKeyboardButton(btnRight)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// adminTargetKeyboard offers "myself" while entering a coin-change target.
func adminTargetKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMyself), tgbotapi.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
