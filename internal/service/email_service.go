package service

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/takanoridomae/Cleaning/config"
	"github.com/takanoridomae/Cleaning/internal/model"
)

// Mailer メール送信インターフェース。テストではフェイク実装を注入する
type Mailer interface {
	// Send HTML 本文とテキスト本文を持つメールを送信する
	Send(to []string, subject, htmlBody, textBody string) error
	// IsConfigured 送信設定が揃っているか
	IsConfigured() bool
}

// smtpMailer gomail による SMTP 送信実装
type smtpMailer struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewSMTPMailer SMTP Mailer を生成する
func NewSMTPMailer(cfg *config.MailConfig, logger *zap.Logger) Mailer {
	return &smtpMailer{cfg: cfg, logger: logger}
}

func (m *smtpMailer) IsConfigured() bool {
	return m.cfg.IsConfigured()
}

func (m *smtpMailer) Send(to []string, subject, htmlBody, textBody string) error {
	if !m.IsConfigured() {
		// 未設定時は送信をショートサーキットする
		m.logger.Warn("メール設定が未完了のため送信をスキップ", zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("メール送信に失敗: %w", err)
	}
	return nil
}

// ── 通知メール本文 ──

// reminderSubject リマインダーメールの件名
func reminderSubject(schedule *model.Schedule) string {
	return fmt.Sprintf("【リマインダー】%s", schedule.Title)
}

// startSubject 開始通知メールの件名
func startSubject(schedule *model.Schedule) string {
	return fmt.Sprintf("【作業開始】%s", schedule.Title)
}

// reminderBody リマインダーメールの本文（HTML とテキスト）。
// タイトル・説明はユーザー入力なので HTML 側ではエスケープする
func reminderBody(schedule *model.Schedule) (htmlBody, textBody string) {
	start := schedule.StartDatetime.Format("2006年01月02日 15:04")
	lines := []string{
		fmt.Sprintf("まもなく予定「%s」が始まります。", schedule.Title),
		fmt.Sprintf("開始時刻: %s", start),
	}
	if schedule.Description != "" {
		lines = append(lines, "", schedule.Description)
	}
	textBody = strings.Join(lines, "\n")
	htmlBody = fmt.Sprintf(
		"<h2>予定のリマインダー</h2><p>まもなく予定「<b>%s</b>」が始まります。</p><p>開始時刻: %s</p><pre>%s</pre>",
		html.EscapeString(schedule.Title), start, html.EscapeString(schedule.Description),
	)
	return htmlBody, textBody
}

// startBody 開始通知メールの本文（HTML とテキスト）。
// タイトル・説明はユーザー入力なので HTML 側ではエスケープする
func startBody(schedule *model.Schedule) (htmlBody, textBody string) {
	start := schedule.StartDatetime.Format("2006年01月02日 15:04")
	end := schedule.EndDatetime.Format("15:04")
	lines := []string{
		fmt.Sprintf("予定「%s」の開始時刻になりました。", schedule.Title),
		fmt.Sprintf("時間: %s 〜 %s", start, end),
	}
	if schedule.Description != "" {
		lines = append(lines, "", schedule.Description)
	}
	textBody = strings.Join(lines, "\n")
	htmlBody = fmt.Sprintf(
		"<h2>作業開始のお知らせ</h2><p>予定「<b>%s</b>」の開始時刻になりました。</p><p>時間: %s 〜 %s</p><pre>%s</pre>",
		html.EscapeString(schedule.Title), start, end, html.EscapeString(schedule.Description),
	)
	return htmlBody, textBody
}

// scheduleRecipients 通知先アドレスを作成者・顧客から集めて重複排除する
func scheduleRecipients(schedule *model.Schedule) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(addr string) {
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	if schedule.Creator != nil {
		add(schedule.Creator.Email)
	}
	if schedule.Customer != nil {
		add(schedule.Customer.Email)
	}
	return out
}
