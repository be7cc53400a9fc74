package service

import (
	"strings"
	"testing"
	"time"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// ════════════════════════════════════════════════════════════
// 通知メール本文
// ════════════════════════════════════════════════════════════

func markupSchedule() *model.Schedule {
	return &model.Schedule{
		Title:         `<script>alert("x")</script>`,
		Description:   `<img src=x onerror=alert(1)>`,
		StartDatetime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local),
		EndDatetime:   time.Date(2025, 6, 1, 17, 0, 0, 0, time.Local),
	}
}

func TestReminderBody_EscapesMarkup(t *testing.T) {
	sch := markupSchedule()
	htmlBody, textBody := reminderBody(sch)

	if strings.Contains(htmlBody, "<script>") {
		t.Error("HTML 本文にタイトルのタグがそのまま残っている")
	}
	if !strings.Contains(htmlBody, "&lt;script&gt;") {
		t.Error("HTML 本文でタイトルがエスケープされていない")
	}
	if strings.Contains(htmlBody, "<img ") {
		t.Error("HTML 本文に説明のタグがそのまま残っている")
	}
	// テキスト本文は平文なので入力をそのまま含む
	if !strings.Contains(textBody, `<script>alert("x")</script>`) {
		t.Error("テキスト本文はエスケープ不要")
	}
}

func TestStartBody_EscapesMarkup(t *testing.T) {
	sch := markupSchedule()
	htmlBody, textBody := startBody(sch)

	if strings.Contains(htmlBody, "<script>") || strings.Contains(htmlBody, "<img ") {
		t.Error("HTML 本文にユーザー入力のタグがそのまま残っている")
	}
	if !strings.Contains(htmlBody, "&lt;script&gt;") {
		t.Error("HTML 本文でタイトルがエスケープされていない")
	}
	if !strings.Contains(textBody, "10:00 〜 17:00") {
		t.Errorf("テキスト本文に時間帯がない: %s", textBody)
	}
}

func TestBody_OmitsEmptyDescription(t *testing.T) {
	sch := markupSchedule()
	sch.Title = "定期清掃"
	sch.Description = ""

	_, textBody := reminderBody(sch)
	if strings.Contains(textBody, "\n\n\n") {
		t.Error("説明が空のとき余分な空行を入れない")
	}
}
