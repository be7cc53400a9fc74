// Package storage 写真・PDF ファイルの階層保存を提供する。
//
// 写真の保存パスは以下の階層で構成する:
//
//	{root}/{before|after}/{顧客名}/{物件ID}/{エアコン概要}/{作業項目}/{作業日YYYYMMDD}/{タイムスタンプ}_{元ファイル名}
//
// {before|after} 以降の相対パスを Photo 行に保存し、配信と PDF 埋め込みの
// 両方で解決する。
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Store ファイル保存先を管理する
type Store struct {
	root string
}

// NewStore ルートディレクトリを作成して Store を返す
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("アップロードディレクトリの作成に失敗: %w", err)
	}
	return &Store{root: root}, nil
}

// Root アップロードルートのパスを返す
func (s *Store) Root() string {
	return s.root
}

// PhotoDir 写真保存ディレクトリの相対パスを組み立てる。
// 各成分はサニタイズされ、空の成分は "unknown" で埋める
func PhotoDir(photoType, customerName string, propertyID uint, airconDesc, workItemName string, workDate time.Time) string {
	return filepath.Join(
		sanitizeComponent(photoType),
		sanitizeComponent(customerName),
		fmt.Sprintf("property_%d", propertyID),
		sanitizeComponent(airconDesc),
		sanitizeComponent(workItemName),
		workDate.Format("20060102"),
	)
}

func sanitizeComponent(s string) string {
	out := SanitizeFilename(s)
	if out == "file" || out == "" {
		return "unknown"
	}
	return out
}

// SavePhoto 写真データを階層パスに保存し、ルートからの相対パスを返す。
// ファイル名にはタイムスタンプを前置して重複を避ける
func (s *Store) SavePhoto(dir, originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("保存ディレクトリの作成に失敗: %w", err)
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), SanitizeFilename(originalName))
	rel := filepath.Join(dir, name)

	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("ファイルの書き込みに失敗: %w", err)
	}
	return rel, nil
}

// SavePDF 生成済み PDF を PDF/{顧客名}/{物件名}/ 配下に保存し、相対パスを返す
func (s *Store) SavePDF(customerName, propertyName, filename string, data []byte) (string, error) {
	dir := filepath.Join("PDF", sanitizeComponent(customerName), sanitizeComponent(propertyName))
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("PDF ディレクトリの作成に失敗: %w", err)
	}

	rel := filepath.Join(dir, SanitizeFilename(filename))
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("PDF の書き込みに失敗: %w", err)
	}
	return rel, nil
}

// Read 相対パスのファイルを読み込む
func (s *Store) Read(rel string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, rel))
}

// Remove 相対パスのファイルを削除する。存在しない場合はエラーにしない
func (s *Store) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.root, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AbsPath 相対パスからルート配下の絶対パスを返す。
// ルート外を指すパストラバーサルは拒否する
func (s *Store) AbsPath(rel string) (string, error) {
	abs := filepath.Join(s.root, rel)
	cleanRoot := filepath.Clean(s.root) + string(filepath.Separator)
	if !strings.HasPrefix(filepath.Clean(abs)+string(filepath.Separator), cleanRoot) {
		return "", fmt.Errorf("不正なファイルパス: %s", rel)
	}
	return abs, nil
}

// SanitizeFilename ファイル名から危険な文字を除去する。
// 日本語などの非 ASCII 文字は保持する（一般的な secure_filename 実装は
// 日本語ファイル名を空にしてしまうため独自実装）
func SanitizeFilename(name string) string {
	// ディレクトリ成分を除去
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|' || r == 0:
			b.WriteRune('_')
		case unicode.IsControl(r):
			b.WriteRune('_')
		case unicode.IsSpace(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		out = "file"
	}
	return out
}

// AllowedImageExt 許可する画像拡張子か判定する
func AllowedImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
