package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config アプリケーション全体設定
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"db"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Mail         MailConfig         `mapstructure:"mail"`
	Log          LogConfig          `mapstructure:"log"`
	Upload       UploadConfig       `mapstructure:"upload"`
	Notification NotificationConfig `mapstructure:"notification"`
	PDF          PDFConfig          `mapstructure:"pdf"`
}

// ServerConfig HTTP サーバー設定
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig クロスオリジン設定
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 接続設定
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 接続の最大生存時間（分）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // アイドル接続の最大生存時間（分）
}

// DSN PostgreSQL 接続文字列を生成する
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 設定（トークンブラックリスト用、任意）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 認証設定
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// MailConfig SMTP メール設定
type MailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	UseTLS   bool   `mapstructure:"use_tls"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// IsConfigured 送信に必要な設定が揃っているか
func (c *MailConfig) IsConfigured() bool {
	return c.Username != "" && c.Password != "" && c.From != ""
}

// LogConfig ログ設定
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UploadConfig 写真・PDF 保存先設定
type UploadConfig struct {
	Root        string `mapstructure:"root"`         // アップロードルートディレクトリ
	MaxSizeMB   int    `mapstructure:"max_size_mb"`  // リクエストボディ上限
	ThumbWidth  int    `mapstructure:"thumb_width"`  // サムネイル幅
	ThumbHeight int    `mapstructure:"thumb_height"` // サムネイル高さ
}

// NotificationConfig 通知ディスパッチャ設定
type NotificationConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	CheckInterval time.Duration `mapstructure:"check_interval"`
}

// PDFConfig 報告書 PDF 設定
//
// 報告者ブロックは会社固定情報のためコードではなく設定で持つ。
type PDFConfig struct {
	FontPath       string `mapstructure:"font_path"` // 日本語 TTF フォント
	CompanyName    string `mapstructure:"company_name"`
	CompanyAddress string `mapstructure:"company_address"`
	CompanyContact string `mapstructure:"company_contact"`
	CompanyTel     string `mapstructure:"company_tel"`
}

// Load 設定ファイルと環境変数から設定を読み込む
// 優先順位: 環境変数 > 設定ファイル > デフォルト値
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── デフォルト値 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "aircon_report")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Tokyo")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")

	v.SetDefault("mail.smtp_host", "smtp.gmail.com")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.use_tls", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("upload.root", "./uploads")
	v.SetDefault("upload.max_size_mb", 16)
	v.SetDefault("upload.thumb_width", 150)
	v.SetDefault("upload.thumb_height", 150)

	v.SetDefault("notification.enabled", true)
	v.SetDefault("notification.check_interval", "60s")

	v.SetDefault("pdf.font_path", "./assets/fonts/ipaexg.ttf")
	v.SetDefault("pdf.company_name", "クリーンアップ")
	v.SetDefault("pdf.company_address", "〒635-0814 奈良県北葛城郡広陵町南郷１０５７－５")
	v.SetDefault("pdf.company_contact", "植田")
	v.SetDefault("pdf.company_tel", "０８０－４６４６－２２６６")

	// ── 設定ファイル ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 環境変数 ──
	v.SetEnvPrefix("AIRCON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
		// ファイルが無い場合はデフォルト値と環境変数のみで動作
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の解析に失敗: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 重要項目の妥当性を検証する
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("設定エラー: auth.jwt_secret は必須です")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("設定エラー: auth.jwt_secret は16文字以上が必要です")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("設定エラー: server.port は 1-65535 の範囲で指定してください")
	}
	if c.Upload.Root == "" {
		return fmt.Errorf("設定エラー: upload.root は必須です")
	}
	if c.Notification.CheckInterval < time.Second {
		return fmt.Errorf("設定エラー: notification.check_interval は1秒以上が必要です")
	}
	return nil
}
