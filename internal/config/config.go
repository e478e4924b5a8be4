package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	WordPressURL      string // WordPress/WooCommerceのベースURL
	ConsumerKey       string // WooCommerce REST consumer key（wc/v3）
	ConsumerSecret    string // WooCommerce REST consumer secret
	WordPressUser     string // wp/v2用ユーザー名
	WordPressPassword string // wp/v2用アプリケーションパスワード

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート

	JWTSecret string // JWT署名シークレット

	SendGridAPIKey  string // お問い合わせメール送信（空ならデモモード）
	RecaptchaSecret string // reCAPTCHA検証（空なら検証スキップ）
	AdminEmail      string // お問い合わせ宛先
	FromEmail       string // 送信元

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		WordPressURL:      strings.TrimRight(os.Getenv("WORDPRESS_URL"), "/"),
		ConsumerKey:       os.Getenv("WOOCOMMERCE_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("WOOCOMMERCE_CONSUMER_SECRET"),
		WordPressUser:     os.Getenv("WORDPRESS_USERNAME"),
		WordPressPassword: os.Getenv("WORDPRESS_PASSWORD"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		RecaptchaSecret: os.Getenv("RECAPTCHA_SECRET"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		FromEmail:       os.Getenv("FROM_EMAIL"),

		GoEnv: os.Getenv("GO_ENV"),
		FEURL: os.Getenv("FE_URL"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.WordPressURL == "" {
		return Config{}, fmt.Errorf("WORDPRESS_URL is required")
	}
	if cfg.ConsumerKey == "" {
		return Config{}, fmt.Errorf("WOOCOMMERCE_CONSUMER_KEY is required")
	}
	if cfg.ConsumerSecret == "" {
		return Config{}, fmt.Errorf("WOOCOMMERCE_CONSUMER_SECRET is required")
	}
	if cfg.WordPressUser == "" {
		return Config{}, fmt.Errorf("WORDPRESS_USERNAME is required")
	}
	if cfg.WordPressPassword == "" {
		return Config{}, fmt.Errorf("WORDPRESS_PASSWORD is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if cfg.FEURL == "" {
		return Config{}, fmt.Errorf("FE_URL is required")
	}

	//SENDGRID_API_KEY / RECAPTCHA_SECRET は任意（空ならデモモード）

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
