package models

// Config 構造体はデータベース接続の設定情報を保持します。
type Config struct {
	DBHost       string `json:"db_host"`
	DBPort       string `json:"db_port"`
	DBUser       string `json:"db_user"`
	DBPassword   string `json:"db_password"`
	DBName       string `json:"db_name"`
	DBSSLMode    string `json:"db_sslmode"`
	CronTimezone string `json:"cron_timezone"` // timezone for the daily jobs, e.g. "Asia/Seoul"
}
