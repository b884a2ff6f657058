package respond

import (
	"regexp"
)

var (
	// 接続文字列内のパスワードパターン (mongodb://, mongodb+srv://, postgres:// など)
	credentialPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// DSN の key=value 形式のパスワード
	passwordParamPattern = regexp.MustCompile(`(?i)(password=)[^\s&]+`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = credentialPattern.ReplaceAllString(msg, "://$1:****@")
	msg = passwordParamPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
